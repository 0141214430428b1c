package application

import (
	"testing"

	"archeologist/internal/ports"
)

type fakeHost struct {
	listeners     map[int]ports.PointerListener
	next          int
	cursor        ports.Cursor
	selection     bool
	unsubscribes  int
	cursorChanges []ports.Cursor
}

func newFakeHost() *fakeHost {
	return &fakeHost{listeners: make(map[int]ports.PointerListener), selection: true}
}

func (h *fakeHost) Subscribe(l ports.PointerListener) func() {
	id := h.next
	h.next++
	h.listeners[id] = l
	return func() {
		h.unsubscribes++
		delete(h.listeners, id)
	}
}

func (h *fakeHost) SetCursor(c ports.Cursor) {
	h.cursor = c
	h.cursorChanges = append(h.cursorChanges, c)
}

func (h *fakeHost) SetTextSelection(enabled bool) {
	h.selection = enabled
}

func (h *fakeHost) move(x, y int) {
	for _, l := range h.listeners {
		l.PointerMove(x, y)
	}
}

func (h *fakeHost) up() {
	for _, l := range h.listeners {
		l.PointerUp()
	}
}

func newTestPanels() (*PanelController, *fakeHost) {
	host := newFakeHost()
	c := NewPanelController(host, DefaultPanelConfig())
	c.SetViewport(1200, 800)
	return c, host
}

func TestPanelController_LeftClamp(t *testing.T) {
	tests := []struct {
		name string
		x    int
		want int
	}{
		{"below min", 50, 200},
		{"at min", 200, 200},
		{"inside", 333, 333},
		{"above max", 900, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, host := newTestPanels()
			c.PointerDown(HandleLeft)
			host.move(tt.x, 0)

			if got := c.Sizes().Left; got != tt.want {
				t.Errorf("expected width %d, got %d", tt.want, got)
			}
		})
	}
}

func TestPanelController_RightMeasuresFromViewportEdge(t *testing.T) {
	c, host := newTestPanels()
	c.PointerDown(HandleRight)

	host.move(850, 0)
	if got := c.Sizes().Right; got != 350 {
		t.Errorf("expected width 350, got %d", got)
	}

	host.move(1150, 0)
	if got := c.Sizes().Right; got != 200 {
		t.Errorf("expected width clamped to 200, got %d", got)
	}
	if c.Sizes().Left != 320 {
		t.Error("right drag must not touch the left panel")
	}
}

func TestPanelController_SubMeasuresFromPanelBottom(t *testing.T) {
	c, host := newTestPanels()
	c.PointerDown(HandleSub)
	if host.cursor != ports.CursorRowResize {
		t.Errorf("expected row-resize cursor, got %v", host.cursor)
	}

	host.move(0, 550)
	if got := c.Sizes().Sub; got != 250 {
		t.Errorf("expected height 250, got %d", got)
	}
	host.move(0, 0)
	if got := c.Sizes().Sub; got != 400 {
		t.Errorf("expected height clamped to 400, got %d", got)
	}
}

func TestPanelController_PointerUpAnywhereReleases(t *testing.T) {
	c, host := newTestPanels()
	c.PointerDown(HandleRight)

	if host.cursor != ports.CursorColResize || host.selection {
		t.Fatal("expected drag scope to be acquired")
	}
	if len(host.listeners) != 1 {
		t.Fatalf("expected 1 listener, got %d", len(host.listeners))
	}

	host.up()

	for _, h := range []Handle{HandleLeft, HandleRight, HandleSub} {
		if c.Dragging(h) {
			t.Errorf("%v should be idle", h)
		}
	}
	if c.Active() != HandleNone {
		t.Errorf("expected no active handle, got %v", c.Active())
	}
	if host.cursor != ports.CursorDefault || !host.selection {
		t.Error("expected cursor and text selection to be restored")
	}
	if len(host.listeners) != 0 {
		t.Errorf("expected listeners to be removed, got %d", len(host.listeners))
	}
}

func TestPanelController_ExclusiveDrag(t *testing.T) {
	c, host := newTestPanels()

	if !c.PointerDown(HandleLeft) {
		t.Fatal("expected left drag to start")
	}
	if c.PointerDown(HandleSub) {
		t.Error("second drag should be ignored")
	}
	if !c.Dragging(HandleLeft) || c.Dragging(HandleSub) {
		t.Error("expected only the left handle to drag")
	}
	if len(host.listeners) != 1 {
		t.Errorf("expected a single subscription, got %d", len(host.listeners))
	}
}

func TestPanelController_InterruptIsIdempotent(t *testing.T) {
	c, host := newTestPanels()
	c.PointerDown(HandleLeft)

	c.Interrupt()
	c.Interrupt()
	c.PointerUp()

	if host.unsubscribes != 1 {
		t.Errorf("expected one unsubscribe, got %d", host.unsubscribes)
	}
	if host.cursor != ports.CursorDefault || !host.selection {
		t.Error("expected pointer state to be restored")
	}

	if !c.PointerDown(HandleSub) {
		t.Error("expected a new drag after interrupt")
	}
}

func TestPanelController_MoveWhileIdleIsIgnored(t *testing.T) {
	c, _ := newTestPanels()
	notified := 0
	c.OnSizesChanged(func(PanelSizes) { notified++ })

	c.PointerMove(400, 400)

	if c.Sizes() != (PanelSizes{Left: 320, Right: 320, Sub: 320}) {
		t.Errorf("unexpected sizes %+v", c.Sizes())
	}
	if notified != 0 {
		t.Error("expected no notification")
	}
}

func TestPanelController_NotifiesOnChangeOnly(t *testing.T) {
	c, host := newTestPanels()
	var got []PanelSizes
	c.OnSizesChanged(func(s PanelSizes) { got = append(got, s) })

	c.PointerDown(HandleLeft)
	host.move(100, 0)
	host.move(150, 0)
	host.move(250, 0)

	if len(got) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(got))
	}
	if got[0].Left != 200 || got[1].Left != 250 {
		t.Errorf("unexpected notified widths %+v", got)
	}
}

func TestNewPanelController_ClampsInitial(t *testing.T) {
	cfg := DefaultPanelConfig()
	cfg.Initial = PanelSizes{Left: 10, Right: 9000, Sub: 200}

	c := NewPanelController(newFakeHost(), cfg)
	if c.Sizes() != (PanelSizes{Left: 200, Right: 500, Sub: 200}) {
		t.Errorf("unexpected sizes %+v", c.Sizes())
	}
}

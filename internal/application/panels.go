package application

import (
	"go.uber.org/zap"

	"archeologist/internal/ports"
)

// Compile-time interface check
var _ ports.PointerListener = (*PanelController)(nil)

// Handle identifies a resize splitter
type Handle int

const (
	HandleNone Handle = iota
	HandleLeft
	HandleRight
	HandleSub
)

func (h Handle) String() string {
	switch h {
	case HandleLeft:
		return "left"
	case HandleRight:
		return "right"
	case HandleSub:
		return "sub"
	default:
		return "none"
	}
}

func (h Handle) cursor() ports.Cursor {
	if h == HandleSub {
		return ports.CursorRowResize
	}
	return ports.CursorColResize
}

// Bounds is an inclusive size range
type Bounds struct {
	Min int `toml:"min" validate:"gt=0"`
	Max int `toml:"max" validate:"gtefield=Min"`
}

// Clamp returns v limited to the range
func (b Bounds) Clamp(v int) int {
	if v < b.Min {
		return b.Min
	}
	if v > b.Max {
		return b.Max
	}
	return v
}

// PanelSizes are the three resizable dimensions
type PanelSizes struct {
	Left  int
	Right int
	Sub   int
}

// PanelConfig holds the size bounds and starting sizes
type PanelConfig struct {
	Left    Bounds
	Right   Bounds
	Sub     Bounds
	Initial PanelSizes
}

// DefaultPanelConfig returns the standard bounds: side panels between 200
// and 500, the sub-panel between 150 and 400, all starting at 320
func DefaultPanelConfig() PanelConfig {
	return PanelConfig{
		Left:    Bounds{Min: 200, Max: 500},
		Right:   Bounds{Min: 200, Max: 500},
		Sub:     Bounds{Min: 150, Max: 400},
		Initial: PanelSizes{Left: 320, Right: 320, Sub: 320},
	}
}

// dragScope holds the global pointer state acquired for one drag.
// release restores it and may be called any number of times.
type dragScope struct {
	host        ports.PointerHost
	unsubscribe func()
	released    bool
}

func acquireDragScope(host ports.PointerHost, cursor ports.Cursor, l ports.PointerListener) *dragScope {
	host.SetCursor(cursor)
	host.SetTextSelection(false)
	return &dragScope{host: host, unsubscribe: host.Subscribe(l)}
}

func (s *dragScope) release() {
	if s == nil || s.released {
		return
	}
	s.released = true
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
	s.host.SetCursor(ports.CursorDefault)
	s.host.SetTextSelection(true)
}

// PanelController runs the drag state machine for the three splitters.
// At most one handle drags at a time.
type PanelController struct {
	host   ports.PointerHost
	config PanelConfig
	logger *zap.Logger

	sizes          PanelSizes
	viewportWidth  int
	subPanelBottom int

	active Handle
	scope  *dragScope

	listeners []func(PanelSizes)
}

// PanelOption configures a PanelController
type PanelOption func(*PanelController)

// WithPanelLogger sets the logger for drag transitions
func WithPanelLogger(logger *zap.Logger) PanelOption {
	return func(c *PanelController) {
		c.logger = logger
	}
}

// NewPanelController creates a controller with sizes clamped from cfg.Initial
func NewPanelController(host ports.PointerHost, cfg PanelConfig, opts ...PanelOption) *PanelController {
	c := &PanelController{
		host:   host,
		config: cfg,
		logger: zap.NewNop(),
		sizes: PanelSizes{
			Left:  cfg.Left.Clamp(cfg.Initial.Left),
			Right: cfg.Right.Clamp(cfg.Initial.Right),
			Sub:   cfg.Sub.Clamp(cfg.Initial.Sub),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnSizesChanged registers fn to run after any size changes
func (c *PanelController) OnSizesChanged(fn func(PanelSizes)) {
	c.listeners = append(c.listeners, fn)
}

// SetViewport supplies the geometry the right and sub handles measure from
func (c *PanelController) SetViewport(width, subPanelBottom int) {
	c.viewportWidth = width
	c.subPanelBottom = subPanelBottom
}

// Sizes returns the current panel sizes
func (c *PanelController) Sizes() PanelSizes {
	return c.sizes
}

// Active returns the dragging handle, or HandleNone
func (c *PanelController) Active() Handle {
	return c.active
}

// Dragging reports whether h is being dragged
func (c *PanelController) Dragging(h Handle) bool {
	return h != HandleNone && c.active == h
}

// PointerDown starts dragging h. It is ignored while any drag is active.
func (c *PanelController) PointerDown(h Handle) bool {
	if h == HandleNone || c.active != HandleNone {
		return false
	}
	c.active = h
	c.scope = acquireDragScope(c.host, h.cursor(), c)
	c.logger.Debug("drag started", zap.Stringer("handle", h))
	return true
}

// PointerMove resizes the dragged panel from the pointer position
func (c *PanelController) PointerMove(x, y int) {
	next := c.sizes
	switch c.active {
	case HandleLeft:
		next.Left = c.config.Left.Clamp(x)
	case HandleRight:
		next.Right = c.config.Right.Clamp(c.viewportWidth - x)
	case HandleSub:
		next.Sub = c.config.Sub.Clamp(c.subPanelBottom - y)
	default:
		return
	}
	if next == c.sizes {
		return
	}
	c.sizes = next
	for _, fn := range c.listeners {
		fn(c.sizes)
	}
}

// PointerUp ends any drag, wherever the pointer is
func (c *PanelController) PointerUp() {
	c.Interrupt()
}

// Interrupt returns every handle to idle and restores the pointer state.
// Focus loss, resize and quit all end a drag this way.
func (c *PanelController) Interrupt() {
	if c.active != HandleNone {
		c.logger.Debug("drag ended", zap.Stringer("handle", c.active))
	}
	c.active = HandleNone
	c.scope.release()
	c.scope = nil
}

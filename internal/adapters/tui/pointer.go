package tui

import (
	"archeologist/internal/ports"
)

// PointerHost implements ports.PointerHost for the terminal. Mouse cells are
// converted to pixels with the configured cell size so panel bounds keep
// their pixel meaning.
type PointerHost struct {
	cellWidth  int
	cellHeight int

	nextID    int
	listeners map[int]ports.PointerListener
	order     []int

	cursor        ports.Cursor
	textSelection bool
}

var _ ports.PointerHost = (*PointerHost)(nil)

// NewPointerHost creates a host for cells of the given pixel size
func NewPointerHost(cellWidth, cellHeight int) *PointerHost {
	if cellWidth <= 0 {
		cellWidth = 1
	}
	if cellHeight <= 0 {
		cellHeight = 1
	}
	return &PointerHost{
		cellWidth:     cellWidth,
		cellHeight:    cellHeight,
		listeners:     make(map[int]ports.PointerListener),
		textSelection: true,
	}
}

// Subscribe registers l until the returned func is called
func (h *PointerHost) Subscribe(l ports.PointerListener) func() {
	id := h.nextID
	h.nextID++
	h.listeners[id] = l
	h.order = append(h.order, id)

	return func() {
		if _, ok := h.listeners[id]; !ok {
			return
		}
		delete(h.listeners, id)
		for i, o := range h.order {
			if o == id {
				h.order = append(h.order[:i:i], h.order[i+1:]...)
				break
			}
		}
	}
}

// SetCursor records the pointer shape
func (h *PointerHost) SetCursor(c ports.Cursor) {
	h.cursor = c
}

// SetTextSelection records whether text selection is allowed
func (h *PointerHost) SetTextSelection(enabled bool) {
	h.textSelection = enabled
}

// Cursor returns the current pointer shape
func (h *PointerHost) Cursor() ports.Cursor {
	return h.cursor
}

// TextSelection reports whether text selection is allowed
func (h *PointerHost) TextSelection() bool {
	return h.textSelection
}

// Subscribed returns the number of active listeners
func (h *PointerHost) Subscribed() int {
	return len(h.listeners)
}

// ToPixels converts a cell position to the pixel at its top-left corner
func (h *PointerHost) ToPixels(col, row int) (x, y int) {
	return col * h.cellWidth, row * h.cellHeight
}

// ToCells converts a pixel length to whole cells
func (h *PointerHost) ToCells(width, height int) (cols, rows int) {
	return width / h.cellWidth, height / h.cellHeight
}

// Move dispatches a pointer move at a cell position
func (h *PointerHost) Move(col, row int) {
	x, y := h.ToPixels(col, row)
	for _, l := range h.snapshot() {
		l.PointerMove(x, y)
	}
}

// Release dispatches a pointer release
func (h *PointerHost) Release() {
	for _, l := range h.snapshot() {
		l.PointerUp()
	}
}

// snapshot copies the listeners so they may unsubscribe while handling
func (h *PointerHost) snapshot() []ports.PointerListener {
	out := make([]ports.PointerListener, 0, len(h.order))
	for _, id := range h.order {
		out = append(out, h.listeners[id])
	}
	return out
}

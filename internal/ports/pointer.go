package ports

// Cursor is a pointer shape the host can display
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorColResize
	CursorRowResize
)

func (c Cursor) String() string {
	switch c {
	case CursorColResize:
		return "col-resize"
	case CursorRowResize:
		return "row-resize"
	default:
		return "default"
	}
}

// PointerListener receives global pointer events while subscribed
type PointerListener interface {
	PointerMove(x, y int)
	PointerUp()
}

// PointerHost is the document-level surface drags are attached to
type PointerHost interface {
	// Subscribe registers l for pointer moves and releases anywhere
	// in the window. The returned func unsubscribes.
	Subscribe(l PointerListener) (unsubscribe func())

	SetCursor(c Cursor)
	SetTextSelection(enabled bool)
}

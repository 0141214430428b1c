package views

// Paginator keeps a cursor over total items shown size at a time. The page
// always contains the cursor.
type Paginator struct {
	size   int
	total  int
	cursor int
	page   int
}

// NewPaginator creates a paginator showing pageSize items per page
func NewPaginator(pageSize int) *Paginator {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &Paginator{size: pageSize}
}

// SetTotal changes the item count and pulls the cursor back into range
func (p *Paginator) SetTotal(total int) {
	p.total = max(total, 0)
	p.SetCursor(p.cursor)
}

// SetPageSize changes how many items fit on a page
func (p *Paginator) SetPageSize(size int) {
	p.size = max(size, 1)
	p.follow()
}

// Cursor returns the absolute index under the cursor
func (p *Paginator) Cursor() int {
	return p.cursor
}

// SetCursor moves the cursor to pos, clamped to the items
func (p *Paginator) SetCursor(pos int) {
	p.cursor = min(max(pos, 0), max(p.total-1, 0))
	p.follow()
}

// CursorUp moves the cursor one item back
func (p *Paginator) CursorUp() bool {
	if p.cursor == 0 {
		return false
	}
	p.SetCursor(p.cursor - 1)
	return true
}

// CursorDown moves the cursor one item forward
func (p *Paginator) CursorDown() bool {
	if p.cursor >= p.total-1 {
		return false
	}
	p.SetCursor(p.cursor + 1)
	return true
}

// NextPage jumps to the first item of the next page
func (p *Paginator) NextPage() bool {
	if p.page+1 >= p.TotalPages() {
		return false
	}
	p.page++
	p.cursor = p.page * p.size
	return true
}

// PrevPage jumps to the first item of the previous page
func (p *Paginator) PrevPage() bool {
	if p.page == 0 {
		return false
	}
	p.page--
	p.cursor = p.page * p.size
	return true
}

// VisibleRange returns the half-open index range of the current page
func (p *Paginator) VisibleRange() (start, end int) {
	start = p.page * p.size
	return start, min(start+p.size, p.total)
}

// TotalPages returns the page count, at least 1
func (p *Paginator) TotalPages() int {
	return max((p.total+p.size-1)/p.size, 1)
}

// CurrentPage returns the 1-based page number
func (p *Paginator) CurrentPage() int {
	return p.page + 1
}

func (p *Paginator) follow() {
	p.page = p.cursor / p.size
}

package views

import "github.com/charmbracelet/bubbles/paginator"

// Pager tracks a cursor over rows shown a page at a time. The page always
// follows the cursor.
type Pager struct {
	pages  paginator.Model
	cursor int
	total  int
}

// NewPager creates a pager showing perPage rows
func NewPager(perPage int) *Pager {
	pages := paginator.New()
	pages.Type = paginator.Arabic
	pages.ArabicFormat = "page %d/%d"
	pages.PerPage = max(perPage, 1)
	return &Pager{pages: pages}
}

// SetPerPage changes the page height
func (p *Pager) SetPerPage(n int) {
	if n <= 0 || n == p.pages.PerPage {
		return
	}
	p.pages.PerPage = n
	p.SetTotal(p.total)
}

// SetTotal sets the row count, clamping the cursor into range
func (p *Pager) SetTotal(total int) {
	p.total = max(total, 0)
	p.pages.TotalPages = 1
	p.pages.SetTotalPages(p.total)
	p.SetCursor(p.cursor)
}

// Cursor returns the absolute row index under the cursor
func (p *Pager) Cursor() int {
	return p.cursor
}

// SetCursor moves the cursor to row i, clamped to the rows
func (p *Pager) SetCursor(i int) {
	p.cursor = max(min(i, p.total-1), 0)
	p.pages.Page = p.cursor / p.pages.PerPage
}

// Move shifts the cursor by delta rows and reports whether it moved
func (p *Pager) Move(delta int) bool {
	before := p.cursor
	p.SetCursor(p.cursor + delta)
	return p.cursor != before
}

// Flip moves to the first row of the next (delta > 0) or previous page
func (p *Pager) Flip(delta int) bool {
	before := p.pages.Page
	if delta > 0 {
		p.pages.NextPage()
	} else {
		p.pages.PrevPage()
	}
	if p.pages.Page == before {
		return false
	}
	p.cursor = p.pages.Page * p.pages.PerPage
	return true
}

// Bounds returns the row range of the current page
func (p *Pager) Bounds() (start, end int) {
	return p.pages.GetSliceBounds(p.total)
}

// View renders the page indicator, empty for a single page
func (p *Pager) View() string {
	if p.pages.TotalPages <= 1 {
		return ""
	}
	return p.pages.View()
}

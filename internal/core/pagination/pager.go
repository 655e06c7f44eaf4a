package pagination

// Pager holds the current page of a listing. Callers reset it whenever the
// set of visible items changes shape (new filter, added or removed rows).
type Pager struct {
	size    int
	current int
}

// NewPager creates a pager on page 1. A non-positive size uses
// DefaultPageSize.
func NewPager(size int) *Pager {
	if size < 1 {
		size = DefaultPageSize
	}
	return &Pager{size: size, current: 1}
}

// Size returns the page size.
func (p *Pager) Size() int { return p.size }

// Current returns the 1-based current page.
func (p *Pager) Current() int { return p.current }

// Reset moves back to page 1.
func (p *Pager) Reset() { p.current = 1 }

// Set moves to page, clamped to the pages available for total items.
func (p *Pager) Set(page, total int) {
	p.current = Clamp(page, TotalPages(total, p.size))
}

// Next advances one page if there is one.
func (p *Pager) Next(total int) {
	p.Set(p.current+1, total)
}

// Prev goes back one page, stopping at 1.
func (p *Pager) Prev() {
	p.current = max(1, p.current-1)
}

// Sync re-clamps the current page after the item count shrank.
func (p *Pager) Sync(total int) {
	p.Set(p.current, total)
}

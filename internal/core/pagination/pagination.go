// Package pagination derives fixed-size page windows from an already
// filtered list. It knows nothing about what produced the list.
package pagination

// DefaultPageSize is the number of rows shown per page in every listing.
const DefaultPageSize = 5

// Page is one window over a list.
type Page[T any] struct {
	Items      []T
	Page       int // 1-based, always within [1, TotalPages]
	TotalPages int // at least 1, even for an empty list
	Total      int // number of items across all pages
}

// HasPrev reports whether a previous page exists.
func (p Page[T]) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a following page exists.
func (p Page[T]) HasNext() bool { return p.Page < p.TotalPages }

// TotalPages returns ceil(total/pageSize), but never less than 1.
func TotalPages(total, pageSize int) int {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	pages := (total + pageSize - 1) / pageSize
	return max(1, pages)
}

// Clamp forces page into [1, totalPages].
func Clamp(page, totalPages int) int {
	return min(max(1, page), max(1, totalPages))
}

// Paginate returns the window of items for currentPage. Out of range pages
// are clamped instead of rejected, and a non-positive page size falls back
// to DefaultPageSize.
func Paginate[T any](items []T, pageSize, currentPage int) Page[T] {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	total := len(items)
	pages := TotalPages(total, pageSize)
	page := Clamp(currentPage, pages)

	start := min((page-1)*pageSize, total)
	end := min(page*pageSize, total)

	return Page[T]{
		Items:      items[start:end:end],
		Page:       page,
		TotalPages: pages,
		Total:      total,
	}
}

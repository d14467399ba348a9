package pagination

import "errors"

const (
	// DefaultPage is used when a page number is not provided.
	DefaultPage = 1
	// DefaultPageSize is the standard page size when one is not provided.
	DefaultPageSize = 10
)

// ErrInvalidPageSize is returned for an explicit page size below 1. A missing
// page size falls back to DefaultPageSize instead.
var ErrInvalidPageSize = errors.New("page_size must be at least 1")

// Params holds optional pagination inputs. A nil Page together with a nil
// PageSize means "no pagination": the full sequence is returned untouched.
// Count-only callers rely on that.
type Params struct {
	Page     *int
	PageSize *int
}

// Requested reports whether the caller asked for pagination at all.
func (p Params) Requested() bool {
	return p.Page != nil || p.PageSize != nil
}

func (p Params) normalize() (page, size int, err error) {
	page = DefaultPage
	if p.Page != nil && *p.Page >= 1 {
		page = *p.Page
	}
	size = DefaultPageSize
	if p.PageSize != nil {
		if *p.PageSize < 1 {
			return 0, 0, ErrInvalidPageSize
		}
		size = *p.PageSize
	}
	return page, size, nil
}

// TotalPages returns the number of pages a sequence of the given length
// occupies at the given page size. An empty sequence still has one page.
func TotalPages(total, size int) int {
	if size < 1 {
		return 1
	}
	pages := (total + size - 1) / size
	if pages < 1 {
		return 1
	}
	return pages
}

// Paginate returns exactly one page of items, preserving input ordering.
// A page past the end clamps to the last page rather than erroring; the
// result is empty only when items is empty. When no pagination was
// requested the whole slice is returned.
func Paginate[T any](items []T, params Params) ([]T, error) {
	if !params.Requested() {
		return items, nil
	}

	page, size, err := params.normalize()
	if err != nil {
		return nil, err
	}

	if last := TotalPages(len(items), size); page > last {
		page = last
	}

	start := (page - 1) * size
	if start >= len(items) {
		return items[:0], nil
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], nil
}

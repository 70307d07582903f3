package models

// Page is the pagination envelope returned by every paginated listing.
type Page[T any] struct {
	Items       []T   `json:"items"`
	Total       int64 `json:"total"`
	Pages       int   `json:"pages"`
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
}

// PageRequest is a 1-based page number and page size.
type PageRequest struct {
	Page    int
	PerPage int
}

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// Normalize clamps page to >= 1 and per_page to 1..MaxPerPage.
func (r PageRequest) Normalize() PageRequest {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.PerPage < 1 {
		r.PerPage = DefaultPerPage
	}
	if r.PerPage > MaxPerPage {
		r.PerPage = MaxPerPage
	}
	return r
}

// Offset is the number of rows skipped before this page.
func (r PageRequest) Offset() int {
	return (r.Page - 1) * r.PerPage
}

// NewPage builds the envelope; pages is ceil(total/per_page) and 0 when total is 0.
func NewPage[T any](items []T, total int64, req PageRequest) Page[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if req.PerPage > 0 {
		pages = int((total + int64(req.PerPage) - 1) / int64(req.PerPage))
	}
	return Page[T]{
		Items:       items,
		Total:       total,
		Pages:       pages,
		CurrentPage: req.Page,
		PerPage:     req.PerPage,
	}
}

// Package pagination slices a full result set into one page. Every list
// endpoint goes through Paginate after its filters have been applied.
package pagination

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Page is the envelope returned by all list endpoints.
type Page[T any] struct {
	Data    []T  `json:"data"`
	Total   int  `json:"total"`
	Page    int  `json:"page"`
	Limit   int  `json:"limit"`
	HasMore bool `json:"hasMore"`
}

// Paginate returns the 1-based page of items with the given limit. Pages past
// the end yield an empty data slice, not an error. Page and limit are taken
// as given; defaulting happens at the query-parsing boundary.
func Paginate[T any](items []T, page, limit int) Page[T] {
	start := (page - 1) * limit
	end := page * limit

	data := []T{}
	if start >= 0 && start < len(items) {
		if end > len(items) {
			end = len(items)
		}
		if end > start {
			data = append(data, items[start:end]...)
		}
	}

	return Page[T]{
		Data:    data,
		Total:   len(items),
		Page:    page,
		Limit:   limit,
		HasMore: page*limit < len(items),
	}
}

package response

// PageResponse is the standard wrapper for offset-paged list endpoints.
type PageResponse[T any] struct {
	Items []T `json:"items"`
	From  int `json:"from"`
	Size  int `json:"size"`
}

// NewPageResponse is a helper to quickly create a response
func NewPageResponse[T any](items []T, from, size int) PageResponse[T] {
	// Handle empty slice to avoid JSON outputting null
	if items == nil {
		items = make([]T, 0)
	}

	return PageResponse[T]{
		Items: items,
		From:  from,
		Size:  size,
	}
}

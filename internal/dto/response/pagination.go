package response

// Page is the pagination envelope: {count, next, previous, results}.
// Next and Previous are page numbers, null when there is no such page.
// A page past the end is a valid empty envelope, not an error.
type Page[T any] struct {
	Count    int64 `json:"count"`
	Next     *int  `json:"next"`
	Previous *int  `json:"previous"`
	Results  []T   `json:"results"`
}

func NewPage[T any](results []T, page, pageSize int, count int64) *Page[T] {
	if results == nil {
		results = []T{}
	}

	p := &Page[T]{
		Count:   count,
		Results: results,
	}

	// Compare against the page count rather than page*pageSize, which
	// overflows for absurd page numbers.
	if pageSize > 0 && int64(page) < (count+int64(pageSize)-1)/int64(pageSize) {
		next := page + 1
		p.Next = &next
	}

	if page > 1 {
		prev := page - 1
		p.Previous = &prev
	}

	return p
}

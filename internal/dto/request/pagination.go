package request

import "math"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type PaginatedRequest struct {
	Page     int `json:"page" validate:"min=1"`
	PageSize int `json:"page_size" validate:"min=1,max=100"`
}

// Offset saturates instead of overflowing: an absurdly large page number
// must still read as a beyond-the-end page, never a negative OFFSET.
func (p PaginatedRequest) Offset() int {
	if p.Page < 1 {
		return 0
	}

	limit := p.Limit()
	if p.Page-1 > (math.MaxInt-limit)/limit {
		return math.MaxInt - limit
	}

	return (p.Page - 1) * limit
}

func (p PaginatedRequest) Limit() int {
	if p.PageSize < 1 {
		return DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		return MaxPageSize
	}
	return p.PageSize
}

package request

type CreateReviewRequest struct {
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Body   string `json:"body" validate:"required,max=2000"`
}

type UpdateReviewRequest struct {
	Rating *int    `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	Body   *string `json:"body,omitempty" validate:"omitempty,max=2000"`
}

// ReviewListRequest carries the raw listing query parameters. Rating stays a
// string here: parsing and range-checking it is the query engine's contract,
// a bad value has to abort the whole request.
type ReviewListRequest struct {
	MovieTitle string
	Rating     string
	Search     string
	Ordering   string
	PaginatedRequest
}

package request

type MovieRequest struct {
	Title       string  `json:"title" validate:"required,max=255"`
	Genre       string  `json:"genre" validate:"required,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	ReleaseYear *int    `json:"release_year,omitempty" validate:"omitempty,min=1888,max=2100"`
}

type MovieUpdateRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,max=255"`
	Genre       *string `json:"genre,omitempty" validate:"omitempty,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	ReleaseYear *int    `json:"release_year,omitempty" validate:"omitempty,min=1888,max=2100"`
}

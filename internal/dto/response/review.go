package response

import (
	"time"

	"movie-reviews/internal/data/entity"
)

type ReviewResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Username   string    `json:"username,omitempty"`
	MovieID    string    `json:"movie_id"`
	MovieTitle string    `json:"movie_title,omitempty"`
	Rating     int       `json:"rating"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}

// Helper converters
func ReviewToResponse(review *entity.Review, username, movieTitle string) ReviewResponse {
	return ReviewResponse{
		ID:         review.ID.String(),
		UserID:     review.UserID.String(),
		Username:   username,
		MovieID:    review.MovieID.String(),
		MovieTitle: movieTitle,
		Rating:     review.Rating,
		Body:       review.Body,
		CreatedAt:  review.CreatedAt,
	}
}

func ReviewWithRefsToResponse(review *entity.ReviewWithRefs) ReviewResponse {
	return ReviewToResponse(&review.Review, review.Username, review.MovieTitle)
}

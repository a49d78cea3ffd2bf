package entity

import (
	"github.com/google/uuid"
)

type Review struct {
	BaseSimple
	UserID  uuid.UUID `db:"user_id"`
	MovieID uuid.UUID `db:"movie_id"`
	Rating  int       `db:"rating"` // 1-5
	Body    string    `db:"body"`
}

// ReviewWithRefs carries the joined movie title and author username for
// list responses, so the service does not fetch them row by row.
type ReviewWithRefs struct {
	Review
	MovieTitle string `db:"movie_title"`
	Username   string `db:"username"`
}

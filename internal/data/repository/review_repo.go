package repository

import (
	"context"
	"fmt"
	"strings"

	"movie-reviews/internal/data/entity"
	"movie-reviews/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ReviewFilter describes one filtered, sorted, paginated review query.
// Rating must already be validated; MovieTitle and Search are matched as
// case-insensitive substrings. Search additionally matches the rating as
// literal text (generic listing only).
type ReviewFilter struct {
	MovieID    *uuid.UUID
	MovieTitle string
	Rating     *int
	Search     string
	OrderBy    string // "created_at" or "rating"; empty keeps insertion order
	Descending bool
	Limit      int
	Offset     int
}

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.Review, error)
	FindAll(ctx context.Context, filter ReviewFilter) ([]*entity.ReviewWithRefs, error)
	CountAll(ctx context.Context, filter ReviewFilter) (int64, error)
	Update(ctx context.Context, review *entity.Review) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (id, user_id, movie_id, rating, body, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		review.ID,
		review.UserID,
		review.MovieID,
		review.Rating,
		review.Body,
		review.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("user_id", review.UserID.String()),
			zap.String("movie_id", review.MovieID.String()),
		)
		return fmt.Errorf("create review for movie %s by user %s: %w",
			review.MovieID.String(), review.UserID.String(), err)
	}

	return nil
}

// FindByIDAndUser is the ownership-scoped lookup: a review belonging to
// another user comes back as nil, exactly like a missing one. There is
// deliberately no unscoped FindByID; every single-review read goes through
// the owner.
func (r *reviewRepository) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.Review, error) {
	query := `
		SELECT id, user_id, movie_id, rating, body, created_at
		FROM reviews
		WHERE id = $1 AND user_id = $2
	`

	return r.scanOne(ctx, query, id, userID)
}

func (r *reviewRepository) scanOne(ctx context.Context, query string, args ...any) (*entity.Review, error) {
	var review entity.Review
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&review.ID,
		&review.UserID,
		&review.MovieID,
		&review.Rating,
		&review.Body,
		&review.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review", zap.Error(err))
		return nil, fmt.Errorf("find review: %w", err)
	}

	return &review, nil
}

// buildConditions renders the WHERE clause shared by FindAll and CountAll.
func buildConditions(filter ReviewFilter, args *[]any) string {
	var sb strings.Builder

	if filter.MovieID != nil {
		*args = append(*args, *filter.MovieID)
		sb.WriteString(fmt.Sprintf(" AND r.movie_id = $%d", len(*args)))
	}

	if filter.MovieTitle != "" {
		*args = append(*args, "%"+filter.MovieTitle+"%")
		sb.WriteString(fmt.Sprintf(" AND m.title ILIKE $%d", len(*args)))
	}

	if filter.Rating != nil {
		*args = append(*args, *filter.Rating)
		sb.WriteString(fmt.Sprintf(" AND r.rating = $%d", len(*args)))
	}

	if filter.Search != "" {
		// Matches the movie title OR the literal rating value as text.
		*args = append(*args, "%"+filter.Search+"%")
		sb.WriteString(fmt.Sprintf(" AND (m.title ILIKE $%d OR r.rating::text LIKE $%d)", len(*args), len(*args)))
	}

	return sb.String()
}

// orderClause whitelists the sortable columns. Anything else falls back
// to insertion order.
func orderClause(filter ReviewFilter) string {
	column := "r.created_at"
	switch filter.OrderBy {
	case "rating":
		column = "r.rating"
	case "created_at":
		column = "r.created_at"
	}

	direction := "ASC"
	if filter.Descending {
		direction = "DESC"
	}

	return fmt.Sprintf(" ORDER BY %s %s, r.id %s", column, direction, direction)
}

func (r *reviewRepository) FindAll(ctx context.Context, filter ReviewFilter) ([]*entity.ReviewWithRefs, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT r.id, r.user_id, r.movie_id, r.rating, r.body, r.created_at,
		       m.title AS movie_title, u.username
		FROM reviews r
		JOIN movies m ON m.id = r.movie_id
		JOIN users u ON u.id = r.user_id
		WHERE 1=1
	`)

	args := []any{}
	queryBuilder.WriteString(buildConditions(filter, &args))
	queryBuilder.WriteString(orderClause(filter))

	args = append(args, filter.Limit, filter.Offset)
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args)))

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to find reviews",
			zap.Error(err),
			zap.Int("limit", filter.Limit),
			zap.Int("offset", filter.Offset),
		)
		return nil, fmt.Errorf("find reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*entity.ReviewWithRefs
	for rows.Next() {
		var review entity.ReviewWithRefs
		err := rows.Scan(
			&review.ID,
			&review.UserID,
			&review.MovieID,
			&review.Rating,
			&review.Body,
			&review.CreatedAt,
			&review.MovieTitle,
			&review.Username,
		)
		if err != nil {
			r.log.Error("Failed to scan review row", zap.Error(err))
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, &review)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}

	return reviews, nil
}

func (r *reviewRepository) CountAll(ctx context.Context, filter ReviewFilter) (int64, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT COUNT(*)
		FROM reviews r
		JOIN movies m ON m.id = r.movie_id
		JOIN users u ON u.id = r.user_id
		WHERE 1=1
	`)

	args := []any{}
	queryBuilder.WriteString(buildConditions(filter, &args))

	var total int64
	err := r.db.QueryRow(ctx, queryBuilder.String(), args...).Scan(&total)
	if err != nil {
		r.log.Error("Failed to count reviews", zap.Error(err))
		return 0, fmt.Errorf("count reviews: %w", err)
	}

	return total, nil
}

func (r *reviewRepository) Update(ctx context.Context, review *entity.Review) error {
	query := `
		UPDATE reviews
		SET rating = $2, body = $3
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		review.ID,
		review.Rating,
		review.Body,
	)

	if err != nil {
		r.log.Error("Failed to update review",
			zap.Error(err),
			zap.String("review_id", review.ID.String()),
		)
		return fmt.Errorf("update review %s: %w", review.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("review %s not found", review.ID.String())
	}

	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM reviews WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete review",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		return fmt.Errorf("delete review %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("review %s not found", id.String())
	}

	r.log.Info("Review deleted", zap.String("review_id", id.String()))
	return nil
}

package usecase

import (
	"context"
	"strconv"
	"strings"
	"time"

	"movie-reviews/internal/data/entity"
	"movie-reviews/internal/data/repository"
	"movie-reviews/internal/dto/request"
	"movie-reviews/internal/dto/response"
	"movie-reviews/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReviewService interface {
	// Listing
	ListReviews(ctx context.Context, req *request.ReviewListRequest) (*response.Page[response.ReviewResponse], error)
	ListMovieReviews(ctx context.Context, movieID string, req *request.ReviewListRequest) (*response.Page[response.ReviewResponse], error)

	// Mutation
	CreateMovieReview(ctx context.Context, movieID string, userID uuid.UUID, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	UpdateReview(ctx context.Context, reviewID string, userID uuid.UUID, req *request.UpdateReviewRequest) (*response.ReviewResponse, error)
	DeleteReview(ctx context.Context, reviewID string, userID uuid.UUID) error
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("service", "review")),
	}
}

// buildFilter turns raw listing parameters into a repository filter.
// A bad rating aborts the whole query here, before anything is fetched.
func buildFilter(req *request.ReviewListRequest, movieID *uuid.UUID, allowSearch bool) (repository.ReviewFilter, error) {
	filter := repository.ReviewFilter{
		MovieID:    movieID,
		MovieTitle: req.MovieTitle,
		Limit:      req.Limit(),
		Offset:     req.Offset(),
	}

	if req.Rating != "" {
		rating, err := strconv.Atoi(req.Rating)
		if err != nil {
			return filter, utils.InvalidParameterf("Invalid rating value. Rating must be an integer between 1 and 5.")
		}
		if rating < 1 || rating > 5 {
			return filter, utils.InvalidParameterf("Rating must be between 1 and 5.")
		}
		filter.Rating = &rating
	}

	// The rating-as-text search quirk only exists on the generic listing.
	if allowSearch {
		filter.Search = req.Search
	}

	// Unknown ordering fields are ignored, like the default insertion order.
	ordering := req.Ordering
	if strings.HasPrefix(ordering, "-") {
		filter.Descending = true
		ordering = ordering[1:]
	}
	switch ordering {
	case "created_at", "rating":
		filter.OrderBy = ordering
	default:
		filter.OrderBy = ""
		filter.Descending = false
	}

	return filter, nil
}

func (s *reviewService) ListReviews(ctx context.Context, req *request.ReviewListRequest) (*response.Page[response.ReviewResponse], error) {
	filter, err := buildFilter(req, nil, true)
	if err != nil {
		s.log.Warn("Rejected review listing", zap.Error(err), zap.String("rating", req.Rating))
		return nil, err
	}

	return s.listPage(ctx, filter, req)
}

func (s *reviewService) ListMovieReviews(ctx context.Context, movieID string, req *request.ReviewListRequest) (*response.Page[response.ReviewResponse], error) {
	movieUUID, err := uuid.Parse(movieID)
	if err != nil {
		return nil, utils.NotFoundf("Movie not found.")
	}

	movie, err := s.repo.Movie.FindByID(ctx, movieUUID)
	if err != nil {
		s.log.Error("Failed to look up movie for reviews", zap.Error(err), zap.String("movie_id", movieID))
		return nil, err
	}
	if movie == nil {
		return nil, utils.NotFoundf("Movie not found.")
	}

	filter, err := buildFilter(req, &movieUUID, false)
	if err != nil {
		s.log.Warn("Rejected movie review listing", zap.Error(err), zap.String("rating", req.Rating))
		return nil, err
	}

	return s.listPage(ctx, filter, req)
}

func (s *reviewService) listPage(ctx context.Context, filter repository.ReviewFilter, req *request.ReviewListRequest) (*response.Page[response.ReviewResponse], error) {
	reviews, err := s.repo.Review.FindAll(ctx, filter)
	if err != nil {
		s.log.Error("Failed to list reviews", zap.Error(err))
		return nil, err
	}

	total, err := s.repo.Review.CountAll(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count reviews", zap.Error(err))
		return nil, err
	}

	results := make([]response.ReviewResponse, len(reviews))
	for i, review := range reviews {
		results[i] = response.ReviewWithRefsToResponse(review)
	}

	s.log.Debug("Reviews listed",
		zap.Int("count", len(results)),
		zap.Int64("total", total),
		zap.Int("page", req.Page),
		zap.Int("page_size", req.Limit()),
	)

	return response.NewPage(results, req.Page, req.Limit(), total), nil
}

func (s *reviewService) CreateMovieReview(ctx context.Context, movieID string, userID uuid.UUID, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create review validation failed", zap.Any("errors", errs))
		return nil, &utils.ValidationError{Fields: errs}
	}

	movieUUID, err := uuid.Parse(movieID)
	if err != nil {
		return nil, utils.NotFoundf("Movie not found.")
	}

	// The target movie has to exist before a review can point at it
	movie, err := s.repo.Movie.FindByID(ctx, movieUUID)
	if err != nil {
		s.log.Error("Failed to look up movie for review", zap.Error(err), zap.String("movie_id", movieID))
		return nil, err
	}
	if movie == nil {
		return nil, utils.NotFoundf("Movie not found.")
	}

	// Author and movie come from the request context and path, never
	// from the body.
	review := &entity.Review{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:  userID,
		MovieID: movieUUID,
		Rating:  req.Rating,
		Body:    req.Body,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		s.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("movie_id", movieID),
		)
		return nil, err
	}

	user, _ := s.repo.User.FindByID(ctx, userID)
	username := ""
	if user != nil {
		username = user.Username
	}

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("movie_id", movieID),
		zap.Int("rating", req.Rating),
	)

	reviewResp := response.ReviewToResponse(review, username, movie.Title)
	return &reviewResp, nil
}

func (s *reviewService) UpdateReview(ctx context.Context, reviewID string, userID uuid.UUID, req *request.UpdateReviewRequest) (*response.ReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update review validation failed", zap.Any("errors", errs))
		return nil, &utils.ValidationError{Fields: errs}
	}

	review, err := s.findOwned(ctx, reviewID, userID)
	if err != nil {
		return nil, err
	}

	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.Body != nil {
		review.Body = *req.Body
	}

	if err := s.repo.Review.Update(ctx, review); err != nil {
		s.log.Error("Failed to update review",
			zap.Error(err),
			zap.String("review_id", reviewID),
		)
		return nil, err
	}

	s.log.Info("Review updated",
		zap.String("review_id", reviewID),
		zap.String("user_id", userID.String()),
	)

	return s.buildReviewResponse(ctx, review), nil
}

func (s *reviewService) DeleteReview(ctx context.Context, reviewID string, userID uuid.UUID) error {
	review, err := s.findOwned(ctx, reviewID, userID)
	if err != nil {
		return err
	}

	if err := s.repo.Review.Delete(ctx, review.ID); err != nil {
		s.log.Error("Failed to delete review",
			zap.Error(err),
			zap.String("review_id", reviewID),
		)
		return err
	}

	s.log.Info("Review deleted",
		zap.String("review_id", reviewID),
		zap.String("user_id", userID.String()),
	)

	return nil
}

// findOwned looks a review up scoped to its author. Someone else's review
// is indistinguishable from a missing one, so existence never leaks.
func (s *reviewService) findOwned(ctx context.Context, reviewID string, userID uuid.UUID) (*entity.Review, error) {
	reviewUUID, err := uuid.Parse(reviewID)
	if err != nil {
		return nil, utils.NotFoundf("Review not found.")
	}

	review, err := s.repo.Review.FindByIDAndUser(ctx, reviewUUID, userID)
	if err != nil {
		s.log.Error("Failed to find review", zap.Error(err), zap.String("review_id", reviewID))
		return nil, err
	}
	if review == nil {
		return nil, utils.NotFoundf("Review not found.")
	}

	return review, nil
}

func (s *reviewService) buildReviewResponse(ctx context.Context, review *entity.Review) *response.ReviewResponse {
	user, _ := s.repo.User.FindByID(ctx, review.UserID)
	username := ""
	if user != nil {
		username = user.Username
	}

	movie, _ := s.repo.Movie.FindByID(ctx, review.MovieID)
	movieTitle := ""
	if movie != nil {
		movieTitle = movie.Title
	}

	reviewResp := response.ReviewToResponse(review, username, movieTitle)
	return &reviewResp
}

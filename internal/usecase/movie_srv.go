package usecase

import (
	"context"
	"time"

	"movie-reviews/internal/data/entity"
	"movie-reviews/internal/data/repository"
	"movie-reviews/internal/dto/request"
	"movie-reviews/internal/dto/response"
	"movie-reviews/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MovieService interface {
	CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error)
	GetMovieByID(ctx context.Context, movieID string) (*response.MovieResponse, error)
	ListMovies(ctx context.Context, search string, req *request.PaginatedRequest) (*response.Page[response.MovieResponse], error)
	UpdateMovie(ctx context.Context, movieID string, req *request.MovieUpdateRequest) (*response.MovieResponse, error)
	DeleteMovie(ctx context.Context, movieID string) error
}

type movieService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewMovieService(repo *repository.Repository, log *zap.Logger) MovieService {
	return &movieService{
		repo: repo,
		log:  log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create movie validation failed", zap.Any("errors", errs))
		return nil, &utils.ValidationError{Fields: errs}
	}

	now := time.Now()
	movie := &entity.Movie{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:       req.Title,
		Genre:       req.Genre,
		Description: req.Description,
		ReleaseYear: req.ReleaseYear,
	}

	if err := s.repo.Movie.Create(ctx, movie); err != nil {
		s.log.Error("Failed to create movie", zap.Error(err), zap.String("title", req.Title))
		return nil, err
	}

	s.log.Info("Movie created",
		zap.String("movie_id", movie.ID.String()),
		zap.String("title", movie.Title))

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) GetMovieByID(ctx context.Context, movieID string) (*response.MovieResponse, error) {
	movie, err := s.findMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) ListMovies(ctx context.Context, search string, req *request.PaginatedRequest) (*response.Page[response.MovieResponse], error) {
	movies, err := s.repo.Movie.FindAll(ctx, search, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list movies", zap.Error(err), zap.String("search", search))
		return nil, err
	}

	total, err := s.repo.Movie.CountAll(ctx, search)
	if err != nil {
		s.log.Error("Failed to count movies", zap.Error(err))
		return nil, err
	}

	results := make([]response.MovieResponse, len(movies))
	for i, movie := range movies {
		results[i] = response.MovieToResponse(movie)
	}

	s.log.Debug("Movies listed",
		zap.Int("count", len(results)),
		zap.Int64("total", total),
		zap.String("search", search),
	)

	return response.NewPage(results, req.Page, req.Limit(), total), nil
}

func (s *movieService) UpdateMovie(ctx context.Context, movieID string, req *request.MovieUpdateRequest) (*response.MovieResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update movie validation failed", zap.Any("errors", errs))
		return nil, &utils.ValidationError{Fields: errs}
	}

	movie, err := s.findMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		movie.Title = *req.Title
	}
	if req.Genre != nil {
		movie.Genre = *req.Genre
	}
	if req.Description != nil {
		movie.Description = req.Description
	}
	if req.ReleaseYear != nil {
		movie.ReleaseYear = req.ReleaseYear
	}
	movie.UpdatedAt = time.Now()

	if err := s.repo.Movie.Update(ctx, movie); err != nil {
		s.log.Error("Failed to update movie", zap.Error(err), zap.String("movie_id", movieID))
		return nil, err
	}

	s.log.Info("Movie updated", zap.String("movie_id", movieID))

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) DeleteMovie(ctx context.Context, movieID string) error {
	movie, err := s.findMovie(ctx, movieID)
	if err != nil {
		return err
	}

	if err := s.repo.Movie.Delete(ctx, movie.ID); err != nil {
		s.log.Error("Failed to delete movie", zap.Error(err), zap.String("movie_id", movieID))
		return err
	}

	s.log.Info("Movie deleted", zap.String("movie_id", movieID))
	return nil
}

// findMovie normalizes malformed IDs and missing rows into ErrNotFound so a
// raw storage fault never reaches the client.
func (s *movieService) findMovie(ctx context.Context, movieID string) (*entity.Movie, error) {
	movieUUID, err := uuid.Parse(movieID)
	if err != nil {
		return nil, utils.NotFoundf("Movie not found.")
	}

	movie, err := s.repo.Movie.FindByID(ctx, movieUUID)
	if err != nil {
		s.log.Error("Failed to find movie", zap.Error(err), zap.String("movie_id", movieID))
		return nil, err
	}
	if movie == nil {
		return nil, utils.NotFoundf("Movie not found.")
	}

	return movie, nil
}

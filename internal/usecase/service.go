package usecase

import (
	"movie-reviews/internal/data/repository"
	"movie-reviews/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth   AuthService
	User   UserService
	Movie  MovieService
	Review ReviewService
}

func NewService(repo *repository.Repository, jwtManager *utils.JWTManager, log *zap.Logger) *Service {
	return &Service{
		Auth:   NewAuthService(repo, jwtManager, log),
		User:   NewUserService(repo.User, log),
		Movie:  NewMovieService(repo, log),
		Review: NewReviewService(repo, log),
	}
}

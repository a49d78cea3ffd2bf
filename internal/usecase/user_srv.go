package usecase

import (
	"context"
	"time"

	"movie-reviews/internal/data/repository"
	"movie-reviews/internal/dto/request"
	"movie-reviews/internal/dto/response"
	"movie-reviews/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.UserResponse, error)
	DeleteProfile(ctx context.Context, userID uuid.UUID) error
	ListUsers(ctx context.Context, req *request.PaginatedRequest) (*response.Page[response.UserResponse], error)
}

type userService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		log:      log.With(zap.String("service", "user")),
	}
}

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to get profile", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, err
	}
	if user == nil {
		return nil, utils.NotFoundf("User not found.")
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update profile validation failed", zap.Any("errors", errs))
		return nil, &utils.ValidationError{Fields: errs}
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find user for update", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, err
	}
	if user == nil {
		return nil, utils.NotFoundf("User not found.")
	}

	if req.Email != nil {
		// A changed email must stay unique
		existing, err := s.userRepo.FindByEmail(ctx, *req.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != user.ID {
			return nil, &utils.ValidationError{Fields: map[string]string{"email": "Email already registered"}}
		}
		user.Email = *req.Email
	}

	if req.Password != nil {
		hashed, err := utils.HashPassword(*req.Password)
		if err != nil {
			s.log.Error("Failed to hash password", zap.Error(err))
			return nil, err
		}
		user.PasswordHash = hashed
	}

	if req.FirstName != nil {
		user.FirstName = req.FirstName
	}
	if req.LastName != nil {
		user.LastName = req.LastName
	}

	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.log.Error("Failed to update profile", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, err
	}

	s.log.Info("Profile updated", zap.String("user_id", userID.String()))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) DeleteProfile(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find user for delete", zap.Error(err), zap.String("user_id", userID.String()))
		return err
	}
	if user == nil {
		return utils.NotFoundf("User not found.")
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		s.log.Error("Failed to delete user", zap.Error(err), zap.String("user_id", userID.String()))
		return err
	}

	s.log.Info("User account deleted", zap.String("user_id", userID.String()))
	return nil
}

func (s *userService) ListUsers(ctx context.Context, req *request.PaginatedRequest) (*response.Page[response.UserResponse], error) {
	users, err := s.userRepo.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list users", zap.Error(err))
		return nil, err
	}

	total, err := s.userRepo.CountAll(ctx)
	if err != nil {
		s.log.Error("Failed to count users", zap.Error(err))
		return nil, err
	}

	results := make([]response.UserResponse, len(users))
	for i, user := range users {
		results[i] = response.UserToResponse(user)
	}

	return response.NewPage(results, req.Page, req.Limit(), total), nil
}

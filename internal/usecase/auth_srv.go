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

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.TokenResponse, error)
	Refresh(ctx context.Context, req *request.RefreshRequest) (*response.TokenResponse, error)
}

type authService struct {
	repo       *repository.Repository
	jwtManager *utils.JWTManager
	log        *zap.Logger
}

func NewAuthService(repo *repository.Repository, jwtManager *utils.JWTManager, log *zap.Logger) AuthService {
	return &authService{
		repo:       repo,
		jwtManager: jwtManager,
		log:        log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, &utils.ValidationError{Fields: errs}
	}

	// 2. Check email already registered
	existingUser, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", req.Email))
		return nil, err
	}
	if existingUser != nil {
		return nil, &utils.ValidationError{Fields: map[string]string{"email": "Email already registered"}}
	}

	// 3. Check username already taken
	existingUser, err = s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		s.log.Error("Failed to check username", zap.Error(err), zap.String("username", req.Username))
		return nil, err
	}
	if existingUser != nil {
		return nil, &utils.ValidationError{Fields: map[string]string{"username": "Username already taken"}}
	}

	// 4. Hash password
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, err
	}

	// 5. Create user entity
	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         entity.RoleUser,
	}

	// 6. Save user
	if err := s.repo.User.Create(ctx, user); err != nil {
		s.log.Error("Failed to create user", zap.Error(err), zap.String("email", req.Email))
		return nil, err
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.TokenResponse, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, &utils.ValidationError{Fields: errs}
	}

	// 2. Find user by username, fall back to email
	user, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		s.log.Error("Failed to find user by username", zap.Error(err), zap.String("identifier", req.Username))
		return nil, err
	}

	if user == nil {
		user, err = s.repo.User.FindByEmail(ctx, req.Username)
		if err != nil {
			s.log.Error("Failed to find user by email", zap.Error(err), zap.String("identifier", req.Username))
			return nil, err
		}
	}

	if user == nil {
		s.log.Warn("User not found for login", zap.String("identifier", req.Username))
		return nil, utils.Unauthorizedf("Invalid credentials")
	}

	// 3. Check password
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		return nil, utils.Unauthorizedf("Invalid credentials")
	}

	// 4. Issue token pair
	tokens, err := s.issueTokens(user)
	if err != nil {
		s.log.Error("Failed to issue tokens", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, err
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	return tokens, nil
}

func (s *authService) Refresh(ctx context.Context, req *request.RefreshRequest) (*response.TokenResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &utils.ValidationError{Fields: errs}
	}

	claims, err := s.jwtManager.ValidateToken(req.Refresh, utils.TokenTypeRefresh)
	if err != nil {
		s.log.Warn("Refresh token rejected", zap.Error(err))
		return nil, err
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, utils.Unauthorizedf("Invalid or expired token")
	}

	// Re-read the user so a fresh access token carries the current role
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find user for refresh", zap.Error(err), zap.String("user_id", claims.UserID))
		return nil, err
	}
	if user == nil {
		return nil, utils.Unauthorizedf("Invalid or expired token")
	}

	access, err := s.jwtManager.CreateAccessToken(user.ID, string(user.Role))
	if err != nil {
		s.log.Error("Failed to create access token", zap.Error(err))
		return nil, err
	}

	return &response.TokenResponse{
		Access:  access,
		Refresh: req.Refresh,
	}, nil
}

func (s *authService) issueTokens(user *entity.User) (*response.TokenResponse, error) {
	access, err := s.jwtManager.CreateAccessToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}

	refresh, err := s.jwtManager.CreateRefreshToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &response.TokenResponse{
		Access:  access,
		Refresh: refresh,
	}, nil
}

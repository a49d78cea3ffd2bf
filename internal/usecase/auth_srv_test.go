package usecase

import (
	"context"
	"errors"
	"testing"

	"movie-reviews/internal/data/entity"
	"movie-reviews/internal/dto/request"
	"movie-reviews/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testJWTManager() *utils.JWTManager {
	return utils.NewJWTManager(utils.JWTConfig{
		Secret:              "test-secret",
		AccessExpiryMinutes: 30,
		RefreshExpiryHours:  24,
	})
}

func registerRequest() *request.RegisterRequest {
	return &request.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret99",
	}
}

func TestRegister(t *testing.T) {
	store := newFakeStore()
	service := NewAuthService(store.repos(), testJWTManager(), zap.NewNop())

	resp, err := service.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, "alice@example.com", resp.Email)
	assert.Equal(t, entity.RoleUser, resp.Role)

	require.Len(t, store.users, 1)
	for _, user := range store.users {
		assert.Equal(t, entity.RoleUser, user.Role)
		assert.NotEqual(t, "s3cret99", user.PasswordHash)
		assert.True(t, utils.CheckPasswordHash("s3cret99", user.PasswordHash))
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := newFakeStore()
	service := NewAuthService(store.repos(), testJWTManager(), zap.NewNop())

	_, err := service.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	dup := registerRequest()
	dup.Username = "alice2"

	_, err = service.Register(context.Background(), dup)
	require.Error(t, err)

	var validationErr *utils.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Contains(t, validationErr.Fields, "email")
	assert.Len(t, store.users, 1)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	store := newFakeStore()
	service := NewAuthService(store.repos(), testJWTManager(), zap.NewNop())

	_, err := service.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	dup := registerRequest()
	dup.Email = "other@example.com"

	_, err = service.Register(context.Background(), dup)
	require.Error(t, err)

	var validationErr *utils.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Contains(t, validationErr.Fields, "username")
}

func TestRegisterValidation(t *testing.T) {
	store := newFakeStore()
	service := NewAuthService(store.repos(), testJWTManager(), zap.NewNop())

	req := &request.RegisterRequest{
		Username: "ab",
		Email:    "not-an-email",
		Password: "123",
	}

	_, err := service.Register(context.Background(), req)
	require.Error(t, err)

	var validationErr *utils.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Contains(t, validationErr.Fields, "username")
	assert.Contains(t, validationErr.Fields, "email")
	assert.Contains(t, validationErr.Fields, "password")
	assert.Empty(t, store.users)
}

func TestLoginIssuesTokenPair(t *testing.T) {
	store := newFakeStore()
	jwtManager := testJWTManager()
	service := NewAuthService(store.repos(), jwtManager, zap.NewNop())

	_, err := service.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	tokens, err := service.Login(context.Background(), &request.LoginRequest{
		Username: "alice",
		Password: "s3cret99",
	})
	require.NoError(t, err)
	require.NotEmpty(t, tokens.Access)
	require.NotEmpty(t, tokens.Refresh)

	accessClaims, err := jwtManager.ValidateToken(tokens.Access, utils.TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, "user", accessClaims.Role)

	refreshClaims, err := jwtManager.ValidateToken(tokens.Refresh, utils.TokenTypeRefresh)
	require.NoError(t, err)
	assert.Equal(t, accessClaims.UserID, refreshClaims.UserID)
}

func TestLoginByEmail(t *testing.T) {
	store := newFakeStore()
	service := NewAuthService(store.repos(), testJWTManager(), zap.NewNop())

	_, err := service.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	tokens, err := service.Login(context.Background(), &request.LoginRequest{
		Username: "alice@example.com",
		Password: "s3cret99",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.Access)
}

func TestLoginInvalidCredentials(t *testing.T) {
	store := newFakeStore()
	service := NewAuthService(store.repos(), testJWTManager(), zap.NewNop())

	_, err := service.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	cases := []request.LoginRequest{
		{Username: "alice", Password: "wrong"},
		{Username: "nobody", Password: "s3cret99"},
	}

	for _, req := range cases {
		_, err := service.Login(context.Background(), &req)
		require.Error(t, err)
		assert.True(t, errors.Is(err, utils.ErrUnauthorized))
		// One message for both, so login probes can't tell a bad
		// password from a missing account.
		assert.Equal(t, "Invalid credentials", err.Error())
	}
}

func TestRefresh(t *testing.T) {
	store := newFakeStore()
	jwtManager := testJWTManager()
	service := NewAuthService(store.repos(), jwtManager, zap.NewNop())

	_, err := service.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	tokens, err := service.Login(context.Background(), &request.LoginRequest{
		Username: "alice",
		Password: "s3cret99",
	})
	require.NoError(t, err)

	refreshed, err := service.Refresh(context.Background(), &request.RefreshRequest{Refresh: tokens.Refresh})
	require.NoError(t, err)
	require.NotEmpty(t, refreshed.Access)
	assert.Equal(t, tokens.Refresh, refreshed.Refresh)

	_, err = jwtManager.ValidateToken(refreshed.Access, utils.TokenTypeAccess)
	require.NoError(t, err)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	store := newFakeStore()
	service := NewAuthService(store.repos(), testJWTManager(), zap.NewNop())

	_, err := service.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	tokens, err := service.Login(context.Background(), &request.LoginRequest{
		Username: "alice",
		Password: "s3cret99",
	})
	require.NoError(t, err)

	// An access token must not pass as a refresh token.
	_, err = service.Refresh(context.Background(), &request.RefreshRequest{Refresh: tokens.Access})
	require.Error(t, err)
	assert.True(t, errors.Is(err, utils.ErrUnauthorized))
}

func TestRefreshRejectsGarbage(t *testing.T) {
	store := newFakeStore()
	service := NewAuthService(store.repos(), testJWTManager(), zap.NewNop())

	_, err := service.Refresh(context.Background(), &request.RefreshRequest{Refresh: "not.a.token"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, utils.ErrUnauthorized))
}

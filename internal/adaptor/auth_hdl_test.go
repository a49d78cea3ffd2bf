package adaptor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"movie-reviews/internal/dto/request"
	"movie-reviews/internal/dto/response"
	"movie-reviews/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubAuthService struct {
	err error
}

func (s *stubAuthService) Register(_ context.Context, _ *request.RegisterRequest) (*response.UserResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &response.UserResponse{Username: "alice"}, nil
}

func (s *stubAuthService) Login(_ context.Context, _ *request.LoginRequest) (*response.TokenResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &response.TokenResponse{Access: "aaa", Refresh: "rrr"}, nil
}

func (s *stubAuthService) Refresh(_ context.Context, _ *request.RefreshRequest) (*response.TokenResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &response.TokenResponse{Access: "aaa2", Refresh: "rrr"}, nil
}

func authRouter(stub *stubAuthService) *chi.Mux {
	handler := NewAuthHandler(stub, zap.NewNop())

	router := chi.NewRouter()
	router.Post("/api/register", handler.Register)
	router.Post("/api/login", handler.Login)
	router.Post("/api/refresh", handler.Refresh)
	return router
}

func TestRegisterCreated(t *testing.T) {
	router := authRouter(&stubAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(`{"username":"alice","email":"alice@example.com","password":"s3cret99"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"message":"User created successfully"}`, rec.Body.String())
}

func TestRegisterValidationMap(t *testing.T) {
	router := authRouter(&stubAuthService{err: &utils.ValidationError{Fields: map[string]string{
		"email": "Email already registered",
	}}})

	req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(`{"username":"alice","email":"alice@example.com","password":"s3cret99"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"email":"Email already registered"}`, rec.Body.String())
}

func TestLoginReturnsTokenPair(t *testing.T) {
	router := authRouter(&stubAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"username":"alice","password":"s3cret99"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"access":"aaa","refresh":"rrr"}`, rec.Body.String())
}

func TestLoginUnauthorized(t *testing.T) {
	router := authRouter(&stubAuthService{err: utils.Unauthorizedf("Invalid credentials")})

	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"username":"alice","password":"wrong"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid credentials"}`, rec.Body.String())
}

func TestRefreshBadBody(t *testing.T) {
	router := authRouter(&stubAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/api/refresh", strings.NewReader(`{`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid request body"}`, rec.Body.String())
}

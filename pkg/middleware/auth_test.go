package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"movie-reviews/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestManager() *utils.JWTManager {
	return utils.NewJWTManager(utils.JWTConfig{
		Secret:              "test-secret",
		AccessExpiryMinutes: 30,
		RefreshExpiryHours:  24,
	})
}

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMissingToken(t *testing.T) {
	manager := newTestManager()
	called := false
	handler := Auth(manager, zap.NewNop())(okHandler(&called))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reviews", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Missing authorization token"}`, rec.Body.String())
	assert.False(t, called)
}

func TestAuthBadHeaderFormat(t *testing.T) {
	manager := newTestManager()
	called := false
	handler := Auth(manager, zap.NewNop())(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/api/reviews", nil)
	req.Header.Set("Authorization", "Basic abc123")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuthInvalidToken(t *testing.T) {
	manager := newTestManager()
	called := false
	handler := Auth(manager, zap.NewNop())(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/api/reviews", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid or expired token"}`, rec.Body.String())
	assert.False(t, called)
}

func TestAuthRejectsRefreshToken(t *testing.T) {
	manager := newTestManager()
	called := false
	handler := Auth(manager, zap.NewNop())(okHandler(&called))

	refresh, err := manager.CreateRefreshToken(uuid.New(), "user")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/reviews", nil)
	req.Header.Set("Authorization", "Bearer "+refresh)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuthSetsUserContext(t *testing.T) {
	manager := newTestManager()
	userID := uuid.New()

	var gotID uuid.UUID
	var gotRole string
	handler := Auth(manager, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = utils.GetUserIDFromContext(r.Context())
		gotRole, _ = utils.GetRoleFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	token, err := manager.CreateAccessToken(userID, "admin")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/reviews", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, gotID)
	assert.Equal(t, "admin", gotRole)
}

func TestAdminForbidsNonAdmin(t *testing.T) {
	called := false
	handler := Admin(zap.NewNop())(okHandler(&called))

	ctx := utils.SetUserContext(httptest.NewRequest(http.MethodDelete, "/api/movies/1", nil).Context(), uuid.New(), "user")
	req := httptest.NewRequest(http.MethodDelete, "/api/movies/1", nil).WithContext(ctx)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":"Admin access required"}`, rec.Body.String())
	assert.False(t, called)
}

func TestAdminAllowsAdmin(t *testing.T) {
	called := false
	handler := Admin(zap.NewNop())(okHandler(&called))

	ctx := utils.SetUserContext(httptest.NewRequest(http.MethodDelete, "/api/movies/1", nil).Context(), uuid.New(), "admin")
	req := httptest.NewRequest(http.MethodDelete, "/api/movies/1", nil).WithContext(ctx)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminWithoutAuthContext(t *testing.T) {
	called := false
	handler := Admin(zap.NewNop())(okHandler(&called))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/movies/1", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

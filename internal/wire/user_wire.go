package wire

import (
	"movie-reviews/internal/adaptor"
	"movie-reviews/pkg/middleware"
	"movie-reviews/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	jwtManager *utils.JWTManager,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(jwtManager, log))

		// Own profile
		r.Get("/api/users/me", userHandler.GetProfile)
		r.Put("/api/users/me", userHandler.UpdateProfile)
		r.Delete("/api/users/me", userHandler.DeleteProfile)
	})

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(jwtManager, log))
		r.Use(middleware.Admin(log))

		// GET /api/users - list all users (admin only)
		r.Get("/api/users", userHandler.ListUsers)
	})
}

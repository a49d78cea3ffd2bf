package wire

import (
	"movie-reviews/internal/adaptor"
	"movie-reviews/pkg/middleware"
	"movie-reviews/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReview(
	r chi.Router,
	reviewHandler *adaptor.ReviewHandler,
	jwtManager *utils.JWTManager,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (any authenticated user) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(jwtManager, log))

		// GET /api/reviews - generic listing with filters/sorting/pagination
		r.Get("/api/reviews", reviewHandler.ListReviews)

		// Movie-scoped listing and creation
		r.Get("/api/movies/{id}/reviews", reviewHandler.ListMovieReviews)
		r.Post("/api/movies/{id}/reviews", reviewHandler.CreateMovieReview)

		// PUT/DELETE /api/reviews/{id} - owner only, non-owners get 404
		r.Put("/api/reviews/{id}", reviewHandler.UpdateReview)
		r.Delete("/api/reviews/{id}", reviewHandler.DeleteReview)
	})
}

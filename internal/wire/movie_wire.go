package wire

import (
	"movie-reviews/internal/adaptor"
	"movie-reviews/pkg/middleware"
	"movie-reviews/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireMovie(
	r chi.Router,
	movieHandler *adaptor.MovieHandler,
	jwtManager *utils.JWTManager,
	log *zap.Logger,
) {
	// ==================== ADMIN ROUTES ====================
	// The whole movie catalog is admin-managed
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(jwtManager, log))
		r.Use(middleware.Admin(log))

		r.Get("/api/movies", movieHandler.ListMovies)
		r.Post("/api/movies", movieHandler.CreateMovie)
		r.Get("/api/movies/{id}", movieHandler.GetMovieByID)
		r.Put("/api/movies/{id}", movieHandler.UpdateMovie)
		r.Delete("/api/movies/{id}", movieHandler.DeleteMovie)
	})
}

package adaptor

import (
	"encoding/json"
	"net/http"
	"net/url"

	"movie-reviews/internal/dto/request"
	"movie-reviews/internal/usecase"
	"movie-reviews/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReviewHandler struct {
	service usecase.ReviewService
	log     *zap.Logger
}

func NewReviewHandler(service usecase.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log.With(zap.String("handler", "review")),
	}
}

// parseListRequest reads the listing query parameters. Rating is passed
// through raw so the service decides whether it aborts the request.
func parseListRequest(query url.Values) *request.ReviewListRequest {
	return &request.ReviewListRequest{
		MovieTitle: query.Get("movie_title"),
		Rating:     query.Get("rating"),
		Search:     query.Get("search"),
		Ordering:   query.Get("ordering"),
		PaginatedRequest: request.PaginatedRequest{
			Page:     utils.ParseInt(query.Get("page"), 1),
			PageSize: utils.ParseInt(query.Get("page_size"), request.DefaultPageSize),
		},
	}
}

// ListReviews handles GET /api/reviews (protected)
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	req := parseListRequest(r.URL.Query())

	reviews, err := h.service.ListReviews(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.log, err, "list reviews")
		return
	}

	utils.ResponseSuccess(w, reviews)
}

// ListMovieReviews handles GET /api/movies/{id}/reviews (protected)
func (h *ReviewHandler) ListMovieReviews(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "id")
	req := parseListRequest(r.URL.Query())

	reviews, err := h.service.ListMovieReviews(r.Context(), movieID, req)
	if err != nil {
		writeServiceError(w, h.log, err, "list movie reviews")
		return
	}

	utils.ResponseSuccess(w, reviews)
}

// CreateMovieReview handles POST /api/movies/{id}/reviews (protected)
func (h *ReviewHandler) CreateMovieReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	movieID := chi.URLParam(r, "id")

	var req request.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body")
		return
	}

	review, err := h.service.CreateMovieReview(r.Context(), movieID, userID, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create review")
		return
	}

	utils.ResponseCreated(w, review)
}

// UpdateReview handles PUT /api/reviews/{id} (owner only)
func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	reviewID := chi.URLParam(r, "id")

	var req request.UpdateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body")
		return
	}

	review, err := h.service.UpdateReview(r.Context(), reviewID, userID, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "update review")
		return
	}

	utils.ResponseSuccess(w, review)
}

// DeleteReview handles DELETE /api/reviews/{id} (owner only)
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	reviewID := chi.URLParam(r, "id")

	if err := h.service.DeleteReview(r.Context(), reviewID, userID); err != nil {
		writeServiceError(w, h.log, err, "delete review")
		return
	}

	utils.ResponseMessage(w, http.StatusOK, "Review deleted successfully")
}

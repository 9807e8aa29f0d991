package adaptor

import (
	"errors"
	"net/http"

	"movie-reviews/internal/dto/request"
	"movie-reviews/internal/usecase"
	"movie-reviews/pkg/utils"

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

// GetMovieReviews handles GET /reviews/movie/{movieId}
func (h *ReviewHandler) GetMovieReviews(w http.ResponseWriter, r *http.Request) {
	movieID, ok := pathID(w, r, "movieId")
	if !ok {
		return
	}

	reviews, err := h.service.GetMovieReviews(r.Context(), movieID)
	if err != nil {
		h.handleServiceError(w, err, "get movie reviews")
		return
	}

	utils.ResponseSuccess(w, reviews)
}

// GetMovieAverageRating handles GET /reviews/movie/{movieId}/rating
func (h *ReviewHandler) GetMovieAverageRating(w http.ResponseWriter, r *http.Request) {
	movieID, ok := pathID(w, r, "movieId")
	if !ok {
		return
	}

	rating, err := h.service.GetMovieAverageRating(r.Context(), movieID)
	if err != nil {
		h.handleServiceError(w, err, "get movie average rating")
		return
	}

	utils.ResponseSuccess(w, rating)
}

// GetUserReviews handles GET /reviews/user/me
func (h *ReviewHandler) GetUserReviews(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	reviews, err := h.service.GetUserReviews(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, err, "get user reviews")
		return
	}

	utils.ResponseSuccess(w, reviews)
}

// GetReviewByID handles GET /reviews/{id}
func (h *ReviewHandler) GetReviewByID(w http.ResponseWriter, r *http.Request) {
	reviewID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	review, err := h.service.GetReviewByID(r.Context(), reviewID)
	if err != nil {
		h.handleServiceError(w, err, "get review")
		return
	}

	utils.ResponseSuccess(w, review)
}

// CreateReview handles POST /reviews/movie/{movieId}
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	movieID, ok := pathID(w, r, "movieId")
	if !ok {
		return
	}

	var req request.CreateReviewRequest
	if !decodeJSON(w, r, &req) || !validateRequest(w, req) {
		return
	}

	review, err := h.service.CreateReview(r.Context(), userID, movieID, &req)
	if err != nil {
		h.handleServiceError(w, err, "create review")
		return
	}

	utils.ResponseCreated(w, review)
}

// EditReview handles PATCH /reviews/{id} (owner only)
func (h *ReviewHandler) EditReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	reviewID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req request.EditReviewRequest
	if !decodeOptionalJSON(w, r, &req) || !validateRequest(w, req) {
		return
	}

	review, err := h.service.EditReview(r.Context(), userID, reviewID, &req)
	if err != nil {
		h.handleServiceError(w, err, "edit review")
		return
	}

	utils.ResponseSuccess(w, review)
}

// DeleteReview handles DELETE /reviews/{id} (owner only)
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	reviewID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteReview(r.Context(), userID, reviewID); err != nil {
		h.handleServiceError(w, err, "delete review")
		return
	}

	utils.ResponseNoContent(w)
}

// handleServiceError maps review domain errors to HTTP statuses
func (h *ReviewHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrMovieNotFound),
		errors.Is(err, usecase.ErrReviewNotFound):
		h.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrAlreadyReviewed):
		h.log.Warn(operation+" failed - already reviewed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseForbidden(w, err.Error())

	case errors.Is(err, usecase.ErrAccessDenied):
		h.log.Warn(operation+" failed - access denied",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseForbidden(w, err.Error())

	case writeValidationError(w, err):
		h.log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

package adaptor

import (
	"net/http"

	"cinelog/internal/dto/request"
	"cinelog/internal/usecase"
	"cinelog/pkg/utils"

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

// SaveReview handles POST /api/reviews (protected)
func (h *ReviewHandler) SaveReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req request.SaveReviewRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	review, err := h.service.SaveReview(r.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(w, err, "save review")
		return
	}

	utils.ResponseCreated(w, "Review saved", review)
}

// GetUserReviews handles GET /api/user/reviews (protected). Without a page
// query parameter every review is returned.
func (h *ReviewHandler) GetUserReviews(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	req, paged := request.PageFromQuery(r.URL.Query())
	if !paged {
		reviews, err := h.service.GetUserReviews(r.Context(), userID)
		if err != nil {
			h.handleServiceError(w, err, "get user reviews")
			return
		}
		utils.ResponseSuccess(w, "success", reviews)
		return
	}

	page, err := h.service.GetUserReviewsPage(r.Context(), userID, req)
	if err != nil {
		h.handleServiceError(w, err, "get user reviews")
		return
	}

	utils.ResponseSuccess(w, "success", page)
}

// GetReviewByMovieID handles GET /api/reviews/movie/{movieID} (protected)
func (h *ReviewHandler) GetReviewByMovieID(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	movieID, ok := movieIDParam(w, r)
	if !ok {
		return
	}

	review, err := h.service.GetReviewByMovieID(r.Context(), userID, movieID)
	if err != nil {
		h.handleServiceError(w, err, "get review by movie")
		return
	}

	utils.ResponseSuccess(w, "success", review)
}

// UpdateReview handles PUT /api/reviews/{id} (protected)
func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	reviewID, ok := reviewIDParam(w, r)
	if !ok {
		return
	}

	var req request.UpdateReviewRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	review, err := h.service.UpdateReview(r.Context(), userID, reviewID, &req)
	if err != nil {
		h.handleServiceError(w, err, "update review")
		return
	}

	utils.ResponseSuccess(w, "Review updated", review)
}

// DeleteReview handles DELETE /api/reviews/{id} (protected)
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	reviewID, ok := reviewIDParam(w, r)
	if !ok {
		return
	}

	deleted, err := h.service.DeleteReview(r.Context(), userID, reviewID)
	if err != nil {
		h.handleServiceError(w, err, "delete review")
		return
	}
	if !deleted {
		utils.ResponseNotFound(w, "Review not found")
		return
	}

	utils.ResponseSuccess(w, "Review deleted", nil)
}

// GetMovieReviewStats handles GET /api/movies/{movieID}/review-stats (public)
func (h *ReviewHandler) GetMovieReviewStats(w http.ResponseWriter, r *http.Request) {
	movieID, ok := movieIDParam(w, r)
	if !ok {
		return
	}

	stats, err := h.service.GetMovieReviewStats(r.Context(), movieID)
	if err != nil {
		h.handleServiceError(w, err, "get movie review stats")
		return
	}

	utils.ResponseSuccess(w, "success", stats)
}

func (h *ReviewHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	respondServiceError(w, h.log, err, operation)
}

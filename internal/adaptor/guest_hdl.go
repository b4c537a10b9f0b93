package adaptor

import (
	"net/http"

	"cinelog/internal/dto/request"
	"cinelog/internal/usecase"
	"cinelog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// GuestHandler exposes the anonymous store. The guest id comes from the
// Guest middleware.
type GuestHandler struct {
	service usecase.GuestService
	log     *zap.Logger
}

func NewGuestHandler(service usecase.GuestService, log *zap.Logger) *GuestHandler {
	return &GuestHandler{
		service: service,
		log:     log.With(zap.String("handler", "guest")),
	}
}

// GetReviews handles GET /api/guest/reviews
func (h *GuestHandler) GetReviews(w http.ResponseWriter, r *http.Request) {
	guestID, ok := requireGuest(w, r)
	if !ok {
		return
	}

	utils.ResponseSuccess(w, "success", h.service.GetReviews(guestID))
}

// SaveReview handles POST /api/guest/reviews
func (h *GuestHandler) SaveReview(w http.ResponseWriter, r *http.Request) {
	guestID, ok := requireGuest(w, r)
	if !ok {
		return
	}

	var req request.SaveReviewRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	review, err := h.service.SaveReview(guestID, &req)
	if err != nil {
		h.handleServiceError(w, err, "save guest review")
		return
	}

	utils.ResponseCreated(w, "Review saved", review)
}

// GetReviewByMovieID handles GET /api/guest/reviews/movie/{movieID}
func (h *GuestHandler) GetReviewByMovieID(w http.ResponseWriter, r *http.Request) {
	guestID, ok := requireGuest(w, r)
	if !ok {
		return
	}

	movieID, ok := movieIDParam(w, r)
	if !ok {
		return
	}

	review, err := h.service.GetReviewByMovieID(guestID, movieID)
	if err != nil {
		h.handleServiceError(w, err, "get guest review by movie")
		return
	}

	utils.ResponseSuccess(w, "success", review)
}

// UpdateReview handles PUT /api/guest/reviews/{id}
func (h *GuestHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	guestID, ok := requireGuest(w, r)
	if !ok {
		return
	}

	reviewID := chi.URLParam(r, "id")
	if reviewID == "" {
		utils.ResponseBadRequest(w, "Review ID is required", nil)
		return
	}

	var req request.UpdateReviewRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	review, err := h.service.UpdateReview(guestID, reviewID, &req)
	if err != nil {
		h.handleServiceError(w, err, "update guest review")
		return
	}

	utils.ResponseSuccess(w, "Review updated", review)
}

// DeleteReview handles DELETE /api/guest/reviews/{id}
func (h *GuestHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	guestID, ok := requireGuest(w, r)
	if !ok {
		return
	}

	reviewID := chi.URLParam(r, "id")
	if reviewID == "" {
		utils.ResponseBadRequest(w, "Review ID is required", nil)
		return
	}

	if !h.service.DeleteReview(guestID, reviewID) {
		utils.ResponseNotFound(w, "Review not found")
		return
	}

	utils.ResponseSuccess(w, "Review deleted", nil)
}

// GetWatchlist handles GET /api/guest/watchlist
func (h *GuestHandler) GetWatchlist(w http.ResponseWriter, r *http.Request) {
	guestID, ok := requireGuest(w, r)
	if !ok {
		return
	}

	utils.ResponseSuccess(w, "success", h.service.GetWatchlist(guestID))
}

// AddToWatchlist handles POST /api/guest/watchlist. A title that is already
// listed is reported with 200 and left untouched.
func (h *GuestHandler) AddToWatchlist(w http.ResponseWriter, r *http.Request) {
	guestID, ok := requireGuest(w, r)
	if !ok {
		return
	}

	var req request.AddToWatchlistRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	added, err := h.service.AddToWatchlist(guestID, &req)
	if err != nil {
		h.handleServiceError(w, err, "add to guest watchlist")
		return
	}

	result := map[string]any{"movie_id": req.MovieID, "added": added}
	if !added {
		utils.ResponseSuccess(w, "Already in watchlist", result)
		return
	}
	utils.ResponseCreated(w, "Added to watchlist", result)
}

// RemoveFromWatchlist handles DELETE /api/guest/watchlist/{movieID}
func (h *GuestHandler) RemoveFromWatchlist(w http.ResponseWriter, r *http.Request) {
	guestID, ok := requireGuest(w, r)
	if !ok {
		return
	}

	movieID, ok := movieIDParam(w, r)
	if !ok {
		return
	}

	if !h.service.RemoveFromWatchlist(guestID, movieID) {
		utils.ResponseNotFound(w, "Movie is not in the watchlist")
		return
	}

	utils.ResponseSuccess(w, "Removed from watchlist", nil)
}

// Clear handles DELETE /api/guest
func (h *GuestHandler) Clear(w http.ResponseWriter, r *http.Request) {
	guestID, ok := requireGuest(w, r)
	if !ok {
		return
	}

	h.service.Clear(guestID)
	utils.ResponseSuccess(w, "Guest data cleared", nil)
}

func (h *GuestHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	respondServiceError(w, h.log, err, operation)
}

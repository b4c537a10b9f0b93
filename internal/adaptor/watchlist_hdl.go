package adaptor

import (
	"net/http"

	"cinelog/internal/dto/request"
	"cinelog/internal/dto/response"
	"cinelog/internal/usecase"
	"cinelog/pkg/utils"

	"go.uber.org/zap"
)

type WatchlistHandler struct {
	service usecase.WatchlistService
	guest   usecase.GuestService
	log     *zap.Logger
}

func NewWatchlistHandler(service usecase.WatchlistService, guest usecase.GuestService, log *zap.Logger) *WatchlistHandler {
	return &WatchlistHandler{
		service: service,
		guest:   guest,
		log:     log.With(zap.String("handler", "watchlist")),
	}
}

// GetWatchlist handles GET /api/watchlist (protected)
func (h *WatchlistHandler) GetWatchlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	items, err := h.service.GetWatchlist(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, err, "get watchlist")
		return
	}

	utils.ResponseSuccess(w, "success", items)
}

// AddToWatchlist handles POST /api/watchlist (protected)
func (h *WatchlistHandler) AddToWatchlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req request.AddToWatchlistRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	item, err := h.service.AddToWatchlist(r.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(w, err, "add to watchlist")
		return
	}

	utils.ResponseCreated(w, "Added to watchlist", item)
}

// RemoveFromWatchlist handles DELETE /api/watchlist/{movieID} (protected)
func (h *WatchlistHandler) RemoveFromWatchlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	movieID, ok := movieIDParam(w, r)
	if !ok {
		return
	}

	removed, err := h.service.RemoveFromWatchlist(r.Context(), userID, movieID)
	if err != nil {
		h.handleServiceError(w, err, "remove from watchlist")
		return
	}
	if !removed {
		utils.ResponseNotFound(w, "Movie is not in the watchlist")
		return
	}

	utils.ResponseSuccess(w, "Removed from watchlist", nil)
}

// GetStatus handles GET /api/watchlist/{movieID}/status. Signed-in callers
// are answered from their account; everyone else from their guest store.
func (h *WatchlistHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	movieID, ok := movieIDParam(w, r)
	if !ok {
		return
	}

	status := response.WatchlistStatusResponse{MovieID: movieID}

	if userID, signedIn := utils.GetUserIDFromContext(r.Context()); signedIn {
		listed, err := h.service.IsInWatchlist(r.Context(), userID, movieID)
		if err != nil {
			h.handleServiceError(w, err, "check watchlist")
			return
		}
		status.InWatchlist = listed
		status.Source = response.SourceAccount
		utils.ResponseSuccess(w, "success", status)
		return
	}

	guestID, ok := requireGuest(w, r)
	if !ok {
		return
	}
	status.InWatchlist = h.guest.IsInWatchlist(guestID, movieID)
	status.Source = response.SourceGuest

	utils.ResponseSuccess(w, "success", status)
}

func (h *WatchlistHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	respondServiceError(w, h.log, err, operation)
}

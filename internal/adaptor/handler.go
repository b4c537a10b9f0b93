package adaptor

import (
	"errors"
	"net/http"

	"cinelog/internal/usecase"
	"cinelog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	Auth      *AuthHandler
	User      *UserHandler
	Review    *ReviewHandler
	Watchlist *WatchlistHandler
	Guest     *GuestHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(service.Auth, log),
		User:      NewUserHandler(service.User, log),
		Review:    NewReviewHandler(service.Review, log),
		Watchlist: NewWatchlistHandler(service.Watchlist, service.Guest, log),
		Guest:     NewGuestHandler(service.Guest, log),
	}
}

// respondServiceError maps usecase sentinel errors onto HTTP statuses.
// Anything unrecognised is logged and hidden behind a generic 500.
func respondServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrValidation), errors.Is(err, usecase.ErrInvalidInput):
		log.Debug(operation+" rejected", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrInvalidCode):
		log.Debug(operation+" rejected", zap.Error(err))
		utils.ResponseUnauthorized(w, usecase.ErrInvalidCode.Error())

	case errors.Is(err, usecase.ErrUnauthenticated):
		utils.ResponseUnauthorized(w, "Authentication required")

	case errors.Is(err, usecase.ErrInactive):
		log.Warn(operation+" refused for inactive account", zap.Error(err))
		utils.ResponseForbidden(w, usecase.ErrInactive.Error())

	case errors.Is(err, usecase.ErrNotFound):
		utils.ResponseNotFound(w, "Not found")

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// decodeAndValidate reads a JSON body into dst and writes a 400 when it is
// malformed or fails its validate tags.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := utils.DecodeJSON(r, dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}

	if validationErrors := utils.ValidateStruct(dst); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return false
	}

	return true
}

func movieIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	movieID, ok := utils.ParseMovieID(chi.URLParam(r, "movieID"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid movie ID", nil)
		return 0, false
	}
	return movieID, true
}

func reviewIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid review ID", nil)
		return uuid.Nil, false
	}
	return id, true
}

func requireUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return uuid.Nil, false
	}
	return userID, true
}

func requireGuest(w http.ResponseWriter, r *http.Request) (string, bool) {
	guestID, ok := utils.GetGuestIDFromContext(r.Context())
	if !ok {
		utils.ResponseBadRequest(w, "Guest ID is required", nil)
		return "", false
	}
	return guestID, true
}

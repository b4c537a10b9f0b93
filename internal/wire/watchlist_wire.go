package wire

import (
	"cinelog/internal/adaptor"
	"cinelog/internal/data/repository"
	"cinelog/pkg/middleware"
	"cinelog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireWatchlist(
	r chi.Router,
	watchlistHandler *adaptor.WatchlistHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== MIXED ROUTES ====================
	// GET /api/watchlist/{movieID}/status - Account store when signed in, guest store otherwise
	r.With(
		middleware.OptionalSession(repo.Session, log),
		middleware.Guest(config.Guest.CookieName, config.Guest.CookieDays),
	).Get("/api/watchlist/{movieID}/status", watchlistHandler.GetStatus)

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		r.Get("/api/watchlist", watchlistHandler.GetWatchlist)
		r.Post("/api/watchlist", watchlistHandler.AddToWatchlist)
		r.Delete("/api/watchlist/{movieID}", watchlistHandler.RemoveFromWatchlist)
	})
}

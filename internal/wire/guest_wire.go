package wire

import (
	"cinelog/internal/adaptor"
	"cinelog/internal/data/repository"
	"cinelog/pkg/middleware"
	"cinelog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireGuest(
	r chi.Router,
	guestHandler *adaptor.GuestHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== GUEST ROUTES (no account) ====================
	// Identified by the guest cookie or X-Guest-ID header
	r.With(middleware.Guest(config.Guest.CookieName, config.Guest.CookieDays)).Route("/api/guest", func(r chi.Router) {
		r.Delete("/", guestHandler.Clear)

		r.Get("/reviews", guestHandler.GetReviews)
		r.Post("/reviews", guestHandler.SaveReview)
		r.Get("/reviews/movie/{movieID}", guestHandler.GetReviewByMovieID)
		r.Put("/reviews/{id}", guestHandler.UpdateReview)
		r.Delete("/reviews/{id}", guestHandler.DeleteReview)

		r.Get("/watchlist", guestHandler.GetWatchlist)
		r.Post("/watchlist", guestHandler.AddToWatchlist)
		r.Delete("/watchlist/{movieID}", guestHandler.RemoveFromWatchlist)
	})
}

package wire

import (
	"cinelog/internal/adaptor"
	"cinelog/internal/data/repository"
	"cinelog/pkg/middleware"
	"cinelog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReview(
	r chi.Router,
	reviewHandler *adaptor.ReviewHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/movies/{movieID}/review-stats - Aggregate rating across all accounts
	r.Get("/api/movies/{movieID}/review-stats", reviewHandler.GetMovieReviewStats)

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		// POST /api/reviews - Create or replace the caller's review of a title
		r.Post("/api/reviews", reviewHandler.SaveReview)

		// GET /api/user/reviews - Caller's reviews, newest first (?page=&per_page= optional)
		r.Get("/api/user/reviews", reviewHandler.GetUserReviews)

		// GET /api/reviews/movie/{movieID} - Caller's review of one title
		r.Get("/api/reviews/movie/{movieID}", reviewHandler.GetReviewByMovieID)

		// PUT /api/reviews/{id} - Update review (owner only)
		r.Put("/api/reviews/{id}", reviewHandler.UpdateReview)

		// DELETE /api/reviews/{id} - Delete review (owner only)
		r.Delete("/api/reviews/{id}", reviewHandler.DeleteReview)
	})
}

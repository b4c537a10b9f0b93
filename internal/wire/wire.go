// internal/wire/wire.go
package wire

import (
	"net/http"

	"cinelog/internal/adaptor"
	"cinelog/internal/data/repository"
	"cinelog/internal/localstore"
	"cinelog/internal/usecase"
	"cinelog/pkg/mailer"
	"cinelog/pkg/middleware"
	"cinelog/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// App holds the wired router.
type App struct {
	Router *chi.Mux
}

// Wiring builds services and handlers and mounts every route.
func Wiring(
	repo *repository.Repository,
	guestStore localstore.Backend,
	mail mailer.Mailer,
	config *utils.Config,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, guestStore, mail, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RealIP)
	r.Use(middleware.Metrics)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.HTTP.CORSAllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK")) //nolint:errcheck
	})
	r.Handle("/metrics", promhttp.Handler())

	// Everything under /api is rate limited per client IP
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(config.HTTP.RateLimitRequests, config.HTTP.RateLimitWindow))

		wireAuth(r, handler.Auth, repo, config, logger)
		wireUser(r, handler.User, repo, config, logger)
		wireReview(r, handler.Review, repo, config, logger)
		wireWatchlist(r, handler.Watchlist, repo, config, logger)
		wireGuest(r, handler.Guest, repo, config, logger)
	})

	return r
}

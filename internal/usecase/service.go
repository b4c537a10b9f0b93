package usecase

import (
	"cinelog/internal/data/repository"
	"cinelog/internal/localstore"
	"cinelog/pkg/mailer"
	"cinelog/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth      AuthService
	User      UserService
	Review    ReviewService
	Watchlist WatchlistService
	Guest     GuestService
}

func NewService(
	repo *repository.Repository,
	guestStore localstore.Backend,
	mail mailer.Mailer,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	return &Service{
		Auth:      NewAuthService(repo, mail, config, log),
		User:      NewUserService(repo, log),
		Review:    NewReviewService(repo.Review, log),
		Watchlist: NewWatchlistService(repo.Watchlist, log),
		Guest:     NewGuestService(guestStore, log),
	}
}

package usecase

import (
	"context"
	"fmt"
	"time"

	"cinelog/internal/data/entity"
	"cinelog/internal/data/repository"
	"cinelog/internal/dto/request"
	"cinelog/internal/dto/response"
	"cinelog/pkg/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type WatchlistService interface {
	AddToWatchlist(ctx context.Context, userID uuid.UUID, req *request.AddToWatchlistRequest) (*response.WatchlistItemResponse, error)
	RemoveFromWatchlist(ctx context.Context, userID uuid.UUID, movieID int64) (bool, error)
	GetWatchlist(ctx context.Context, userID uuid.UUID) ([]response.WatchlistItemResponse, error)
	IsInWatchlist(ctx context.Context, userID uuid.UUID, movieID int64) (bool, error)
}

type watchlistService struct {
	watchlistRepo repository.WatchlistRepository
	log           *zap.Logger
	now           func() time.Time
}

func NewWatchlistService(watchlistRepo repository.WatchlistRepository, log *zap.Logger) WatchlistService {
	return &watchlistService{
		watchlistRepo: watchlistRepo,
		log:           log.With(zap.String("service", "watchlist")),
		now:           time.Now,
	}
}

// AddToWatchlist lists the title for the account. Adding a listed title again
// refreshes its display fields and keeps the original AddedAt.
func (s *watchlistService) AddToWatchlist(ctx context.Context, userID uuid.UUID, req *request.AddToWatchlistRequest) (*response.WatchlistItemResponse, error) {
	if err := requireAccount(userID); err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	item := &entity.WatchlistItem{
		ID:          uuid.New(),
		UserID:      userID,
		MovieID:     req.MovieID,
		Title:       req.Title,
		PosterPath:  req.PosterPath,
		ReleaseDate: req.ReleaseDate,
		MediaType:   mediaTypeOrDefault(req.MediaType),
		AddedAt:     s.now(),
	}

	saved, err := s.watchlistRepo.Upsert(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("add to watchlist: %w", err)
	}

	metrics.WatchlistWrites.WithLabelValues(metrics.StoreAccount, "add").Inc()
	s.log.Info("Added to watchlist",
		zap.String("user_id", userID.String()),
		zap.Int64("movie_id", saved.MovieID),
	)

	resp := response.WatchlistItemToResponse(saved)
	return &resp, nil
}

func (s *watchlistService) RemoveFromWatchlist(ctx context.Context, userID uuid.UUID, movieID int64) (bool, error) {
	if err := requireAccount(userID); err != nil {
		return false, err
	}

	removed, err := s.watchlistRepo.DeleteByUserAndMovie(ctx, userID, movieID)
	if err != nil {
		return false, fmt.Errorf("remove from watchlist: %w", err)
	}

	if removed {
		metrics.WatchlistWrites.WithLabelValues(metrics.StoreAccount, "remove").Inc()
	}
	return removed, nil
}

func (s *watchlistService) GetWatchlist(ctx context.Context, userID uuid.UUID) ([]response.WatchlistItemResponse, error) {
	if err := requireAccount(userID); err != nil {
		return nil, err
	}

	items, err := s.watchlistRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get watchlist: %w", err)
	}

	out := make([]response.WatchlistItemResponse, len(items))
	for i, item := range items {
		out[i] = response.WatchlistItemToResponse(item)
	}
	return out, nil
}

func (s *watchlistService) IsInWatchlist(ctx context.Context, userID uuid.UUID, movieID int64) (bool, error) {
	if err := requireAccount(userID); err != nil {
		return false, err
	}

	exists, err := s.watchlistRepo.Exists(ctx, userID, movieID)
	if err != nil {
		return false, fmt.Errorf("check watchlist: %w", err)
	}
	return exists, nil
}

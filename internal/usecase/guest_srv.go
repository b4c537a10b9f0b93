package usecase

import (
	"fmt"

	"cinelog/internal/dto/request"
	"cinelog/internal/dto/response"
	"cinelog/internal/localstore"
	"cinelog/pkg/metrics"

	"go.uber.org/zap"
)

// GuestService serves the anonymous store to callers identified only by
// their guest id. Storage failures never surface here; see localstore.
type GuestService interface {
	SaveReview(guestID string, req *request.SaveReviewRequest) (*response.ReviewResponse, error)
	UpdateReview(guestID, reviewID string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error)
	DeleteReview(guestID, reviewID string) bool
	GetReviews(guestID string) []response.ReviewResponse
	GetReviewByMovieID(guestID string, movieID int64) (*response.ReviewResponse, error)

	AddToWatchlist(guestID string, req *request.AddToWatchlistRequest) (bool, error)
	RemoveFromWatchlist(guestID string, movieID int64) bool
	IsInWatchlist(guestID string, movieID int64) bool
	GetWatchlist(guestID string) []response.WatchlistItemResponse

	Clear(guestID string)
}

type guestService struct {
	backend localstore.Backend
	log     *zap.Logger
}

func NewGuestService(backend localstore.Backend, log *zap.Logger) GuestService {
	return &guestService{
		backend: backend,
		log:     log.With(zap.String("service", "guest")),
	}
}

func (s *guestService) store(guestID string) *localstore.Store {
	return localstore.New(s.backend.Namespace(guestID), s.log)
}

func reviewInputOf(movieID int64, c *request.ReviewContent) localstore.ReviewInput {
	return localstore.ReviewInput{
		MovieID:     movieID,
		Title:       c.Title,
		PosterPath:  c.PosterPath,
		ReleaseDate: c.ReleaseDate,
		MediaType:   mediaTypeOrDefault(c.MediaType),
		SubRatings:  subRatingsOf(c),
		Comment:     c.Comment,
	}
}

func (s *guestService) SaveReview(guestID string, req *request.SaveReviewRequest) (*response.ReviewResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	review := s.store(guestID).SaveReview(reviewInputOf(req.MovieID, &req.ReviewContent))
	metrics.ReviewWrites.WithLabelValues(metrics.StoreGuest, "save").Inc()

	resp := response.LocalReviewToResponse(&review)
	return &resp, nil
}

// UpdateReview keeps the review attached to its original movie.
func (s *guestService) UpdateReview(guestID, reviewID string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	updated := s.store(guestID).UpdateReview(reviewID, reviewInputOf(0, &req.ReviewContent))
	if updated == nil {
		return nil, fmt.Errorf("review %s: %w", reviewID, ErrNotFound)
	}
	metrics.ReviewWrites.WithLabelValues(metrics.StoreGuest, "update").Inc()

	resp := response.LocalReviewToResponse(updated)
	return &resp, nil
}

func (s *guestService) DeleteReview(guestID, reviewID string) bool {
	deleted := s.store(guestID).DeleteReview(reviewID)
	if deleted {
		metrics.ReviewWrites.WithLabelValues(metrics.StoreGuest, "delete").Inc()
	}
	return deleted
}

func (s *guestService) GetReviews(guestID string) []response.ReviewResponse {
	reviews := s.store(guestID).GetReviews()

	out := make([]response.ReviewResponse, len(reviews))
	for i := range reviews {
		out[i] = response.LocalReviewToResponse(&reviews[i])
	}
	return out
}

func (s *guestService) GetReviewByMovieID(guestID string, movieID int64) (*response.ReviewResponse, error) {
	review := s.store(guestID).GetReviewByMovieID(movieID)
	if review == nil {
		return nil, fmt.Errorf("review for movie %d: %w", movieID, ErrNotFound)
	}

	resp := response.LocalReviewToResponse(review)
	return &resp, nil
}

// AddToWatchlist reports false when the movie was already listed.
func (s *guestService) AddToWatchlist(guestID string, req *request.AddToWatchlistRequest) (bool, error) {
	if err := validateRequest(req); err != nil {
		return false, err
	}

	added := s.store(guestID).AddToWatchlist(localstore.WatchlistItem{
		MovieID:     req.MovieID,
		Title:       req.Title,
		PosterPath:  req.PosterPath,
		ReleaseDate: req.ReleaseDate,
		MediaType:   mediaTypeOrDefault(req.MediaType),
	})
	if added {
		metrics.WatchlistWrites.WithLabelValues(metrics.StoreGuest, "add").Inc()
	}
	return added, nil
}

func (s *guestService) RemoveFromWatchlist(guestID string, movieID int64) bool {
	removed := s.store(guestID).RemoveFromWatchlist(movieID)
	if removed {
		metrics.WatchlistWrites.WithLabelValues(metrics.StoreGuest, "remove").Inc()
	}
	return removed
}

func (s *guestService) IsInWatchlist(guestID string, movieID int64) bool {
	return s.store(guestID).IsInWatchlist(movieID)
}

func (s *guestService) GetWatchlist(guestID string) []response.WatchlistItemResponse {
	items := s.store(guestID).GetWatchlist()

	out := make([]response.WatchlistItemResponse, len(items))
	for i := range items {
		out[i] = response.LocalWatchlistItemToResponse(&items[i])
	}
	return out
}

func (s *guestService) Clear(guestID string) {
	s.store(guestID).Clear()
	s.log.Debug("Guest data cleared")
}

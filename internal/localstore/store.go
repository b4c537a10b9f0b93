// Package localstore keeps reviews and watchlist entries for people who are
// not signed in. Each guest gets a private namespace of a textual key/value
// Storage, and every collection is a JSON array under a fixed key.
package localstore

import (
	"sort"
	"time"

	"cinelog/internal/data/entity"
	"cinelog/internal/rating"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	watchlistKey = "cinelog_watchlist"
	reviewsKey   = "cinelog_reviews"
)

type WatchlistItem struct {
	MovieID     int64            `json:"movie_id"`
	Title       string           `json:"title"`
	PosterPath  *string          `json:"poster_path,omitempty"`
	ReleaseDate *string          `json:"release_date,omitempty"`
	MediaType   entity.MediaType `json:"media_type"`
	AddedAt     time.Time        `json:"added_at"`
}

type Review struct {
	ID          string           `json:"id"`
	MovieID     int64            `json:"movie_id"`
	Title       string           `json:"title"`
	PosterPath  *string          `json:"poster_path,omitempty"`
	ReleaseDate *string          `json:"release_date,omitempty"`
	MediaType   entity.MediaType `json:"media_type"`
	rating.SubRatings
	Overall           int       `json:"overall"`
	OverallStarRating float64   `json:"overall_star_rating"`
	Comment           *string   `json:"comment,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ReviewInput is what a caller supplies; derived ratings are never taken
// from it.
type ReviewInput struct {
	MovieID     int64
	Title       string
	PosterPath  *string
	ReleaseDate *string
	MediaType   entity.MediaType
	rating.SubRatings
	Comment *string
}

type Store struct {
	storage Storage
	log     *zap.Logger
	now     func() time.Time
}

func New(storage Storage, log *zap.Logger) *Store {
	return &Store{
		storage: storage,
		log:     log.With(zap.String("store", "local")),
		now:     time.Now,
	}
}

// AddToWatchlist appends the item unless its movie is already listed, in
// which case nothing changes and false is returned.
func (s *Store) AddToWatchlist(item WatchlistItem) bool {
	items := load[WatchlistItem](s, watchlistKey)
	for _, existing := range items {
		if existing.MovieID == item.MovieID {
			return false
		}
	}

	if item.MediaType == "" {
		item.MediaType = entity.MediaTypeMovie
	}
	item.AddedAt = s.now().UTC()
	s.persist(watchlistKey, append(items, item))
	return true
}

func (s *Store) RemoveFromWatchlist(movieID int64) bool {
	items := load[WatchlistItem](s, watchlistKey)
	for i, existing := range items {
		if existing.MovieID == movieID {
			s.persist(watchlistKey, append(items[:i], items[i+1:]...))
			return true
		}
	}
	return false
}

func (s *Store) IsInWatchlist(movieID int64) bool {
	for _, item := range load[WatchlistItem](s, watchlistKey) {
		if item.MovieID == movieID {
			return true
		}
	}
	return false
}

// GetWatchlist returns the watchlist, most recently added first.
func (s *Store) GetWatchlist() []WatchlistItem {
	items := load[WatchlistItem](s, watchlistKey)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].AddedAt.After(items[j].AddedAt)
	})
	return items
}

// SaveReview stores a review for input.MovieID. A review that already exists
// for the same movie is replaced in place and keeps its id and CreatedAt.
func (s *Store) SaveReview(input ReviewInput) Review {
	reviews := load[Review](s, reviewsKey)
	now := s.now().UTC()

	for i := range reviews {
		if reviews[i].MovieID == input.MovieID {
			applyInput(&reviews[i], input, now)
			s.persist(reviewsKey, reviews)
			return reviews[i]
		}
	}

	review := Review{
		ID:        uuid.NewString(),
		MovieID:   input.MovieID,
		CreatedAt: now,
	}
	applyInput(&review, input, now)

	s.persist(reviewsKey, append(reviews, review))
	return review
}

// UpdateReview rewrites the review with the given id. The movie it belongs to
// never changes. Returns nil when no such review exists.
func (s *Store) UpdateReview(id string, input ReviewInput) *Review {
	reviews := load[Review](s, reviewsKey)

	for i := range reviews {
		if reviews[i].ID == id {
			applyInput(&reviews[i], input, s.now().UTC())
			s.persist(reviewsKey, reviews)
			updated := reviews[i]
			return &updated
		}
	}
	return nil
}

func (s *Store) DeleteReview(id string) bool {
	reviews := load[Review](s, reviewsKey)
	for i := range reviews {
		if reviews[i].ID == id {
			s.persist(reviewsKey, append(reviews[:i], reviews[i+1:]...))
			return true
		}
	}
	return false
}

// GetReviews returns every review, newest first.
func (s *Store) GetReviews() []Review {
	reviews := load[Review](s, reviewsKey)
	sort.SliceStable(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})
	return reviews
}

func (s *Store) GetReviewByMovieID(movieID int64) *Review {
	for _, review := range load[Review](s, reviewsKey) {
		if review.MovieID == movieID {
			found := review
			return &found
		}
	}
	return nil
}

// Clear drops every collection in the namespace.
func (s *Store) Clear() {
	for _, key := range []string{watchlistKey, reviewsKey} {
		if err := s.storage.RemoveItem(key); err != nil {
			s.log.Warn("Failed to clear local collection", zap.String("key", key), zap.Error(err))
		}
	}
}

func applyInput(review *Review, input ReviewInput, now time.Time) {
	review.Title = input.Title
	review.PosterPath = input.PosterPath
	review.ReleaseDate = input.ReleaseDate
	review.MediaType = input.MediaType
	if review.MediaType == "" {
		review.MediaType = entity.MediaTypeMovie
	}
	review.SubRatings = input.SubRatings
	review.Overall, review.OverallStarRating = rating.Derive(input.SubRatings)
	review.Comment = input.Comment
	review.UpdatedAt = now
}

// load reads a collection. Unreadable or malformed data yields an empty
// collection.
func load[T any](s *Store, key string) []T {
	raw, ok, err := s.storage.GetItem(key)
	if err != nil {
		s.log.Debug("Failed to read local collection", zap.String("key", key), zap.Error(err))
		return []T{}
	}
	if !ok || raw == "" {
		return []T{}
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		s.log.Debug("Discarding malformed local collection", zap.String("key", key), zap.Error(err))
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}

// persist writes the whole collection back. Failures are logged only.
func (s *Store) persist(key string, items any) {
	data, err := json.Marshal(items)
	if err != nil {
		s.log.Warn("Failed to encode local collection", zap.String("key", key), zap.Error(err))
		return
	}

	if err := s.storage.SetItem(key, string(data)); err != nil {
		s.log.Warn("Failed to persist local collection", zap.String("key", key), zap.Error(err))
	}
}

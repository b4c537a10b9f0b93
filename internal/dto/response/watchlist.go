package response

import (
	"time"

	"cinelog/internal/data/entity"
	"cinelog/internal/localstore"
)

type WatchlistItemResponse struct {
	MovieID     int64            `json:"movie_id"`
	Title       string           `json:"title"`
	PosterPath  *string          `json:"poster_path,omitempty"`
	ReleaseDate *string          `json:"release_date,omitempty"`
	MediaType   entity.MediaType `json:"media_type"`
	AddedAt     time.Time        `json:"added_at"`
}

const (
	SourceAccount = "account"
	SourceGuest   = "guest"
)

// WatchlistStatusResponse tells whether a title is listed. Source is
// "account" or "guest" depending on which store answered.
type WatchlistStatusResponse struct {
	MovieID     int64  `json:"movie_id"`
	InWatchlist bool   `json:"in_watchlist"`
	Source      string `json:"source"`
}

func WatchlistItemToResponse(item *entity.WatchlistItem) WatchlistItemResponse {
	return WatchlistItemResponse{
		MovieID:     item.MovieID,
		Title:       item.Title,
		PosterPath:  item.PosterPath,
		ReleaseDate: item.ReleaseDate,
		MediaType:   item.MediaType,
		AddedAt:     item.AddedAt,
	}
}

func LocalWatchlistItemToResponse(item *localstore.WatchlistItem) WatchlistItemResponse {
	return WatchlistItemResponse{
		MovieID:     item.MovieID,
		Title:       item.Title,
		PosterPath:  item.PosterPath,
		ReleaseDate: item.ReleaseDate,
		MediaType:   item.MediaType,
		AddedAt:     item.AddedAt,
	}
}

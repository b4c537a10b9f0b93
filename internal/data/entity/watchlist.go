package entity

import (
	"time"

	"github.com/google/uuid"
)

type WatchlistItem struct {
	ID          uuid.UUID `db:"id"`
	UserID      uuid.UUID `db:"user_id"`
	MovieID     int64     `db:"movie_id"`
	Title       string    `db:"title"`
	PosterPath  *string   `db:"poster_path"`
	ReleaseDate *string   `db:"release_date"`
	MediaType   MediaType `db:"media_type"`
	AddedAt     time.Time `db:"added_at"`
}

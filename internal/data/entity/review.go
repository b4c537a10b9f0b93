package entity

import (
	"github.com/google/uuid"
)

type MediaType string

const (
	MediaTypeMovie MediaType = "movie"
	MediaTypeTV    MediaType = "tv"
)

// Review is one account's rating of one title. Overall and OverallStarRating
// are always derived from the five sub-ratings at write time.
type Review struct {
	BaseNoDelete
	UserID            uuid.UUID `db:"user_id"`
	MovieID           int64     `db:"movie_id"`
	Title             string    `db:"title"`
	PosterPath        *string   `db:"poster_path"`
	ReleaseDate       *string   `db:"release_date"`
	MediaType         MediaType `db:"media_type"`
	Story             int       `db:"story"`
	Acting            int       `db:"acting"`
	Direction         int       `db:"direction"`
	Cinematography    int       `db:"cinematography"`
	Music             int       `db:"music"`
	Overall           int       `db:"overall"`
	OverallStarRating float64   `db:"overall_star_rating"`
	Comment           *string   `db:"comment"`
}

// ReviewStats aggregates every account's review of one title.
type ReviewStats struct {
	MovieID           int64
	AverageOverall    float64
	AverageStarRating float64
	ReviewCount       int64
}

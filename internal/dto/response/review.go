package response

import (
	"time"

	"cinelog/internal/data/entity"
	"cinelog/internal/localstore"
)

type ReviewResponse struct {
	ID                string           `json:"id"`
	MovieID           int64            `json:"movie_id"`
	Title             string           `json:"title"`
	PosterPath        *string          `json:"poster_path,omitempty"`
	ReleaseDate       *string          `json:"release_date,omitempty"`
	MediaType         entity.MediaType `json:"media_type"`
	Story             int              `json:"story"`
	Acting            int              `json:"acting"`
	Direction         int              `json:"direction"`
	Cinematography    int              `json:"cinematography"`
	Music             int              `json:"music"`
	Overall           int              `json:"overall"`
	OverallStarRating float64          `json:"overall_star_rating"`
	Comment           *string          `json:"comment,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

type ReviewStatsResponse struct {
	MovieID           int64   `json:"movie_id"`
	AverageOverall    float64 `json:"average_overall"`
	AverageStarRating float64 `json:"average_star_rating"`
	ReviewCount       int64   `json:"review_count"`
}

func ReviewToResponse(review *entity.Review) ReviewResponse {
	return ReviewResponse{
		ID:                review.ID.String(),
		MovieID:           review.MovieID,
		Title:             review.Title,
		PosterPath:        review.PosterPath,
		ReleaseDate:       review.ReleaseDate,
		MediaType:         review.MediaType,
		Story:             review.Story,
		Acting:            review.Acting,
		Direction:         review.Direction,
		Cinematography:    review.Cinematography,
		Music:             review.Music,
		Overall:           review.Overall,
		OverallStarRating: review.OverallStarRating,
		Comment:           review.Comment,
		CreatedAt:         review.CreatedAt,
		UpdatedAt:         review.UpdatedAt,
	}
}

func LocalReviewToResponse(review *localstore.Review) ReviewResponse {
	return ReviewResponse{
		ID:                review.ID,
		MovieID:           review.MovieID,
		Title:             review.Title,
		PosterPath:        review.PosterPath,
		ReleaseDate:       review.ReleaseDate,
		MediaType:         review.MediaType,
		Story:             review.Story,
		Acting:            review.Acting,
		Direction:         review.Direction,
		Cinematography:    review.Cinematography,
		Music:             review.Music,
		Overall:           review.Overall,
		OverallStarRating: review.OverallStarRating,
		Comment:           review.Comment,
		CreatedAt:         review.CreatedAt,
		UpdatedAt:         review.UpdatedAt,
	}
}

func ReviewStatsToResponse(stats *entity.ReviewStats) ReviewStatsResponse {
	return ReviewStatsResponse{
		MovieID:           stats.MovieID,
		AverageOverall:    stats.AverageOverall,
		AverageStarRating: stats.AverageStarRating,
		ReviewCount:       stats.ReviewCount,
	}
}

package request

// ReviewContent is the editable part of a review. Overall scores are not part
// of it; they are always derived from the five sub-ratings.
type ReviewContent struct {
	Title          string  `json:"title" validate:"required,max=500"`
	PosterPath     *string `json:"poster_path,omitempty" validate:"omitempty,max=500"`
	ReleaseDate    *string `json:"release_date,omitempty" validate:"omitempty,max=32"`
	MediaType      string  `json:"media_type,omitempty" validate:"omitempty,oneof=movie tv"`
	Story          int     `json:"story" validate:"required,min=1,max=10"`
	Acting         int     `json:"acting" validate:"required,min=1,max=10"`
	Direction      int     `json:"direction" validate:"required,min=1,max=10"`
	Cinematography int     `json:"cinematography" validate:"required,min=1,max=10"`
	Music          int     `json:"music" validate:"required,min=1,max=10"`
	Comment        *string `json:"comment,omitempty" validate:"omitempty,max=2000"`
}

// SaveReviewRequest creates the caller's review of a title, or replaces it
// when one exists.
type SaveReviewRequest struct {
	MovieID int64 `json:"movie_id" validate:"required,gt=0"`
	ReviewContent
}

type UpdateReviewRequest struct {
	ReviewContent
}

package request

type AddToWatchlistRequest struct {
	MovieID     int64   `json:"movie_id" validate:"required,gt=0"`
	Title       string  `json:"title" validate:"required,max=500"`
	PosterPath  *string `json:"poster_path,omitempty" validate:"omitempty,max=500"`
	ReleaseDate *string `json:"release_date,omitempty" validate:"omitempty,max=32"`
	MediaType   string  `json:"media_type,omitempty" validate:"omitempty,oneof=movie tv"`
}

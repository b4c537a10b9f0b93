// Package rating derives a review's overall score and star rating from its
// five sub-ratings.
//
// CalculateOverallRating and ConvertToStarRating are pure and never validate
// their input. Writers of stored reviews go through Derive so the two derived
// fields can always be reproduced from the sub-ratings alone.
package rating

import (
	"fmt"
	"math"
)

const (
	MinScore = 1
	MaxScore = 10
)

// SubRatings holds the five 1-10 criteria of a review.
type SubRatings struct {
	Story          int `json:"story"`
	Acting         int `json:"acting"`
	Direction      int `json:"direction"`
	Cinematography int `json:"cinematography"`
	Music          int `json:"music"`
}

func (r SubRatings) values() [5]int {
	return [5]int{r.Story, r.Acting, r.Direction, r.Cinematography, r.Music}
}

// Validate reports the first sub-rating outside 1-10.
func (r SubRatings) Validate() error {
	names := [5]string{"story", "acting", "direction", "cinematography", "music"}
	for i, v := range r.values() {
		if v < MinScore || v > MaxScore {
			return fmt.Errorf("%s rating %d out of range %d-%d", names[i], v, MinScore, MaxScore)
		}
	}
	return nil
}

// CalculateOverallRating returns the mean of the five sub-ratings rounded
// half-up to the nearest integer.
func CalculateOverallRating(r SubRatings) int {
	sum := 0
	for _, v := range r.values() {
		sum += v
	}
	return int(math.Floor(float64(sum)/5 + 0.5))
}

// ConvertToStarRating maps a 1-10 overall score onto 0.5-5.0 stars, rounded
// half-up to one decimal.
func ConvertToStarRating(overall int) float64 {
	stars := float64(overall) / 10 * 5
	return math.Floor(stars*10+0.5) / 10
}

// Derive computes both stored fields in sequence.
func Derive(r SubRatings) (overall int, stars float64) {
	overall = CalculateOverallRating(r)
	return overall, ConvertToStarRating(overall)
}

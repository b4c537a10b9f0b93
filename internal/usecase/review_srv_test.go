package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"cinelog/internal/dto/request"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type stepClock struct {
	t time.Time
}

func (c *stepClock) now() time.Time {
	c.t = c.t.Add(time.Minute)
	return c.t
}

func newClock() *stepClock {
	return &stepClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func newTestReviewService(repo *fakeReviewRepo) *reviewService {
	svc := NewReviewService(repo, zap.NewNop()).(*reviewService)
	svc.now = newClock().now
	return svc
}

func reviewContent(story, acting, direction, cinematography, music int) request.ReviewContent {
	return request.ReviewContent{
		Title:          "Arrival",
		Story:          story,
		Acting:         acting,
		Direction:      direction,
		Cinematography: cinematography,
		Music:          music,
	}
}

func saveReq(movieID int64, c request.ReviewContent) *request.SaveReviewRequest {
	return &request.SaveReviewRequest{MovieID: movieID, ReviewContent: c}
}

func TestReviewService_SaveReview_DerivesRatings(t *testing.T) {
	svc := newTestReviewService(newFakeReviewRepo())
	user := uuid.New()

	got, err := svc.SaveReview(context.Background(), user, saveReq(329865, reviewContent(8, 6, 7, 9, 5)))
	if err != nil {
		t.Fatalf("SaveReview: %v", err)
	}

	if got.Overall != 7 || got.OverallStarRating != 3.5 {
		t.Errorf("derived = %d / %.1f, want 7 / 3.5", got.Overall, got.OverallStarRating)
	}
	if got.MediaType != "movie" {
		t.Errorf("media type = %q, want movie", got.MediaType)
	}
}

func TestReviewService_SaveReview_OnePerMovie(t *testing.T) {
	repo := newFakeReviewRepo()
	svc := newTestReviewService(repo)
	ctx := context.Background()
	user := uuid.New()

	first, err := svc.SaveReview(ctx, user, saveReq(42, reviewContent(2, 2, 2, 2, 2)))
	if err != nil {
		t.Fatalf("first save: %v", err)
	}
	second, err := svc.SaveReview(ctx, user, saveReq(42, reviewContent(10, 10, 10, 10, 10)))
	if err != nil {
		t.Fatalf("second save: %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("second save got id %s, want %s", second.ID, first.ID)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Errorf("created_at moved from %v to %v", first.CreatedAt, second.CreatedAt)
	}
	if second.Overall != 10 || second.OverallStarRating != 5.0 {
		t.Errorf("derived = %d / %.1f, want 10 / 5.0", second.Overall, second.OverallStarRating)
	}

	all, err := svc.GetUserReviews(ctx, user)
	if err != nil {
		t.Fatalf("GetUserReviews: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("reviews = %d, want 1", len(all))
	}
}

func TestReviewService_UpdateReview_Idempotent(t *testing.T) {
	repo := newFakeReviewRepo()
	svc := newTestReviewService(repo)
	svc.now = func() time.Time { return time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC) }
	ctx := context.Background()
	user := uuid.New()

	saved, err := svc.SaveReview(ctx, user, saveReq(7, reviewContent(5, 5, 5, 5, 5)))
	if err != nil {
		t.Fatalf("SaveReview: %v", err)
	}
	id := uuid.MustParse(saved.ID)
	update := &request.UpdateReviewRequest{ReviewContent: reviewContent(9, 8, 7, 6, 5)}

	once, err := svc.UpdateReview(ctx, user, id, update)
	if err != nil {
		t.Fatalf("first update: %v", err)
	}
	twice, err := svc.UpdateReview(ctx, user, id, update)
	if err != nil {
		t.Fatalf("second update: %v", err)
	}

	if *once != *twice {
		t.Errorf("updates diverged:\n%+v\n%+v", once, twice)
	}
	if twice.Overall != 7 || twice.MovieID != 7 {
		t.Errorf("got overall %d movie %d, want 7 and 7", twice.Overall, twice.MovieID)
	}
}

func TestReviewService_OwnershipIsolation(t *testing.T) {
	repo := newFakeReviewRepo()
	svc := newTestReviewService(repo)
	ctx := context.Background()
	owner, intruder := uuid.New(), uuid.New()

	saved, err := svc.SaveReview(ctx, owner, saveReq(11, reviewContent(6, 6, 6, 6, 6)))
	if err != nil {
		t.Fatalf("SaveReview: %v", err)
	}
	id := uuid.MustParse(saved.ID)

	_, err = svc.UpdateReview(ctx, intruder, id, &request.UpdateReviewRequest{ReviewContent: reviewContent(1, 1, 1, 1, 1)})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("intruder update err = %v, want ErrNotFound", err)
	}

	deleted, err := svc.DeleteReview(ctx, intruder, id)
	if err != nil || deleted {
		t.Errorf("intruder delete = %v, %v; want false, nil", deleted, err)
	}

	if _, err := svc.GetReviewByMovieID(ctx, intruder, 11); !errors.Is(err, ErrNotFound) {
		t.Errorf("intruder lookup err = %v, want ErrNotFound", err)
	}

	mine, err := svc.GetReviewByMovieID(ctx, owner, 11)
	if err != nil {
		t.Fatalf("owner lookup: %v", err)
	}
	if mine.Overall != 6 {
		t.Errorf("owner review overall = %d, want 6 (untouched)", mine.Overall)
	}

	deleted, err = svc.DeleteReview(ctx, owner, id)
	if err != nil || !deleted {
		t.Errorf("owner delete = %v, %v; want true, nil", deleted, err)
	}
}

func TestReviewService_RejectsMissingAccount(t *testing.T) {
	svc := newTestReviewService(newFakeReviewRepo())
	ctx := context.Background()

	calls := map[string]func() error{
		"save": func() error {
			_, err := svc.SaveReview(ctx, uuid.Nil, saveReq(1, reviewContent(5, 5, 5, 5, 5)))
			return err
		},
		"update": func() error {
			_, err := svc.UpdateReview(ctx, uuid.Nil, uuid.New(), &request.UpdateReviewRequest{ReviewContent: reviewContent(5, 5, 5, 5, 5)})
			return err
		},
		"delete": func() error {
			_, err := svc.DeleteReview(ctx, uuid.Nil, uuid.New())
			return err
		},
		"by movie": func() error {
			_, err := svc.GetReviewByMovieID(ctx, uuid.Nil, 1)
			return err
		},
		"list": func() error {
			_, err := svc.GetUserReviews(ctx, uuid.Nil)
			return err
		},
	}

	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			if err := call(); !errors.Is(err, ErrUnauthenticated) {
				t.Errorf("err = %v, want ErrUnauthenticated", err)
			}
		})
	}
}

func TestReviewService_SaveReview_Validation(t *testing.T) {
	svc := newTestReviewService(newFakeReviewRepo())

	tests := []struct {
		name string
		req  *request.SaveReviewRequest
	}{
		{"sub-rating above range", saveReq(1, reviewContent(11, 5, 5, 5, 5))},
		{"sub-rating zero", saveReq(1, reviewContent(5, 0, 5, 5, 5))},
		{"missing movie", saveReq(0, reviewContent(5, 5, 5, 5, 5))},
		{"missing title", saveReq(1, request.ReviewContent{Story: 5, Acting: 5, Direction: 5, Cinematography: 5, Music: 5})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SaveReview(context.Background(), uuid.New(), tt.req)
			if !errors.Is(err, ErrValidation) {
				t.Errorf("err = %v, want ErrValidation", err)
			}
		})
	}
}

func TestReviewService_StorageErrorPropagates(t *testing.T) {
	repo := newFakeReviewRepo()
	repo.failAll = true
	svc := newTestReviewService(repo)

	_, err := svc.SaveReview(context.Background(), uuid.New(), saveReq(1, reviewContent(5, 5, 5, 5, 5)))
	if !errors.Is(err, errStorage) {
		t.Errorf("err = %v, want wrapped storage error", err)
	}
}

func TestReviewService_GetUserReviewsPage(t *testing.T) {
	svc := newTestReviewService(newFakeReviewRepo())
	ctx := context.Background()
	user := uuid.New()

	for movie := int64(1); movie <= 5; movie++ {
		if _, err := svc.SaveReview(ctx, user, saveReq(movie, reviewContent(5, 5, 5, 5, 5))); err != nil {
			t.Fatalf("SaveReview(%d): %v", movie, err)
		}
	}

	page, err := svc.GetUserReviewsPage(ctx, user, &request.PaginatedRequest{Page: 2, PerPage: 2})
	if err != nil {
		t.Fatalf("GetUserReviewsPage: %v", err)
	}

	if page.Pagination.Total != 5 || page.Pagination.TotalPages != 3 {
		t.Errorf("pagination = %+v, want total 5 over 3 pages", page.Pagination)
	}
	if len(page.Data) != 2 {
		t.Fatalf("page size = %d, want 2", len(page.Data))
	}
	// newest first: movies 5,4 | 3,2 | 1
	if page.Data[0].MovieID != 3 || page.Data[1].MovieID != 2 {
		t.Errorf("page 2 movies = %d,%d; want 3,2", page.Data[0].MovieID, page.Data[1].MovieID)
	}
}

func TestReviewService_GetMovieReviewStats(t *testing.T) {
	svc := newTestReviewService(newFakeReviewRepo())
	ctx := context.Background()

	if _, err := svc.SaveReview(ctx, uuid.New(), saveReq(99, reviewContent(8, 8, 8, 8, 8))); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SaveReview(ctx, uuid.New(), saveReq(99, reviewContent(6, 6, 6, 6, 6))); err != nil {
		t.Fatal(err)
	}

	stats, err := svc.GetMovieReviewStats(ctx, 99)
	if err != nil {
		t.Fatalf("GetMovieReviewStats: %v", err)
	}
	if stats.ReviewCount != 2 || stats.AverageOverall != 7 || stats.AverageStarRating != 3.5 {
		t.Errorf("stats = %+v, want 2 reviews averaging 7 / 3.5", stats)
	}

	if _, err := svc.GetMovieReviewStats(ctx, 0); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("movie 0 err = %v, want ErrInvalidInput", err)
	}
}

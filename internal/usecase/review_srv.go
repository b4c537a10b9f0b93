package usecase

import (
	"context"
	"fmt"
	"time"

	"cinelog/internal/data/entity"
	"cinelog/internal/data/repository"
	"cinelog/internal/dto/request"
	"cinelog/internal/dto/response"
	"cinelog/internal/rating"
	"cinelog/pkg/metrics"
	"cinelog/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReviewService is the signed-in review store. Every method is scoped to the
// account passed in; uuid.Nil is rejected.
type ReviewService interface {
	SaveReview(ctx context.Context, userID uuid.UUID, req *request.SaveReviewRequest) (*response.ReviewResponse, error)
	UpdateReview(ctx context.Context, userID, reviewID uuid.UUID, req *request.UpdateReviewRequest) (*response.ReviewResponse, error)
	DeleteReview(ctx context.Context, userID, reviewID uuid.UUID) (bool, error)
	GetReviewByMovieID(ctx context.Context, userID uuid.UUID, movieID int64) (*response.ReviewResponse, error)
	GetUserReviews(ctx context.Context, userID uuid.UUID) ([]response.ReviewResponse, error)
	GetUserReviewsPage(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)

	// Public, across all accounts
	GetMovieReviewStats(ctx context.Context, movieID int64) (*response.ReviewStatsResponse, error)
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	log        *zap.Logger
	now        func() time.Time
}

func NewReviewService(reviewRepo repository.ReviewRepository, log *zap.Logger) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		log:        log.With(zap.String("service", "review")),
		now:        time.Now,
	}
}

func validateRequest(req any) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}
	return nil
}

func requireAccount(userID uuid.UUID) error {
	if userID == uuid.Nil {
		return ErrUnauthenticated
	}
	return nil
}

func mediaTypeOrDefault(mediaType string) entity.MediaType {
	if mediaType == "" {
		return entity.MediaTypeMovie
	}
	return entity.MediaType(mediaType)
}

func subRatingsOf(c *request.ReviewContent) rating.SubRatings {
	return rating.SubRatings{
		Story:          c.Story,
		Acting:         c.Acting,
		Direction:      c.Direction,
		Cinematography: c.Cinematography,
		Music:          c.Music,
	}
}

// applyContent copies the editable fields and recomputes both derived
// ratings.
func applyContent(review *entity.Review, c *request.ReviewContent) {
	subs := subRatingsOf(c)

	review.Title = c.Title
	review.PosterPath = c.PosterPath
	review.ReleaseDate = c.ReleaseDate
	review.MediaType = mediaTypeOrDefault(c.MediaType)
	review.Story = subs.Story
	review.Acting = subs.Acting
	review.Direction = subs.Direction
	review.Cinematography = subs.Cinematography
	review.Music = subs.Music
	review.Overall, review.OverallStarRating = rating.Derive(subs)
	review.Comment = c.Comment
}

// SaveReview creates the account's review of req.MovieID or overwrites the
// existing one.
func (s *reviewService) SaveReview(ctx context.Context, userID uuid.UUID, req *request.SaveReviewRequest) (*response.ReviewResponse, error) {
	if err := requireAccount(userID); err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		s.log.Debug("Save review validation failed", zap.Error(err))
		return nil, err
	}

	now := s.now()
	review := &entity.Review{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:  userID,
		MovieID: req.MovieID,
	}
	applyContent(review, &req.ReviewContent)

	saved, err := s.reviewRepo.Upsert(ctx, review)
	if err != nil {
		return nil, fmt.Errorf("save review: %w", err)
	}

	metrics.ReviewWrites.WithLabelValues(metrics.StoreAccount, "save").Inc()
	s.log.Info("Review saved",
		zap.String("review_id", saved.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Int64("movie_id", saved.MovieID),
		zap.Int("overall", saved.Overall),
	)

	resp := response.ReviewToResponse(saved)
	return &resp, nil
}

// UpdateReview rewrites a review owned by userID. A review that does not
// exist and one owned by another account both yield ErrNotFound.
func (s *reviewService) UpdateReview(ctx context.Context, userID, reviewID uuid.UUID, req *request.UpdateReviewRequest) (*response.ReviewResponse, error) {
	if err := requireAccount(userID); err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		s.log.Debug("Update review validation failed", zap.Error(err))
		return nil, err
	}

	review := &entity.Review{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        reviewID,
			UpdatedAt: s.now(),
		},
		UserID: userID,
	}
	applyContent(review, &req.ReviewContent)

	updated, err := s.reviewRepo.UpdateByOwner(ctx, review)
	if err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}
	if updated == nil {
		return nil, fmt.Errorf("review %s: %w", reviewID.String(), ErrNotFound)
	}

	metrics.ReviewWrites.WithLabelValues(metrics.StoreAccount, "update").Inc()
	s.log.Info("Review updated",
		zap.String("review_id", reviewID.String()),
		zap.String("user_id", userID.String()),
	)

	resp := response.ReviewToResponse(updated)
	return &resp, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, userID, reviewID uuid.UUID) (bool, error) {
	if err := requireAccount(userID); err != nil {
		return false, err
	}

	deleted, err := s.reviewRepo.DeleteByOwner(ctx, reviewID, userID)
	if err != nil {
		return false, fmt.Errorf("delete review: %w", err)
	}

	if deleted {
		metrics.ReviewWrites.WithLabelValues(metrics.StoreAccount, "delete").Inc()
	}
	return deleted, nil
}

func (s *reviewService) GetReviewByMovieID(ctx context.Context, userID uuid.UUID, movieID int64) (*response.ReviewResponse, error) {
	if err := requireAccount(userID); err != nil {
		return nil, err
	}

	review, err := s.reviewRepo.FindByUserAndMovie(ctx, userID, movieID)
	if err != nil {
		return nil, fmt.Errorf("get review by movie: %w", err)
	}
	if review == nil {
		return nil, fmt.Errorf("review for movie %d: %w", movieID, ErrNotFound)
	}

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) GetUserReviews(ctx context.Context, userID uuid.UUID) ([]response.ReviewResponse, error) {
	if err := requireAccount(userID); err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user reviews: %w", err)
	}

	return reviewsToResponse(reviews), nil
}

func (s *reviewService) GetUserReviewsPage(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	if err := requireAccount(userID); err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.FindPageByUserID(ctx, userID, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get user reviews page: %w", err)
	}

	total, err := s.reviewRepo.CountByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count user reviews: %w", err)
	}

	s.log.Debug("User reviews page retrieved",
		zap.String("user_id", userID.String()),
		zap.Int("count", len(reviews)),
		zap.Int64("total", total),
		zap.Int("page", req.Page),
	)

	return response.NewPaginatedResponse(reviewsToResponse(reviews), req.Page, req.Limit(), total), nil
}

func (s *reviewService) GetMovieReviewStats(ctx context.Context, movieID int64) (*response.ReviewStatsResponse, error) {
	if movieID < 1 {
		return nil, fmt.Errorf("movie id %d: %w", movieID, ErrInvalidInput)
	}

	stats, err := s.reviewRepo.GetMovieReviewStats(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("get movie review stats: %w", err)
	}

	resp := response.ReviewStatsToResponse(stats)
	return &resp, nil
}

func reviewsToResponse(reviews []*entity.Review) []response.ReviewResponse {
	out := make([]response.ReviewResponse, len(reviews))
	for i, review := range reviews {
		out[i] = response.ReviewToResponse(review)
	}
	return out
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"cinelog/internal/data/entity"
	"cinelog/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReviewRepository interface {
	Upsert(ctx context.Context, review *entity.Review) (*entity.Review, error)
	UpdateByOwner(ctx context.Context, review *entity.Review) (*entity.Review, error)
	DeleteByOwner(ctx context.Context, id, userID uuid.UUID) (bool, error)
	FindByUserAndMovie(ctx context.Context, userID uuid.UUID, movieID int64) (*entity.Review, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Review, error)
	FindPageByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Review, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)

	// Public aggregate across all live accounts
	GetMovieReviewStats(ctx context.Context, movieID int64) (*entity.ReviewStats, error)
}

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

const reviewColumns = `id, user_id, movie_id, title, poster_path, release_date, media_type,
		story, acting, direction, cinematography, music, overall, overall_star_rating,
		comment, created_at, updated_at`

func scanReview(row pgx.Row) (*entity.Review, error) {
	var review entity.Review
	err := row.Scan(
		&review.ID,
		&review.UserID,
		&review.MovieID,
		&review.Title,
		&review.PosterPath,
		&review.ReleaseDate,
		&review.MediaType,
		&review.Story,
		&review.Acting,
		&review.Direction,
		&review.Cinematography,
		&review.Music,
		&review.Overall,
		&review.OverallStarRating,
		&review.Comment,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// Upsert inserts the review or, when the account already reviewed this title,
// overwrites the existing row. created_at and id of an existing row survive.
func (r *reviewRepository) Upsert(ctx context.Context, review *entity.Review) (*entity.Review, error) {
	query := `
		INSERT INTO reviews (id, user_id, movie_id, title, poster_path, release_date, media_type,
		                     story, acting, direction, cinematography, music, overall,
		                     overall_star_rating, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (user_id, movie_id) DO UPDATE SET
			title               = EXCLUDED.title,
			poster_path         = EXCLUDED.poster_path,
			release_date        = EXCLUDED.release_date,
			media_type          = EXCLUDED.media_type,
			story               = EXCLUDED.story,
			acting              = EXCLUDED.acting,
			direction           = EXCLUDED.direction,
			cinematography      = EXCLUDED.cinematography,
			music               = EXCLUDED.music,
			overall             = EXCLUDED.overall,
			overall_star_rating = EXCLUDED.overall_star_rating,
			comment             = EXCLUDED.comment,
			updated_at          = EXCLUDED.updated_at
		RETURNING ` + reviewColumns

	saved, err := scanReview(r.db.QueryRow(ctx, query,
		review.ID,
		review.UserID,
		review.MovieID,
		review.Title,
		review.PosterPath,
		review.ReleaseDate,
		review.MediaType,
		review.Story,
		review.Acting,
		review.Direction,
		review.Cinematography,
		review.Music,
		review.Overall,
		review.OverallStarRating,
		review.Comment,
		review.CreatedAt,
		review.UpdatedAt,
	))
	if err != nil {
		r.log.Error("Failed to upsert review",
			zap.Error(err),
			zap.String("user_id", review.UserID.String()),
			zap.Int64("movie_id", review.MovieID),
		)
		return nil, fmt.Errorf("upsert review for movie %d by user %s: %w",
			review.MovieID, review.UserID.String(), err)
	}

	return saved, nil
}

// UpdateByOwner rewrites a review only when it belongs to review.UserID.
// A missing row and a row owned by someone else both return nil, nil.
func (r *reviewRepository) UpdateByOwner(ctx context.Context, review *entity.Review) (*entity.Review, error) {
	query := `
		UPDATE reviews
		SET title = $3, poster_path = $4, release_date = $5, media_type = $6,
		    story = $7, acting = $8, direction = $9, cinematography = $10, music = $11,
		    overall = $12, overall_star_rating = $13, comment = $14, updated_at = $15
		WHERE id = $1 AND user_id = $2
		RETURNING ` + reviewColumns

	updated, err := scanReview(r.db.QueryRow(ctx, query,
		review.ID,
		review.UserID,
		review.Title,
		review.PosterPath,
		review.ReleaseDate,
		review.MediaType,
		review.Story,
		review.Acting,
		review.Direction,
		review.Cinematography,
		review.Music,
		review.Overall,
		review.OverallStarRating,
		review.Comment,
		review.UpdatedAt,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to update review",
			zap.Error(err),
			zap.String("review_id", review.ID.String()),
			zap.String("user_id", review.UserID.String()),
		)
		return nil, fmt.Errorf("update review %s: %w", review.ID.String(), err)
	}

	return updated, nil
}

func (r *reviewRepository) DeleteByOwner(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	query := `DELETE FROM reviews WHERE id = $1 AND user_id = $2`

	result, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		r.log.Error("Failed to delete review",
			zap.Error(err),
			zap.String("review_id", id.String()),
			zap.String("user_id", userID.String()),
		)
		return false, fmt.Errorf("delete review %s: %w", id.String(), err)
	}

	deleted := result.RowsAffected() > 0
	if deleted {
		r.log.Info("Review deleted", zap.String("review_id", id.String()))
	}
	return deleted, nil
}

func (r *reviewRepository) FindByUserAndMovie(ctx context.Context, userID uuid.UUID, movieID int64) (*entity.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE user_id = $1 AND movie_id = $2
		LIMIT 1
	`

	review, err := scanReview(r.db.QueryRow(ctx, query, userID, movieID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by user and movie",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.Int64("movie_id", movieID),
		)
		return nil, fmt.Errorf("find review by user %s and movie %d: %w",
			userID.String(), movieID, err)
	}

	return review, nil
}

// FindByUserID lists an account's reviews, newest first.
func (r *reviewRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find reviews by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find reviews by user ID %s: %w", userID.String(), err)
	}

	return collectReviews(rows)
}

func (r *reviewRepository) FindPageByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find review page by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find review page by user ID %s: %w", userID.String(), err)
	}

	return collectReviews(rows)
}

// collectReviews maps each row onto entity.Review by column name, using the
// db tags. It closes rows.
func collectReviews(rows pgx.Rows) ([]*entity.Review, error) {
	reviews, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[entity.Review])
	if err != nil {
		return nil, fmt.Errorf("collect review rows: %w", err)
	}
	return reviews, nil
}

func (r *reviewRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM reviews WHERE user_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		r.log.Error("Failed to count reviews by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count reviews by user ID %s: %w", userID.String(), err)
	}

	return count, nil
}

// GetMovieReviewStats aggregates a movie's reviews. Reviews left by deleted
// accounts are not counted.
func (r *reviewRepository) GetMovieReviewStats(ctx context.Context, movieID int64) (*entity.ReviewStats, error) {
	query := `
		SELECT
			COALESCE(AVG(r.overall), 0)::float8 AS avg_overall,
			COALESCE(AVG(r.overall_star_rating), 0)::float8 AS avg_stars,
			COUNT(*) AS review_count
		FROM reviews r
		JOIN users u ON u.id = r.user_id AND u.deleted_at IS NULL
		WHERE r.movie_id = $1
	`

	stats := entity.ReviewStats{MovieID: movieID}
	err := r.db.QueryRow(ctx, query, movieID).Scan(
		&stats.AverageOverall,
		&stats.AverageStarRating,
		&stats.ReviewCount,
	)
	if err != nil {
		r.log.Error("Failed to get movie review stats",
			zap.Error(err),
			zap.Int64("movie_id", movieID),
		)
		return nil, fmt.Errorf("get movie review stats for %d: %w", movieID, err)
	}

	return &stats, nil
}

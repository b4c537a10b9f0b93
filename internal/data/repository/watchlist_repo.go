package repository

import (
	"context"
	"fmt"

	"cinelog/internal/data/entity"
	"cinelog/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type WatchlistRepository interface {
	Upsert(ctx context.Context, item *entity.WatchlistItem) (*entity.WatchlistItem, error)
	DeleteByUserAndMovie(ctx context.Context, userID uuid.UUID, movieID int64) (bool, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.WatchlistItem, error)
	Exists(ctx context.Context, userID uuid.UUID, movieID int64) (bool, error)
}

type watchlistRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewWatchlistRepository(db database.PgxIface, log *zap.Logger) WatchlistRepository {
	return &watchlistRepository{
		db:  db,
		log: log.With(zap.String("repository", "watchlist")),
	}
}

const watchlistColumns = `id, user_id, movie_id, title, poster_path, release_date, media_type, added_at`

func scanWatchlistItem(row pgx.Row) (*entity.WatchlistItem, error) {
	var item entity.WatchlistItem
	err := row.Scan(
		&item.ID,
		&item.UserID,
		&item.MovieID,
		&item.Title,
		&item.PosterPath,
		&item.ReleaseDate,
		&item.MediaType,
		&item.AddedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Upsert adds the title to the account's watchlist. Adding a title that is
// already listed refreshes its display fields and keeps the original added_at.
func (r *watchlistRepository) Upsert(ctx context.Context, item *entity.WatchlistItem) (*entity.WatchlistItem, error) {
	query := `
		INSERT INTO watchlist_items (id, user_id, movie_id, title, poster_path,
		                             release_date, media_type, added_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, movie_id) DO UPDATE SET
			title        = EXCLUDED.title,
			poster_path  = EXCLUDED.poster_path,
			release_date = EXCLUDED.release_date,
			media_type   = EXCLUDED.media_type
		RETURNING ` + watchlistColumns

	saved, err := scanWatchlistItem(r.db.QueryRow(ctx, query,
		item.ID,
		item.UserID,
		item.MovieID,
		item.Title,
		item.PosterPath,
		item.ReleaseDate,
		item.MediaType,
		item.AddedAt,
	))
	if err != nil {
		r.log.Error("Failed to upsert watchlist item",
			zap.Error(err),
			zap.String("user_id", item.UserID.String()),
			zap.Int64("movie_id", item.MovieID),
		)
		return nil, fmt.Errorf("upsert watchlist item %d for user %s: %w",
			item.MovieID, item.UserID.String(), err)
	}

	return saved, nil
}

func (r *watchlistRepository) DeleteByUserAndMovie(ctx context.Context, userID uuid.UUID, movieID int64) (bool, error) {
	query := `DELETE FROM watchlist_items WHERE user_id = $1 AND movie_id = $2`

	result, err := r.db.Exec(ctx, query, userID, movieID)
	if err != nil {
		r.log.Error("Failed to delete watchlist item",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.Int64("movie_id", movieID),
		)
		return false, fmt.Errorf("delete watchlist item %d for user %s: %w",
			movieID, userID.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

// FindByUserID lists the watchlist, most recently added first.
func (r *watchlistRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.WatchlistItem, error) {
	query := `
		SELECT ` + watchlistColumns + `
		FROM watchlist_items
		WHERE user_id = $1
		ORDER BY added_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find watchlist by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find watchlist by user ID %s: %w", userID.String(), err)
	}

	items, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[entity.WatchlistItem])
	if err != nil {
		r.log.Error("Failed to collect watchlist rows", zap.Error(err))
		return nil, fmt.Errorf("collect watchlist rows: %w", err)
	}

	return items, nil
}

func (r *watchlistRepository) Exists(ctx context.Context, userID uuid.UUID, movieID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM watchlist_items WHERE user_id = $1 AND movie_id = $2)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, userID, movieID).Scan(&exists); err != nil {
		r.log.Error("Failed to check watchlist membership",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.Int64("movie_id", movieID),
		)
		return false, fmt.Errorf("check watchlist item %d for user %s: %w",
			movieID, userID.String(), err)
	}

	return exists, nil
}

package repository

import (
	"errors"

	"cinelog/pkg/database"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

var (
	// ErrNoRows is returned by writes that expected to touch a row and did not.
	ErrNoRows = errors.New("no rows affected")
	// ErrDuplicate is returned when an insert hits a unique constraint.
	ErrDuplicate = errors.New("duplicate key")
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

type Repository struct {
	User      UserRepository
	Session   SessionRepository
	LoginCode LoginCodeRepository
	Review    ReviewRepository
	Watchlist WatchlistRepository
}

// NewRepository builds every repository over one shared database handle.
func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:      NewUserRepository(db, log),
		Session:   NewSessionRepository(db, log),
		LoginCode: NewLoginCodeRepository(db, log),
		Review:    NewReviewRepository(db, log),
		Watchlist: NewWatchlistRepository(db, log),
	}
}

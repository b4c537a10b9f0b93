package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cinelog/internal/data/entity"
	"cinelog/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type LoginCodeRepository interface {
	Create(ctx context.Context, code *entity.LoginCode) error
	FindValidCode(ctx context.Context, email, code string) (*entity.LoginCode, error)
	MarkAsUsed(ctx context.Context, id uuid.UUID) error
	InvalidateForEmail(ctx context.Context, email string) error
}

type loginCodeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewLoginCodeRepository(db database.PgxIface, log *zap.Logger) LoginCodeRepository {
	return &loginCodeRepository{
		db:  db,
		log: log.With(zap.String("repository", "login_code")),
	}
}

func (r *loginCodeRepository) Create(ctx context.Context, code *entity.LoginCode) error {
	query := `
		INSERT INTO login_codes (id, user_id, email, code, expires_at, is_used, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		code.ID,
		code.UserID,
		strings.ToLower(code.Email),
		code.Code,
		code.ExpiresAt,
		code.IsUsed,
		code.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create login code",
			zap.Error(err),
			zap.String("email", code.Email),
		)
		return fmt.Errorf("create login code for %s: %w", code.Email, err)
	}

	return nil
}

// FindValidCode returns the newest unused, unexpired code matching email and
// code, or nil when there is none.
func (r *loginCodeRepository) FindValidCode(ctx context.Context, email, code string) (*entity.LoginCode, error) {
	query := `
		SELECT id, user_id, email, code, expires_at, is_used, created_at
		FROM login_codes
		WHERE email = $1
		  AND code = $2
		  AND is_used = false
		  AND expires_at > NOW()
		ORDER BY created_at DESC
		LIMIT 1
	`

	var lc entity.LoginCode
	err := r.db.QueryRow(ctx, query, strings.ToLower(email), code).Scan(
		&lc.ID,
		&lc.UserID,
		&lc.Email,
		&lc.Code,
		&lc.ExpiresAt,
		&lc.IsUsed,
		&lc.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find valid login code",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find valid login code for %s: %w", email, err)
	}

	return &lc, nil
}

func (r *loginCodeRepository) MarkAsUsed(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE login_codes SET is_used = true WHERE id = $1 AND is_used = false`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to mark login code as used",
			zap.Error(err),
			zap.String("code_id", id.String()),
		)
		return fmt.Errorf("mark login code %s as used: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("login code %s: %w", id.String(), ErrNoRows)
	}

	return nil
}

// InvalidateForEmail burns every outstanding code so only the newest one
// mailed can be redeemed.
func (r *loginCodeRepository) InvalidateForEmail(ctx context.Context, email string) error {
	query := `UPDATE login_codes SET is_used = true WHERE email = $1 AND is_used = false`

	if _, err := r.db.Exec(ctx, query, strings.ToLower(email)); err != nil {
		r.log.Error("Failed to invalidate login codes",
			zap.Error(err),
			zap.String("email", email),
		)
		return fmt.Errorf("invalidate login codes for %s: %w", email, err)
	}

	return nil
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

// LoginCode is a one-time code mailed for passwordless sign-in.
type LoginCode struct {
	BaseSimple
	UserID    uuid.UUID `db:"user_id"`
	Email     string    `db:"email"`
	Code      string    `db:"code"`
	ExpiresAt time.Time `db:"expires_at"`
	IsUsed    bool      `db:"is_used"`
}

package database

import (
	"context"
	"fmt"
)

// schemaStatements create the tables when they do not exist yet. The
// (user_id, movie_id) unique constraints back the one-per-title upserts.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id             UUID PRIMARY KEY,
		email          TEXT NOT NULL UNIQUE,
		display_name   TEXT,
		email_verified BOOLEAN NOT NULL DEFAULT FALSE,
		is_active      BOOLEAN NOT NULL DEFAULT TRUE,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		deleted_at     TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS sessions (
		id         UUID PRIMARY KEY,
		user_id    UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		token      UUID NOT NULL UNIQUE,
		user_agent TEXT,
		ip_address TEXT,
		expires_at TIMESTAMPTZ NOT NULL,
		revoked_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS login_codes (
		id         UUID PRIMARY KEY,
		user_id    UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		email      TEXT NOT NULL,
		code       TEXT NOT NULL,
		expires_at TIMESTAMPTZ NOT NULL,
		is_used    BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_login_codes_email ON login_codes (email, code)`,
	`CREATE TABLE IF NOT EXISTS reviews (
		id                  UUID PRIMARY KEY,
		user_id             UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		movie_id            BIGINT NOT NULL,
		title               TEXT NOT NULL,
		poster_path         TEXT,
		release_date        TEXT,
		media_type          TEXT NOT NULL DEFAULT 'movie',
		story               SMALLINT NOT NULL CHECK (story BETWEEN 1 AND 10),
		acting              SMALLINT NOT NULL CHECK (acting BETWEEN 1 AND 10),
		direction           SMALLINT NOT NULL CHECK (direction BETWEEN 1 AND 10),
		cinematography      SMALLINT NOT NULL CHECK (cinematography BETWEEN 1 AND 10),
		music               SMALLINT NOT NULL CHECK (music BETWEEN 1 AND 10),
		overall             SMALLINT NOT NULL,
		overall_star_rating DOUBLE PRECISION NOT NULL,
		comment             TEXT,
		created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT reviews_user_movie_key UNIQUE (user_id, movie_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_reviews_movie ON reviews (movie_id)`,
	`CREATE TABLE IF NOT EXISTS watchlist_items (
		id           UUID PRIMARY KEY,
		user_id      UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		movie_id     BIGINT NOT NULL,
		title        TEXT NOT NULL,
		poster_path  TEXT,
		release_date TEXT,
		media_type   TEXT NOT NULL DEFAULT 'movie',
		added_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT watchlist_user_movie_key UNIQUE (user_id, movie_id)
	)`,
}

// EnsureSchema applies schemaStatements in order.
func EnsureSchema(ctx context.Context, db PgxIface) error {
	for i, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}
	return nil
}

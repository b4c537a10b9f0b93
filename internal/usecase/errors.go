package usecase

import "errors"

// Handlers map these with errors.Is; everything else becomes a 500.
var (
	ErrValidation      = errors.New("validation failed")
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
	ErrUnauthenticated = errors.New("authentication required")
	ErrInvalidCode     = errors.New("invalid or expired code")
	ErrInactive        = errors.New("account is deactivated")
)

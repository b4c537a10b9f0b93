package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	UserIDKey  contextKey = "user_id"
	TokenKey   contextKey = "token"
	GuestIDKey contextKey = "guest_id"
)

// GetUserIDFromContext returns the account resolved by the session middleware.
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}

func SetUserContext(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// GetTokenFromContext returns the bearer token of the current session.
func GetTokenFromContext(ctx context.Context) (uuid.UUID, bool) {
	token, ok := ctx.Value(TokenKey).(uuid.UUID)
	return token, ok && token != uuid.Nil
}

func SetTokenContext(ctx context.Context, token uuid.UUID) context.Context {
	return context.WithValue(ctx, TokenKey, token)
}

// GetGuestIDFromContext returns the anonymous browser id set by the guest middleware.
func GetGuestIDFromContext(ctx context.Context) (string, bool) {
	guestID, ok := ctx.Value(GuestIDKey).(string)
	return guestID, ok && guestID != ""
}

func SetGuestContext(ctx context.Context, guestID string) context.Context {
	return context.WithValue(ctx, GuestIDKey, guestID)
}

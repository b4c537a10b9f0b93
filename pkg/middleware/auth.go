package middleware

import (
	"errors"
	"net/http"
	"strings"

	"cinelog/internal/data/entity"
	"cinelog/internal/data/repository"
	"cinelog/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	errMissingToken   = errors.New("missing authorization token")
	errMalformedToken = errors.New("invalid token format")
)

// bearerToken parses "Authorization: Bearer <uuid>".
func bearerToken(r *http.Request) (uuid.UUID, error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return uuid.Nil, errMissingToken
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return uuid.Nil, errMalformedToken
	}

	token, err := uuid.Parse(strings.TrimSpace(parts[1]))
	if err != nil {
		return uuid.Nil, errMalformedToken
	}
	return token, nil
}

func withSession(r *http.Request, session *entity.Session) *http.Request {
	ctx := utils.SetUserContext(r.Context(), session.UserID)
	ctx = utils.SetTokenContext(ctx, session.Token)
	return r.WithContext(ctx)
}

// AuthSession rejects the request with 401 unless it carries a valid session
// token. The account id and token are put into the request context.
func AuthSession(sessionRepo repository.SessionRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := bearerToken(r)
			switch {
			case errors.Is(err, errMissingToken):
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			case err != nil:
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			session, err := sessionRepo.FindValidSession(r.Context(), token)
			if err != nil {
				logger.Error("Failed to validate session", zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if session == nil {
				logger.Debug("Invalid or expired session", zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, "Invalid or expired session")
				return
			}

			next.ServeHTTP(w, withSession(r, session))
		})
	}
}

// OptionalSession resolves the session like AuthSession but never rejects.
// Requests without a usable session continue anonymously.
func OptionalSession(sessionRepo repository.SessionRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := bearerToken(r)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			session, err := sessionRepo.FindValidSession(r.Context(), token)
			if err != nil {
				logger.Warn("Session lookup failed, continuing anonymously", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}
			if session == nil {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, withSession(r, session))
		})
	}
}

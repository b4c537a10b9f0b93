package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cinelog/internal/data/entity"
	"cinelog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type stubSessionRepo struct {
	sessions map[uuid.UUID]*entity.Session
	err      error
}

func (s *stubSessionRepo) Create(context.Context, *entity.Session) error { return nil }

func (s *stubSessionRepo) FindValidSession(_ context.Context, token uuid.UUID) (*entity.Session, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.sessions[token], nil
}

func (s *stubSessionRepo) Revoke(context.Context, uuid.UUID) error { return nil }
func (s *stubSessionRepo) RevokeAllUserSessions(context.Context, uuid.UUID) error { return nil }
func (s *stubSessionRepo) CleanExpiredSessions(context.Context) (int64, error) { return 0, nil }

func newStubRepo() (*stubSessionRepo, uuid.UUID, uuid.UUID) {
	token, userID := uuid.New(), uuid.New()
	repo := &stubSessionRepo{sessions: map[uuid.UUID]*entity.Session{
		token: {UserID: userID, Token: token, ExpiresAt: time.Now().Add(time.Hour)},
	}}
	return repo, token, userID
}

// identityHandler answers with the resolved account id, or "anonymous".
func identityHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := utils.GetUserIDFromContext(r.Context()); ok {
			w.Write([]byte(id.String()))
			return
		}
		w.Write([]byte("anonymous"))
	})
}

func TestAuthSession(t *testing.T) {
	repo, token, userID := newStubRepo()

	tests := []struct {
		name       string
		header     string
		repoErr    error
		wantStatus int
		wantBody   string
	}{
		{"valid token", "Bearer " + token.String(), nil, http.StatusOK, userID.String()},
		{"lowercase scheme", "bearer " + token.String(), nil, http.StatusOK, userID.String()},
		{"missing header", "", nil, http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic " + token.String(), nil, http.StatusUnauthorized, ""},
		{"not a uuid", "Bearer abc", nil, http.StatusUnauthorized, ""},
		{"unknown token", "Bearer " + uuid.NewString(), nil, http.StatusUnauthorized, ""},
		{"storage error", "Bearer " + token.String(), errors.New("db down"), http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo.err = tt.repoErr
			handler := AuthSession(repo, zap.NewNop())(identityHandler())

			req := httptest.NewRequest(http.MethodGet, "/api/watchlist", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantBody != "" && rec.Body.String() != tt.wantBody {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestOptionalSession(t *testing.T) {
	repo, token, userID := newStubRepo()

	tests := []struct {
		name     string
		header   string
		repoErr  error
		wantBody string
	}{
		{"valid token", "Bearer " + token.String(), nil, userID.String()},
		{"no token", "", nil, "anonymous"},
		{"bad token", "Bearer nope", nil, "anonymous"},
		{"storage error", "Bearer " + token.String(), errors.New("db down"), "anonymous"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo.err = tt.repoErr
			handler := OptionalSession(repo, zap.NewNop())(identityHandler())

			req := httptest.NewRequest(http.MethodGet, "/api/watchlist/1/status", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			if rec.Body.String() != tt.wantBody {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func guestEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, _ := utils.GetGuestIDFromContext(r.Context())
		w.Write([]byte(id))
	})
}

func TestGuest_IssuesCookie(t *testing.T) {
	handler := Guest("cinelog_guest", 365)(guestEcho())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/guest/reviews", nil))

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "cinelog_guest" {
		t.Fatalf("cookies = %v, want one cinelog_guest cookie", cookies)
	}
	if _, err := uuid.Parse(cookies[0].Value); err != nil {
		t.Errorf("cookie value %q is not a uuid", cookies[0].Value)
	}
	if rec.Body.String() != cookies[0].Value {
		t.Errorf("context guest id %q != cookie %q", rec.Body.String(), cookies[0].Value)
	}
	if rec.Header().Get(GuestHeader) != cookies[0].Value {
		t.Errorf("%s header = %q", GuestHeader, rec.Header().Get(GuestHeader))
	}
}

func TestGuest_ReusesExistingID(t *testing.T) {
	handler := Guest("cinelog_guest", 365)(guestEcho())
	existing := uuid.NewString()

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "cinelog_guest", Value: existing})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Body.String() != existing {
			t.Errorf("guest id = %q, want %q", rec.Body.String(), existing)
		}
		if len(rec.Result().Cookies()) != 0 {
			t.Error("a new cookie was issued for a known guest")
		}
	})

	t.Run("header wins over cookie", func(t *testing.T) {
		fromHeader := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(GuestHeader, fromHeader)
		req.AddCookie(&http.Cookie{Name: "cinelog_guest", Value: existing})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Body.String() != fromHeader {
			t.Errorf("guest id = %q, want %q", rec.Body.String(), fromHeader)
		}
	})

	t.Run("invalid cookie is replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "cinelog_guest", Value: "../../etc"})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Body.String() == "../../etc" {
			t.Error("invalid guest id was accepted")
		}
		if len(rec.Result().Cookies()) != 1 {
			t.Error("expected a replacement cookie")
		}
	})
}

func TestRecover(t *testing.T) {
	handler := Recover(zap.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
}

func TestRateLimit(t *testing.T) {
	handler := RateLimit(2, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "203.0.113.7:5000"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("status codes = %v, want [200 200 429]", codes)
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	if got := RateLimit(0, time.Minute)(next); got == nil {
		t.Fatal("RateLimit(0) returned nil handler")
	}
}

func TestMetrics_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Metrics)
	r.Get("/api/reviews/movie/{movieID}", func(w http.ResponseWriter, r *http.Request) {
		if got := routePattern(r); got != "/api/reviews/movie/{movieID}" {
			t.Errorf("routePattern() = %q", got)
		}
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reviews/movie/42", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

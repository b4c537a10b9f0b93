package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"cinelog/internal/data/entity"
	"cinelog/internal/data/repository"
	"cinelog/pkg/mailer"

	"github.com/google/uuid"
)

var errStorage = errors.New("storage unavailable")

type fakeReviewRepo struct {
	mu      sync.Mutex
	reviews map[uuid.UUID]*entity.Review
	failAll bool
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[uuid.UUID]*entity.Review)}
}

func (f *fakeReviewRepo) Upsert(_ context.Context, review *entity.Review) (*entity.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errStorage
	}

	saved := *review
	for _, existing := range f.reviews {
		if existing.UserID == review.UserID && existing.MovieID == review.MovieID {
			saved.ID = existing.ID
			saved.CreatedAt = existing.CreatedAt
			break
		}
	}
	f.reviews[saved.ID] = &saved

	out := saved
	return &out, nil
}

func (f *fakeReviewRepo) UpdateByOwner(_ context.Context, review *entity.Review) (*entity.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errStorage
	}

	existing, ok := f.reviews[review.ID]
	if !ok || existing.UserID != review.UserID {
		return nil, nil
	}

	updated := *review
	updated.MovieID = existing.MovieID
	updated.CreatedAt = existing.CreatedAt
	f.reviews[review.ID] = &updated

	out := updated
	return &out, nil
}

func (f *fakeReviewRepo) DeleteByOwner(_ context.Context, id, userID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return false, errStorage
	}

	existing, ok := f.reviews[id]
	if !ok || existing.UserID != userID {
		return false, nil
	}
	delete(f.reviews, id)
	return true, nil
}

func (f *fakeReviewRepo) FindByUserAndMovie(_ context.Context, userID uuid.UUID, movieID int64) (*entity.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errStorage
	}

	for _, r := range f.reviews {
		if r.UserID == userID && r.MovieID == movieID {
			out := *r
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeReviewRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errStorage
	}
	return f.byUser(userID), nil
}

func (f *fakeReviewRepo) FindPageByUserID(_ context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errStorage
	}

	all := f.byUser(userID)
	if offset >= len(all) {
		return []*entity.Review{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (f *fakeReviewRepo) CountByUserID(_ context.Context, userID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return 0, errStorage
	}
	return int64(len(f.byUser(userID))), nil
}

func (f *fakeReviewRepo) GetMovieReviewStats(_ context.Context, movieID int64) (*entity.ReviewStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errStorage
	}

	stats := &entity.ReviewStats{MovieID: movieID}
	var overall, stars float64
	for _, r := range f.reviews {
		if r.MovieID == movieID {
			stats.ReviewCount++
			overall += float64(r.Overall)
			stars += r.OverallStarRating
		}
	}
	if stats.ReviewCount > 0 {
		stats.AverageOverall = overall / float64(stats.ReviewCount)
		stats.AverageStarRating = stars / float64(stats.ReviewCount)
	}
	return stats, nil
}

// byUser returns copies, newest first. Caller holds mu.
func (f *fakeReviewRepo) byUser(userID uuid.UUID) []*entity.Review {
	out := []*entity.Review{}
	for _, r := range f.reviews {
		if r.UserID == userID {
			c := *r
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

type fakeWatchlistRepo struct {
	mu    sync.Mutex
	items []*entity.WatchlistItem
}

func newFakeWatchlistRepo() *fakeWatchlistRepo {
	return &fakeWatchlistRepo{}
}

func (f *fakeWatchlistRepo) Upsert(_ context.Context, item *entity.WatchlistItem) (*entity.WatchlistItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, existing := range f.items {
		if existing.UserID == item.UserID && existing.MovieID == item.MovieID {
			updated := *item
			updated.ID = existing.ID
			updated.AddedAt = existing.AddedAt
			f.items[i] = &updated
			out := updated
			return &out, nil
		}
	}

	saved := *item
	f.items = append(f.items, &saved)
	out := saved
	return &out, nil
}

func (f *fakeWatchlistRepo) DeleteByUserAndMovie(_ context.Context, userID uuid.UUID, movieID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, existing := range f.items {
		if existing.UserID == userID && existing.MovieID == movieID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeWatchlistRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.WatchlistItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := []*entity.WatchlistItem{}
	for _, item := range f.items {
		if item.UserID == userID {
			c := *item
			out = append(out, &c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AddedAt.After(out[j].AddedAt)
	})
	return out, nil
}

func (f *fakeWatchlistRepo) Exists(_ context.Context, userID uuid.UUID, movieID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, item := range f.items {
		if item.UserID == userID && item.MovieID == movieID {
			return true, nil
		}
	}
	return false, nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	c := *user
	f.users[user.ID] = &c
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok || u.DeletedAt != nil {
		return nil, nil
	}
	c := *u
	return &c, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.DeletedAt == nil && u.Email == strings.ToLower(email) {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.users[user.ID]; !ok {
		return repository.ErrNoRows
	}
	c := *user
	f.users[user.ID] = &c
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok || u.DeletedAt != nil {
		return repository.ErrNoRows
	}
	now := time.Now()
	u.DeletedAt = &now
	return nil
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*entity.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[uuid.UUID]*entity.Session)}
}

func (f *fakeSessionRepo) Create(_ context.Context, session *entity.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	c := *session
	f.sessions[session.Token] = &c
	return nil
}

func (f *fakeSessionRepo) FindValidSession(_ context.Context, token uuid.UUID) (*entity.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, ok := f.sessions[token]
	if !ok || !s.IsValid(time.Now()) {
		return nil, nil
	}
	c := *s
	return &c, nil
}

func (f *fakeSessionRepo) Revoke(_ context.Context, token uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, ok := f.sessions[token]
	if !ok || s.RevokedAt != nil {
		return repository.ErrNoRows
	}
	now := time.Now()
	s.RevokedAt = &now
	return nil
}

func (f *fakeSessionRepo) RevokeAllUserSessions(_ context.Context, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := time.Now()
	for _, s := range f.sessions {
		if s.UserID == userID && s.RevokedAt == nil {
			s.RevokedAt = &now
		}
	}
	return nil
}

func (f *fakeSessionRepo) CleanExpiredSessions(context.Context) (int64, error) {
	return 0, nil
}

type fakeLoginCodeRepo struct {
	mu    sync.Mutex
	codes []*entity.LoginCode
}

func (f *fakeLoginCodeRepo) Create(_ context.Context, code *entity.LoginCode) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	c := *code
	f.codes = append(f.codes, &c)
	return nil
}

func (f *fakeLoginCodeRepo) FindValidCode(_ context.Context, email, code string) (*entity.LoginCode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := len(f.codes) - 1; i >= 0; i-- {
		lc := f.codes[i]
		if lc.Email == strings.ToLower(email) && lc.Code == code && !lc.IsUsed && time.Now().Before(lc.ExpiresAt) {
			c := *lc
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeLoginCodeRepo) MarkAsUsed(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, lc := range f.codes {
		if lc.ID == id && !lc.IsUsed {
			lc.IsUsed = true
			return nil
		}
	}
	return repository.ErrNoRows
}

func (f *fakeLoginCodeRepo) InvalidateForEmail(_ context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, lc := range f.codes {
		if lc.Email == strings.ToLower(email) {
			lc.IsUsed = true
		}
	}
	return nil
}

// latest returns the newest code issued for email.
func (f *fakeLoginCodeRepo) latest(email string) *entity.LoginCode {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := len(f.codes) - 1; i >= 0; i-- {
		if f.codes[i].Email == email {
			return f.codes[i]
		}
	}
	return nil
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []mailer.Message
	err  error
}

func (f *fakeMailer) Send(_ context.Context, msg mailer.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type fakeRepos struct {
	repo      *repository.Repository
	users     *fakeUserRepo
	sessions  *fakeSessionRepo
	codes     *fakeLoginCodeRepo
	reviews   *fakeReviewRepo
	watchlist *fakeWatchlistRepo
}

func newFakeRepos() *fakeRepos {
	f := &fakeRepos{
		users:     newFakeUserRepo(),
		sessions:  newFakeSessionRepo(),
		codes:     &fakeLoginCodeRepo{},
		reviews:   newFakeReviewRepo(),
		watchlist: newFakeWatchlistRepo(),
	}
	f.repo = &repository.Repository{
		User:      f.users,
		Session:   f.sessions,
		LoginCode: f.codes,
		Review:    f.reviews,
		Watchlist: f.watchlist,
	}
	return f
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cinelog/internal/data/entity"
	"cinelog/internal/data/repository"
	"cinelog/internal/dto/request"
	"cinelog/internal/dto/response"
	"cinelog/pkg/mailer"
	"cinelog/pkg/metrics"
	"cinelog/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	RequestLoginCode(ctx context.Context, req *request.RequestLoginCodeRequest) (*response.LoginCodeSentResponse, error)
	VerifyLoginCode(ctx context.Context, req *request.VerifyLoginCodeRequest, userAgent, ipAddress string) (*response.AuthResponse, error)
	Logout(ctx context.Context, token uuid.UUID) error
}

type authService struct {
	repo   *repository.Repository // user, session & login code
	mail   mailer.Mailer
	config *utils.Config
	log    *zap.Logger
	now    func() time.Time
}

func NewAuthService(
	repo *repository.Repository,
	mail mailer.Mailer,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		mail:   mail,
		config: config,
		log:    log.With(zap.String("service", "auth")),
		now:    time.Now,
	}
}

// RequestLoginCode mails a fresh one-time code, creating the account on
// first contact. Earlier outstanding codes for the address are burned.
func (s *authService) RequestLoginCode(ctx context.Context, req *request.RequestLoginCodeRequest) (*response.LoginCodeSentResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.findOrCreateUser(ctx, email)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		s.log.Warn("Login code requested for inactive account", zap.String("user_id", user.ID.String()))
		return nil, ErrInactive
	}

	if err := s.repo.LoginCode.InvalidateForEmail(ctx, email); err != nil {
		return nil, fmt.Errorf("request login code: %w", err)
	}

	code, err := utils.GenerateOTP(s.config.OTP.Length)
	if err != nil {
		return nil, fmt.Errorf("generate login code: %w", err)
	}

	now := s.now()
	loginCode := &entity.LoginCode{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		UserID:    user.ID,
		Email:     email,
		Code:      code,
		ExpiresAt: now.Add(time.Duration(s.config.OTP.ExpiryMinutes) * time.Minute),
	}
	if err := s.repo.LoginCode.Create(ctx, loginCode); err != nil {
		return nil, fmt.Errorf("request login code: %w", err)
	}

	msg := mailer.LoginCodeMessage(email, s.config.App.Name, code, s.config.OTP.ExpiryMinutes)
	if err := s.mail.Send(ctx, msg); err != nil {
		metrics.LoginCodesSent.WithLabelValues("failed").Inc()
		s.log.Error("Failed to send login code", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("send login code: %w", err)
	}

	metrics.LoginCodesSent.WithLabelValues("sent").Inc()
	s.log.Info("Login code sent",
		zap.String("user_id", user.ID.String()),
		zap.Time("expires_at", loginCode.ExpiresAt),
	)

	return &response.LoginCodeSentResponse{
		Email:            email,
		ExpiresInMinutes: s.config.OTP.ExpiryMinutes,
	}, nil
}

// VerifyLoginCode redeems a code and opens a session. A wrong, expired or
// already redeemed code yields ErrInvalidCode.
func (s *authService) VerifyLoginCode(ctx context.Context, req *request.VerifyLoginCodeRequest, userAgent, ipAddress string) (*response.AuthResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	loginCode, err := s.repo.LoginCode.FindValidCode(ctx, email, req.Code)
	if err != nil {
		return nil, fmt.Errorf("verify login code: %w", err)
	}
	if loginCode == nil {
		s.log.Debug("Login code rejected", zap.String("email", email))
		return nil, ErrInvalidCode
	}

	// Two concurrent verifications race here; only one flips is_used.
	if err := s.repo.LoginCode.MarkAsUsed(ctx, loginCode.ID); err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, ErrInvalidCode
		}
		return nil, fmt.Errorf("verify login code: %w", err)
	}

	user, err := s.repo.User.FindByID(ctx, loginCode.UserID)
	if err != nil {
		return nil, fmt.Errorf("verify login code: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCode
	}
	if !user.IsActive {
		return nil, ErrInactive
	}

	if !user.EmailVerified {
		user.EmailVerified = true
		user.UpdatedAt = s.now()
		if err := s.repo.User.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("mark email verified: %w", err)
		}
	}

	session, err := s.createSession(ctx, user.ID, userAgent, ipAddress)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.log.Info("User signed in", zap.String("user_id", user.ID.String()))

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

func (s *authService) Logout(ctx context.Context, token uuid.UUID) error {
	if err := s.repo.Session.Revoke(ctx, token); err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return ErrUnauthenticated
		}
		return fmt.Errorf("logout: %w", err)
	}

	s.log.Info("User signed out")
	return nil
}

func (s *authService) findOrCreateUser(ctx context.Context, email string) (*entity.User, error) {
	user, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user != nil {
		return user, nil
	}

	now := s.now()
	user = &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email:    email,
		IsActive: true,
	}
	err = s.repo.User.Create(ctx, user)
	if errors.Is(err, repository.ErrDuplicate) {
		// A concurrent first sign-in for the same address created it.
		existing, findErr := s.repo.User.FindByEmail(ctx, email)
		if findErr != nil {
			return nil, fmt.Errorf("find user after conflict: %w", findErr)
		}
		if existing == nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		return existing, nil
	}
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("Account created", zap.String("user_id", user.ID.String()))
	return user, nil
}

func (s *authService) createSession(ctx context.Context, userID uuid.UUID, userAgent, ipAddress string) (*entity.Session, error) {
	now := s.now()
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		UserID:    userID,
		Token:     uuid.New(),
		UserAgent: optionalString(userAgent),
		IPAddress: optionalString(ipAddress),
		ExpiresAt: now.Add(time.Duration(s.config.Session.ExpiryHours) * time.Hour),
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

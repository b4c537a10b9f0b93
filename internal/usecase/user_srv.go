package usecase

import (
	"context"
	"fmt"
	"time"

	"cinelog/internal/data/entity"
	"cinelog/internal/data/repository"
	"cinelog/internal/dto/request"
	"cinelog/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.UserResponse, error)
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}

type userService struct {
	repo *repository.Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewUserService(repo *repository.Repository, log *zap.Logger) UserService {
	return &userService{
		repo: repo,
		log:  log.With(zap.String("service", "user")),
		now:  time.Now,
	}
}

func (us *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := us.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return us.profileResponse(ctx, user)
}

func (us *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.UserResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	user, err := us.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.DisplayName = req.DisplayName
	user.UpdatedAt = us.now()

	if err := us.repo.User.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	us.log.Info("Profile updated", zap.String("user_id", userID.String()))
	return us.profileResponse(ctx, user)
}

// DeleteAccount signs the account out everywhere, then soft-deletes it.
func (us *userService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	if err := requireAccount(userID); err != nil {
		return err
	}

	if err := us.repo.Session.RevokeAllUserSessions(ctx, userID); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}

	if err := us.repo.User.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}

	us.log.Info("Account deleted", zap.String("user_id", userID.String()))
	return nil
}

func (us *userService) findUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	if err := requireAccount(userID); err != nil {
		return nil, err
	}

	user, err := us.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", userID.String(), ErrNotFound)
	}

	return user, nil
}

func (us *userService) profileResponse(ctx context.Context, user *entity.User) (*response.UserResponse, error) {
	count, err := us.repo.Review.CountByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("count reviews: %w", err)
	}

	resp := response.UserToResponse(user, count)
	return &resp, nil
}

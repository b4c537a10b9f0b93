package response

import (
	"time"

	"cinelog/internal/data/entity"
)

type AuthResponse struct {
	UserID      string    `json:"user_id"`
	Token       string    `json:"token"`
	ExpiresAt   time.Time `json:"expires_at"`
	Email       string    `json:"email"`
	DisplayName *string   `json:"display_name,omitempty"`
	IsVerified  bool      `json:"is_verified"`
}

type LoginCodeSentResponse struct {
	Email            string `json:"email"`
	ExpiresInMinutes int    `json:"expires_in_minutes"`
}

type UserResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName *string   `json:"display_name,omitempty"`
	IsVerified  bool      `json:"is_verified"`
	ReviewCount int64     `json:"review_count"`
	CreatedAt   time.Time `json:"created_at"`
}

func UserToResponse(user *entity.User, reviewCount int64) UserResponse {
	return UserResponse{
		ID:          user.ID.String(),
		Email:       user.Email,
		DisplayName: user.DisplayName,
		IsVerified:  user.EmailVerified,
		ReviewCount: reviewCount,
		CreatedAt:   user.CreatedAt,
	}
}

func AuthToResponse(user *entity.User, session *entity.Session) AuthResponse {
	resp := AuthResponse{
		UserID:      user.ID.String(),
		Email:       user.Email,
		DisplayName: user.DisplayName,
		IsVerified:  user.EmailVerified,
	}

	if session != nil {
		resp.Token = session.Token.String()
		resp.ExpiresAt = session.ExpiresAt
	}

	return resp
}

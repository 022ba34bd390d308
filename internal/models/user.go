package models

import (
	"time"

	"github.com/dgrijalva/jwt-go"
)

type User struct {
	ID         int       `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone,omitempty"`
	Password   string    `json:"password,omitempty"`
	Role       string    `json:"role"`
	Rating     float64   `json:"rating"`
	IsVerified bool      `json:"is_verified"`
	AvatarPath *string   `json:"avatar_path,omitempty"`
	FCMToken   *string   `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

// UserSummary is the short user shape embedded in trip and request responses.
type UserSummary struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Rating     float64 `json:"rating"`
	IsVerified bool    `json:"is_verified"`
	AvatarPath *string `json:"avatar_path,omitempty"`
}

type Claims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.StandardClaims
}

type Session struct {
	ID           int       `json:"id"`
	UserID       int       `json:"user_id"`
	Role         string    `json:"role"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
}

type SignUpRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User represents a local account on this instance
type User struct {
	ID           string    `json:"id" gorm:"primaryKey;size:36"`
	Username     string    `json:"username" gorm:"size:30;uniqueIndex"`
	Email        string    `json:"-" gorm:"size:255;uniqueIndex"` // Never exposed in API responses
	DisplayName  string    `json:"display_name" gorm:"size:50"`
	Bio          string    `json:"bio" gorm:"size:500"`
	AvatarURL    string    `json:"avatar_url"`
	IsVerified   bool      `json:"is_verified" gorm:"default:false"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	PasswordHash string    `json:"-"` // Store bcrypt hash, ignore for JSON serialization
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PublicProfile is the subset of user fields safe to embed in other resources
type PublicProfile struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
	IsVerified  bool   `json:"is_verified"`
}

// Public returns the public view of the user
func (u *User) Public() PublicProfile {
	return PublicProfile{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
		IsVerified:  u.IsVerified,
	}
}

// SignupRequest defines the request body for local account registration
type SignupRequest struct {
	Username    string `json:"username" validate:"required,min=2,max=30"`
	Email       string `json:"email" validate:"required,email"`
	DisplayName string `json:"display_name" validate:"omitempty,max=50"`
	Password    string `json:"password" validate:"required,min=8"`
}

// SigninRequest defines the request body for local authentication
type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserRequest defines the request body for profile updates
type UpdateUserRequest struct {
	DisplayName string `json:"display_name,omitempty" validate:"omitempty,max=50"`
	Bio         string `json:"bio,omitempty" validate:"omitempty,max=500"`
	AvatarURL   string `json:"avatar_url,omitempty" validate:"omitempty,url"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model     `json:"-"`
	ID             uint       `json:"id" gorm:"primaryKey"`
	Username       string     `json:"username" gorm:"uniqueIndex;size:50"`
	Email          string     `json:"email" gorm:"uniqueIndex"` // Ensure email is unique across all users
	Password       string     `json:"-"`                        // Store hashed password, ignore for JSON serialization
	FirebaseUID    string     `json:"firebase_uid,omitempty" gorm:"index"` // Link to Firebase User UID for OAuth sign-in; empty for password accounts
	IsAdmin        bool       `json:"is_admin" gorm:"default:false"`
	SuspendedUntil *time.Time `json:"suspended_until,omitempty"`

	Profile *Profile `json:"profile,omitempty" gorm:"foreignKey:UserID"`
}

// Suspended reports whether the user is suspended at the given instant.
// Expiry is a point-in-time comparison; nothing clears the column eagerly.
func (u *User) Suspended(now time.Time) bool {
	return u.SuspendedUntil != nil && now.Before(*u.SuspendedUntil)
}

// Profile holds the public display fields shown next to posts and comments
type Profile struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	UserID    uint   `json:"user_id" gorm:"uniqueIndex"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
	Bio       string `json:"bio"`
}

// Otp holds a one-time code issued for a password reset
type Otp struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"index"`
	Code      string    `json:"-" gorm:"size:6"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type SigninRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// FirebaseLoginRequest defines the request body for OAuth login via a Firebase ID token
type FirebaseLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

type RequestOtpRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Code        string `json:"code" validate:"required,len=6"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Admin  bool   `json:"admin"`
	jwt.RegisteredClaims
}

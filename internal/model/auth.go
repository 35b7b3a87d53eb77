package model

import (
	"time"

	"github.com/google/uuid"
)

// AuthRequest types
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Email          string     `json:"email" binding:"required,email"`
	Password       string     `json:"password" binding:"required,min=6"`
	Role           Role       `json:"role" binding:"required,oneof=patient provider"`
	FirstName      string     `json:"first_name" binding:"required"`
	LastName       string     `json:"last_name" binding:"required"`
	DateOfBirth    *time.Time `json:"date_of_birth" binding:"required,pastdate"`
	Phone          string     `json:"phone" binding:"required"`
	ConsentGiven   bool       `json:"consent_given"`
	LicenseNumber  string     `json:"license_number"`
	Specialization string     `json:"specialization"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// AuthResponse types
type TokenResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	Account      *PublicAccount `json:"account,omitempty"`
}

// TokenClaims is the resolved caller identity set by the auth middleware.
type TokenClaims struct {
	AccountID uuid.UUID
	Email     string
	Role      Role
}

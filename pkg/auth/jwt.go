package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// Claims carries the authenticated account identity inside a JWT.
type Claims struct {
	jwt.RegisteredClaims
	AccountID uuid.UUID `json:"account_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
}

// JWTConfig holds signing configuration for both token kinds.
type JWTConfig struct {
	Secret             string
	RefreshSecret      string
	ExpiryHours        int
	RefreshExpiryHours int
}

// JWTManager issues and validates access and refresh tokens.
type JWTManager struct {
	cfg JWTConfig
}

func NewJWTManager(cfg JWTConfig) *JWTManager {
	if cfg.ExpiryHours <= 0 {
		cfg.ExpiryHours = 24
	}
	if cfg.RefreshExpiryHours <= 0 {
		cfg.RefreshExpiryHours = 24 * 7
	}
	return &JWTManager{cfg: cfg}
}

func (m *JWTManager) GenerateAccessToken(accountID uuid.UUID, email, role string) (string, error) {
	return m.generate(accountID, email, role, m.cfg.Secret, time.Duration(m.cfg.ExpiryHours)*time.Hour)
}

func (m *JWTManager) GenerateRefreshToken(accountID uuid.UUID, email, role string) (string, error) {
	return m.generate(accountID, email, role, m.cfg.RefreshSecret, time.Duration(m.cfg.RefreshExpiryHours)*time.Hour)
}

func (m *JWTManager) generate(accountID uuid.UUID, email, role, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		AccountID: accountID,
		Email:     email,
		Role:      role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (m *JWTManager) ValidateAccessToken(token string) (*Claims, error) {
	return m.validate(token, m.cfg.Secret)
}

func (m *JWTManager) ValidateRefreshToken(token string) (*Claims, error) {
	return m.validate(token, m.cfg.RefreshSecret)
}

func (m *JWTManager) validate(tokenStr, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

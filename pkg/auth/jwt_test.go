package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testManager() *JWTManager {
	return NewJWTManager(JWTConfig{
		Secret:             "access-secret",
		RefreshSecret:      "refresh-secret",
		ExpiryHours:        1,
		RefreshExpiryHours: 24,
	})
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := testManager()
	accountID := uuid.New()

	token, err := m.GenerateAccessToken(accountID, "user@example.com", "patient")
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, accountID, claims.AccountID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "patient", claims.Role)
	assert.Equal(t, accountID.String(), claims.Subject)
}

func TestTokenKindsDoNotCrossValidate(t *testing.T) {
	m := testManager()
	accountID := uuid.New()

	access, err := m.GenerateAccessToken(accountID, "user@example.com", "provider")
	require.NoError(t, err)
	refresh, err := m.GenerateRefreshToken(accountID, "user@example.com", "provider")
	require.NoError(t, err)

	_, err = m.ValidateRefreshToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.ValidateAccessToken(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsTamperedToken(t *testing.T) {
	m := testManager()

	token, err := m.GenerateAccessToken(uuid.New(), "user@example.com", "patient")
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(token + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewJWTManager(JWTConfig{Secret: "different-secret", RefreshSecret: "r"})
	_, err = other.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiredToken(t *testing.T) {
	// Negative expiry is normalized to the default, so build an expired token
	// through the raw generate path.
	m := testManager()
	token, err := m.generate(uuid.New(), "user@example.com", "patient", m.cfg.Secret, -1)
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

package api_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterLoginFlow(t *testing.T) {
	account := registerAccount(t, "patient")
	require.NotEmpty(t, account.Token)

	loginResp := makeRequest("POST", "/auth/login", map[string]interface{}{
		"email":    account.Email,
		"password": "sup3rsecret",
	}, "")
	assert.True(t, loginResp.IsSuccess())
	assert.NotEmpty(t, loginResp.Data["access_token"])
	assert.NotEmpty(t, loginResp.Data["refresh_token"])
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	account := registerAccount(t, "patient")

	resp := makeRequest("POST", "/auth/register", map[string]interface{}{
		"email":         account.Email,
		"password":      "sup3rsecret",
		"role":          "patient",
		"first_name":    "Test",
		"last_name":     "User",
		"date_of_birth": "1990-01-01T00:00:00Z",
		"phone":         "+15550100",
	}, "")
	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestLoginBadPassword(t *testing.T) {
	account := registerAccount(t, "patient")

	resp := makeRequest("POST", "/auth/login", map[string]interface{}{
		"email":    account.Email,
		"password": "wrong-password",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestRefreshToken(t *testing.T) {
	account := registerAccount(t, "provider")

	loginResp := makeRequest("POST", "/auth/login", map[string]interface{}{
		"email":    account.Email,
		"password": "sup3rsecret",
	}, "")
	require.True(t, loginResp.IsSuccess())

	refreshResp := makeRequest("POST", "/auth/refresh-token", map[string]interface{}{
		"refresh_token": loginResp.Data["refresh_token"],
	}, "")
	assert.True(t, refreshResp.IsSuccess())
	assert.NotEmpty(t, refreshResp.Data["access_token"])
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	resp := makeRequest("GET", "/users/profile", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = makeRequest("GET", "/users/profile", nil, "garbage-token")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestRoleSeparation(t *testing.T) {
	provider, patient := registerPair(t)

	// Patients cannot reach the provider surface.
	resp := makeRequest("GET", "/providers/patients", nil, patient.Token)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	// Providers cannot reach the patient surface.
	resp = makeRequest("GET", "/patients/active-goals", nil, provider.Token)
	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func TestConsentFlow(t *testing.T) {
	account := registerAccount(t, "patient")

	resp := makeRequest("POST", "/users/give-consent", nil, account.Token)
	assert.True(t, resp.IsSuccess())

	status := makeRequest("GET", "/users/consent-status", nil, account.Token)
	require.True(t, status.IsSuccess())
	assert.Equal(t, true, status.Data["consent_given"])
}

func TestLogout(t *testing.T) {
	account := registerAccount(t, "patient")

	resp := makeRequest("POST", "/auth/logout", nil, account.Token)
	assert.True(t, resp.IsSuccess())
}

func TestRegisterFutureDateOfBirth(t *testing.T) {
	resp := makeRequest("POST", "/auth/register", map[string]interface{}{
		"email":         uniqueEmail("future"),
		"password":      "sup3rsecret",
		"role":          "patient",
		"first_name":    "Test",
		"last_name":     "User",
		"date_of_birth": time.Now().AddDate(1, 0, 0).Format(time.RFC3339),
		"phone":         "+15550100",
	}, "")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

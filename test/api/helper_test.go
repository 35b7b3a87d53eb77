package api_test

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
)

var emailSeq atomic.Int64

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s_%d@example.com", prefix, emailSeq.Add(1))
}

type testAccount struct {
	ID    string
	Email string
	Token string
}

// registerAccount registers through the API and returns the issued identity.
func registerAccount(t *testing.T, role string) testAccount {
	t.Helper()

	email := uniqueEmail(role)
	body := map[string]interface{}{
		"email":         email,
		"password":      "sup3rsecret",
		"role":          role,
		"first_name":    "Test",
		"last_name":     "User",
		"date_of_birth": "1990-01-01T00:00:00Z",
		"phone":         "+15550100",
		"consent_given": true,
	}
	if role == "provider" {
		body["license_number"] = "MD-0001"
		body["specialization"] = "general"
	}

	resp := makeRequest("POST", "/auth/register", body, "")
	if !resp.IsSuccess() {
		t.Fatalf("failed to register %s: %d %s", role, resp.Code, resp.Message)
	}

	account, ok := resp.Data["account"].(map[string]interface{})
	if !ok {
		t.Fatalf("register response missing account: %s", resp.RawData)
	}

	return testAccount{
		ID:    account["id"].(string),
		Email: email,
		Token: resp.Data["access_token"].(string),
	}
}

// registerPair registers a provider and a patient assigned to them.
func registerPair(t *testing.T) (provider, patient testAccount) {
	t.Helper()

	provider = registerAccount(t, "provider")
	patient = registerAccount(t, "patient")

	accounts.assign(uuid.MustParse(patient.ID), uuid.MustParse(provider.ID))
	return provider, patient
}

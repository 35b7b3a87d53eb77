package model

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RolePatient  Role = "patient"
	RoleProvider Role = "provider"
)

// Profile holds personal details shared by both roles. Email and phone are
// stored encrypted; the structs in memory always carry plaintext.
type Profile struct {
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	Phone       string     `json:"phone,omitempty"`
}

type EmergencyContact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// PatientInfo is present on patient accounts only.
type PatientInfo struct {
	AssignedProvider *uuid.UUID       `json:"assigned_provider,omitempty"`
	Allergies        []string         `json:"allergies"`
	Medications      []string         `json:"medications"`
	EmergencyContact *EmergencyContact `json:"emergency_contact,omitempty"`
}

// ProviderInfo is present on provider accounts only.
type ProviderInfo struct {
	LicenseNumber  string      `json:"license_number"`
	Specialization string      `json:"specialization"`
	Patients       []uuid.UUID `json:"patients"`
}

// Account is the identity record for both roles. Exactly one of PatientInfo
// and ProviderInfo is non-nil, matching Role.
type Account struct {
	Base
	Email        string        `json:"email"`
	PasswordHash string        `json:"-"`
	Role         Role          `json:"role"`
	Profile      Profile       `json:"profile"`
	PatientInfo  *PatientInfo  `json:"patient_info,omitempty"`
	ProviderInfo *ProviderInfo `json:"provider_info,omitempty"`
	ConsentGiven bool          `json:"consent_given"`
	LastLogin    *time.Time    `json:"last_login,omitempty"`
	IsActive     bool          `json:"is_active"`
}

// PublicAccount is the caller-facing view returned by auth and profile
// endpoints.
type PublicAccount struct {
	ID           uuid.UUID     `json:"id"`
	Email        string        `json:"email"`
	Role         Role          `json:"role"`
	Profile      Profile       `json:"profile"`
	PatientInfo  *PatientInfo  `json:"patient_info,omitempty"`
	ProviderInfo *ProviderInfo `json:"provider_info,omitempty"`
	ConsentGiven bool          `json:"consent_given"`
}

func (a *Account) Public() *PublicAccount {
	return &PublicAccount{
		ID:           a.ID,
		Email:        a.Email,
		Role:         a.Role,
		Profile:      a.Profile,
		PatientInfo:  a.PatientInfo,
		ProviderInfo: a.ProviderInfo,
		ConsentGiven: a.ConsentGiven,
	}
}

type UpdateProfileRequest struct {
	FirstName        *string           `json:"first_name"`
	LastName         *string           `json:"last_name"`
	Phone            *string           `json:"phone"`
	Allergies        []string          `json:"allergies"`
	Medications      []string          `json:"medications"`
	EmergencyContact *EmergencyContact `json:"emergency_contact"`
}

package account

import (
	"context"

	"github.com/google/uuid"

	"github.com/HarshaPerabathula/backend-hcl-wellness/internal/model"
	"github.com/HarshaPerabathula/backend-hcl-wellness/internal/repository"
	apperrors "github.com/HarshaPerabathula/backend-hcl-wellness/pkg/errors"
)

// Service covers the self-service profile and consent operations.
type Service struct {
	accounts repository.AccountRepository
}

func NewService(accounts repository.AccountRepository) *Service {
	return &Service{accounts: accounts}
}

func (s *Service) Profile(ctx context.Context, id uuid.UUID) (*model.PublicAccount, error) {
	account, err := s.accounts.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("account", err)
	}
	return account.Public(), nil
}

// UpdateProfile applies partial profile changes. The medical fields
// (allergies, medications, emergency contact) only apply to patient accounts.
func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, req *model.UpdateProfileRequest) (*model.PublicAccount, error) {
	account, err := s.accounts.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("account", err)
	}

	if req.FirstName != nil {
		account.Profile.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		account.Profile.LastName = *req.LastName
	}
	if req.Phone != nil {
		account.Profile.Phone = *req.Phone
	}

	if account.Role == model.RolePatient && account.PatientInfo != nil {
		if req.Allergies != nil {
			account.PatientInfo.Allergies = req.Allergies
		}
		if req.Medications != nil {
			account.PatientInfo.Medications = req.Medications
		}
		if req.EmergencyContact != nil {
			account.PatientInfo.EmergencyContact = req.EmergencyContact
		}
	}

	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, err
	}
	return account.Public(), nil
}

func (s *Service) ConsentStatus(ctx context.Context, id uuid.UUID) (bool, error) {
	account, err := s.accounts.Get(ctx, id)
	if err != nil {
		return false, apperrors.NotFound("account", err)
	}
	return account.ConsentGiven, nil
}

func (s *Service) GiveConsent(ctx context.Context, id uuid.UUID) error {
	return s.accounts.SetConsent(ctx, id, true)
}

package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/HarshaPerabathula/backend-hcl-wellness/internal/model"
	"github.com/HarshaPerabathula/backend-hcl-wellness/internal/repository"
	"github.com/HarshaPerabathula/backend-hcl-wellness/pkg/auth"
	apperrors "github.com/HarshaPerabathula/backend-hcl-wellness/pkg/errors"
	"github.com/HarshaPerabathula/backend-hcl-wellness/pkg/security"
)

// Service handles registration, login and token lifecycle.
type Service struct {
	accounts repository.AccountRepository
	jwt      *auth.JWTManager
	hasher   security.PasswordHasher
}

func NewService(accounts repository.AccountRepository, jwt *auth.JWTManager, hasher security.PasswordHasher) *Service {
	return &Service{
		accounts: accounts,
		jwt:      jwt,
		hasher:   hasher,
	}
}

// Register creates an account with the role-specific variant initialized:
// providers get provider info with an empty roster, patients get patient info
// with empty allergy/medication lists.
func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.TokenResponse, error) {
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.BadRequest("invalid password", err)
	}

	account := &model.Account{
		Base:         model.Base{ID: uuid.New()},
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
		Profile: model.Profile{
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			DateOfBirth: req.DateOfBirth,
			Phone:       req.Phone,
		},
		ConsentGiven: req.ConsentGiven,
		IsActive:     true,
	}

	if req.Role == model.RoleProvider {
		account.ProviderInfo = &model.ProviderInfo{
			LicenseNumber:  req.LicenseNumber,
			Specialization: req.Specialization,
			Patients:       []uuid.UUID{},
		}
	} else {
		account.PatientInfo = &model.PatientInfo{
			Allergies:   []string{},
			Medications: []string{},
		}
	}

	// The repository surfaces a Conflict on the email uniqueness constraint,
	// which closes the check-then-insert race a pre-read would leave open.
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	return s.issueTokens(account)
}

// Login verifies credentials and refreshes the last-login timestamp.
func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	account, err := s.accounts.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperrors.Unauthorized(err)
	}

	if err := s.hasher.Compare(account.PasswordHash, req.Password); err != nil {
		return nil, apperrors.Unauthorized(err)
	}

	if err := s.accounts.UpdateLastLogin(ctx, account.ID, time.Now()); err != nil {
		return nil, err
	}

	return s.issueTokens(account)
}

// Refresh exchanges a valid refresh token for a new token pair.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*model.TokenResponse, error) {
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.Unauthorized(err)
	}

	account, err := s.accounts.Get(ctx, claims.AccountID)
	if err != nil {
		return nil, apperrors.Unauthorized(err)
	}

	return s.issueTokens(account)
}

// ValidateToken resolves the caller identity from a bearer token.
func (s *Service) ValidateToken(ctx context.Context, token string) (*model.TokenClaims, error) {
	claims, err := s.jwt.ValidateAccessToken(token)
	if err != nil {
		return nil, apperrors.Unauthorized(err)
	}
	return &model.TokenClaims{
		AccountID: claims.AccountID,
		Email:     claims.Email,
		Role:      model.Role(claims.Role),
	}, nil
}

func (s *Service) issueTokens(account *model.Account) (*model.TokenResponse, error) {
	access, err := s.jwt.GenerateAccessToken(account.ID, account.Email, string(account.Role))
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	refresh, err := s.jwt.GenerateRefreshToken(account.ID, account.Email, string(account.Role))
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return &model.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		Account:      account.Public(),
	}, nil
}

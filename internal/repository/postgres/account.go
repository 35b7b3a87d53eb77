package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/HarshaPerabathula/backend-hcl-wellness/internal/model"
	"github.com/HarshaPerabathula/backend-hcl-wellness/internal/repository"
	apperrors "github.com/HarshaPerabathula/backend-hcl-wellness/pkg/errors"
	"github.com/HarshaPerabathula/backend-hcl-wellness/pkg/security"
)

const uniqueViolation = "23505"

// accountRepository is the encryption boundary for identity data: email and
// phone are encrypted on write and decrypted on read, and lookups by email go
// through a deterministic fingerprint column.
type accountRepository struct {
	db  *sqlx.DB
	enc security.Encryptor
}

func NewAccountRepository(db *sqlx.DB, enc security.Encryptor) repository.AccountRepository {
	return &accountRepository{db: db, enc: enc}
}

// accountRow is the persisted shape; sensitive fields are ciphertext.
type accountRow struct {
	ID           uuid.UUID      `db:"id"`
	EmailEnc     string         `db:"email_enc"`
	EmailHash    string         `db:"email_hash"`
	PasswordHash string         `db:"password_hash"`
	Role         string         `db:"role"`
	Profile      []byte         `db:"profile"`
	PatientInfo  []byte         `db:"patient_info"`
	ProviderInfo []byte         `db:"provider_info"`
	ConsentGiven bool           `db:"consent_given"`
	LastLogin    sql.NullTime   `db:"last_login"`
	IsActive     bool           `db:"is_active"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

func (r *accountRepository) encode(a *model.Account) (*accountRow, error) {
	emailEnc, err := r.enc.EncryptString(a.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt email: %w", err)
	}

	profile := a.Profile
	profile.Phone, err = r.enc.EncryptString(a.Profile.Phone)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt phone: %w", err)
	}
	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal profile: %w", err)
	}

	row := &accountRow{
		ID:           a.ID,
		EmailEnc:     emailEnc,
		EmailHash:    security.Fingerprint(a.Email),
		PasswordHash: a.PasswordHash,
		Role:         string(a.Role),
		Profile:      profileJSON,
		ConsentGiven: a.ConsentGiven,
		IsActive:     a.IsActive,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
	if a.LastLogin != nil {
		row.LastLogin = sql.NullTime{Time: *a.LastLogin, Valid: true}
	}
	if a.PatientInfo != nil {
		if row.PatientInfo, err = json.Marshal(a.PatientInfo); err != nil {
			return nil, fmt.Errorf("failed to marshal patient info: %w", err)
		}
	}
	if a.ProviderInfo != nil {
		if row.ProviderInfo, err = json.Marshal(a.ProviderInfo); err != nil {
			return nil, fmt.Errorf("failed to marshal provider info: %w", err)
		}
	}
	return row, nil
}

func (r *accountRepository) decode(row *accountRow) (*model.Account, error) {
	email, err := r.enc.DecryptString(row.EmailEnc)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt email: %w", err)
	}

	a := &model.Account{
		Base: model.Base{
			ID:        row.ID,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		},
		Email:        email,
		PasswordHash: row.PasswordHash,
		Role:         model.Role(row.Role),
		ConsentGiven: row.ConsentGiven,
		IsActive:     row.IsActive,
	}
	if row.LastLogin.Valid {
		t := row.LastLogin.Time
		a.LastLogin = &t
	}

	if len(row.Profile) > 0 {
		if err := json.Unmarshal(row.Profile, &a.Profile); err != nil {
			return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
		}
		if a.Profile.Phone, err = r.enc.DecryptString(a.Profile.Phone); err != nil {
			return nil, fmt.Errorf("failed to decrypt phone: %w", err)
		}
	}
	if len(row.PatientInfo) > 0 {
		a.PatientInfo = &model.PatientInfo{}
		if err := json.Unmarshal(row.PatientInfo, a.PatientInfo); err != nil {
			return nil, fmt.Errorf("failed to unmarshal patient info: %w", err)
		}
	}
	if len(row.ProviderInfo) > 0 {
		a.ProviderInfo = &model.ProviderInfo{}
		if err := json.Unmarshal(row.ProviderInfo, a.ProviderInfo); err != nil {
			return nil, fmt.Errorf("failed to unmarshal provider info: %w", err)
		}
	}
	return a, nil
}

func (r *accountRepository) Create(ctx context.Context, account *model.Account) error {
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt

	row, err := r.encode(account)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO accounts (id, email_enc, email_hash, password_hash, role, profile,
			patient_info, provider_info, consent_given, last_login, is_active, created_at, updated_at)
		VALUES (:id, :email_enc, :email_hash, :password_hash, :role, :profile,
			:patient_info, :provider_info, :consent_given, :last_login, :is_active, :created_at, :updated_at)
	`
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == uniqueViolation {
			return apperrors.Conflict("email already registered", err)
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (r *accountRepository) Get(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	var row accountRow
	if err := r.db.GetContext(ctx, &row, `SELECT * FROM accounts WHERE id = $1`, id); err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return r.decode(&row)
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	var row accountRow
	err := r.db.GetContext(ctx, &row,
		`SELECT * FROM accounts WHERE email_hash = $1`, security.Fingerprint(email))
	if err != nil {
		return nil, fmt.Errorf("failed to get account by email: %w", err)
	}
	return r.decode(&row)
}

func (r *accountRepository) Update(ctx context.Context, account *model.Account) error {
	account.UpdatedAt = time.Now()

	row, err := r.encode(account)
	if err != nil {
		return err
	}

	query := `
		UPDATE accounts
		SET email_enc = :email_enc, email_hash = :email_hash, password_hash = :password_hash,
			profile = :profile, patient_info = :patient_info, provider_info = :provider_info,
			consent_given = :consent_given, is_active = :is_active, updated_at = :updated_at
		WHERE id = :id
	`
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	return nil
}

func (r *accountRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET last_login = $1, updated_at = $2 WHERE id = $3`, at, time.Now(), id)
	return err
}

func (r *accountRepository) SetConsent(ctx context.Context, id uuid.UUID, given bool) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET consent_given = $1, updated_at = $2 WHERE id = $3`, given, time.Now(), id)
	return err
}

func (r *accountRepository) GetAssignedPatient(ctx context.Context, patientID, providerID uuid.UUID) (*model.Account, error) {
	var row accountRow
	query := `
		SELECT * FROM accounts
		WHERE id = $1 AND role = 'patient'
		  AND patient_info->>'assigned_provider' = $2
	`
	if err := r.db.GetContext(ctx, &row, query, patientID, providerID.String()); err != nil {
		return nil, fmt.Errorf("failed to get assigned patient: %w", err)
	}
	return r.decode(&row)
}

func (r *accountRepository) ListPatientsForProvider(ctx context.Context, providerID uuid.UUID) ([]*model.Account, error) {
	var rows []accountRow
	query := `
		SELECT * FROM accounts
		WHERE role = 'patient' AND patient_info->>'assigned_provider' = $1
		ORDER BY created_at
	`
	if err := r.db.SelectContext(ctx, &rows, query, providerID.String()); err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}

	accounts := make([]*model.Account, 0, len(rows))
	for i := range rows {
		a, err := r.decode(&rows[i])
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, nil
}

package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/HarshaPerabathula/backend-hcl-wellness/internal/model"
)

// All repository interfaces in one file
type (
	// AccountRepository handles identity records. Implementations own the
	// field-encryption boundary: Account structs always carry plaintext
	// email/phone, rows always carry ciphertext.
	AccountRepository interface {
		Create(ctx context.Context, account *model.Account) error
		Get(ctx context.Context, id uuid.UUID) (*model.Account, error)
		GetByEmail(ctx context.Context, email string) (*model.Account, error)
		Update(ctx context.Context, account *model.Account) error
		UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
		SetConsent(ctx context.Context, id uuid.UUID, given bool) error
		// GetAssignedPatient returns the patient only if it exists, has the
		// patient role and is assigned to the given provider.
		GetAssignedPatient(ctx context.Context, patientID, providerID uuid.UUID) (*model.Account, error)
		ListPatientsForProvider(ctx context.Context, providerID uuid.UUID) ([]*model.Account, error)
	}

	GoalRepository interface {
		Create(ctx context.Context, goal *model.WellnessGoal) error
		Get(ctx context.Context, id uuid.UUID) (*model.WellnessGoal, error)
		// GetForPatient returns the goal only if owned by the patient.
		GetForPatient(ctx context.Context, id, patientID uuid.UUID) (*model.WellnessGoal, error)
		// GetForProvider returns the goal only if assigned by the provider.
		GetForProvider(ctx context.Context, id, providerID uuid.UUID) (*model.WellnessGoal, error)
		Update(ctx context.Context, goal *model.WellnessGoal) error
		UpdateAggregates(ctx context.Context, id uuid.UUID, progress model.GoalProgress) error
		ListActive(ctx context.Context, patientID uuid.UUID) ([]*model.WellnessGoal, error)
		ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.WellnessGoal, error)
		// DeleteCascade removes the goal and every progress row referencing
		// it in one transaction.
		DeleteCascade(ctx context.Context, id uuid.UUID) error
	}

	ProgressRepository interface {
		// Upsert inserts or overwrites the row keyed by
		// (patient_id, goal_id, date) and returns the stored record.
		Upsert(ctx context.Context, rec *model.DailyProgress) (*model.DailyProgress, error)
		ListForGoal(ctx context.Context, goalID uuid.UUID) ([]*model.DailyProgress, error)
		RecentForGoal(ctx context.Context, goalID uuid.UUID, limit int) ([]*model.DailyProgress, error)
		List(ctx context.Context, filter *model.ProgressFilter) ([]*model.DailyProgress, error)
		ListForPatientOnDate(ctx context.Context, patientID uuid.UUID, date time.Time) ([]*model.DailyProgress, error)
	}

	CareRepository interface {
		Create(ctx context.Context, item *model.PreventiveCare) error
		ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.PreventiveCare, error)
		ListUpcoming(ctx context.Context, patientID uuid.UUID, from time.Time, limit int) ([]*model.PreventiveCare, error)
		// ListOverdueScheduled returns items still in scheduled status whose
		// scheduled date is before asOf.
		ListOverdueScheduled(ctx context.Context, patientID uuid.UUID, asOf time.Time) ([]*model.PreventiveCare, error)
		// MarkOverdue flips matching items to overdue. The filter re-checks
		// scheduled status at write time so a concurrent completion wins.
		MarkOverdue(ctx context.Context, patientID uuid.UUID, asOf time.Time) (int64, error)
		// CompleteForPatient / CompleteForProvider update the item matched by
		// id plus the role-specific ownership column; both return
		// sql.ErrNoRows when nothing matches.
		CompleteForPatient(ctx context.Context, id, patientID uuid.UUID, completedDate time.Time, notes string) (*model.PreventiveCare, error)
		CompleteForProvider(ctx context.Context, id, providerID uuid.UUID, completedDate time.Time, notes string) (*model.PreventiveCare, error)
		// Reschedule moves the item and forces status back to scheduled.
		Reschedule(ctx context.Context, id, patientID uuid.UUID, newDate time.Time) (*model.PreventiveCare, error)
		// ListDueForReminder returns scheduled items inside the reminder
		// window that have no reminder recorded yet.
		ListDueForReminder(ctx context.Context, from, to time.Time) ([]*model.PreventiveCare, error)
		AppendReminder(ctx context.Context, id uuid.UUID, reminder model.CareReminder) error
	}

	HealthMetricsRepository interface {
		// Upsert overwrites the row keyed by (patient_id, date).
		Upsert(ctx context.Context, rec *model.HealthMetrics) (*model.HealthMetrics, error)
		List(ctx context.Context, patientID uuid.UUID, from, to *time.Time) ([]*model.HealthMetrics, error)
	}

	TipRepository interface {
		Create(ctx context.Context, tip *model.HealthTip) error
		ListActive(ctx context.Context, category *model.TipCategory) ([]*model.HealthTip, error)
	}
)

package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/HarshaPerabathula/backend-hcl-wellness/internal/model"
	"github.com/HarshaPerabathula/backend-hcl-wellness/internal/repository"
)

type careRepository struct {
	db *sqlx.DB
}

func NewCareRepository(db *sqlx.DB) repository.CareRepository {
	return &careRepository{db: db}
}

func (r *careRepository) Create(ctx context.Context, item *model.PreventiveCare) error {
	query := `
		INSERT INTO preventive_care (id, patient_id, provider_id, care_type, scheduled_date,
			completed_date, status, priority, reminders, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	if item.Reminders == nil {
		item.Reminders = model.CareReminders{}
	}

	_, err := r.db.ExecContext(ctx, query,
		item.ID,
		item.PatientID,
		item.ProviderID,
		item.CareType,
		item.ScheduledDate,
		item.CompletedDate,
		item.Status,
		item.Priority,
		item.Reminders,
		item.Notes,
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create care item: %w", err)
	}
	return nil
}

func (r *careRepository) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.PreventiveCare, error) {
	var items []*model.PreventiveCare
	query := `SELECT * FROM preventive_care WHERE patient_id = $1 ORDER BY scheduled_date`
	if err := r.db.SelectContext(ctx, &items, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list care items: %w", err)
	}
	return items, nil
}

func (r *careRepository) ListUpcoming(ctx context.Context, patientID uuid.UUID, from time.Time, limit int) ([]*model.PreventiveCare, error) {
	var items []*model.PreventiveCare
	query := `
		SELECT * FROM preventive_care
		WHERE patient_id = $1 AND status = 'scheduled' AND scheduled_date >= $2
		ORDER BY scheduled_date LIMIT $3
	`
	if err := r.db.SelectContext(ctx, &items, query, patientID, from, limit); err != nil {
		return nil, fmt.Errorf("failed to list upcoming care: %w", err)
	}
	return items, nil
}

func (r *careRepository) ListOverdueScheduled(ctx context.Context, patientID uuid.UUID, asOf time.Time) ([]*model.PreventiveCare, error) {
	var items []*model.PreventiveCare
	query := `
		SELECT * FROM preventive_care
		WHERE patient_id = $1 AND status = 'scheduled' AND scheduled_date < $2
		ORDER BY scheduled_date
	`
	if err := r.db.SelectContext(ctx, &items, query, patientID, asOf); err != nil {
		return nil, fmt.Errorf("failed to list overdue care: %w", err)
	}
	return items, nil
}

// MarkOverdue re-checks scheduled status in the write filter: an item
// completed between the sweep's read and this write keeps its completion.
func (r *careRepository) MarkOverdue(ctx context.Context, patientID uuid.UUID, asOf time.Time) (int64, error) {
	query := `
		UPDATE preventive_care
		SET status = 'overdue', updated_at = $3
		WHERE patient_id = $1 AND status = 'scheduled' AND scheduled_date < $2
	`
	res, err := r.db.ExecContext(ctx, query, patientID, asOf, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to mark care items overdue: %w", err)
	}
	return res.RowsAffected()
}

func (r *careRepository) CompleteForPatient(ctx context.Context, id, patientID uuid.UUID, completedDate time.Time, notes string) (*model.PreventiveCare, error) {
	return r.complete(ctx, id, "patient_id", patientID, completedDate, notes)
}

func (r *careRepository) CompleteForProvider(ctx context.Context, id, providerID uuid.UUID, completedDate time.Time, notes string) (*model.PreventiveCare, error) {
	return r.complete(ctx, id, "provider_id", providerID, completedDate, notes)
}

func (r *careRepository) complete(ctx context.Context, id uuid.UUID, ownerColumn string, ownerID uuid.UUID, completedDate time.Time, notes string) (*model.PreventiveCare, error) {
	query := fmt.Sprintf(`
		UPDATE preventive_care
		SET status = 'completed', completed_date = $3, notes = $4, updated_at = $5
		WHERE id = $1 AND %s = $2
		RETURNING *
	`, ownerColumn)

	var item model.PreventiveCare
	err := r.db.GetContext(ctx, &item, query, id, ownerID, completedDate, notes, time.Now())
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *careRepository) Reschedule(ctx context.Context, id, patientID uuid.UUID, newDate time.Time) (*model.PreventiveCare, error) {
	query := `
		UPDATE preventive_care
		SET scheduled_date = $3, status = 'scheduled', updated_at = $4
		WHERE id = $1 AND patient_id = $2
		RETURNING *
	`
	var item model.PreventiveCare
	err := r.db.GetContext(ctx, &item, query, id, patientID, newDate, time.Now())
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *careRepository) ListDueForReminder(ctx context.Context, from, to time.Time) ([]*model.PreventiveCare, error) {
	var items []*model.PreventiveCare
	query := `
		SELECT * FROM preventive_care
		WHERE status = 'scheduled'
		  AND scheduled_date BETWEEN $1 AND $2
		  AND jsonb_array_length(reminders) = 0
		ORDER BY scheduled_date
	`
	if err := r.db.SelectContext(ctx, &items, query, from, to); err != nil {
		return nil, fmt.Errorf("failed to list care items due for reminder: %w", err)
	}
	return items, nil
}

func (r *careRepository) AppendReminder(ctx context.Context, id uuid.UUID, reminder model.CareReminder) error {
	query := `
		UPDATE preventive_care
		SET reminders = reminders || $2::jsonb, updated_at = $3
		WHERE id = $1
	`
	payload, err := model.CareReminders{reminder}.Value()
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, query, id, payload, time.Now()); err != nil {
		return fmt.Errorf("failed to append reminder: %w", err)
	}
	return nil
}

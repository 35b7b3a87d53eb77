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

type goalRepository struct {
	db *sqlx.DB
}

func NewGoalRepository(db *sqlx.DB) repository.GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(ctx context.Context, goal *model.WellnessGoal) error {
	query := `
		INSERT INTO wellness_goals (id, patient_id, assigned_by, goal_type, targets, unit,
			duration, progress, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	goal.CreatedAt = time.Now()
	goal.UpdatedAt = goal.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		goal.ID,
		goal.PatientID,
		goal.AssignedBy,
		goal.GoalType,
		goal.Targets,
		goal.Unit,
		goal.Duration,
		goal.Progress,
		goal.Status,
		goal.Notes,
		goal.CreatedAt,
		goal.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create goal: %w", err)
	}
	return nil
}

func (r *goalRepository) Get(ctx context.Context, id uuid.UUID) (*model.WellnessGoal, error) {
	var goal model.WellnessGoal
	if err := r.db.GetContext(ctx, &goal, `SELECT * FROM wellness_goals WHERE id = $1`, id); err != nil {
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}
	return &goal, nil
}

func (r *goalRepository) GetForPatient(ctx context.Context, id, patientID uuid.UUID) (*model.WellnessGoal, error) {
	var goal model.WellnessGoal
	query := `SELECT * FROM wellness_goals WHERE id = $1 AND patient_id = $2`
	if err := r.db.GetContext(ctx, &goal, query, id, patientID); err != nil {
		return nil, err
	}
	return &goal, nil
}

func (r *goalRepository) GetForProvider(ctx context.Context, id, providerID uuid.UUID) (*model.WellnessGoal, error) {
	var goal model.WellnessGoal
	query := `SELECT * FROM wellness_goals WHERE id = $1 AND assigned_by = $2`
	if err := r.db.GetContext(ctx, &goal, query, id, providerID); err != nil {
		return nil, err
	}
	return &goal, nil
}

func (r *goalRepository) Update(ctx context.Context, goal *model.WellnessGoal) error {
	query := `
		UPDATE wellness_goals
		SET targets = $1, duration = $2, notes = $3, status = $4, updated_at = $5
		WHERE id = $6
	`
	goal.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, query,
		goal.Targets, goal.Duration, goal.Notes, goal.Status, goal.UpdatedAt, goal.ID)
	if err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}
	return nil
}

func (r *goalRepository) UpdateAggregates(ctx context.Context, id uuid.UUID, progress model.GoalProgress) error {
	query := `UPDATE wellness_goals SET progress = $1, updated_at = $2 WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, progress, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update goal aggregates: %w", err)
	}
	return nil
}

func (r *goalRepository) ListActive(ctx context.Context, patientID uuid.UUID) ([]*model.WellnessGoal, error) {
	var goals []*model.WellnessGoal
	query := `SELECT * FROM wellness_goals WHERE patient_id = $1 AND status = 'active' ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &goals, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list active goals: %w", err)
	}
	return goals, nil
}

func (r *goalRepository) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.WellnessGoal, error) {
	var goals []*model.WellnessGoal
	query := `SELECT * FROM wellness_goals WHERE patient_id = $1 ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &goals, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	return goals, nil
}

// DeleteCascade removes the goal and its progress rows in one transaction so
// a failed delete never leaves orphaned aggregates.
func (r *goalRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM daily_progress WHERE goal_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete goal progress: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM wellness_goals WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}

	return tx.Commit()
}

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

type progressRepository struct {
	db *sqlx.DB
}

func NewProgressRepository(db *sqlx.DB) repository.ProgressRepository {
	return &progressRepository{db: db}
}

// Upsert relies on the unique index on (patient_id, goal_id, date): a second
// log for the same calendar day overwrites the first.
func (r *progressRepository) Upsert(ctx context.Context, rec *model.DailyProgress) (*model.DailyProgress, error) {
	query := `
		INSERT INTO daily_progress (id, patient_id, goal_id, date, target_value,
			actual_value, achieved, completion_percentage, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		ON CONFLICT (patient_id, goal_id, date) DO UPDATE
		SET target_value = EXCLUDED.target_value,
			actual_value = EXCLUDED.actual_value,
			achieved = EXCLUDED.achieved,
			completion_percentage = EXCLUDED.completion_percentage,
			updated_at = EXCLUDED.updated_at
		RETURNING *
	`
	var stored model.DailyProgress
	err := r.db.GetContext(ctx, &stored, query,
		rec.ID,
		rec.PatientID,
		rec.GoalID,
		rec.Date,
		rec.TargetValue,
		rec.ActualValue,
		rec.Achieved,
		rec.CompletionPercentage,
		time.Now(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert daily progress: %w", err)
	}
	return &stored, nil
}

func (r *progressRepository) ListForGoal(ctx context.Context, goalID uuid.UUID) ([]*model.DailyProgress, error) {
	var rows []*model.DailyProgress
	query := `SELECT * FROM daily_progress WHERE goal_id = $1 ORDER BY date`
	if err := r.db.SelectContext(ctx, &rows, query, goalID); err != nil {
		return nil, fmt.Errorf("failed to list progress for goal: %w", err)
	}
	return rows, nil
}

func (r *progressRepository) RecentForGoal(ctx context.Context, goalID uuid.UUID, limit int) ([]*model.DailyProgress, error) {
	var rows []*model.DailyProgress
	query := `SELECT * FROM daily_progress WHERE goal_id = $1 ORDER BY date DESC LIMIT $2`
	if err := r.db.SelectContext(ctx, &rows, query, goalID, limit); err != nil {
		return nil, fmt.Errorf("failed to list recent progress: %w", err)
	}
	return rows, nil
}

func (r *progressRepository) List(ctx context.Context, filter *model.ProgressFilter) ([]*model.DailyProgress, error) {
	query := `SELECT * FROM daily_progress WHERE patient_id = $1`
	args := []interface{}{filter.PatientID}

	if filter.GoalID != nil {
		args = append(args, *filter.GoalID)
		query += fmt.Sprintf(" AND goal_id = $%d", len(args))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	query += " ORDER BY date DESC"

	var rows []*model.DailyProgress
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list progress: %w", err)
	}
	return rows, nil
}

func (r *progressRepository) ListForPatientOnDate(ctx context.Context, patientID uuid.UUID, date time.Time) ([]*model.DailyProgress, error) {
	var rows []*model.DailyProgress
	query := `SELECT * FROM daily_progress WHERE patient_id = $1 AND date = $2`
	if err := r.db.SelectContext(ctx, &rows, query, patientID, model.Midnight(date)); err != nil {
		return nil, fmt.Errorf("failed to list progress for date: %w", err)
	}
	return rows, nil
}

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

type healthMetricsRepository struct {
	db *sqlx.DB
}

func NewHealthMetricsRepository(db *sqlx.DB) repository.HealthMetricsRepository {
	return &healthMetricsRepository{db: db}
}

// Upsert relies on the unique index on (patient_id, date).
func (r *healthMetricsRepository) Upsert(ctx context.Context, rec *model.HealthMetrics) (*model.HealthMetrics, error) {
	query := `
		INSERT INTO health_metrics (id, patient_id, date, metrics, source, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (patient_id, date) DO UPDATE
		SET metrics = EXCLUDED.metrics,
			source = EXCLUDED.source,
			updated_at = EXCLUDED.updated_at
		RETURNING *
	`
	var stored model.HealthMetrics
	err := r.db.GetContext(ctx, &stored, query,
		rec.ID, rec.PatientID, rec.Date, rec.Metrics, rec.Source, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to upsert health metrics: %w", err)
	}
	return &stored, nil
}

func (r *healthMetricsRepository) List(ctx context.Context, patientID uuid.UUID, from, to *time.Time) ([]*model.HealthMetrics, error) {
	query := `SELECT * FROM health_metrics WHERE patient_id = $1`
	args := []interface{}{patientID}

	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	query += " ORDER BY date DESC"

	var rows []*model.HealthMetrics
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list health metrics: %w", err)
	}
	return rows, nil
}

package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/HarshaPerabathula/backend-hcl-wellness/internal/model"
	"github.com/HarshaPerabathula/backend-hcl-wellness/internal/repository"
)

type tipRepository struct {
	db *sqlx.DB
}

func NewTipRepository(db *sqlx.DB) repository.TipRepository {
	return &tipRepository{db: db}
}

func (r *tipRepository) Create(ctx context.Context, tip *model.HealthTip) error {
	query := `
		INSERT INTO health_tips (id, title, content, category, is_active, publish_date,
			created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
	`
	tip.CreatedAt = time.Now()
	tip.UpdatedAt = tip.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		tip.ID, tip.Title, tip.Content, tip.Category, tip.IsActive,
		tip.PublishDate, tip.CreatedBy, tip.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create health tip: %w", err)
	}
	return nil
}

func (r *tipRepository) ListActive(ctx context.Context, category *model.TipCategory) ([]*model.HealthTip, error) {
	query := `SELECT * FROM health_tips WHERE is_active = true`
	args := []interface{}{}

	if category != nil {
		args = append(args, *category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	query += " ORDER BY publish_date DESC"

	var tips []*model.HealthTip
	if err := r.db.SelectContext(ctx, &tips, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list health tips: %w", err)
	}
	return tips, nil
}

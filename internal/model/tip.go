package model

import (
	"time"

	"github.com/google/uuid"
)

type TipCategory string

const (
	TipNutrition      TipCategory = "nutrition"
	TipExercise       TipCategory = "exercise"
	TipMentalHealth   TipCategory = "mental_health"
	TipPreventiveCare TipCategory = "preventive_care"
)

// HealthTip is editorial content independent of other entities.
type HealthTip struct {
	Base
	Title       string      `json:"title" db:"title"`
	Content     string      `json:"content" db:"content"`
	Category    TipCategory `json:"category" db:"category"`
	IsActive    bool        `json:"is_active" db:"is_active"`
	PublishDate time.Time   `json:"publish_date" db:"publish_date"`
	CreatedBy   *uuid.UUID  `json:"created_by,omitempty" db:"created_by"`
}

type CreateTipRequest struct {
	Title    string      `json:"title" binding:"required"`
	Content  string      `json:"content" binding:"required"`
	Category TipCategory `json:"category" binding:"required,oneof=nutrition exercise mental_health preventive_care"`
}

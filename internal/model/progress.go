package model

import (
	"time"

	"github.com/google/uuid"
)

// DailyProgress is one day's logged outcome against a goal. One row exists
// per (patient, goal, calendar date); re-logging the same date overwrites.
type DailyProgress struct {
	Base
	PatientID            uuid.UUID `json:"patient_id" db:"patient_id"`
	GoalID               uuid.UUID `json:"goal_id" db:"goal_id"`
	Date                 time.Time `json:"date" db:"date"`
	TargetValue          float64   `json:"target_value" db:"target_value"`
	ActualValue          float64   `json:"actual_value" db:"actual_value"`
	Achieved             bool      `json:"achieved" db:"achieved"`
	CompletionPercentage float64   `json:"completion_percentage" db:"completion_percentage"`
}

type LogProgressRequest struct {
	GoalID      uuid.UUID `json:"goal_id" binding:"required"`
	Date        time.Time `json:"date" binding:"required"`
	// Zero is a valid logged value, so no required tag here.
	ActualValue float64 `json:"actual_value" binding:"gte=0"`
}

// ProgressFilter narrows progress history queries.
type ProgressFilter struct {
	PatientID uuid.UUID
	GoalID    *uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
}

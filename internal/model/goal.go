package model

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
)

type GoalType string

const (
	GoalTypeSteps           GoalType = "steps"
	GoalTypeWaterIntake     GoalType = "water_intake"
	GoalTypeSleepHours      GoalType = "sleep_hours"
	GoalTypeExerciseMinutes GoalType = "exercise_minutes"
	GoalTypeWeightLoss      GoalType = "weight_loss"
)

type GoalUnit string

const (
	UnitSteps   GoalUnit = "steps"
	UnitLiters  GoalUnit = "liters"
	UnitHours   GoalUnit = "hours"
	UnitMinutes GoalUnit = "minutes"
	UnitKg      GoalUnit = "kg"
)

type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusCompleted GoalStatus = "completed"
	GoalStatusPaused    GoalStatus = "paused"
	GoalStatusExpired   GoalStatus = "expired"
)

// GoalTargets holds the numeric targets for a goal. Daily is the denominator
// for completion percentage and must be positive; validation guarantees this
// before a goal reaches the store.
type GoalTargets struct {
	Daily   float64  `json:"daily"`
	Weekly  *float64 `json:"weekly,omitempty"`
	Monthly *float64 `json:"monthly,omitempty"`
}

func (t GoalTargets) Value() (driver.Value, error) { return jsonValue(t) }
func (t *GoalTargets) Scan(src interface{}) error  { return jsonScan(src, t) }

type PeriodType string

const (
	PeriodOneWeek     PeriodType = "1_week"
	PeriodTwoWeeks    PeriodType = "2_weeks"
	PeriodOneMonth    PeriodType = "1_month"
	PeriodThreeMonths PeriodType = "3_months"
	PeriodCustom      PeriodType = "custom"
)

type GoalDuration struct {
	StartDate  time.Time  `json:"start_date"`
	EndDate    time.Time  `json:"end_date"`
	PeriodType PeriodType `json:"period_type,omitempty"`
}

func (d GoalDuration) Value() (driver.Value, error) { return jsonValue(d) }
func (d *GoalDuration) Scan(src interface{}) error  { return jsonScan(src, d) }

// GoalProgress is the aggregate summary recomputed after every progress log.
// CurrentStreak and LongestStreak exist in the schema but no operation
// maintains them; they stay at zero until streak maintenance is built.
type GoalProgress struct {
	CurrentStreak  int        `json:"current_streak"`
	LongestStreak  int        `json:"longest_streak"`
	DaysCompleted  int        `json:"days_completed"`
	TotalDays      int        `json:"total_days"`
	CompletionRate float64    `json:"completion_rate"`
	LastUpdated    *time.Time `json:"last_updated,omitempty"`
}

func (p GoalProgress) Value() (driver.Value, error) { return jsonValue(p) }
func (p *GoalProgress) Scan(src interface{}) error  { return jsonScan(src, p) }

// WellnessGoal is a provider-assigned recurring target for one patient.
type WellnessGoal struct {
	Base
	PatientID  uuid.UUID    `json:"patient_id" db:"patient_id"`
	AssignedBy uuid.UUID    `json:"assigned_by" db:"assigned_by"`
	GoalType   GoalType     `json:"goal_type" db:"goal_type"`
	Targets    GoalTargets  `json:"targets" db:"targets"`
	Unit       GoalUnit     `json:"unit" db:"unit"`
	Duration   GoalDuration `json:"duration" db:"duration"`
	Progress   GoalProgress `json:"progress" db:"progress"`
	Status     GoalStatus   `json:"status" db:"status"`
	Notes      string       `json:"notes,omitempty" db:"notes"`
}

type AssignGoalRequest struct {
	PatientID uuid.UUID `json:"patient_id" binding:"required"`
	GoalType  GoalType  `json:"goal_type" binding:"required,oneof=steps water_intake sleep_hours exercise_minutes weight_loss"`
	Targets   struct {
		Daily   float64  `json:"daily" binding:"required,gt=0"`
		Weekly  *float64 `json:"weekly" binding:"omitempty,gt=0"`
		Monthly *float64 `json:"monthly" binding:"omitempty,gt=0"`
	} `json:"targets" binding:"required"`
	Unit     GoalUnit `json:"unit" binding:"required,oneof=steps liters hours minutes kg"`
	Duration struct {
		StartDate  time.Time  `json:"start_date" binding:"required"`
		EndDate    time.Time  `json:"end_date" binding:"required,gtfield=StartDate"`
		PeriodType PeriodType `json:"period_type" binding:"omitempty,oneof=1_week 2_weeks 1_month 3_months custom"`
	} `json:"duration" binding:"required"`
	Notes string `json:"notes"`
}

type ModifyGoalRequest struct {
	Targets  *GoalTargets  `json:"targets"`
	Duration *GoalDuration `json:"duration"`
	Notes    *string       `json:"notes"`
	Status   *GoalStatus   `json:"status" binding:"omitempty,oneof=active completed paused expired"`
}

// GoalWithRecentProgress pairs a goal with its latest progress rows for the
// provider view.
type GoalWithRecentProgress struct {
	WellnessGoal
	RecentProgress []*DailyProgress `json:"recent_progress"`
}

// GoalStreak is the per-goal streak summary returned to patients.
type GoalStreak struct {
	GoalType      GoalType `json:"goal_type"`
	CurrentStreak int      `json:"current_streak"`
	LongestStreak int      `json:"longest_streak"`
}

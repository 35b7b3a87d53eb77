package progress

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/HarshaPerabathula/backend-hcl-wellness/internal/model"
	"github.com/HarshaPerabathula/backend-hcl-wellness/internal/repository"
	apperrors "github.com/HarshaPerabathula/backend-hcl-wellness/pkg/errors"
	"github.com/HarshaPerabathula/backend-hcl-wellness/pkg/event"
	"github.com/HarshaPerabathula/backend-hcl-wellness/pkg/metrics"
)

// Service is the progress recorder: it derives achievement from the goal's
// daily target, upserts the day's record and recomputes the goal's aggregate
// statistics.
type Service struct {
	goals    repository.GoalRepository
	progress repository.ProgressRepository
	metrics  *metrics.Metrics
	events   *event.Publisher
}

func NewService(goals repository.GoalRepository, progress repository.ProgressRepository, m *metrics.Metrics, events *event.Publisher) *Service {
	return &Service{
		goals:    goals,
		progress: progress,
		metrics:  m,
		events:   events,
	}
}

// LogProgress records the actual value logged for a goal on a calendar day.
// The date is normalized to midnight UTC, so a second log for the same day
// overwrites the first. After the upsert the goal's aggregate summary is
// recomputed from all of its progress rows; that read-then-write is not
// atomic, and concurrent logs for the same goal resolve last-writer-wins.
func (s *Service) LogProgress(ctx context.Context, patientID uuid.UUID, req *model.LogProgressRequest) (*model.DailyProgress, error) {
	goal, err := s.goals.GetForPatient(ctx, req.GoalID, patientID)
	if err != nil {
		return nil, apperrors.NotFound("goal", err)
	}

	// Validation guarantees a positive daily target at assignment time; this
	// guards goals written before that rule existed.
	target := goal.Targets.Daily
	if target <= 0 {
		return nil, apperrors.BadRequest("goal has no positive daily target", nil)
	}

	achieved := req.ActualValue >= target
	pct := math.Min(req.ActualValue/target*100, 100)

	rec := &model.DailyProgress{
		Base:                 model.Base{ID: uuid.New()},
		PatientID:            patientID,
		GoalID:               goal.ID,
		Date:                 model.Midnight(req.Date),
		TargetValue:          target,
		ActualValue:          req.ActualValue,
		Achieved:             achieved,
		CompletionPercentage: pct,
	}

	stored, err := s.progress.Upsert(ctx, rec)
	if err != nil {
		return nil, err
	}

	if err := s.refreshAggregates(ctx, goal); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.ProgressLogged.Inc()
	}
	if achieved {
		s.events.Emit(ctx, event.TypeGoalAchieved, map[string]interface{}{
			"goal_id":    goal.ID,
			"patient_id": patientID,
			"goal_type":  goal.GoalType,
			"date":       rec.Date,
		})
	}
	return stored, nil
}

// refreshAggregates rescans every progress row for the goal. Streak fields
// are carried over untouched: nothing maintains them yet.
func (s *Service) refreshAggregates(ctx context.Context, goal *model.WellnessGoal) error {
	start := time.Now()

	rows, err := s.progress.ListForGoal(ctx, goal.ID)
	if err != nil {
		return err
	}

	completed := 0
	for _, row := range rows {
		if row.Achieved {
			completed++
		}
	}

	rate := 0.0
	if len(rows) > 0 {
		rate = float64(completed) / float64(len(rows)) * 100
	}

	now := time.Now()
	summary := goal.Progress
	summary.DaysCompleted = completed
	summary.TotalDays = len(rows)
	summary.CompletionRate = rate
	summary.LastUpdated = &now

	if err := s.goals.UpdateAggregates(ctx, goal.ID, summary); err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.GoalRecomputeTime.Observe(time.Since(start).Seconds())
	}
	return nil
}

// History returns the patient's progress rows, newest first, optionally
// narrowed to one goal and a date range.
func (s *Service) History(ctx context.Context, patientID uuid.UUID, goalID *uuid.UUID, from, to *time.Time) ([]*model.DailyProgress, error) {
	filter := &model.ProgressFilter{
		PatientID: patientID,
		GoalID:    goalID,
	}
	if from != nil {
		f := model.Midnight(*from)
		filter.StartDate = &f
	}
	if to != nil {
		t := model.Midnight(*to)
		filter.EndDate = &t
	}
	return s.progress.List(ctx, filter)
}

// TodayProgress returns the rows logged for the current calendar day.
func (s *Service) TodayProgress(ctx context.Context, patientID uuid.UUID) ([]*model.DailyProgress, error) {
	return s.progress.ListForPatientOnDate(ctx, patientID, time.Now())
}

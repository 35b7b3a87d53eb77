package goal

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/HarshaPerabathula/backend-hcl-wellness/internal/model"
	"github.com/HarshaPerabathula/backend-hcl-wellness/internal/repository"
	apperrors "github.com/HarshaPerabathula/backend-hcl-wellness/pkg/errors"
)

const recentProgressDays = 7

// Service owns the goal lifecycle: providers assign, modify and delete goals
// for their patients; patients read their own.
type Service struct {
	goals    repository.GoalRepository
	progress repository.ProgressRepository
	accounts repository.AccountRepository
}

func NewService(goals repository.GoalRepository, progress repository.ProgressRepository, accounts repository.AccountRepository) *Service {
	return &Service{
		goals:    goals,
		progress: progress,
		accounts: accounts,
	}
}

// Assign creates an active goal for a patient. The patient must exist and be
// assigned to the calling provider.
func (s *Service) Assign(ctx context.Context, providerID uuid.UUID, req *model.AssignGoalRequest) (*model.WellnessGoal, error) {
	if _, err := s.accounts.GetAssignedPatient(ctx, req.PatientID, providerID); err != nil {
		return nil, apperrors.NotFound("patient", err)
	}

	goal := &model.WellnessGoal{
		Base:       model.Base{ID: uuid.New()},
		PatientID:  req.PatientID,
		AssignedBy: providerID,
		GoalType:   req.GoalType,
		Targets: model.GoalTargets{
			Daily:   req.Targets.Daily,
			Weekly:  req.Targets.Weekly,
			Monthly: req.Targets.Monthly,
		},
		Unit: req.Unit,
		Duration: model.GoalDuration{
			StartDate:  req.Duration.StartDate,
			EndDate:    req.Duration.EndDate,
			PeriodType: req.Duration.PeriodType,
		},
		Status: model.GoalStatusActive,
		Notes:  req.Notes,
	}

	if err := s.goals.Create(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

// Modify updates mutable fields on a goal the provider assigned.
func (s *Service) Modify(ctx context.Context, goalID, providerID uuid.UUID, req *model.ModifyGoalRequest) (*model.WellnessGoal, error) {
	goal, err := s.goals.GetForProvider(ctx, goalID, providerID)
	if err != nil {
		return nil, apperrors.NotFound("goal", err)
	}

	if req.Targets != nil {
		goal.Targets = *req.Targets
	}
	if req.Duration != nil {
		goal.Duration = *req.Duration
	}
	if req.Notes != nil {
		goal.Notes = *req.Notes
	}
	if req.Status != nil {
		goal.Status = *req.Status
	}

	if err := s.goals.Update(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

// Delete removes a goal the provider assigned, cascading to every progress
// row referencing it.
func (s *Service) Delete(ctx context.Context, goalID, providerID uuid.UUID) error {
	if _, err := s.goals.GetForProvider(ctx, goalID, providerID); err != nil {
		return apperrors.NotFound("goal", err)
	}
	return s.goals.DeleteCascade(ctx, goalID)
}

// ActiveGoals returns the patient's goals in active status.
func (s *Service) ActiveGoals(ctx context.Context, patientID uuid.UUID) ([]*model.WellnessGoal, error) {
	return s.goals.ListActive(ctx, patientID)
}

// Streaks reports the stored streak summary per active goal. The streak
// fields are carried in the schema but never maintained by the logging path,
// so they stay at zero until streak maintenance exists.
func (s *Service) Streaks(ctx context.Context, patientID uuid.UUID) ([]*model.GoalStreak, error) {
	goals, err := s.goals.ListActive(ctx, patientID)
	if err != nil {
		return nil, err
	}

	streaks := make([]*model.GoalStreak, 0, len(goals))
	for _, g := range goals {
		streaks = append(streaks, &model.GoalStreak{
			GoalType:      g.GoalType,
			CurrentStreak: g.Progress.CurrentStreak,
			LongestStreak: g.Progress.LongestStreak,
		})
	}
	return streaks, nil
}

// PatientGoals returns all of a patient's goals with their recent progress,
// for the provider view. The patient must be assigned to the caller.
func (s *Service) PatientGoals(ctx context.Context, providerID, patientID uuid.UUID) ([]*model.GoalWithRecentProgress, error) {
	if _, err := s.accounts.GetAssignedPatient(ctx, patientID, providerID); err != nil {
		return nil, apperrors.NotFound("patient", err)
	}

	goals, err := s.goals.ListForPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	result := make([]*model.GoalWithRecentProgress, 0, len(goals))
	for _, g := range goals {
		recent, err := s.progress.RecentForGoal(ctx, g.ID, recentProgressDays)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		result = append(result, &model.GoalWithRecentProgress{
			WellnessGoal:   *g,
			RecentProgress: recent,
		})
	}
	return result, nil
}

// AssignedPatients returns the provider's patient roster.
func (s *Service) AssignedPatients(ctx context.Context, providerID uuid.UUID) ([]*model.PublicAccount, error) {
	patients, err := s.accounts.ListPatientsForProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}

	public := make([]*model.PublicAccount, 0, len(patients))
	for _, p := range patients {
		public = append(public, p.Public())
	}
	return public, nil
}

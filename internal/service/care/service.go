package care

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/HarshaPerabathula/backend-hcl-wellness/internal/model"
	"github.com/HarshaPerabathula/backend-hcl-wellness/internal/repository"
	apperrors "github.com/HarshaPerabathula/backend-hcl-wellness/pkg/errors"
	"github.com/HarshaPerabathula/backend-hcl-wellness/pkg/event"
	"github.com/HarshaPerabathula/backend-hcl-wellness/pkg/metrics"
)

// Service is the care scheduler: it tracks preventive care items through
// their status lifecycle and runs the overdue sweep.
type Service struct {
	repo     repository.CareRepository
	accounts repository.AccountRepository
	metrics  *metrics.Metrics
	events   *event.Publisher
}

func NewService(repo repository.CareRepository, accounts repository.AccountRepository, m *metrics.Metrics, events *event.Publisher) *Service {
	return &Service{
		repo:     repo,
		accounts: accounts,
		metrics:  m,
		events:   events,
	}
}

// Book schedules a new care item. When no provider is given, the patient's
// assigned provider is used.
func (s *Service) Book(ctx context.Context, patientID uuid.UUID, req *model.BookCareRequest) (*model.PreventiveCare, error) {
	providerID := req.ProviderID
	if providerID == nil {
		patient, err := s.accounts.Get(ctx, patientID)
		if err != nil {
			return nil, apperrors.NotFound("patient", err)
		}
		if patient.PatientInfo != nil {
			providerID = patient.PatientInfo.AssignedProvider
		}
	}

	priority := req.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}

	item := &model.PreventiveCare{
		Base:          model.Base{ID: uuid.New()},
		PatientID:     patientID,
		ProviderID:    providerID,
		CareType:      req.CareType,
		ScheduledDate: req.ScheduledDate,
		Status:        model.CareStatusScheduled,
		Priority:      priority,
		Notes:         req.Notes,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Schedule returns the patient's full care schedule sorted by date.
func (s *Service) Schedule(ctx context.Context, patientID uuid.UUID) ([]*model.PreventiveCare, error) {
	return s.repo.ListForPatient(ctx, patientID)
}

// Upcoming returns the next scheduled items from now.
func (s *Service) Upcoming(ctx context.Context, patientID uuid.UUID, limit int) ([]*model.PreventiveCare, error) {
	return s.repo.ListUpcoming(ctx, patientID, model.Midnight(time.Now()), limit)
}

// ListOverdue returns scheduled items whose date has passed and, as a side
// effect, flips their stored status to overdue. The read and the write are
// not atomic; the write filters on scheduled status so an item completed in
// between keeps its completion.
func (s *Service) ListOverdue(ctx context.Context, patientID uuid.UUID) ([]*model.PreventiveCare, error) {
	now := time.Now()

	items, err := s.repo.ListOverdueScheduled(ctx, patientID, now)
	if err != nil {
		return nil, err
	}

	n, err := s.repo.MarkOverdue(ctx, patientID, now)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.OverdueSweepMatched.Add(float64(n))
	}

	return items, nil
}

// Complete marks an item completed. The ownership filter is keyed by role:
// patients match on patient_id, providers on provider_id. A missing item and
// an item owned by someone else are indistinguishable to the caller.
func (s *Service) Complete(ctx context.Context, id, callerID uuid.UUID, callerRole model.Role, req *model.CompleteCareRequest) (*model.PreventiveCare, error) {
	completedDate := time.Now()
	if req.CompletedDate != nil {
		completedDate = *req.CompletedDate
	}

	var (
		item *model.PreventiveCare
		err  error
	)
	switch callerRole {
	case model.RoleProvider:
		item, err = s.repo.CompleteForProvider(ctx, id, callerID, completedDate, req.Notes)
	default:
		item, err = s.repo.CompleteForPatient(ctx, id, callerID, completedDate, req.Notes)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("checkup", err)
		}
		return nil, err
	}

	s.events.Emit(ctx, event.TypeCareCompleted, map[string]interface{}{
		"care_id":    item.ID,
		"patient_id": item.PatientID,
		"care_type":  item.CareType,
	})
	return item, nil
}

// Reschedule moves an item to a new date and forces its status back to
// scheduled, reactivating overdue and missed items.
func (s *Service) Reschedule(ctx context.Context, patientID uuid.UUID, req *model.RescheduleCareRequest) (*model.PreventiveCare, error) {
	item, err := s.repo.Reschedule(ctx, req.AppointmentID, patientID, req.NewDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("appointment", err)
		}
		return nil, err
	}
	return item, nil
}

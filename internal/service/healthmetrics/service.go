package healthmetrics

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/HarshaPerabathula/backend-hcl-wellness/internal/model"
	"github.com/HarshaPerabathula/backend-hcl-wellness/internal/repository"
)

// Service records and reads daily health measurements.
type Service struct {
	repo repository.HealthMetricsRepository
}

func NewService(repo repository.HealthMetricsRepository) *Service {
	return &Service{repo: repo}
}

// Record upserts the day's measurements; one record exists per
// (patient, calendar date).
func (s *Service) Record(ctx context.Context, patientID uuid.UUID, req *model.RecordMetricsRequest) (*model.HealthMetrics, error) {
	source := req.Source
	if source == "" {
		source = model.SourceManual
	}

	rec := &model.HealthMetrics{
		Base:      model.Base{ID: uuid.New()},
		PatientID: patientID,
		Date:      model.Midnight(req.Date),
		Metrics:   req.Metrics,
		Source:    source,
	}
	return s.repo.Upsert(ctx, rec)
}

func (s *Service) List(ctx context.Context, patientID uuid.UUID, from, to *time.Time) ([]*model.HealthMetrics, error) {
	if from != nil {
		f := model.Midnight(*from)
		from = &f
	}
	if to != nil {
		t := model.Midnight(*to)
		to = &t
	}
	return s.repo.List(ctx, patientID, from, to)
}

package worker

import (
	"context"
	"time"

	"github.com/HarshaPerabathula/backend-hcl-wellness/internal/email"
	"github.com/HarshaPerabathula/backend-hcl-wellness/internal/model"
	"github.com/HarshaPerabathula/backend-hcl-wellness/internal/repository"
	"github.com/HarshaPerabathula/backend-hcl-wellness/pkg/circuitbreaker"
	"github.com/HarshaPerabathula/backend-hcl-wellness/pkg/logger"
	"github.com/HarshaPerabathula/backend-hcl-wellness/pkg/messaging"
	"github.com/HarshaPerabathula/backend-hcl-wellness/pkg/metrics"
)

// ReminderConfig controls the reminder sweep.
type ReminderConfig struct {
	PollInterval time.Duration
	LeadTime     time.Duration
}

// ReminderProcessor periodically finds scheduled care items inside the
// reminder window, emails the patient, records the reminder on the item and
// publishes a care.reminder event.
type ReminderProcessor struct {
	care     repository.CareRepository
	accounts repository.AccountRepository
	email    email.Service
	broker   messaging.Broker
	config   ReminderConfig
	logger   *logger.Logger
	metrics  *metrics.Metrics
	smtpCB   *circuitbreaker.Breaker
}

func NewReminderProcessor(
	care repository.CareRepository,
	accounts repository.AccountRepository,
	emailSvc email.Service,
	broker messaging.Broker,
	config ReminderConfig,
	log *logger.Logger,
	m *metrics.Metrics,
) *ReminderProcessor {
	if config.PollInterval <= 0 {
		config.PollInterval = time.Hour
	}
	if config.LeadTime <= 0 {
		config.LeadTime = 48 * time.Hour
	}

	return &ReminderProcessor{
		care:     care,
		accounts: accounts,
		email:    emailSvc,
		broker:   broker,
		config:   config,
		logger:   log,
		metrics:  m,
		// A dead SMTP relay should not be hammered once per item on
		// every sweep.
		smtpCB: circuitbreaker.New(circuitbreaker.Config{
			Name:             "smtp",
			FailureThreshold: 3,
			Cooldown:         5 * time.Minute,
		}),
	}
}

func (p *ReminderProcessor) Start(ctx context.Context) {
	ticker := time.NewTicker(p.config.PollInterval)
	defer ticker.Stop()

	p.logger.Info("starting reminder processor")

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("shutting down reminder processor")
			return
		case <-ticker.C:
			if err := p.sweep(ctx); err != nil {
				p.logger.Error(err, "reminder sweep failed")
			}
		}
	}
}

func (p *ReminderProcessor) sweep(ctx context.Context) error {
	now := time.Now()
	items, err := p.care.ListDueForReminder(ctx, now, now.Add(p.config.LeadTime))
	if err != nil {
		return err
	}

	for _, item := range items {
		if err := p.remind(ctx, item); err != nil {
			p.metrics.RemindersFailed.Inc()
			p.logger.Error(err, "failed to send care reminder", "care_id", item.ID.String())
			continue
		}
		p.metrics.RemindersSent.Inc()
	}
	return nil
}

func (p *ReminderProcessor) remind(ctx context.Context, item *model.PreventiveCare) error {
	patient, err := p.accounts.Get(ctx, item.PatientID)
	if err != nil {
		return err
	}

	err = p.smtpCB.Execute(func() error {
		return p.email.SendCareReminder(patient.Email, item)
	})
	if err != nil {
		return err
	}

	reminder := model.CareReminder{
		SentAt:  time.Now(),
		Channel: model.ReminderEmail,
		Status:  "sent",
	}
	if err := p.care.AppendReminder(ctx, item.ID, reminder); err != nil {
		return err
	}

	// Event publish is best-effort; the reminder itself already went out.
	if err := p.broker.Publish(ctx, messaging.ChannelCareReminder, messaging.Message{
		Type: "CARE_REMINDER_SENT",
		Payload: map[string]interface{}{
			"care_id":        item.ID,
			"patient_id":     item.PatientID,
			"care_type":      item.CareType,
			"scheduled_date": item.ScheduledDate,
		},
	}); err != nil {
		p.logger.Error(err, "failed to publish reminder event", "care_id", item.ID.String())
	}
	return nil
}

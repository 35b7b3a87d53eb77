package email

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/HarshaPerabathula/backend-hcl-wellness/internal/model"
)

// Service sends transactional mail.
type Service interface {
	SendCareReminder(to string, item *model.PreventiveCare) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPService(cfg SMTPConfig) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpService) SendCareReminder(to string, item *model.PreventiveCare) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Upcoming %s on %s", item.CareType, item.ScheduledDate.Format("Jan 2, 2006")))
	m.SetBody("text/plain", fmt.Sprintf(
		"This is a reminder that your %s is scheduled for %s.\n\nIf the date no longer works, you can reschedule it from your wellness dashboard.",
		item.CareType, item.ScheduledDate.Format("Monday, January 2, 2006"),
	))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send reminder email: %w", err)
	}
	return nil
}

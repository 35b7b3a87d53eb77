package model

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
)

type CareType string

const (
	CareAnnualCheckup CareType = "annual_checkup"
	CareBloodTest     CareType = "blood_test"
	CareVaccination   CareType = "vaccination"
	CareMammogram     CareType = "mammogram"
	CareColonoscopy   CareType = "colonoscopy"
)

type CareStatus string

// Status lifecycle: scheduled -> completed (complete), scheduled -> overdue
// (date-driven sweep), overdue/missed -> scheduled (reschedule). Completed is
// terminal. Missed exists in the schema but nothing here sets it; it is
// reserved for the reminder pipeline.
const (
	CareStatusScheduled CareStatus = "scheduled"
	CareStatusCompleted CareStatus = "completed"
	CareStatusMissed    CareStatus = "missed"
	CareStatusOverdue   CareStatus = "overdue"
)

type CarePriority string

const (
	PriorityLow    CarePriority = "low"
	PriorityMedium CarePriority = "medium"
	PriorityHigh   CarePriority = "high"
)

type ReminderChannel string

const (
	ReminderEmail ReminderChannel = "email"
	ReminderSMS   ReminderChannel = "sms"
)

// CareReminder records one reminder dispatch for a care item.
type CareReminder struct {
	SentAt  time.Time       `json:"sent_at"`
	Channel ReminderChannel `json:"channel"`
	Status  string          `json:"status"`
}

type CareReminders []CareReminder

func (r CareReminders) Value() (driver.Value, error) { return jsonValue(r) }
func (r *CareReminders) Scan(src interface{}) error  { return jsonScan(src, r) }

// PreventiveCare is a scheduled health activity for a patient.
type PreventiveCare struct {
	Base
	PatientID     uuid.UUID     `json:"patient_id" db:"patient_id"`
	ProviderID    *uuid.UUID    `json:"provider_id,omitempty" db:"provider_id"`
	CareType      CareType      `json:"care_type" db:"care_type"`
	ScheduledDate time.Time     `json:"scheduled_date" db:"scheduled_date"`
	CompletedDate *time.Time    `json:"completed_date,omitempty" db:"completed_date"`
	Status        CareStatus    `json:"status" db:"status"`
	Priority      CarePriority  `json:"priority" db:"priority"`
	Reminders     CareReminders `json:"auto_reminders" db:"reminders"`
	Notes         string        `json:"notes,omitempty" db:"notes"`
}

type BookCareRequest struct {
	CareType      CareType     `json:"care_type" binding:"required,oneof=annual_checkup blood_test vaccination mammogram colonoscopy"`
	ScheduledDate time.Time    `json:"scheduled_date" binding:"required"`
	ProviderID    *uuid.UUID   `json:"provider_id"`
	Priority      CarePriority `json:"priority" binding:"omitempty,oneof=low medium high"`
	Notes         string       `json:"notes"`
}

type CompleteCareRequest struct {
	CompletedDate *time.Time `json:"completed_date"`
	Notes         string     `json:"notes"`
}

type RescheduleCareRequest struct {
	AppointmentID uuid.UUID `json:"appointment_id" binding:"required"`
	NewDate       time.Time `json:"new_date" binding:"required"`
}

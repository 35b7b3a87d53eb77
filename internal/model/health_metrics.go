package model

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
)

type MetricsSource string

const (
	SourceManual   MetricsSource = "manual"
	SourceDevice   MetricsSource = "device"
	SourceProvider MetricsSource = "provider"
)

type MetricValue struct {
	Value float64  `json:"value"`
	Goal  *float64 `json:"goal,omitempty"`
}

type BloodPressure struct {
	Systolic  int `json:"systolic"`
	Diastolic int `json:"diastolic"`
}

// MetricsData is the embedded measurements object for one day.
type MetricsData struct {
	Steps         *MetricValue   `json:"steps,omitempty"`
	WaterIntake   *MetricValue   `json:"water_intake,omitempty"`
	SleepHours    *MetricValue   `json:"sleep_hours,omitempty"`
	Weight        *float64       `json:"weight,omitempty"`
	BloodPressure *BloodPressure `json:"blood_pressure,omitempty"`
}

func (m MetricsData) Value() (driver.Value, error) { return jsonValue(m) }
func (m *MetricsData) Scan(src interface{}) error  { return jsonScan(src, m) }

// HealthMetrics is one record per (patient, date); re-recording upserts.
type HealthMetrics struct {
	Base
	PatientID uuid.UUID     `json:"patient_id" db:"patient_id"`
	Date      time.Time     `json:"date" db:"date"`
	Metrics   MetricsData   `json:"metrics" db:"metrics"`
	Source    MetricsSource `json:"source" db:"source"`
}

type RecordMetricsRequest struct {
	Date    time.Time     `json:"date" binding:"required"`
	Metrics MetricsData   `json:"metrics" binding:"required"`
	Source  MetricsSource `json:"source" binding:"omitempty,oneof=manual device provider"`
}

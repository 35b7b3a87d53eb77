package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Base contains common fields for all models
type Base struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// jsonValue marshals an embedded sub-object for a JSONB column.
func jsonValue(v interface{}) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal jsonb value: %w", err)
	}
	return b, nil
}

// jsonScan unmarshals a JSONB column into an embedded sub-object.
func jsonScan(src, dst interface{}) error {
	if src == nil {
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		s, ok := src.(string)
		if !ok {
			return fmt.Errorf("unsupported jsonb source type %T", src)
		}
		b = []byte(s)
	}
	return json.Unmarshal(b, dst)
}

// Midnight truncates t to the start of its calendar day in UTC. Daily
// progress and health metrics are keyed by calendar day, so all dates are
// normalized before they reach the store.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

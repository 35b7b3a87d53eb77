package event

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeGoalAchieved  Type = "GOAL_ACHIEVED"
	TypeCareCompleted Type = "CARE_COMPLETED"
)

// Event is a domain event fanned out to downstream consumers. Payload keys
// are event-type specific.
type Event struct {
	ID         uuid.UUID              `json:"id"`
	Type       Type                   `json:"type"`
	OccurredAt time.Time              `json:"occurred_at"`
	Payload    map[string]interface{} `json:"payload"`
}

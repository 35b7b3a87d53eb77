package event

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/HarshaPerabathula/backend-hcl-wellness/pkg/logger"
	"github.com/HarshaPerabathula/backend-hcl-wellness/pkg/messaging"
)

// Publisher emits domain events on the message broker. Publishing is
// best-effort: failures are logged and swallowed so the triggering request
// never fails on a broker outage. A nil Publisher is a no-op.
type Publisher struct {
	broker messaging.Broker
	logger *logger.Logger
}

func NewPublisher(broker messaging.Broker, log *logger.Logger) *Publisher {
	return &Publisher{broker: broker, logger: log}
}

func (p *Publisher) Emit(ctx context.Context, t Type, payload map[string]interface{}) {
	if p == nil || p.broker == nil {
		return
	}

	evt := Event{
		ID:         uuid.New(),
		Type:       t,
		OccurredAt: time.Now(),
		Payload:    payload,
	}

	if err := p.broker.Publish(ctx, messaging.ChannelWellnessEvents, evt); err != nil {
		if p.logger != nil {
			p.logger.Error(err, "failed to publish event", "event_type", string(t))
		}
	}
}

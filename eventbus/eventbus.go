// Package eventbus publishes domain events for downstream consumers.
// The API services only produce; consumption belongs to other systems.
package eventbus

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event is the payload published to a topic.
type Event struct {
	ID         string          `json:"id"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

// NewEvent wraps payload in an Event envelope. Marshal errors surface on
// Publish, not here.
func NewEvent(payload any) Event {
	data, _ := json.Marshal(payload)
	return Event{
		ID:         uuid.NewString(),
		OccurredAt: time.Now().UTC(),
		Payload:    data,
	}
}

// EventBus abstracts event publication so services run with or without a
// broker.
type EventBus interface {
	Publish(ctx context.Context, topic string, event Event) error
	Close()
}

// NoopEventBus ignores all events. Used when no broker is configured.
type NoopEventBus struct{}

func (NoopEventBus) Publish(ctx context.Context, topic string, event Event) error { return nil }
func (NoopEventBus) Close()                                                       {}

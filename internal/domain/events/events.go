// Package events describes domain notifications emitted after a commit.
// Delivery is advisory: a failed publish never fails the operation that
// produced the event.
package events

import (
	"context"
	"time"
)

const (
	ClassActivated   = "class.activated"
	ClassDeactivated = "class.deactivated"
	ClassDeleted     = "class.deleted"
	PackPriceChanged = "class_pack.price_changed"
)

type Event struct {
	Type       string         `json:"type"`
	EntityID   string         `json:"entity_id"`
	Payload    map[string]any `json:"payload,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, Event) error { return nil }

func Nop() Publisher { return noopPublisher{} }

func New(eventType, entityID string, payload map[string]any) Event {
	return Event{
		Type:       eventType,
		EntityID:   entityID,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	}
}

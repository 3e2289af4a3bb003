// Package events publishes scheduling facts for downstream consumers
// (notification and reporting services). Publishing is best-effort: a failed
// publish is logged, never propagated into the booking or sync path.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	EventSource  = "scheduler-service"
	EventVersion = "1.0"
)

// Event types emitted by the engine.
const (
	EventBookingCreated  = "booking.created"
	EventProctorAssigned = "booking.proctor_assigned"
	EventCatalogSynced   = "catalog.sync_completed"
)

// Event is the envelope shared by every published message.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// NewEvent builds an envelope around data with a fresh ID and timestamp.
func NewEvent(eventType string, data interface{}) Event {
	return Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Source:    EventSource,
		Version:   EventVersion,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// EventPublisher abstracts the broker so services can run without one.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

package service

import (
	"context"
	"time"
)

const (
	EventRecordCreated     = "record.created"
	EventRecordUpdated     = "record.updated"
	EventRecordDeleted     = "record.deleted"
	EventDocumentGenerated = "document.generated"
	EventDocumentRevised   = "document.revised"
)

type Event struct {
	Type       string    `json:"type"`
	Entity     string    `json:"entity"`
	ID         string    `json:"id,omitempty"`
	Payload    any       `json:"payload,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// EventPublisher is fire-and-forget: Publish never blocks on delivery and
// never fails the calling operation.
type EventPublisher interface {
	Publish(ctx context.Context, e Event)
}

type nopPublisher struct{}

func NopPublisher() EventPublisher { return nopPublisher{} }

func (nopPublisher) Publish(context.Context, Event) {}

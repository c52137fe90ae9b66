// Package events publishes domain events (video published, channel subscribed)
// for downstream consumers such as notification workers.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event types.
const (
	TypeVideoPublished    = "video.published"
	TypeChannelSubscribed = "channel.subscribed"
)

// Event is the JSON payload published for every domain event.
type Event struct {
	ID         uuid.UUID         `json:"id"`
	Type       string            `json:"type"`
	ActorID    uuid.UUID         `json:"actorId"`
	SubjectID  uuid.UUID         `json:"subjectId"`
	Attributes map[string]string `json:"attributes,omitempty"`
	OccurredAt time.Time         `json:"occurredAt"`
}

// New builds an event stamped with a fresh id and the current time.
func New(eventType string, actorID, subjectID uuid.UUID, attrs map[string]string) Event {
	return Event{
		ID:         uuid.New(),
		Type:       eventType,
		ActorID:    actorID,
		SubjectID:  subjectID,
		Attributes: attrs,
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher delivers events. Publishing is best-effort; callers log failures
// and never fail the originating request.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// NoopPublisher drops every event.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }
func (NoopPublisher) Close() error                         { return nil }

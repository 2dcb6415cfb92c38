// Package events publishes user lifecycle events. Publishing is best-effort:
// callers log failures and carry on.
package events

import (
	"context"
	"time"

	"github.com/dmitrijs2005/usersvc/internal/server/models"
)

// Event types.
const (
	TypeUserCreated = "user.created"
	TypeUserUpdated = "user.updated"
)

// Event is the JSON payload written for every change to a user. It carries
// the public projection only.
type Event struct {
	Type       string             `json:"type"`
	UserID     int64              `json:"id"`
	User       *models.PublicUser `json:"user"`
	OccurredAt time.Time          `json:"occurred_at"`
}

// NewEvent builds an Event of the given type for u.
func NewEvent(eventType string, u *models.User, at time.Time) Event {
	return Event{
		Type:       eventType,
		UserID:     u.ID,
		User:       u.Public(),
		OccurredAt: at.UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close() error                         { return nil }

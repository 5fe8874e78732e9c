package domain

import (
	"context"
	"strings"
	"time"
)

// Event represents a family calendar event owned by a parent user.
// swagger:model Event
type Event struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	StartAt     time.Time  `json:"start_at"`
	EndAt       *time.Time `json:"end_at,omitempty"`
	Description *string    `json:"description,omitempty"`
	Location    *string    `json:"location,omitempty"`
	OwnerID     string     `json:"owner_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewEvent returns a new Event with the given fields. ID is set by the
// repository on create.
func NewEvent(name string, startAt time.Time, endAt *time.Time, ownerID string, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Name:      strings.TrimSpace(name),
		StartAt:   startAt,
		EndAt:     endAt,
		OwnerID:   ownerID,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// Validate checks the integrity constraints that must hold on any persisted
// event: name and start_at present, end_at after start_at when set.
func (e *Event) Validate() error {
	var msgs []string
	if strings.TrimSpace(e.Name) == "" {
		msgs = append(msgs, "name is required")
	}
	if e.StartAt.IsZero() {
		msgs = append(msgs, "start_at is required")
	}
	if e.EndAt != nil && !e.StartAt.IsZero() && !e.EndAt.After(e.StartAt) {
		msgs = append(msgs, "end_at must be after start_at")
	}
	if e.OwnerID == "" {
		msgs = append(msgs, "owner is required")
	}
	if len(msgs) > 0 {
		return NewValidationError(msgs...)
	}
	return nil
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	ListByOwnerID(ctx context.Context, ownerID string) ([]*Event, error)
	Update(ctx context.Context, eventID string, name *string, startAt, endAt *time.Time, description, location *string) (*Event, error)
	Delete(ctx context.Context, id string) error
}

// CreateEventParams are the named inputs for EventService.CreateEvent.
type CreateEventParams struct {
	Name        string
	StartAt     time.Time
	EndAt       *time.Time
	Description *string
	Location    *string
	OwnerID     string
}

// UpdateEventParams are the named inputs for EventService.UpdateEvent.
// Nil fields are left unchanged.
type UpdateEventParams struct {
	Name        *string
	StartAt     *time.Time
	EndAt       *time.Time
	Description *string
	Location    *string
}

// EventService defines the business operations on events.
type EventService interface {
	CreateEvent(ctx context.Context, params CreateEventParams) (*Event, error)
	GetEventByID(ctx context.Context, eventID, callerID string) (*Event, []*Invitation, error)
	ListEventsByOwner(ctx context.Context, ownerID string) ([]*Event, error)
	UpdateEvent(ctx context.Context, eventID, ownerID string, params UpdateEventParams) (*Event, error)
	DeleteEvent(ctx context.Context, eventID, ownerID string) error
}

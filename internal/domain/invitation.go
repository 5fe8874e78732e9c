package domain

import (
	"context"
	"time"
)

// Invitation statuses. An invitation is issued, then either accepted or
// declined by the invited user; transitions only happen from "issued".
const (
	InvitationIssued   = "issued"
	InvitationAccepted = "accepted"
	InvitationDeclined = "declined"
)

// Invitation relates a user to an event.
// swagger:model Invitation
type Invitation struct {
	ID          string     `json:"id"`
	EventID     string     `json:"event_id"`
	UserID      string     `json:"user_id"`
	Email       string     `json:"email"`
	Status      string     `json:"status"`
	IssuedAt    time.Time  `json:"issued_at"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
}

// NewInvitation returns a freshly issued invitation for the given event and
// user. ID is set by the repository on create.
func NewInvitation(eventID, userID, email string, issuedAt time.Time) *Invitation {
	return &Invitation{
		EventID:  eventID,
		UserID:   userID,
		Email:    email,
		Status:   InvitationIssued,
		IssuedAt: issuedAt,
	}
}

// Open reports whether the invitation can still be responded to.
func (i *Invitation) Open() bool {
	return i.Status == InvitationIssued
}

// InvitationRepository defines storage operations for invitations.
type InvitationRepository interface {
	Create(ctx context.Context, inv *Invitation) error
	GetByID(ctx context.Context, id string) (*Invitation, error)
	GetByEventAndUser(ctx context.Context, eventID, userID string) (*Invitation, error)
	ListByEventID(ctx context.Context, eventID string, search string, params PaginationParams) ([]*Invitation, int, error)
	ListByUserID(ctx context.Context, userID string, status string, params PaginationParams) ([]*Invitation, int, error)
	UpdateStatus(ctx context.Context, id, status string, respondedAt time.Time) (*Invitation, error)
}

// InvitationService defines the business operations on invitations.
// Issuing creates invitations; accept and decline transition their status.
type InvitationService interface {
	IssueInvitations(ctx context.Context, eventID, ownerID string, emails []string) (sent int, failed []string, err error)
	AcceptInvitation(ctx context.Context, invitationID, userID string) (*Invitation, error)
	DeclineInvitation(ctx context.Context, invitationID, userID string) (*Invitation, error)
	ListEventInvitations(ctx context.Context, eventID, callerID string, search string, params PaginationParams) ([]*Invitation, int, error)
	ListMyInvitations(ctx context.Context, userID string, status string, params PaginationParams) ([]*Invitation, int, error)
}

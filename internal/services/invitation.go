package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"familyagenda/internal/domain"
)

type invitationService struct {
	invitationRepo domain.InvitationRepository
	eventRepo      domain.EventRepository
	userRepo       domain.UserRepository
	emailService   domain.EmailService
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewInvitationService creates an InvitationService with the given
// repositories and collaborators.
func NewInvitationService(
	invitationRepo domain.InvitationRepository,
	eventRepo domain.EventRepository,
	userRepo domain.UserRepository,
	emailService domain.EmailService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.InvitationService {
	return &invitationService{
		invitationRepo: invitationRepo,
		eventRepo:      eventRepo,
		userRepo:       userRepo,
		emailService:   emailService,
		logger:         logger,
		contextTimeout: timeout,
	}
}

// IssueInvitations creates an issued invitation for each email that resolves
// to a registered user and sends an invitation email. Unknown addresses,
// duplicates, and failed sends end up in the failed list; the operation as a
// whole only errors when the event lookup or ownership check fails.
func (s *invitationService) IssueInvitations(ctx context.Context, eventID, ownerID string, emails []string) (sent int, failed []string, err error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, nil, domain.ErrNotFound
		}
		return 0, nil, fmt.Errorf("get event: %w", err)
	}
	if event.OwnerID != ownerID {
		return 0, nil, domain.ErrForbidden
	}

	owner, err := s.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return 0, nil, fmt.Errorf("get owner: %w", err)
	}
	ownerName := strings.TrimSpace(owner.Name + " " + owner.LastName)
	if ownerName == "" {
		ownerName = owner.Email
	}

	for _, email := range emails {
		email = strings.TrimSpace(strings.ToLower(email))
		if email == "" {
			continue
		}
		user, err := s.userRepo.GetByEmail(ctx, email)
		if err != nil {
			failed = append(failed, email)
			continue
		}
		if user.ID == ownerID {
			failed = append(failed, email)
			continue
		}
		if _, err := s.invitationRepo.GetByEventAndUser(ctx, eventID, user.ID); err == nil {
			failed = append(failed, email)
			continue
		} else if !errors.Is(err, domain.ErrNotFound) {
			failed = append(failed, email)
			continue
		}

		inv := domain.NewInvitation(eventID, user.ID, email, time.Now())
		if err := s.invitationRepo.Create(ctx, inv); err != nil {
			failed = append(failed, email)
			continue
		}
		data := &domain.InvitationEmailData{
			Email:     email,
			OwnerName: ownerName,
			EventName: event.Name,
			StartAt:   event.StartAt.Format(time.RFC1123),
		}
		if err := s.emailService.SendInvitation(ctx, data); err != nil {
			// Invitation row stays; the email can be retried out of band.
			s.logger.WarnContext(ctx, "invitation email failed", "event_id", eventID, "email", email, "err", err)
			failed = append(failed, email)
			continue
		}
		sent++
	}
	return sent, failed, nil
}

// AcceptInvitation transitions an issued invitation to accepted. Only the
// invited user may respond, and only once.
func (s *invitationService) AcceptInvitation(ctx context.Context, invitationID, userID string) (*domain.Invitation, error) {
	return s.respond(ctx, invitationID, userID, domain.InvitationAccepted)
}

// DeclineInvitation transitions an issued invitation to declined.
func (s *invitationService) DeclineInvitation(ctx context.Context, invitationID, userID string) (*domain.Invitation, error) {
	return s.respond(ctx, invitationID, userID, domain.InvitationDeclined)
}

func (s *invitationService) respond(ctx context.Context, invitationID, userID, status string) (*domain.Invitation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	inv, err := s.invitationRepo.GetByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get invitation: %w", err)
	}
	if inv.UserID != userID {
		return nil, domain.ErrForbidden
	}
	if !inv.Open() {
		return nil, domain.ErrInvitationClosed
	}

	updated, err := s.invitationRepo.UpdateStatus(ctx, invitationID, status, time.Now())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update invitation status: %w", err)
	}
	return updated, nil
}

func (s *invitationService) ListEventInvitations(ctx context.Context, eventID, callerID string, search string, params domain.PaginationParams) ([]*domain.Invitation, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, 0, domain.ErrNotFound
		}
		return nil, 0, fmt.Errorf("get event: %w", err)
	}
	if event.OwnerID != callerID {
		return nil, 0, domain.ErrForbidden
	}
	invs, total, err := s.invitationRepo.ListByEventID(ctx, eventID, search, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list event invitations: %w", err)
	}
	if invs == nil {
		invs = []*domain.Invitation{}
	}
	return invs, total, nil
}

func (s *invitationService) ListMyInvitations(ctx context.Context, userID string, status string, params domain.PaginationParams) ([]*domain.Invitation, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	switch status {
	case "", domain.InvitationIssued, domain.InvitationAccepted, domain.InvitationDeclined:
	default:
		return nil, 0, domain.ErrInvalidInput
	}
	invs, total, err := s.invitationRepo.ListByUserID(ctx, userID, status, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list invitations: %w", err)
	}
	if invs == nil {
		invs = []*domain.Invitation{}
	}
	return invs, total, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"familyagenda/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	invitationRepo domain.InvitationRepository
	userRepo       domain.UserRepository
	roleRepo       domain.RoleRepository
	emailService   domain.EmailService
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewEventService creates an EventService with the given repositories and
// collaborators. All dependencies are injected at construction; no per-call
// state lives on the service.
func NewEventService(
	eventRepo domain.EventRepository,
	invitationRepo domain.InvitationRepository,
	userRepo domain.UserRepository,
	roleRepo domain.RoleRepository,
	emailService domain.EmailService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		invitationRepo: invitationRepo,
		userRepo:       userRepo,
		roleRepo:       roleRepo,
		emailService:   emailService,
		logger:         logger,
		contextTimeout: timeout,
	}
}

// CreateEvent runs the fixed sequence authorize -> build -> persist -> notify.
// Any failing step aborts the remaining ones; a notification failure is
// logged and never rolls back the persisted event.
func (s *eventService) CreateEvent(ctx context.Context, params domain.CreateEventParams) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.authorizeParent(ctx, params.OwnerID); err != nil {
		return nil, err
	}

	now := time.Now()
	event := domain.NewEvent(params.Name, params.StartAt, params.EndAt, params.OwnerID, now, now)
	event.Description = params.Description
	event.Location = params.Location
	if err := event.Validate(); err != nil {
		return nil, err
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.notifyEventCreated(ctx, event)
	return event, nil
}

// authorizeParent fails with ErrParentRequired unless the user holds the
// parent role.
func (s *eventService) authorizeParent(ctx context.Context, userID string) error {
	roles, err := s.roleRepo.ListByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("load roles: %w", err)
	}
	if !domain.HasRole(roles, domain.RoleParent) {
		return domain.ErrParentRequired
	}
	return nil
}

// notifyEventCreated emails the owner about the new event. Best effort: the
// event is already persisted, so a mail failure only produces a warning.
func (s *eventService) notifyEventCreated(ctx context.Context, event *domain.Event) {
	owner, err := s.userRepo.GetByID(ctx, event.OwnerID)
	if err != nil {
		s.logger.WarnContext(ctx, "event created notification skipped", "event_id", event.ID, "err", err)
		return
	}
	data := &domain.EventCreatedEmailData{
		Email:     owner.Email,
		OwnerName: owner.Name,
		EventName: event.Name,
		StartAt:   event.StartAt.Format(time.RFC1123),
	}
	if err := s.emailService.SendEventCreated(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "event created notification failed", "event_id", event.ID, "err", err)
	}
}

func (s *eventService) GetEventByID(ctx context.Context, eventID, callerID string) (*domain.Event, []*domain.Invitation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("get event: %w", err)
	}

	if event.OwnerID == callerID {
		invs, _, err := s.invitationRepo.ListByEventID(ctx, eventID, "", domain.PaginationParams{Page: 1, PageSize: 100})
		if err != nil {
			return nil, nil, fmt.Errorf("list invitations: %w", err)
		}
		if invs == nil {
			invs = []*domain.Invitation{}
		}
		return event, invs, nil
	}

	// Invited users may see the event itself, but not the guest list.
	if _, err := s.invitationRepo.GetByEventAndUser(ctx, eventID, callerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrForbidden
		}
		return nil, nil, fmt.Errorf("get invitation: %w", err)
	}
	return event, []*domain.Invitation{}, nil
}

func (s *eventService) ListEventsByOwner(ctx context.Context, ownerID string) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, eventID, ownerID string, params domain.UpdateEventParams) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}

	// Validate the would-be row before touching the store.
	candidate := *event
	if params.Name != nil {
		candidate.Name = *params.Name
	}
	if params.StartAt != nil {
		candidate.StartAt = *params.StartAt
	}
	if params.EndAt != nil {
		candidate.EndAt = params.EndAt
	}
	if err := candidate.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.eventRepo.Update(ctx, eventID, params.Name, params.StartAt, params.EndAt, params.Description, params.Location)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return updated, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, eventID, ownerID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if event.OwnerID != ownerID {
		return domain.ErrForbidden
	}
	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

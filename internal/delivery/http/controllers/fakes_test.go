package controllers

import (
	"context"
	"io"
	"log/slog"

	"familyagenda/internal/domain"
)

// testLogger is a no-op logger so tests don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	createErr    error
	createResult *domain.Event
	lastCreate   domain.CreateEventParams

	getErr          error
	getResult       *domain.Event
	getInvitations  []*domain.Invitation
	lastGetEventID  string
	lastGetCallerID string

	listErr    error
	listResult []*domain.Event

	updateErr    error
	updateResult *domain.Event
	lastUpdate   domain.UpdateEventParams

	deleteErr         error
	lastDeleteEventID string
	lastDeleteOwnerID string
}

func (f *fakeEventService) CreateEvent(ctx context.Context, params domain.CreateEventParams) (*domain.Event, error) {
	f.lastCreate = params
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createResult != nil {
		return f.createResult, nil
	}
	return &domain.Event{ID: "ev-created", Name: params.Name, StartAt: params.StartAt, OwnerID: params.OwnerID}, nil
}

func (f *fakeEventService) GetEventByID(ctx context.Context, eventID, callerID string) (*domain.Event, []*domain.Invitation, error) {
	f.lastGetEventID = eventID
	f.lastGetCallerID = callerID
	if f.getErr != nil {
		return nil, nil, f.getErr
	}
	invs := f.getInvitations
	if invs == nil {
		invs = []*domain.Invitation{}
	}
	return f.getResult, invs, nil
}

func (f *fakeEventService) ListEventsByOwner(ctx context.Context, ownerID string) ([]*domain.Event, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if f.listResult != nil {
		return f.listResult, nil
	}
	return []*domain.Event{}, nil
}

func (f *fakeEventService) UpdateEvent(ctx context.Context, eventID, ownerID string, params domain.UpdateEventParams) (*domain.Event, error) {
	f.lastUpdate = params
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if f.updateResult != nil {
		return f.updateResult, nil
	}
	return &domain.Event{ID: eventID, OwnerID: ownerID}, nil
}

func (f *fakeEventService) DeleteEvent(ctx context.Context, eventID, ownerID string) error {
	f.lastDeleteEventID = eventID
	f.lastDeleteOwnerID = ownerID
	return f.deleteErr
}

// fakeInvitationService implements domain.InvitationService for handler tests.
type fakeInvitationService struct {
	issueErr        error
	issueSent       int
	issueFailed     []string
	lastIssueEvent  string
	lastIssueOwner  string
	lastIssueEmails []string

	respondErr    error
	respondResult *domain.Invitation
	lastRespondID string

	listEventErr    error
	listEventResult []*domain.Invitation
	listEventTotal  int
	lastListSearch  string
	lastListParams  domain.PaginationParams

	listMineErr    error
	listMineResult []*domain.Invitation
	listMineTotal  int
	lastListStatus string
}

func (f *fakeInvitationService) IssueInvitations(ctx context.Context, eventID, ownerID string, emails []string) (int, []string, error) {
	f.lastIssueEvent = eventID
	f.lastIssueOwner = ownerID
	f.lastIssueEmails = emails
	if f.issueErr != nil {
		return 0, nil, f.issueErr
	}
	return f.issueSent, f.issueFailed, nil
}

func (f *fakeInvitationService) AcceptInvitation(ctx context.Context, invitationID, userID string) (*domain.Invitation, error) {
	f.lastRespondID = invitationID
	if f.respondErr != nil {
		return nil, f.respondErr
	}
	if f.respondResult != nil {
		return f.respondResult, nil
	}
	return &domain.Invitation{ID: invitationID, UserID: userID, Status: domain.InvitationAccepted}, nil
}

func (f *fakeInvitationService) DeclineInvitation(ctx context.Context, invitationID, userID string) (*domain.Invitation, error) {
	f.lastRespondID = invitationID
	if f.respondErr != nil {
		return nil, f.respondErr
	}
	if f.respondResult != nil {
		return f.respondResult, nil
	}
	return &domain.Invitation{ID: invitationID, UserID: userID, Status: domain.InvitationDeclined}, nil
}

func (f *fakeInvitationService) ListEventInvitations(ctx context.Context, eventID, callerID string, search string, params domain.PaginationParams) ([]*domain.Invitation, int, error) {
	f.lastListSearch = search
	f.lastListParams = params
	if f.listEventErr != nil {
		return nil, 0, f.listEventErr
	}
	if f.listEventResult == nil {
		return []*domain.Invitation{}, 0, nil
	}
	return f.listEventResult, f.listEventTotal, nil
}

func (f *fakeInvitationService) ListMyInvitations(ctx context.Context, userID string, status string, params domain.PaginationParams) ([]*domain.Invitation, int, error) {
	f.lastListStatus = status
	f.lastListParams = params
	if f.listMineErr != nil {
		return nil, 0, f.listMineErr
	}
	if f.listMineResult == nil {
		return []*domain.Invitation{}, 0, nil
	}
	return f.listMineResult, f.listMineTotal, nil
}

// fakeAuthService implements domain.AuthService for handler tests.
type fakeAuthService struct {
	signUpErr  error
	loginErr   error
	token      string
	user       *domain.User
	lastSignUp domain.SignUpParams
	lastEmail  string
}

func (f *fakeAuthService) SignUp(ctx context.Context, params domain.SignUpParams) (string, *domain.User, error) {
	f.lastSignUp = params
	if f.signUpErr != nil {
		return "", nil, f.signUpErr
	}
	return f.token, f.user, nil
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	f.lastEmail = email
	if f.loginErr != nil {
		return "", nil, f.loginErr
	}
	return f.token, f.user, nil
}

// fakeUserService implements domain.UserService for handler tests.
type fakeUserService struct {
	getErr     error
	updateErr  error
	user       *domain.User
	lastUserID string
}

func (f *fakeUserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	f.lastUserID = id
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.user, nil
}

func (f *fakeUserService) UpdateProfile(ctx context.Context, userID string, name, lastName *string) (*domain.User, error) {
	f.lastUserID = userID
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.user, nil
}

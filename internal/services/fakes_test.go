package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"familyagenda/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	byID      map[string]*domain.Event
	nextID    int
	createErr error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		byID:   make(map[string]*domain.Event),
		nextID: 1,
	}
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if f.createErr != nil {
		return f.createErr
	}
	e.ID = fmt.Sprintf("ev-%d", f.nextID)
	f.nextID++
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) ListByOwnerID(ctx context.Context, ownerID string) ([]*domain.Event, error) {
	var out []*domain.Event
	for _, e := range f.byID {
		if e.OwnerID == ownerID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) Update(ctx context.Context, eventID string, name *string, startAt, endAt *time.Time, description, location *string) (*domain.Event, error) {
	e, ok := f.byID[eventID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if name != nil {
		e.Name = *name
	}
	if startAt != nil {
		e.StartAt = *startAt
	}
	if endAt != nil {
		e.EndAt = endAt
	}
	if description != nil {
		e.Description = description
	}
	if location != nil {
		e.Location = location
	}
	e.UpdatedAt = time.Now()
	return e, nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeInvitationRepo is an in-memory InvitationRepository for tests.
type fakeInvitationRepo struct {
	invitations []*domain.Invitation
	nextID      int
	createErr   error
	listErr     error
}

func newFakeInvitationRepo() *fakeInvitationRepo {
	return &fakeInvitationRepo{nextID: 1}
}

func (f *fakeInvitationRepo) Create(ctx context.Context, inv *domain.Invitation) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.invitations {
		if existing.EventID == inv.EventID && existing.UserID == inv.UserID {
			return domain.ErrAlreadyInvited
		}
	}
	inv.ID = fmt.Sprintf("inv-%d", f.nextID)
	f.nextID++
	f.invitations = append(f.invitations, inv)
	return nil
}

func (f *fakeInvitationRepo) GetByID(ctx context.Context, id string) (*domain.Invitation, error) {
	for _, inv := range f.invitations {
		if inv.ID == id {
			return inv, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeInvitationRepo) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.Invitation, error) {
	for _, inv := range f.invitations {
		if inv.EventID == eventID && inv.UserID == userID {
			return inv, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeInvitationRepo) ListByEventID(ctx context.Context, eventID string, search string, params domain.PaginationParams) ([]*domain.Invitation, int, error) {
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	var out []*domain.Invitation
	for _, inv := range f.invitations {
		if inv.EventID != eventID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(inv.Email), strings.ToLower(search)) {
			continue
		}
		out = append(out, inv)
	}
	return paginate(out, params)
}

func (f *fakeInvitationRepo) ListByUserID(ctx context.Context, userID string, status string, params domain.PaginationParams) ([]*domain.Invitation, int, error) {
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	var out []*domain.Invitation
	for _, inv := range f.invitations {
		if inv.UserID != userID {
			continue
		}
		if status != "" && inv.Status != status {
			continue
		}
		out = append(out, inv)
	}
	return paginate(out, params)
}

func (f *fakeInvitationRepo) UpdateStatus(ctx context.Context, id, status string, respondedAt time.Time) (*domain.Invitation, error) {
	for _, inv := range f.invitations {
		if inv.ID == id {
			inv.Status = status
			inv.RespondedAt = &respondedAt
			return inv, nil
		}
	}
	return nil, domain.ErrNotFound
}

func paginate(invs []*domain.Invitation, params domain.PaginationParams) ([]*domain.Invitation, int, error) {
	if invs == nil {
		invs = []*domain.Invitation{}
	}
	total := len(invs)
	offset := params.Offset()
	if offset > total {
		offset = total
	}
	end := offset + params.PageSize
	if end > total {
		end = total
	}
	return invs[offset:end], total, nil
}

// fakeUserRepo is an in-memory UserRepository for tests.
type fakeUserRepo struct {
	byEmail   map[string]*domain.User // normalized lower email -> user
	roles     map[string][]string     // userID -> roleIDs
	nextID    int
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: make(map[string]*domain.User),
		roles:   make(map[string][]string),
		nextID:  1,
	}
}

func (f *fakeUserRepo) addUser(email, id, name, lastName string) *domain.User {
	email = strings.TrimSpace(strings.ToLower(email))
	u := &domain.User{ID: id, Email: email, Name: name, LastName: lastName}
	f.byEmail[email] = u
	return u
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byEmail[user.Email]; ok {
		return domain.ErrDuplicateEmail
	}
	user.ID = fmt.Sprintf("user-%d", f.nextID)
	f.nextID++
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) Update(ctx context.Context, userID string, name, lastName *string) (*domain.User, error) {
	for _, u := range f.byEmail {
		if u.ID == userID {
			if name != nil {
				u.Name = *name
			}
			if lastName != nil {
				u.LastName = *lastName
			}
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) AssignRole(ctx context.Context, userID, roleID string) error {
	f.roles[userID] = append(f.roles[userID], roleID)
	return nil
}

// fakeRoleRepo is an in-memory RoleRepository for tests.
type fakeRoleRepo struct {
	byUserID map[string][]*domain.Role
	listErr  error
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{byUserID: make(map[string][]*domain.Role)}
}

func (f *fakeRoleRepo) grant(userID, code string) {
	f.byUserID[userID] = append(f.byUserID[userID], &domain.Role{ID: "role-" + code, Code: code})
}

func (f *fakeRoleRepo) GetByCode(ctx context.Context, code string) (*domain.Role, error) {
	return &domain.Role{ID: "role-" + code, Code: code}, nil
}

func (f *fakeRoleRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Role, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.byUserID[userID], nil
}

// fakeEmailService records the emails sent through it.
type fakeEmailService struct {
	welcomeErr    error
	createdErr    error
	invitationErr error

	welcomes    []*domain.WelcomeEmailData
	created     []*domain.EventCreatedEmailData
	invitations []*domain.InvitationEmailData
}

func newFakeEmailService() *fakeEmailService {
	return &fakeEmailService{}
}

func (f *fakeEmailService) SendWelcome(ctx context.Context, data *domain.WelcomeEmailData) error {
	if f.welcomeErr != nil {
		return f.welcomeErr
	}
	f.welcomes = append(f.welcomes, data)
	return nil
}

func (f *fakeEmailService) SendEventCreated(ctx context.Context, data *domain.EventCreatedEmailData) error {
	if f.createdErr != nil {
		return f.createdErr
	}
	f.created = append(f.created, data)
	return nil
}

func (f *fakeEmailService) SendInvitation(ctx context.Context, data *domain.InvitationEmailData) error {
	if f.invitationErr != nil {
		return f.invitationErr
	}
	f.invitations = append(f.invitations, data)
	return nil
}

// fakeHasher is a deterministic PasswordHasher for tests.
type fakeHasher struct {
	hashErr error
}

func (f *fakeHasher) GenerateSalt() (string, error) { return "salt", nil }

func (f *fakeHasher) Hash(salt, password string) (string, error) {
	if f.hashErr != nil {
		return "", f.hashErr
	}
	return "hash:" + salt + ":" + password, nil
}

func (f *fakeHasher) Compare(hash, salt, password string) error {
	if hash == "hash:"+salt+":"+password {
		return nil
	}
	return fmt.Errorf("mismatch")
}

// fakeTokenIssuer returns predictable tokens.
type fakeTokenIssuer struct {
	err error
}

func (f *fakeTokenIssuer) Issue(userID, email string, roles []string, expiry time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "token-" + userID, nil
}

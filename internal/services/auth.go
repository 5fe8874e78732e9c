package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"familyagenda/internal/domain"
)

const minPasswordLen = 8

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type authService struct {
	userRepo    domain.UserRepository
	roleRepo    domain.RoleRepository
	hasher      domain.PasswordHasher
	tokenIssuer domain.TokenIssuer
	tokenExpiry time.Duration
	emailSvc    domain.EmailService
	logger      *slog.Logger
}

// NewAuthService creates an AuthService with the given repositories and auth
// ports.
func NewAuthService(
	userRepo domain.UserRepository,
	roleRepo domain.RoleRepository,
	hasher domain.PasswordHasher,
	tokenIssuer domain.TokenIssuer,
	tokenExpiry time.Duration,
	emailSvc domain.EmailService,
	logger *slog.Logger,
) domain.AuthService {
	return &authService{
		userRepo:    userRepo,
		roleRepo:    roleRepo,
		hasher:      hasher,
		tokenIssuer: tokenIssuer,
		tokenExpiry: tokenExpiry,
		emailSvc:    emailSvc,
		logger:      logger,
	}
}

func (s *authService) SignUp(ctx context.Context, params domain.SignUpParams) (string, *domain.User, error) {
	email := strings.TrimSpace(strings.ToLower(params.Email))
	if !emailRegexp.MatchString(email) {
		return "", nil, domain.NewValidationError("invalid email format")
	}
	if len(params.Password) < minPasswordLen {
		return "", nil, domain.NewValidationError(fmt.Sprintf("password must be at least %d characters", minPasswordLen))
	}
	roleCode := strings.TrimSpace(strings.ToLower(params.Role))
	if roleCode != domain.RoleParent && roleCode != domain.RoleMember {
		roleCode = domain.RoleMember
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return "", nil, fmt.Errorf("generate salt: %w", err)
	}
	hash, err := s.hasher.Hash(salt, params.Password)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := domain.NewUser(email, params.Name, params.LastName, hash, salt, now, now)
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return "", nil, domain.ErrDuplicateEmail
		}
		return "", nil, fmt.Errorf("create user: %w", err)
	}

	roleRecord, err := s.roleRepo.GetByCode(ctx, roleCode)
	if err != nil {
		return "", nil, fmt.Errorf("get role %q: %w", roleCode, err)
	}
	if err := s.userRepo.AssignRole(ctx, user.ID, roleRecord.ID); err != nil {
		return "", nil, fmt.Errorf("assign role: %w", err)
	}

	token, err := s.tokenIssuer.Issue(user.ID, user.Email, []string{roleCode}, s.tokenExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}

	// Welcome email is best effort; sign-up already succeeded.
	if err := s.emailSvc.SendWelcome(ctx, &domain.WelcomeEmailData{Email: user.Email, Name: user.Name}); err != nil {
		s.logger.WarnContext(ctx, "welcome email failed", "email", user.Email, "err", err)
	}

	return token, user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		return "", nil, domain.ErrInvalidInput
	}
	if err := s.hasher.Compare(user.PasswordHash, user.Salt, password); err != nil {
		return "", nil, domain.ErrInvalidInput
	}

	roles, err := s.roleRepo.ListByUserID(ctx, user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("load roles: %w", err)
	}
	roleCodes := make([]string, len(roles))
	for i, r := range roles {
		roleCodes[i] = r.Code
	}

	token, err := s.tokenIssuer.Issue(user.ID, user.Email, roleCodes, s.tokenExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, user, nil
}

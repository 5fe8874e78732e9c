package domain

import (
	"context"
	"strings"
	"time"
)

// Role codes. Parents can create events and invite family members.
const (
	RoleParent = "parent"
	RoleMember = "member"
)

// User represents a registered family member.
// swagger:model User
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	LastName     string    `json:"last_name"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUser returns a new User with the given fields. ID is set by the
// repository on create.
func NewUser(email, name, lastName, passwordHash, salt string, createdAt, updatedAt time.Time) *User {
	return &User{
		Email:        strings.TrimSpace(strings.ToLower(email)),
		Name:         strings.TrimSpace(name),
		LastName:     strings.TrimSpace(lastName),
		PasswordHash: passwordHash,
		Salt:         salt,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
}

// Role represents an application role (parent or member).
type Role struct {
	ID   string `json:"id"`
	Code string `json:"code"`
}

// HasRole reports whether code is present in roles.
func HasRole(roles []*Role, code string) bool {
	for _, r := range roles {
		if r.Code == code {
			return true
		}
	}
	return false
}

// PasswordHasher handles salt generation, hashing, and verification.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID, email string, roles []string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated user ID.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}

// UserRepository defines the interface for user storage.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, userID string, name, lastName *string) (*User, error)
	AssignRole(ctx context.Context, userID, roleID string) error
}

// RoleRepository defines the interface for role storage.
type RoleRepository interface {
	GetByCode(ctx context.Context, code string) (*Role, error)
	ListByUserID(ctx context.Context, userID string) ([]*Role, error)
}

// SignUpParams are the named inputs for AuthService.SignUp.
type SignUpParams struct {
	Email    string
	Password string
	Name     string
	LastName string
	Role     string // "parent" or "member"; defaults to "member"
}

// AuthService defines sign-up and login.
type AuthService interface {
	SignUp(ctx context.Context, params SignUpParams) (token string, user *User, err error)
	Login(ctx context.Context, email, password string) (token string, user *User, err error)
}

// UserService defines profile operations on the authenticated user.
type UserService interface {
	GetByID(ctx context.Context, id string) (*User, error)
	UpdateProfile(ctx context.Context, userID string, name, lastName *string) (*User, error)
}

package domain

import "errors"

// Sentinel errors shared across services and repositories. Controllers map
// these to HTTP statuses through a single table in the helpers package.
var (
	ErrNotFound       = errors.New("not found")
	ErrForbidden      = errors.New("forbidden")
	ErrInvalidInput   = errors.New("invalid input")
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already in use")

	// ErrParentRequired is returned when a user without the parent role
	// attempts an operation reserved for parents, such as creating an event.
	ErrParentRequired = errors.New("only parents can perform this action")

	// ErrAlreadyInvited is returned when issuing an invitation for a user
	// who already has one for the same event.
	ErrAlreadyInvited = errors.New("user already invited to this event")

	// ErrInvitationClosed is returned when accepting or declining an
	// invitation that has already been responded to.
	ErrInvitationClosed = errors.New("invitation already responded to")
)

// ValidationError carries the field-level messages produced when an entity
// fails its presence or integrity checks before persistence.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	if len(e.Messages) == 0 {
		return "validation failed"
	}
	msg := e.Messages[0]
	for _, m := range e.Messages[1:] {
		msg += "; " + m
	}
	return msg
}

// NewValidationError returns a ValidationError with the given messages.
func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

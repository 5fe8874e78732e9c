package helpers

import (
	"errors"
	"net/http"

	"familyagenda/internal/domain"
)

// StatusForError is the single translation point from domain error kind to
// HTTP status and API error code. Controllers never inspect error strings;
// everything not recognized here is an internal error.
func StatusForError(err error) (status int, code string) {
	switch {
	case domain.IsValidation(err):
		return http.StatusUnprocessableEntity, ErrCodeValidation
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, ErrCodeNotFound
	case errors.Is(err, domain.ErrForbidden), errors.Is(err, domain.ErrParentRequired):
		return http.StatusForbidden, ErrCodeForbidden
	case errors.Is(err, domain.ErrDuplicateEmail),
		errors.Is(err, domain.ErrAlreadyInvited),
		errors.Is(err, domain.ErrInvitationClosed):
		return http.StatusConflict, ErrCodeConflict
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrCodeBadRequest
	default:
		return http.StatusInternalServerError, ErrCodeInternalError
	}
}

// WriteDomainError maps err through StatusForError and writes the JSON error
// response. Only the sentinel's own message reaches the client; wrapped
// internals collapse to a generic message on 500.
func WriteDomainError(w http.ResponseWriter, err error) (status int) {
	status, code := StatusForError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal error"
	}
	WriteJSONError(w, status, code, message)
	return status
}

// Package apperrors holds the error taxonomy shared by every saga participant.
//
// Call sites wrap the sentinels with github.com/pkg/errors so the message keeps
// the context ("failed to find enrollment: not found") while Is still matches.
package apperrors

import (
	stderrors "errors"
	"net/http"

	"github.com/pkg/errors"
)

var (
	// ErrNotFound means the addressed entity does not exist
	ErrNotFound = errors.New("not found")
	// ErrInvalidState means the operation is not valid for the current saga state
	ErrInvalidState = errors.New("invalid state")
	// ErrAlreadyCompleted is the InvalidState raised when completing a PAID payment
	ErrAlreadyCompleted = errors.New("already completed")
	// ErrDependencyUnavailable means a synchronous collaborator could not be reached
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	// ErrStorageFailure means the persistence layer failed
	ErrStorageFailure = errors.New("storage failure")
	// ErrConcurrentModification means an optimistic write lost against another writer
	ErrConcurrentModification = errors.New("concurrent modification")
	// ErrValidation means the request itself is malformed
	ErrValidation = errors.New("validation failed")
)

// Is reports whether err, or anything it wraps, matches target.
// ErrAlreadyCompleted also matches ErrInvalidState.
func Is(err, target error) bool {
	if err == nil {
		return false
	}
	if stderrors.Is(err, target) || errors.Cause(err) == target {
		return true
	}
	if target == ErrInvalidState {
		return Is(err, ErrAlreadyCompleted)
	}
	return false
}

// NotFound wraps ErrNotFound with a message
func NotFound(message string) error {
	return errors.Wrap(ErrNotFound, message)
}

// InvalidState wraps ErrInvalidState with a message
func InvalidState(message string) error {
	return errors.Wrap(ErrInvalidState, message)
}

// Storage marks err as a storage failure, keeping the driver error in the message
func Storage(err error, message string) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(ErrStorageFailure, "%s: %v", message, err)
}

// Unavailable marks err as a dependency failure
func Unavailable(err error, message string) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(ErrDependencyUnavailable, "%s: %v", message, err)
}

// Validation wraps ErrValidation with a message
func Validation(message string) error {
	return errors.Wrap(ErrValidation, message)
}

// HTTPStatus maps the taxonomy onto HTTP status codes
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case Is(err, ErrValidation):
		return http.StatusBadRequest
	case Is(err, ErrNotFound):
		return http.StatusNotFound
	case Is(err, ErrInvalidState), Is(err, ErrConcurrentModification):
		return http.StatusConflict
	case Is(err, ErrDependencyUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

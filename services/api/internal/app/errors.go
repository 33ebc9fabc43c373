package app

import (
	"errors"

	"jobconnect/pkg/domain"
	"jobconnect/pkg/validation"
)

var (
	// ErrUnauthenticated means the request carries no live session.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrInvalidCredentials is returned for both unknown emails and wrong
	// passwords.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError wraps the field errors of a rejected input.
type ValidationError struct {
	Errors validation.Errors
}

func (e *ValidationError) Error() string { return e.Errors.Error() }

// NotFoundError reports a missing entity. Entities owned by someone else are
// reported the same way.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

// ProfileNotFoundError means the actor has no profile for the role the
// operation requires.
type ProfileNotFoundError struct {
	Role domain.UserRole
}

func (e *ProfileNotFoundError) Error() string {
	if e.Role == domain.RoleEmployer {
		return "Employer profile not found"
	}
	return "Job seeker profile not found"
}

// ConflictError reports a uniqueness or state conflict.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func notFound(resource string) error { return &NotFoundError{Resource: resource} }

func conflict(msg string) error { return &ConflictError{Message: msg} }

func invalidField(field, msg string) error {
	return &ValidationError{Errors: validation.Errors{{Field: field, Message: msg}}}
}

// asValidation converts validation.Errors into a *ValidationError and passes
// anything else through.
func asValidation(err error) error {
	var errs validation.Errors
	if errors.As(err, &errs) {
		return &ValidationError{Errors: errs}
	}
	return err
}

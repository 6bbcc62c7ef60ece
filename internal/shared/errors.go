package shared

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates a missing, malformed, expired or forged token.
	// Verification failures are never distinguished further.
	ErrInvalidToken = errors.New("invalid or missing credential")
	// ErrEmailTaken indicates the email is already registered.
	ErrEmailTaken = errors.New("email already in use")
	// ErrHasListings indicates a user delete blocked by owned listings.
	ErrHasListings = errors.New("user still owns listings")
	// ErrValidation is the base error for malformed input.
	ErrValidation = errors.New("validation failed")
)

// ValidationError reports every missing or malformed field of a request.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError builds a ValidationError from field messages.
func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// Error lists the offending fields in a stable order.
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "invalid fields: " + strings.Join(names, ", ")
}

// Unwrap makes ValidationError match ErrValidation in errors.Is.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

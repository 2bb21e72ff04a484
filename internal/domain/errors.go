package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidDate is returned when a calendar date is malformed.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidFrequency is returned when a recurrence frequency is not
	// one of the recognized values.
	ErrInvalidFrequency = errors.New("invalid recurrence frequency")

	// ErrInvalidStatus is returned when an occurrence status is not valid.
	ErrInvalidStatus = errors.New("invalid occurrence status")
)

// ValidationError describes a validation failure on a named field.
// It wraps one of the sentinel errors above so callers can classify
// the failure with errors.Is while still seeing the offending field.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap returns the wrapped sentinel error to support errors.Is.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}

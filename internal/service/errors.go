package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// These errors represent common conditions that callers may want to check for with errors.Is().
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Unexpected errors are wrapped in service-specific error types
// 3. Callers use errors.Is/errors.As to check for specific error conditions
// 4. The API layer maps service errors to appropriate HTTP status codes
var (
	// ErrNoPeople indicates that plan generation was requested for a
	// household with no stored members. API layer should map this to
	// HTTP 422 Unprocessable Entity.
	ErrNoPeople = errors.New("household has no members")

	// ErrNoTasks indicates that plan generation was requested with no
	// stored task definitions. API layer should map this to HTTP 422
	// Unprocessable Entity.
	ErrNoTasks = errors.New("household has no task definitions")
)

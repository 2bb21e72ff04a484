package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ajan-it/huisgenoot-maatje-sub000/internal/api/shared"
	"github.com/ajan-it/huisgenoot-maatje-sub000/internal/domain"
	"github.com/ajan-it/huisgenoot-maatje-sub000/internal/domain/planner"
	"github.com/ajan-it/huisgenoot-maatje-sub000/internal/service"
	"github.com/ajan-it/huisgenoot-maatje-sub000/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, store.ErrTaskNotFound),
		errors.Is(err, store.ErrPersonNotFound),
		errors.Is(err, store.ErrPlanNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrPlanExists),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Unprocessable requests: structurally valid but the household state
	// cannot satisfy them
	case errors.Is(err, service.ErrNoPeople),
		errors.Is(err, service.ErrNoTasks):
		return http.StatusUnprocessableEntity

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrInvalidFrequency),
		errors.Is(err, planner.ErrZeroWeekStart):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	// Handle nil error
	if err == nil {
		return "An unexpected error occurred"
	}

	// Map specific error types to user-friendly messages
	switch {
	// Not found errors
	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, store.ErrPersonNotFound):
		return "Person not found"

	case errors.Is(err, store.ErrPlanNotFound):
		return "Plan not found"

	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	// Conflict errors
	case errors.Is(err, store.ErrPlanExists),
		errors.Is(err, store.ErrDuplicate):
		return "A plan already exists for this week and idempotency key"

	// Unprocessable requests
	case errors.Is(err, service.ErrNoPeople):
		return "The household has no members to assign tasks to"

	case errors.Is(err, service.ErrNoTasks):
		return "The household has no task definitions to schedule"

	// Bad request errors
	case errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, planner.ErrZeroWeekStart):
		return "Invalid week start date"

	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID format"

	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidFrequency):
		return "Invalid entity data"

	// Default case for unknown errors
	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError maps the error to a status code and sanitized message,
// then writes the response while logging the full error details. The
// fallbackMessage replaces the generic message for unclassified server
// errors so each endpoint can report a contextual failure.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallbackMessage string) {
	statusCode := MapErrorToStatusCode(err)
	safeMessage := GetSafeErrorMessage(err)

	if statusCode == http.StatusInternalServerError && fallbackMessage != "" {
		safeMessage = fallbackMessage
	}

	shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Check if this is likely a validation error message
	if strings.Contains(errMsg, "Field validation") {
		// Extract the field name and validation tag
		// Example format: "Key: 'TaskRequest.Name' Error:Field validation for 'Name' failed on the 'required' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			// Further split to get just the field validation part
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				// Create a cleaner error message
				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	// Fall back to a generic validation error message
	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min", "gte":
		return "too small"
	case "max", "lte":
		return "too large"
	case "gt":
		return "must be positive"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

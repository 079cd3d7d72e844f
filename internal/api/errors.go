package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/growthcast-api/internal/api/shared"
	"github.com/phrazzld/growthcast-api/internal/domain"
	"github.com/phrazzld/growthcast-api/internal/domain/reminder"
	"github.com/phrazzld/growthcast-api/internal/service"
	"github.com/phrazzld/growthcast-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var validationErrs validator.ValidationErrors

	switch {
	// Not found errors
	case errors.Is(err, service.ErrChildNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, service.ErrDuplicateGrowthLog),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.As(err, &validationErrs),
		errors.Is(err, shared.ErrEmptyBody),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrInvalidMeasurement),
		errors.Is(err, domain.ErrChildNameEmpty),
		errors.Is(err, domain.ErrChildBirthDateInvalid),
		errors.Is(err, domain.ErrNegativeNutrient),
		errors.Is(err, service.ErrInvalidMonths),
		errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, reminder.ErrEmptySchedule),
		errors.Is(err, reminder.ErrInvalidTimeOfDay),
		errors.Is(err, reminder.ErrInvalidRange),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var validationErrs validator.ValidationErrors

	switch {
	case errors.Is(err, service.ErrChildNotFound),
		errors.Is(err, store.ErrChildNotFound):
		return "Child not found"
	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"
	case errors.Is(err, service.ErrDuplicateGrowthLog),
		errors.Is(err, store.ErrGrowthLogExists):
		return "A growth log already exists for this date"
	case errors.Is(err, store.ErrDuplicate):
		return "Resource already exists"

	case errors.As(err, &validationErrs):
		return SanitizeValidationError(err)
	case errors.Is(err, shared.ErrEmptyBody):
		return "Request body is required"
	case errors.Is(err, domain.ErrChildNameEmpty):
		return "Child name is required"
	case errors.Is(err, domain.ErrChildBirthDateInvalid):
		return "Birth date must be set and not in the future"
	case errors.Is(err, domain.ErrInvalidMeasurement):
		return "Invalid measurement: at least one of weight, height or head circumference is required, and values must be in a plausible range"
	case errors.Is(err, domain.ErrNegativeNutrient):
		return "Nutrient intake values cannot be negative"
	case errors.Is(err, domain.ErrInvalidDate):
		return "Invalid or missing date"
	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID format"
	case errors.Is(err, service.ErrInvalidMonths):
		return "Months is out of range"
	case errors.Is(err, service.ErrInvalidInput):
		return "Invalid prediction input: birth date is required"
	case errors.Is(err, reminder.ErrEmptySchedule):
		return "Schedule needs at least one time of day"
	case errors.Is(err, reminder.ErrInvalidTimeOfDay):
		return "Times of day must use HH:MM format"
	case errors.Is(err, reminder.ErrInvalidRange):
		return "Schedule end date must not be before its start date"
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request data"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns validator errors into a message naming the
// first failing field by its JSON name, without struct or package names.
func SanitizeValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return "Validation error"
	}

	fe := validationErrs[0]
	field := fe.Field()
	if msg := getValidationTagMessage(fe.Tag()); msg != "" {
		return fmt.Sprintf("Invalid %s: %s", field, msg)
	}
	return fmt.Sprintf("Invalid %s", field)
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min", "gte", "gt":
		return "too small"
	case "max", "lte", "lt":
		return "too large"
	case "oneof":
		return "invalid value"
	case "datetime":
		return "invalid date format"
	case "dive":
		return "invalid entry"
	case "timezone":
		return "unknown time zone"
	default:
		return "validation failed"
	}
}

// HandleAPIError maps err to a status code and safe message, logs the
// details and writes the error response. An empty message selects the
// default safe message for the error.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, message string) {
	if message == "" {
		message = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), message, err)
}

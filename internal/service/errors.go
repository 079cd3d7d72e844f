package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/growthcast-api/internal/store"
)

// Common service errors - sentinel errors used across service implementations.
// Callers check for them with errors.Is; the API layer maps them to status codes.
var (
	// ErrChildNotFound indicates that the referenced child does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrChildNotFound = errors.New("child not found")

	// ErrDuplicateGrowthLog indicates a second measurement for the same child
	// and date. API layer should map this to HTTP 409 Conflict.
	ErrDuplicateGrowthLog = errors.New("growth log already recorded for this date")

	// ErrInvalidMonths indicates a forecast horizon outside the configured range.
	// API layer should map this to HTTP 400 Bad Request.
	ErrInvalidMonths = errors.New("forecast months out of range")

	// ErrInvalidInput indicates a stateless prediction request that cannot be
	// forecast, such as a missing birth date.
	ErrInvalidInput = errors.New("invalid prediction input")
)

// ServiceError wraps an unexpected failure with the operation that produced it.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "create_child", "predict")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
// Store errors with a service-level meaning are translated to the matching
// sentinel and returned without wrapping.
func NewServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrChildNotFound), errors.Is(err, store.ErrChildNotFound):
		return ErrChildNotFound
	case errors.Is(err, ErrDuplicateGrowthLog), errors.Is(err, store.ErrGrowthLogExists):
		return ErrDuplicateGrowthLog
	}

	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

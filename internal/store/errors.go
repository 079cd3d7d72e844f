package store

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by every store backend. Backends wrap them so
// callers can branch with errors.Is regardless of the database in use.
var (
	ErrNotFound          = errors.New("entity not found")
	ErrDuplicate         = errors.New("entity already exists")
	ErrInvalidEntity     = errors.New("invalid entity")
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrChildNotFound is returned for an unknown child id, including logs
	// written against one.
	ErrChildNotFound = fmt.Errorf("%w: child", ErrNotFound)

	// ErrGrowthLogExists is returned when a child already has a measurement
	// on the given date.
	ErrGrowthLogExists = fmt.Errorf("%w: growth log for date", ErrDuplicate)
)

// IsNotFoundError reports whether err wraps ErrNotFound.
func IsNotFoundError(err error) bool { return errors.Is(err, ErrNotFound) }

// IsDuplicateError reports whether err wraps ErrDuplicate.
func IsDuplicateError(err error) bool { return errors.Is(err, ErrDuplicate) }

// StoreError records which entity and operation a backend failure belongs to.
type StoreError struct {
	Entity    string
	Operation string
	Message   string
	Err       error
}

// NewStoreError builds a StoreError; err may be nil.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{Entity: entity, Operation: operation, Message: message, Err: err}
}

func (e *StoreError) Error() string {
	msg := e.Operation + " operation on " + e.Entity + " failed: " + e.Message
	if e.Err == nil {
		return msg
	}
	return msg + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error { return e.Err }

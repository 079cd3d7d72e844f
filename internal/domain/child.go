package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Child-specific validation errors
var (
	// ErrChildIDEmpty is returned when a child ID is empty or nil.
	ErrChildIDEmpty = errors.New("child ID cannot be empty")

	// ErrChildNameEmpty is returned when a child's name is blank.
	ErrChildNameEmpty = errors.New("child name cannot be empty")

	// ErrChildBirthDateInvalid is returned when the birth date is missing or in the future.
	ErrChildBirthDateInvalid = errors.New("child birth date must be set and not in the future")
)

// Child is the subject of growth tracking. Its birth date anchors every
// age-in-months calculation performed by the growth engine.
type Child struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	BirthDate time.Time `json:"birth_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewChild creates a new Child with a generated ID and creation timestamps.
// Returns an error if validation fails.
func NewChild(name string, birthDate time.Time) (*Child, error) {
	now := time.Now().UTC()
	child := &Child{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(name),
		BirthDate: birthDate.UTC(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := child.Validate(); err != nil {
		return nil, err
	}

	return child, nil
}

// Validate checks if the Child has valid data.
func (c *Child) Validate() error {
	if c.ID == uuid.Nil {
		return ErrChildIDEmpty
	}

	if strings.TrimSpace(c.Name) == "" {
		return ErrChildNameEmpty
	}

	if c.BirthDate.IsZero() || c.BirthDate.After(time.Now().UTC()) {
		return ErrChildBirthDateInvalid
	}

	return nil
}

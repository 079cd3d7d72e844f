package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/growthcast-api/internal/domain"
)

// ChildStore defines the interface for child data persistence.
type ChildStore interface {
	// Create saves a new child to the store.
	// Returns validation errors from the domain Child if data is invalid.
	Create(ctx context.Context, child *domain.Child) error

	// GetByID retrieves a child by its unique ID.
	// Returns ErrChildNotFound if the child does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Child, error)

	// WithTx returns a new ChildStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) ChildStore
}

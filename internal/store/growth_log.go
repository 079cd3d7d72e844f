package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/growthcast-api/internal/domain"
)

// GrowthLogStore defines the interface for growth measurement persistence.
type GrowthLogStore interface {
	// Create saves a new growth log.
	// Returns ErrChildNotFound if the referenced child does not exist.
	// Returns validation errors from the domain GrowthLog if data is invalid.
	// Unrecorded measurements (value 0) are stored as NULL.
	Create(ctx context.Context, log *domain.GrowthLog) error

	// ListByChild returns every growth log of a child ordered by ascending
	// date. A child without logs yields an empty slice, not an error.
	ListByChild(ctx context.Context, childID uuid.UUID) ([]domain.GrowthLog, error)

	// WithTx returns a new GrowthLogStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) GrowthLogStore
}

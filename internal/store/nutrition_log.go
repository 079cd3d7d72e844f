package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/growthcast-api/internal/domain"
)

// NutritionLogStore defines the interface for nutrition log persistence.
type NutritionLogStore interface {
	// Create saves a new nutrition log.
	// Returns ErrChildNotFound if the referenced child does not exist.
	Create(ctx context.Context, log *domain.NutritionLog) error

	// ListByChildSince returns the nutrition logs of a child dated on or
	// after since, ordered by ascending log date.
	ListByChildSince(ctx context.Context, childID uuid.UUID, since time.Time) ([]domain.NutritionLog, error)

	// WithTx returns a new NutritionLogStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) NutritionLogStore
}

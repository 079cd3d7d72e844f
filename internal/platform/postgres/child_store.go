package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/growthcast-api/internal/domain"
	"github.com/phrazzld/growthcast-api/internal/platform/logger"
	"github.com/phrazzld/growthcast-api/internal/store"
)

// PostgresChildStore implements the store.ChildStore interface
// using a PostgreSQL database as the storage backend.
type PostgresChildStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresChildStore creates a new PostgreSQL implementation of the ChildStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresChildStore(db store.DBTX, logger *slog.Logger) *PostgresChildStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresChildStore{
		db:     db,
		logger: logger.With(slog.String("component", "child_store")),
	}
}

// Ensure PostgresChildStore implements store.ChildStore interface
var _ store.ChildStore = (*PostgresChildStore)(nil)

// Create implements store.ChildStore.Create
func (s *PostgresChildStore) Create(ctx context.Context, child *domain.Child) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := child.Validate(); err != nil {
		log.Warn("child validation failed during create",
			slog.String("error", err.Error()),
			slog.String("child_id", child.ID.String()))
		return err
	}

	query := `
		INSERT INTO children (id, name, birth_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(ctx, query,
		child.ID,
		child.Name,
		child.BirthDate,
		child.CreatedAt,
		child.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create child",
			slog.String("error", err.Error()),
			slog.String("child_id", child.ID.String()))
		return store.NewStoreError("child", "create", "insert failed", MapError(err))
	}

	log.Info("child created successfully", slog.String("child_id", child.ID.String()))
	return nil
}

// GetByID implements store.ChildStore.GetByID
// Returns store.ErrChildNotFound if the child does not exist.
func (s *PostgresChildStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Child, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, birth_date, created_at, updated_at
		FROM children
		WHERE id = $1
	`

	var child domain.Child
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&child.ID,
		&child.Name,
		&child.BirthDate,
		&child.CreatedAt,
		&child.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("child not found", slog.String("child_id", id.String()))
			return nil, store.ErrChildNotFound
		}
		log.Error("failed to get child by ID",
			slog.String("error", err.Error()),
			slog.String("child_id", id.String()))
		return nil, store.NewStoreError("child", "get", "query failed", MapError(err))
	}

	child.BirthDate = child.BirthDate.UTC()
	return &child, nil
}

// WithTx implements store.ChildStore.WithTx
func (s *PostgresChildStore) WithTx(tx *sql.Tx) store.ChildStore {
	return &PostgresChildStore{
		db:     tx,
		logger: s.logger,
	}
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/growthcast-api/internal/domain"
	"github.com/phrazzld/growthcast-api/internal/platform/logger"
	"github.com/phrazzld/growthcast-api/internal/store"
)

// ChildStore implements store.ChildStore on SQLite.
type ChildStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewChildStore creates a SQLite ChildStore. If logger is nil, a default
// logger will be used.
func NewChildStore(db store.DBTX, logger *slog.Logger) *ChildStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ChildStore{
		db:     db,
		logger: logger.With(slog.String("component", "child_store"), slog.String("backend", "sqlite")),
	}
}

var _ store.ChildStore = (*ChildStore)(nil)

// Create implements store.ChildStore.Create
func (s *ChildStore) Create(ctx context.Context, child *domain.Child) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := child.Validate(); err != nil {
		log.Warn("child validation failed during create",
			slog.String("error", err.Error()),
			slog.String("child_id", child.ID.String()))
		return err
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO children (id, name, birth_date, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		child.ID.String(),
		child.Name,
		formatDate(child.BirthDate),
		formatTimestamp(child.CreatedAt),
		formatTimestamp(child.UpdatedAt),
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
func (s *ChildStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Child, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var child domain.Child
	var birthDate, createdAt, updatedAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, birth_date, created_at, updated_at FROM children WHERE id = ?`,
		id.String(),
	).Scan(&child.ID, &child.Name, &birthDate, &createdAt, &updatedAt)
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

	if child.BirthDate, err = parseDate(birthDate); err != nil {
		return nil, store.NewStoreError("child", "get", "invalid birth_date", err)
	}
	if child.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, store.NewStoreError("child", "get", "invalid created_at", err)
	}
	if child.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return nil, store.NewStoreError("child", "get", fmt.Sprintf("invalid updated_at %q", updatedAt), err)
	}

	return &child, nil
}

// WithTx implements store.ChildStore.WithTx
func (s *ChildStore) WithTx(tx *sql.Tx) store.ChildStore {
	return &ChildStore{db: tx, logger: s.logger}
}

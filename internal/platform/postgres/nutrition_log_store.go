package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/growthcast-api/internal/domain"
	"github.com/phrazzld/growthcast-api/internal/platform/logger"
	"github.com/phrazzld/growthcast-api/internal/store"
)

// PostgresNutritionLogStore implements the store.NutritionLogStore interface
// using a PostgreSQL database as the storage backend.
type PostgresNutritionLogStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresNutritionLogStore creates a new PostgreSQL implementation of the NutritionLogStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresNutritionLogStore(db store.DBTX, logger *slog.Logger) *PostgresNutritionLogStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresNutritionLogStore{
		db:     db,
		logger: logger.With(slog.String("component", "nutrition_log_store")),
	}
}

// Ensure PostgresNutritionLogStore implements store.NutritionLogStore interface
var _ store.NutritionLogStore = (*PostgresNutritionLogStore)(nil)

// Create implements store.NutritionLogStore.Create
func (s *PostgresNutritionLogStore) Create(ctx context.Context, log *domain.NutritionLog) error {
	l := logger.FromContextOrDefault(ctx, s.logger)

	if err := log.Validate(); err != nil {
		l.Warn("nutrition log validation failed during create",
			slog.String("error", err.Error()),
			slog.String("nutrition_log_id", log.ID.String()))
		return err
	}

	intake, deficiencies, err := store.EncodeNutritionColumns(log)
	if err != nil {
		return store.NewStoreError("nutrition_log", "create", "encoding failed", err)
	}

	query := `
		INSERT INTO nutrition_logs (id, child_id, log_date, intake, deficiencies, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = s.db.ExecContext(ctx, query,
		log.ID,
		log.ChildID,
		log.LogDate,
		intake,
		deficiencies,
		log.CreatedAt,
	)
	if err != nil {
		l.Error("failed to create nutrition log",
			slog.String("error", err.Error()),
			slog.String("nutrition_log_id", log.ID.String()),
			slog.String("child_id", log.ChildID.String()))
		return mapChildReference(err)
	}

	l.Info("nutrition log created successfully",
		slog.String("nutrition_log_id", log.ID.String()),
		slog.String("child_id", log.ChildID.String()))
	return nil
}

// ListByChildSince implements store.NutritionLogStore.ListByChildSince
func (s *PostgresNutritionLogStore) ListByChildSince(
	ctx context.Context,
	childID uuid.UUID,
	since time.Time,
) ([]domain.NutritionLog, error) {
	l := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, child_id, log_date, intake, deficiencies, created_at
		FROM nutrition_logs
		WHERE child_id = $1 AND log_date >= $2
		ORDER BY log_date ASC, created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, childID, since)
	if err != nil {
		l.Error("failed to list nutrition logs",
			slog.String("error", err.Error()),
			slog.String("child_id", childID.String()))
		return nil, store.NewStoreError("nutrition_log", "list", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	logs := make([]domain.NutritionLog, 0)
	for rows.Next() {
		var n domain.NutritionLog
		var intake, deficiencies []byte
		if err := rows.Scan(&n.ID, &n.ChildID, &n.LogDate, &intake, &deficiencies, &n.CreatedAt); err != nil {
			return nil, store.NewStoreError("nutrition_log", "list", "scan failed", err)
		}
		if err := store.DecodeNutritionColumns(&n, intake, deficiencies); err != nil {
			return nil, store.NewStoreError("nutrition_log", "list", "decoding failed", err)
		}
		n.LogDate = n.LogDate.UTC()
		logs = append(logs, n)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("nutrition_log", "list", "row iteration failed", err)
	}

	l.Debug("nutrition logs listed",
		slog.String("child_id", childID.String()),
		slog.Time("since", since),
		slog.Int("count", len(logs)))
	return logs, nil
}

// WithTx implements store.NutritionLogStore.WithTx
func (s *PostgresNutritionLogStore) WithTx(tx *sql.Tx) store.NutritionLogStore {
	return &PostgresNutritionLogStore{
		db:     tx,
		logger: s.logger,
	}
}

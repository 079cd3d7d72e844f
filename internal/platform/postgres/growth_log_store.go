package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/growthcast-api/internal/domain"
	"github.com/phrazzld/growthcast-api/internal/platform/logger"
	"github.com/phrazzld/growthcast-api/internal/store"
)

// growthLogDateConstraint is the unique constraint on (child_id, log_date).
const growthLogDateConstraint = "growth_logs_child_date_key"

// PostgresGrowthLogStore implements the store.GrowthLogStore interface
// using a PostgreSQL database as the storage backend.
type PostgresGrowthLogStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresGrowthLogStore creates a new PostgreSQL implementation of the GrowthLogStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresGrowthLogStore(db store.DBTX, logger *slog.Logger) *PostgresGrowthLogStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresGrowthLogStore{
		db:     db,
		logger: logger.With(slog.String("component", "growth_log_store")),
	}
}

// Ensure PostgresGrowthLogStore implements store.GrowthLogStore interface
var _ store.GrowthLogStore = (*PostgresGrowthLogStore)(nil)

// Create implements store.GrowthLogStore.Create
// Returns store.ErrChildNotFound if the child does not exist and
// store.ErrGrowthLogExists if the child already has a log for that date.
func (s *PostgresGrowthLogStore) Create(ctx context.Context, log *domain.GrowthLog) error {
	l := logger.FromContextOrDefault(ctx, s.logger)

	if err := log.Validate(); err != nil {
		l.Warn("growth log validation failed during create",
			slog.String("error", err.Error()),
			slog.String("growth_log_id", log.ID.String()))
		return err
	}

	query := `
		INSERT INTO growth_logs (id, child_id, log_date, weight_kg, height_cm, head_cm, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		log.ID,
		log.ChildID,
		log.Date,
		nullableMeasurement(log.WeightKg),
		nullableMeasurement(log.HeightCm),
		nullableMeasurement(log.HeadCm),
		log.CreatedAt,
	)
	if err != nil {
		l.Error("failed to create growth log",
			slog.String("error", err.Error()),
			slog.String("growth_log_id", log.ID.String()),
			slog.String("child_id", log.ChildID.String()))
		if IsUniqueViolation(err) {
			return MapUniqueViolation(err, "growth log", growthLogDateConstraint, store.ErrGrowthLogExists)
		}
		return mapChildReference(err)
	}

	l.Info("growth log created successfully",
		slog.String("growth_log_id", log.ID.String()),
		slog.String("child_id", log.ChildID.String()))
	return nil
}

// ListByChild implements store.GrowthLogStore.ListByChild
func (s *PostgresGrowthLogStore) ListByChild(ctx context.Context, childID uuid.UUID) ([]domain.GrowthLog, error) {
	l := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, child_id, log_date, weight_kg, height_cm, head_cm, created_at
		FROM growth_logs
		WHERE child_id = $1
		ORDER BY log_date ASC, created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, childID)
	if err != nil {
		l.Error("failed to list growth logs",
			slog.String("error", err.Error()),
			slog.String("child_id", childID.String()))
		return nil, store.NewStoreError("growth_log", "list", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	logs := make([]domain.GrowthLog, 0)
	for rows.Next() {
		var g domain.GrowthLog
		var weight, height, head sql.NullFloat64
		if err := rows.Scan(&g.ID, &g.ChildID, &g.Date, &weight, &height, &head, &g.CreatedAt); err != nil {
			return nil, store.NewStoreError("growth_log", "list", "scan failed", err)
		}
		g.Date = g.Date.UTC()
		g.WeightKg = measurementValue(weight)
		g.HeightCm = measurementValue(height)
		g.HeadCm = measurementValue(head)
		logs = append(logs, g)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("growth_log", "list", "row iteration failed", err)
	}

	l.Debug("growth logs listed",
		slog.String("child_id", childID.String()),
		slog.Int("count", len(logs)))
	return logs, nil
}

// WithTx implements store.GrowthLogStore.WithTx
func (s *PostgresGrowthLogStore) WithTx(tx *sql.Tx) store.GrowthLogStore {
	return &PostgresGrowthLogStore{
		db:     tx,
		logger: s.logger,
	}
}

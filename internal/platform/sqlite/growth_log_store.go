package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/growthcast-api/internal/domain"
	"github.com/phrazzld/growthcast-api/internal/platform/logger"
	"github.com/phrazzld/growthcast-api/internal/store"
)

// GrowthLogStore implements store.GrowthLogStore on SQLite.
type GrowthLogStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewGrowthLogStore creates a SQLite GrowthLogStore. If logger is nil, a
// default logger will be used.
func NewGrowthLogStore(db store.DBTX, logger *slog.Logger) *GrowthLogStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &GrowthLogStore{
		db:     db,
		logger: logger.With(slog.String("component", "growth_log_store"), slog.String("backend", "sqlite")),
	}
}

var _ store.GrowthLogStore = (*GrowthLogStore)(nil)

// Create implements store.GrowthLogStore.Create
func (s *GrowthLogStore) Create(ctx context.Context, g *domain.GrowthLog) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := g.Validate(); err != nil {
		log.Warn("growth log validation failed during create",
			slog.String("error", err.Error()),
			slog.String("growth_log_id", g.ID.String()))
		return err
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO growth_logs (id, child_id, log_date, weight_kg, height_cm, head_cm, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		g.ID.String(),
		g.ChildID.String(),
		formatDate(g.Date),
		nullable(g.WeightKg),
		nullable(g.HeightCm),
		nullable(g.HeadCm),
		formatTimestamp(g.CreatedAt),
	)
	if err != nil {
		log.Error("failed to create growth log",
			slog.String("error", err.Error()),
			slog.String("growth_log_id", g.ID.String()),
			slog.String("child_id", g.ChildID.String()))
		if IsUniqueViolation(err) {
			return fmt.Errorf("%w: %v", store.ErrGrowthLogExists, err)
		}
		return mapChildReference(err)
	}

	log.Info("growth log created successfully",
		slog.String("growth_log_id", g.ID.String()),
		slog.String("child_id", g.ChildID.String()))
	return nil
}

// ListByChild implements store.GrowthLogStore.ListByChild
func (s *GrowthLogStore) ListByChild(ctx context.Context, childID uuid.UUID) ([]domain.GrowthLog, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, child_id, log_date, weight_kg, height_cm, head_cm, created_at
		 FROM growth_logs
		 WHERE child_id = ?
		 ORDER BY log_date ASC, created_at ASC`,
		childID.String(),
	)
	if err != nil {
		log.Error("failed to list growth logs",
			slog.String("error", err.Error()),
			slog.String("child_id", childID.String()))
		return nil, store.NewStoreError("growth_log", "list", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	logs := make([]domain.GrowthLog, 0)
	for rows.Next() {
		var g domain.GrowthLog
		var date, createdAt string
		var weight, height, head sql.NullFloat64
		if err := rows.Scan(&g.ID, &g.ChildID, &date, &weight, &height, &head, &createdAt); err != nil {
			return nil, store.NewStoreError("growth_log", "list", "scan failed", err)
		}
		if g.Date, err = parseDate(date); err != nil {
			return nil, store.NewStoreError("growth_log", "list", "invalid log_date", err)
		}
		if g.CreatedAt, err = parseTimestamp(createdAt); err != nil {
			return nil, store.NewStoreError("growth_log", "list", "invalid created_at", err)
		}
		g.WeightKg = weight.Float64
		g.HeightCm = height.Float64
		g.HeadCm = head.Float64
		logs = append(logs, g)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("growth_log", "list", "row iteration failed", err)
	}

	log.Debug("growth logs listed",
		slog.String("child_id", childID.String()),
		slog.Int("count", len(logs)))
	return logs, nil
}

// WithTx implements store.GrowthLogStore.WithTx
func (s *GrowthLogStore) WithTx(tx *sql.Tx) store.GrowthLogStore {
	return &GrowthLogStore{db: tx, logger: s.logger}
}

// nullable maps an unrecorded (zero) measurement to NULL.
func nullable(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: v != 0}
}

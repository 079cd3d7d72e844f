package sqlite

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

// NutritionLogStore implements store.NutritionLogStore on SQLite.
type NutritionLogStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewNutritionLogStore creates a SQLite NutritionLogStore. If logger is nil,
// a default logger will be used.
func NewNutritionLogStore(db store.DBTX, logger *slog.Logger) *NutritionLogStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &NutritionLogStore{
		db:     db,
		logger: logger.With(slog.String("component", "nutrition_log_store"), slog.String("backend", "sqlite")),
	}
}

var _ store.NutritionLogStore = (*NutritionLogStore)(nil)

// Create implements store.NutritionLogStore.Create
func (s *NutritionLogStore) Create(ctx context.Context, n *domain.NutritionLog) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := n.Validate(); err != nil {
		log.Warn("nutrition log validation failed during create",
			slog.String("error", err.Error()),
			slog.String("nutrition_log_id", n.ID.String()))
		return err
	}

	intake, deficiencies, err := store.EncodeNutritionColumns(n)
	if err != nil {
		return store.NewStoreError("nutrition_log", "create", "encoding failed", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO nutrition_logs (id, child_id, log_date, intake, deficiencies, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		n.ID.String(),
		n.ChildID.String(),
		formatDate(n.LogDate),
		intake,
		deficiencies,
		formatTimestamp(n.CreatedAt),
	)
	if err != nil {
		log.Error("failed to create nutrition log",
			slog.String("error", err.Error()),
			slog.String("nutrition_log_id", n.ID.String()),
			slog.String("child_id", n.ChildID.String()))
		return mapChildReference(err)
	}

	log.Info("nutrition log created successfully",
		slog.String("nutrition_log_id", n.ID.String()),
		slog.String("child_id", n.ChildID.String()))
	return nil
}

// ListByChildSince implements store.NutritionLogStore.ListByChildSince
func (s *NutritionLogStore) ListByChildSince(
	ctx context.Context,
	childID uuid.UUID,
	since time.Time,
) ([]domain.NutritionLog, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, child_id, log_date, intake, deficiencies, created_at
		 FROM nutrition_logs
		 WHERE child_id = ? AND log_date >= ?
		 ORDER BY log_date ASC, created_at ASC`,
		childID.String(),
		formatDate(since),
	)
	if err != nil {
		log.Error("failed to list nutrition logs",
			slog.String("error", err.Error()),
			slog.String("child_id", childID.String()))
		return nil, store.NewStoreError("nutrition_log", "list", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	logs := make([]domain.NutritionLog, 0)
	for rows.Next() {
		var n domain.NutritionLog
		var date, createdAt, deficiencies string
		var intake sql.NullString
		if err := rows.Scan(&n.ID, &n.ChildID, &date, &intake, &deficiencies, &createdAt); err != nil {
			return nil, store.NewStoreError("nutrition_log", "list", "scan failed", err)
		}
		if n.LogDate, err = parseDate(date); err != nil {
			return nil, store.NewStoreError("nutrition_log", "list", "invalid log_date", err)
		}
		if n.CreatedAt, err = parseTimestamp(createdAt); err != nil {
			return nil, store.NewStoreError("nutrition_log", "list", "invalid created_at", err)
		}
		var intakeJSON []byte
		if intake.Valid {
			intakeJSON = []byte(intake.String)
		}
		if err := store.DecodeNutritionColumns(&n, intakeJSON, []byte(deficiencies)); err != nil {
			return nil, store.NewStoreError("nutrition_log", "list", "decoding failed", err)
		}
		logs = append(logs, n)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("nutrition_log", "list", "row iteration failed", err)
	}

	log.Debug("nutrition logs listed",
		slog.String("child_id", childID.String()),
		slog.Int("count", len(logs)))
	return logs, nil
}

// WithTx implements store.NutritionLogStore.WithTx
func (s *NutritionLogStore) WithTx(tx *sql.Tx) store.NutritionLogStore {
	return &NutritionLogStore{db: tx, logger: s.logger}
}

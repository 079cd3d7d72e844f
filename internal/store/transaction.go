package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/growthcast-api/internal/platform/logger"
)

// TxFn is the unit of work run by RunInTransaction.
type TxFn func(ctx context.Context, tx *sql.Tx) error

// RunInTransaction runs fn inside a transaction on db and commits when fn
// returns nil.
//
// An error from fn triggers a rollback and is returned as is. Begin and commit
// failures wrap ErrTransactionFailed. A panic in fn rolls back and re-panics.
func RunInTransaction(ctx context.Context, db *sql.DB, fn TxFn) (err error) {
	log := logger.FromContext(ctx).With(slog.String("component", "transaction"))

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("begin failed", slog.Any("error", err))
		return fmt.Errorf("%w: failed to begin transaction: %w", ErrTransactionFailed, err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		p := recover()
		if p == nil && err == nil {
			return
		}
		rbErr := tx.Rollback()
		switch {
		case p != nil:
			log.Error("rolled back after panic", slog.Any("panic", p), slog.Any("rollback_error", rbErr))
			// ALLOW-PANIC: re-raise after releasing the transaction
			panic(p)
		case rbErr != nil:
			log.Error("rollback failed", slog.Any("rollback_error", rbErr), slog.Any("error", err))
			err = fmt.Errorf("error rolling back transaction: %v (original error: %w)", rbErr, err)
		default:
			log.Debug("rolled back", slog.Any("error", err))
		}
	}()

	if err = fn(ctx, tx); err != nil {
		return err
	}

	committed = true
	if cErr := tx.Commit(); cErr != nil {
		log.Error("commit failed", slog.Any("error", cErr))
		return fmt.Errorf("%w: failed to commit transaction: %w", ErrTransactionFailed, cErr)
	}
	log.Debug("committed")
	return nil
}

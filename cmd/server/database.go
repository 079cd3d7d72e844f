package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/phrazzld/growthcast-api/internal/config"
	"github.com/phrazzld/growthcast-api/internal/platform/migrations"
	"github.com/phrazzld/growthcast-api/internal/platform/postgres"
	"github.com/phrazzld/growthcast-api/internal/platform/sqlite"
)

// openDatabase establishes a connection to the configured backend and
// returns it together with the backend's migrations.
func openDatabase(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*sql.DB, migrations.Source, error) {
	var (
		db  *sql.DB
		src migrations.Source
		err error
	)

	switch cfg.Driver {
	case config.DriverSQLite:
		db, err = sqlite.Open(cfg.URL)
		src = sqlite.Migrations()
	default:
		db, err = sql.Open("pgx", cfg.URL)
		if err == nil {
			// Configure connection pool with reasonable defaults
			db.SetMaxOpenConns(10)
			db.SetMaxIdleConns(5)
			db.SetConnMaxLifetime(5 * time.Minute)
		}
		src = postgres.Migrations()
	}
	if err != nil {
		return nil, migrations.Source{}, fmt.Errorf("failed to open database connection: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, migrations.Source{}, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database connection established", "driver", cfg.Driver)
	return db, src, nil
}

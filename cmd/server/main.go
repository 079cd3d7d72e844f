// Package main implements the entry point for the growthcast API server,
// which records infant growth measurements and serves growth forecasts.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"

	"github.com/phrazzld/growthcast-api/internal/config"
	"github.com/phrazzld/growthcast-api/internal/platform/logger"
	"github.com/phrazzld/growthcast-api/internal/platform/migrations"
)

func main() {
	configFile := flag.String("config", "", "path to a config file (defaults to ./config.yaml when present)")
	migrateCmd := flag.String("migrate", "", "run a migration command (up, down, reset, status, version) and exit")
	flag.Parse()

	if err := run(context.Background(), *configFile, *migrateCmd); err != nil {
		log.Fatalf("growthcast: %v", err)
	}
}

// run loads configuration, connects the configured database, and either runs
// a migration command or serves the API until shutdown.
func run(ctx context.Context, configFile, migrateCmd string) error {
	cfg, err := config.LoadFile(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	ctx = logger.WithLogger(ctx, l)

	l.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database_driver", cfg.Database.Driver)

	db, src, err := openDatabase(ctx, cfg.Database, l)
	if err != nil {
		return err
	}

	if migrateCmd != "" {
		defer closeDatabase(db, l)
		return migrations.Run(ctx, db, src, migrateCmd)
	}

	// Local SQLite databases are brought up to date on start
	if cfg.Database.Driver == config.DriverSQLite {
		if err := migrations.Run(ctx, db, src, migrations.CommandUp); err != nil {
			closeDatabase(db, l)
			return err
		}
	}

	app, err := newApplication(cfg, l, db)
	if err != nil {
		closeDatabase(db, l)
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return app.Run(ctx)
}

func closeDatabase(db interface{ Close() error }, l *slog.Logger) {
	if err := db.Close(); err != nil {
		l.Error("Error closing database connection", "error", err)
	}
}

package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/growthcast-api/internal/config"
	"github.com/phrazzld/growthcast-api/internal/domain/growth"
	"github.com/phrazzld/growthcast-api/internal/platform/metrics"
	"github.com/phrazzld/growthcast-api/internal/platform/postgres"
	"github.com/phrazzld/growthcast-api/internal/platform/sqlite"
	"github.com/phrazzld/growthcast-api/internal/service"
	"github.com/phrazzld/growthcast-api/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores
	childStore        store.ChildStore
	growthLogStore    store.GrowthLogStore
	nutritionLogStore store.NutritionLogStore

	// Metrics
	registry *prometheus.Registry
	metrics  *metrics.Metrics

	// Services
	forecaster        *service.Forecaster
	childService      service.ChildService
	recordService     service.RecordService
	predictionService service.PredictionService
}

// newApplication creates a new application instance with all dependencies initialized.
// The database connection must already be established and migrated.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	switch cfg.Database.Driver {
	case config.DriverSQLite:
		app.childStore = sqlite.NewChildStore(db, logger)
		app.growthLogStore = sqlite.NewGrowthLogStore(db, logger)
		app.nutritionLogStore = sqlite.NewNutritionLogStore(db, logger)
	default:
		app.childStore = postgres.NewPostgresChildStore(db, logger)
		app.growthLogStore = postgres.NewPostgresGrowthLogStore(db, logger)
		app.nutritionLogStore = postgres.NewPostgresNutritionLogStore(db, logger)
	}

	app.registry = prometheus.NewRegistry()
	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	app.metrics = metrics.MustNewMetrics(app.registry)

	engine := growth.NewDefaultService()

	var err error
	app.forecaster, err = service.NewForecaster(engine, service.ForecastSettings{
		DefaultMonths:         cfg.Prediction.DefaultMonths,
		MaxMonths:             cfg.Prediction.MaxMonths,
		NutritionWindowMonths: cfg.Prediction.NutritionWindowMonths,
	}, app.metrics, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create forecaster: %w", err)
	}

	app.childService, err = service.NewChildService(app.childStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create child service: %w", err)
	}

	app.recordService, err = service.NewRecordService(
		app.childStore,
		app.growthLogStore,
		app.nutritionLogStore,
		engine,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create record service: %w", err)
	}

	app.predictionService, err = service.NewPredictionService(
		app.childStore,
		app.growthLogStore,
		app.nutritionLogStore,
		app.forecaster,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create prediction service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}

package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/klauspost/compress/gzhttp"
	"github.com/phrazzld/growthcast-api/internal/api"
	apiMiddleware "github.com/phrazzld/growthcast-api/internal/api/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupRouter creates and configures the application router with all routes and middleware.
// Responses are gzip-compressed for clients that accept it.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(apiMiddleware.NewMetricsMiddleware(app.metrics))

	childHandler := api.NewChildHandler(app.childService, app.recordService, app.logger)
	predictionHandler := api.NewPredictionHandler(app.predictionService, app.forecaster, app.logger)
	reminderHandler := api.NewReminderHandler(app.logger)

	r.Route("/api", func(r chi.Router) {
		// Children and their records
		r.Post("/children", childHandler.CreateChild)
		r.Route("/children/{id}", func(r chi.Router) {
			r.Get("/", childHandler.GetChild)
			r.Post("/growth-logs", childHandler.RecordGrowthLog)
			r.Get("/growth-logs", childHandler.ListGrowthLogs)
			r.Post("/nutrition-logs", childHandler.RecordNutritionLog)
			r.Get("/predictions", predictionHandler.PredictForChild)
		})

		// Stateless engine endpoints
		r.Post("/predictions", predictionHandler.PredictStateless)
		r.Get("/reference", predictionHandler.GetReference)
		r.Post("/reminders/expand", reminderHandler.ExpandReminders)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	r.Handle("/metrics", promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{}))

	return gzhttp.GzipHandler(r)
}

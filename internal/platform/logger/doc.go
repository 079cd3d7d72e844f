// Package logger provides structured logging for the application.
//
// It builds JSON loggers on log/slog with a configurable level and carries
// request-scoped loggers (enriched with trace IDs by the API middleware)
// through context.Context.
package logger

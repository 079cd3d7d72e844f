package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server" validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database" validate:"required"`
	Prediction PredictionConfig `mapstructure:"prediction" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// Supported database drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DatabaseConfig selects the storage backend.
// URL is a PostgreSQL connection string or, for sqlite, a file path or DSN.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=postgres sqlite"`
	URL    string `mapstructure:"url" validate:"required"`
}

// PredictionConfig bounds the forecast horizon accepted by the API.
type PredictionConfig struct {
	DefaultMonths int `mapstructure:"default_months" validate:"required,gte=1,ltefield=MaxMonths"`
	MaxMonths     int `mapstructure:"max_months" validate:"required,gte=1,lte=24"`
	// NutritionWindowMonths is how far back stored nutrition logs are read.
	NutritionWindowMonths int `mapstructure:"nutrition_window_months" validate:"required,gte=1,lte=24"`
}

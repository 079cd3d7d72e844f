// Package postgres provides PostgreSQL implementations of the persistence
// interfaces defined in internal/store, using the pgx database/sql driver.
//
// Unrecorded measurements are stored as NULL; nutrient intake and
// deficiencies are stored as JSONB. The schema ships as embedded goose
// migrations (see Migrations).
package postgres

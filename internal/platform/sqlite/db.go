// Package sqlite provides SQLite implementations of the persistence
// interfaces defined in internal/store, using the pure-Go modernc.org/sqlite
// driver. It backs single-node deployments and the store tests.
//
// Dates are stored as YYYY-MM-DD text so range filters compare
// lexicographically; timestamps are RFC 3339 text.
package sqlite

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/phrazzld/growthcast-api/internal/platform/migrations"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// DriverName is the database/sql driver registered by modernc.org/sqlite.
const DriverName = "sqlite"

const (
	dateLayout      = "2006-01-02"
	timestampLayout = time.RFC3339Nano
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

// Open opens a SQLite database with foreign key enforcement enabled.
// In-memory databases are limited to a single connection so that every
// query sees the same database.
func Open(dsn string) (*sql.DB, error) {
	if !strings.Contains(dsn, "foreign_keys") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "_pragma=foreign_keys(1)"
	}

	db, err := sql.Open(DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		db.SetMaxOpenConns(1)
	}
	return db, nil
}

// Migrations returns the SQLite schema migrations.
func Migrations() migrations.Source {
	sub, err := fs.Sub(embeddedMigrations, "migrations")
	if err != nil {
		// ALLOW-PANIC: the embedded directory is fixed at compile time
		panic(err)
	}
	return migrations.Source{Dialect: goose.DialectSQLite3, FS: sub}
}

func formatDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTimestamp(s string) (time.Time, error) {
	return time.Parse(timestampLayout, s)
}

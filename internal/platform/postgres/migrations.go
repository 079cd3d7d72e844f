package postgres

import (
	"embed"
	"io/fs"

	"github.com/phrazzld/growthcast-api/internal/platform/migrations"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

// Migrations returns the PostgreSQL schema migrations.
func Migrations() migrations.Source {
	sub, err := fs.Sub(embeddedMigrations, "migrations")
	if err != nil {
		// ALLOW-PANIC: the embedded directory is fixed at compile time
		panic(err)
	}
	return migrations.Source{Dialect: goose.DialectPostgres, FS: sub}
}

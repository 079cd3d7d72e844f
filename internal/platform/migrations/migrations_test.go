package migrations_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/phrazzld/growthcast-api/internal/platform/logger"
	"github.com/phrazzld/growthcast-api/internal/platform/migrations"
	"github.com/phrazzld/growthcast-api/internal/platform/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&count)
	require.NoError(t, err)
	return count == 1
}

func TestRunLifecycle(t *testing.T) {
	t.Parallel()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "migrations.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	log, buf := logger.NewTestLogger()
	ctx := logger.WithLogger(context.Background(), log)
	src := sqlite.Migrations()

	require.NoError(t, migrations.Run(ctx, db, src, migrations.CommandUp))
	assert.True(t, tableExists(t, db, "children"))
	assert.True(t, tableExists(t, db, "growth_logs"))
	assert.True(t, tableExists(t, db, "nutrition_logs"))
	assert.Contains(t, buf.String(), "migration applied")

	// Applying again is a no-op
	require.NoError(t, migrations.Run(ctx, db, src, migrations.CommandUp))

	require.NoError(t, migrations.Run(ctx, db, src, migrations.CommandStatus))
	assert.Contains(t, buf.String(), "migration status")

	require.NoError(t, migrations.Run(ctx, db, src, migrations.CommandVersion))
	assert.Contains(t, buf.String(), "current schema version")

	require.NoError(t, migrations.Run(ctx, db, src, migrations.CommandDown))
	assert.False(t, tableExists(t, db, "nutrition_logs"))
	assert.True(t, tableExists(t, db, "growth_logs"))

	require.NoError(t, migrations.Run(ctx, db, src, migrations.CommandReset))
	assert.False(t, tableExists(t, db, "children"))
}

func TestRunUnknownCommand(t *testing.T) {
	t.Parallel()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "migrations.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	err = migrations.Run(context.Background(), db, sqlite.Migrations(), "sideways")
	assert.ErrorIs(t, err, migrations.ErrUnknownCommand)
}

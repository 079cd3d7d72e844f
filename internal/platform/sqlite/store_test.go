package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/growthcast-api/internal/domain"
	"github.com/phrazzld/growthcast-api/internal/platform/migrations"
	"github.com/phrazzld/growthcast-api/internal/platform/sqlite"
	"github.com/phrazzld/growthcast-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestDB creates a migrated database file in a per-test directory.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "growthcast.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, migrations.Run(context.Background(), db, sqlite.Migrations(), migrations.CommandUp))
	return db
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func createChild(t *testing.T, db *sql.DB) *domain.Child {
	t.Helper()
	child, err := domain.NewChild("Ada", day(2024, 1, 1))
	require.NoError(t, err)
	require.NoError(t, sqlite.NewChildStore(db, nil).Create(context.Background(), child))
	return child
}

func TestNewStoresPanicOnNilDB(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { sqlite.NewChildStore(nil, nil) })
	assert.Panics(t, func() { sqlite.NewGrowthLogStore(nil, nil) })
	assert.Panics(t, func() { sqlite.NewNutritionLogStore(nil, nil) })
}

func TestChildStore(t *testing.T) {
	t.Parallel()
	db := openTestDB(t)
	ctx := context.Background()
	s := sqlite.NewChildStore(db, nil)

	t.Run("round trip", func(t *testing.T) {
		child := createChild(t, db)

		got, err := s.GetByID(ctx, child.ID)
		require.NoError(t, err)
		assert.Equal(t, child.ID, got.ID)
		assert.Equal(t, "Ada", got.Name)
		assert.Equal(t, day(2024, 1, 1), got.BirthDate)
		assert.True(t, child.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("missing child", func(t *testing.T) {
		_, err := s.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, store.ErrChildNotFound)
		assert.True(t, store.IsNotFoundError(err))
	})

	t.Run("duplicate id", func(t *testing.T) {
		child := createChild(t, db)
		err := s.Create(ctx, child)
		assert.True(t, store.IsDuplicateError(err))
	})

	t.Run("invalid child is rejected before insert", func(t *testing.T) {
		err := s.Create(ctx, &domain.Child{ID: uuid.New(), BirthDate: day(2024, 1, 1)})
		assert.ErrorIs(t, err, domain.ErrChildNameEmpty)
	})
}

func TestGrowthLogStore(t *testing.T) {
	t.Parallel()
	db := openTestDB(t)
	ctx := context.Background()
	s := sqlite.NewGrowthLogStore(db, nil)
	child := createChild(t, db)

	march, err := domain.NewGrowthLog(child.ID, day(2024, 3, 1), 5.6, 58.4, 0)
	require.NoError(t, err)
	january, err := domain.NewGrowthLog(child.ID, day(2024, 1, 1), 3.3, 49.9, 34.5)
	require.NoError(t, err)
	require.NoError(t, s.Create(ctx, march))
	require.NoError(t, s.Create(ctx, january))

	t.Run("listed in date order", func(t *testing.T) {
		logs, err := s.ListByChild(ctx, child.ID)
		require.NoError(t, err)
		require.Len(t, logs, 2)
		assert.Equal(t, january.ID, logs[0].ID)
		assert.Equal(t, march.ID, logs[1].ID)
		assert.Equal(t, day(2024, 3, 1), logs[1].Date)
		assert.Equal(t, 5.6, logs[1].WeightKg)
		assert.Equal(t, 0.0, logs[1].HeadCm, "NULL head reads back as unrecorded")
	})

	t.Run("same date is rejected", func(t *testing.T) {
		dup, err := domain.NewGrowthLog(child.ID, day(2024, 3, 1), 5.7, 0, 0)
		require.NoError(t, err)
		err = s.Create(ctx, dup)
		assert.ErrorIs(t, err, store.ErrGrowthLogExists)
		assert.True(t, store.IsDuplicateError(err))
	})

	t.Run("unknown child", func(t *testing.T) {
		orphan, err := domain.NewGrowthLog(uuid.New(), day(2024, 3, 1), 5.6, 0, 0)
		require.NoError(t, err)
		assert.ErrorIs(t, s.Create(ctx, orphan), store.ErrChildNotFound)
	})

	t.Run("child without logs", func(t *testing.T) {
		logs, err := s.ListByChild(ctx, uuid.New())
		require.NoError(t, err)
		assert.NotNil(t, logs)
		assert.Empty(t, logs)
	})
}

func TestNutritionLogStore(t *testing.T) {
	t.Parallel()
	db := openTestDB(t)
	ctx := context.Background()
	s := sqlite.NewNutritionLogStore(db, nil)
	child := createChild(t, db)

	old, err := domain.NewNutritionLog(child.ID, day(2024, 1, 5), nil, []string{"iron"})
	require.NoError(t, err)
	recent, err := domain.NewNutritionLog(child.ID, day(2024, 3, 1),
		&domain.NutrientIntake{Calories: 1200, Iron: 7}, []string{"vitamin D", "iron"})
	require.NoError(t, err)
	bare, err := domain.NewNutritionLog(child.ID, day(2024, 3, 2), nil, nil)
	require.NoError(t, err)
	for _, n := range []*domain.NutritionLog{old, recent, bare} {
		require.NoError(t, s.Create(ctx, n))
	}

	t.Run("since filter is inclusive", func(t *testing.T) {
		logs, err := s.ListByChildSince(ctx, child.ID, day(2024, 3, 1))
		require.NoError(t, err)
		require.Len(t, logs, 2)

		assert.Equal(t, recent.ID, logs[0].ID)
		require.NotNil(t, logs[0].DailyNutrientIntake)
		assert.Equal(t, 1200.0, logs[0].DailyNutrientIntake.Calories)
		assert.Equal(t, []string{"vitamin D", "iron"}, logs[0].Deficiencies)

		assert.Equal(t, bare.ID, logs[1].ID)
		assert.Nil(t, logs[1].DailyNutrientIntake)
		assert.Empty(t, logs[1].Deficiencies)
	})

	t.Run("all logs", func(t *testing.T) {
		logs, err := s.ListByChildSince(ctx, child.ID, time.Time{})
		require.NoError(t, err)
		assert.Len(t, logs, 3)
	})

	t.Run("unknown child", func(t *testing.T) {
		orphan, err := domain.NewNutritionLog(uuid.New(), day(2024, 3, 1), nil, nil)
		require.NoError(t, err)
		assert.ErrorIs(t, s.Create(ctx, orphan), store.ErrChildNotFound)
	})
}

func TestStoresWithTx(t *testing.T) {
	t.Parallel()
	db := openTestDB(t)
	ctx := context.Background()
	children := sqlite.NewChildStore(db, nil)
	growthLogs := sqlite.NewGrowthLogStore(db, nil)

	child, err := domain.NewChild("Grace", day(2024, 2, 1))
	require.NoError(t, err)
	gl, err := domain.NewGrowthLog(child.ID, day(2024, 2, 1), 3.2, 0, 0)
	require.NoError(t, err)

	// The growth log insert fails on a duplicate date, rolling back the child
	dup := *gl
	dup.ID = uuid.New()
	err = store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
		if err := children.WithTx(tx).Create(ctx, child); err != nil {
			return err
		}
		if err := growthLogs.WithTx(tx).Create(ctx, gl); err != nil {
			return err
		}
		return growthLogs.WithTx(tx).Create(ctx, &dup)
	})
	assert.ErrorIs(t, err, store.ErrGrowthLogExists)

	_, err = children.GetByID(ctx, child.ID)
	assert.ErrorIs(t, err, store.ErrChildNotFound)
}

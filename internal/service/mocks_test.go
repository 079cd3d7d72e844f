package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/growthcast-api/internal/domain"
	"github.com/phrazzld/growthcast-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockChildStore mocks store.ChildStore
type MockChildStore struct {
	mock.Mock
}

func (m *MockChildStore) Create(ctx context.Context, child *domain.Child) error {
	args := m.Called(ctx, child)
	return args.Error(0)
}

func (m *MockChildStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Child, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Child), args.Error(1)
}

func (m *MockChildStore) WithTx(*sql.Tx) store.ChildStore {
	return m
}

// MockGrowthLogStore mocks store.GrowthLogStore
type MockGrowthLogStore struct {
	mock.Mock
}

func (m *MockGrowthLogStore) Create(ctx context.Context, log *domain.GrowthLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockGrowthLogStore) ListByChild(ctx context.Context, childID uuid.UUID) ([]domain.GrowthLog, error) {
	args := m.Called(ctx, childID)
	logs, _ := args.Get(0).([]domain.GrowthLog)
	return logs, args.Error(1)
}

func (m *MockGrowthLogStore) WithTx(*sql.Tx) store.GrowthLogStore {
	return m
}

// MockNutritionLogStore mocks store.NutritionLogStore
type MockNutritionLogStore struct {
	mock.Mock
}

func (m *MockNutritionLogStore) Create(ctx context.Context, log *domain.NutritionLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockNutritionLogStore) ListByChildSince(
	ctx context.Context,
	childID uuid.UUID,
	since time.Time,
) ([]domain.NutritionLog, error) {
	args := m.Called(ctx, childID, since)
	logs, _ := args.Get(0).([]domain.NutritionLog)
	return logs, args.Error(1)
}

func (m *MockNutritionLogStore) WithTx(*sql.Tx) store.NutritionLogStore {
	return m
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// medianLogs returns logs at months 0, 1 and 2 sitting on the reference
// medians for a child born on 2024-01-01.
func medianLogs(childID uuid.UUID) []domain.GrowthLog {
	return []domain.GrowthLog{
		{ID: uuid.New(), ChildID: childID, Date: day(2024, 1, 1), WeightKg: 3.3, HeightCm: 49.9, HeadCm: 34.5},
		{ID: uuid.New(), ChildID: childID, Date: day(2024, 2, 1), WeightKg: 4.5, HeightCm: 54.7, HeadCm: 37.3},
		{ID: uuid.New(), ChildID: childID, Date: day(2024, 3, 1), WeightKg: 5.6, HeightCm: 58.4, HeadCm: 39.1},
	}
}

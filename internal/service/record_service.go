package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/growthcast-api/internal/domain"
	"github.com/phrazzld/growthcast-api/internal/domain/growth"
	"github.com/phrazzld/growthcast-api/internal/store"
)

// MeasuredGrowthLog is a stored growth log with its percentile placement.
type MeasuredGrowthLog struct {
	domain.GrowthLog
	AgeMonths   int                `json:"age_months"`
	Percentiles growth.Percentiles `json:"percentiles"`
}

// GrowthLogInput carries the measurements of a new growth log.
// A zero value means the measurement was not taken.
type GrowthLogInput struct {
	Date     time.Time
	WeightKg float64
	HeightCm float64
	HeadCm   float64
}

// NutritionLogInput carries a new nutrition log.
type NutritionLogInput struct {
	Date         time.Time
	Intake       *domain.NutrientIntake
	Deficiencies []string
}

// RecordService records measurements and nutrition data for children.
type RecordService interface {
	// RecordGrowthLog stores a measurement. Returns ErrChildNotFound for an
	// unknown child and ErrDuplicateGrowthLog for a second log on the same date.
	RecordGrowthLog(ctx context.Context, childID uuid.UUID, in GrowthLogInput) (*domain.GrowthLog, error)

	// ListGrowthLogs returns the child's logs in date order, each placed on
	// the reference curves for the child's age at the log date.
	ListGrowthLogs(ctx context.Context, childID uuid.UUID) ([]MeasuredGrowthLog, error)

	// RecordNutritionLog stores a nutrition log.
	RecordNutritionLog(ctx context.Context, childID uuid.UUID, in NutritionLogInput) (*domain.NutritionLog, error)
}

type recordService struct {
	children      store.ChildStore
	growthLogs    store.GrowthLogStore
	nutritionLogs store.NutritionLogStore
	engine        growth.Service
	logger        *slog.Logger
}

// NewRecordService creates a RecordService.
// It returns an error if any of the required dependencies are nil.
func NewRecordService(
	children store.ChildStore,
	growthLogs store.GrowthLogStore,
	nutritionLogs store.NutritionLogStore,
	engine growth.Service,
	logger *slog.Logger,
) (RecordService, error) {
	switch {
	case children == nil:
		return nil, &ServiceError{Operation: "create_service", Message: "child store cannot be nil"}
	case growthLogs == nil:
		return nil, &ServiceError{Operation: "create_service", Message: "growth log store cannot be nil"}
	case nutritionLogs == nil:
		return nil, &ServiceError{Operation: "create_service", Message: "nutrition log store cannot be nil"}
	case engine == nil:
		return nil, &ServiceError{Operation: "create_service", Message: "growth engine cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &recordService{
		children:      children,
		growthLogs:    growthLogs,
		nutritionLogs: nutritionLogs,
		engine:        engine,
		logger:        logger.With("component", "record_service"),
	}, nil
}

// RecordGrowthLog implements RecordService.RecordGrowthLog
func (s *recordService) RecordGrowthLog(
	ctx context.Context,
	childID uuid.UUID,
	in GrowthLogInput,
) (*domain.GrowthLog, error) {
	log, err := domain.NewGrowthLog(childID, in.Date, in.WeightKg, in.HeightCm, in.HeadCm)
	if err != nil {
		s.logger.Warn("invalid growth log", "error", err, "child_id", childID)
		return nil, NewServiceError("record_growth_log", "invalid growth log", err)
	}

	if err := s.growthLogs.Create(ctx, log); err != nil {
		s.logger.Error("failed to save growth log", "error", err, "child_id", childID)
		return nil, NewServiceError("record_growth_log", "failed to save growth log", err)
	}

	s.logger.Info("growth log recorded", "growth_log_id", log.ID, "child_id", childID)
	return log, nil
}

// ListGrowthLogs implements RecordService.ListGrowthLogs
func (s *recordService) ListGrowthLogs(ctx context.Context, childID uuid.UUID) ([]MeasuredGrowthLog, error) {
	child, err := s.children.GetByID(ctx, childID)
	if err != nil {
		return nil, NewServiceError("list_growth_logs", "failed to retrieve child", err)
	}

	logs, err := s.growthLogs.ListByChild(ctx, childID)
	if err != nil {
		s.logger.Error("failed to list growth logs", "error", err, "child_id", childID)
		return nil, NewServiceError("list_growth_logs", "failed to list growth logs", err)
	}

	measured := make([]MeasuredGrowthLog, len(logs))
	for i, log := range logs {
		measured[i] = MeasuredGrowthLog{
			GrowthLog:   log,
			AgeMonths:   growth.AgeInMonths(child.BirthDate, log.Date),
			Percentiles: s.engine.Percentiles(log, child.BirthDate),
		}
	}
	return measured, nil
}

// RecordNutritionLog implements RecordService.RecordNutritionLog
func (s *recordService) RecordNutritionLog(
	ctx context.Context,
	childID uuid.UUID,
	in NutritionLogInput,
) (*domain.NutritionLog, error) {
	log, err := domain.NewNutritionLog(childID, in.Date, in.Intake, in.Deficiencies)
	if err != nil {
		s.logger.Warn("invalid nutrition log", "error", err, "child_id", childID)
		return nil, NewServiceError("record_nutrition_log", "invalid nutrition log", err)
	}

	if err := s.nutritionLogs.Create(ctx, log); err != nil {
		s.logger.Error("failed to save nutrition log", "error", err, "child_id", childID)
		return nil, NewServiceError("record_nutrition_log", "failed to save nutrition log", err)
	}

	s.logger.Info("nutrition log recorded", "nutrition_log_id", log.ID, "child_id", childID)
	return log, nil
}

package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/growthcast-api/internal/domain"
	"github.com/phrazzld/growthcast-api/internal/domain/growth"
	"github.com/phrazzld/growthcast-api/internal/platform/logger"
	"github.com/phrazzld/growthcast-api/internal/platform/metrics"
	"github.com/phrazzld/growthcast-api/internal/store"
	"golang.org/x/sync/errgroup"
)

// ForecastSettings bounds the forecast horizon.
type ForecastSettings struct {
	// DefaultMonths is used when a request does not name a horizon.
	DefaultMonths int
	// MaxMonths is the largest accepted horizon.
	MaxMonths int
	// NutritionWindowMonths is how far back stored nutrition logs are fetched.
	NutritionWindowMonths int
	// Clock returns the current time. Nil means time.Now.
	Clock func() time.Time
}

// AssessedPrediction is a forecast month together with its status assessment.
type AssessedPrediction struct {
	growth.Prediction `yaml:",inline"`
	Assessment growth.StatusAssessment `json:"assessment" yaml:"assessment"`
}

// Forecast is the result of a prediction run. It carries no wall-clock
// timestamp so the same records always encode to the same body.
type Forecast struct {
	ChildID *uuid.UUID `json:"child_id,omitempty" yaml:"child_id,omitempty"`
	// DataThrough is the date of the latest growth log the forecast projects
	// from; nil without logs.
	DataThrough *time.Time           `json:"data_through,omitempty" yaml:"data_through,omitempty"`
	Months      int                  `json:"months" yaml:"months"`
	Predictions []AssessedPrediction `json:"predictions" yaml:"predictions"`
}

// ForecastInput is a self-contained prediction request.
type ForecastInput struct {
	BirthDate     time.Time
	GrowthLogs    []domain.GrowthLog
	NutritionLogs []domain.NutritionLog
	// Months of zero selects the default horizon.
	Months int
	// Now anchors the nutrition window. Zero means the current time.
	Now time.Time
}

// Forecaster runs the growth engine over caller-supplied records.
type Forecaster struct {
	engine   growth.Service
	settings ForecastSettings
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// NewForecaster creates a Forecaster. Missing settings fall back to the
// engine defaults; m may be nil.
func NewForecaster(engine growth.Service, settings ForecastSettings, m *metrics.Metrics, logger *slog.Logger) (*Forecaster, error) {
	if engine == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "growth engine cannot be nil"}
	}

	defaults := growth.NewDefaultParams()
	if settings.DefaultMonths < 1 {
		settings.DefaultMonths = defaults.DefaultMonths
	}
	if settings.MaxMonths < settings.DefaultMonths {
		settings.MaxMonths = settings.DefaultMonths
	}
	if settings.NutritionWindowMonths < 1 {
		settings.NutritionWindowMonths = defaults.NutritionWindowMonths
	}
	if settings.Clock == nil {
		settings.Clock = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Forecaster{
		engine:   engine,
		settings: settings,
		metrics:  m,
		logger:   logger.With("component", "forecaster"),
	}, nil
}

// ResolveMonths applies the default horizon to zero and rejects anything
// outside 1..MaxMonths with ErrInvalidMonths.
func (f *Forecaster) ResolveMonths(months int) (int, error) {
	if months == 0 {
		return f.settings.DefaultMonths, nil
	}
	if months < 1 || months > f.settings.MaxMonths {
		return 0, ErrInvalidMonths
	}
	return months, nil
}

// Forecast runs the engine over in and assesses every forecast month.
func (f *Forecaster) Forecast(ctx context.Context, in ForecastInput) (*Forecast, error) {
	start := time.Now()
	forecast, err := f.forecast(ctx, in)
	f.metrics.ObservePrediction(metrics.SourceStateless, time.Since(start), err)
	return forecast, err
}

func (f *Forecaster) forecast(ctx context.Context, in ForecastInput) (*Forecast, error) {
	months, err := f.ResolveMonths(in.Months)
	if err != nil {
		return nil, err
	}
	if in.BirthDate.IsZero() {
		return nil, NewServiceError("forecast", "birth date is required", ErrInvalidInput)
	}

	now := in.Now
	if now.IsZero() {
		now = f.settings.Clock().UTC()
	}
	return f.run(ctx, in.BirthDate, in.GrowthLogs, in.NutritionLogs, months, now), nil
}

func (f *Forecaster) run(
	ctx context.Context,
	birthDate time.Time,
	growthLogs []domain.GrowthLog,
	nutritionLogs []domain.NutritionLog,
	months int,
	now time.Time,
) *Forecast {
	predictions := f.engine.Predict(growthLogs, birthDate, nutritionLogs, months, now)

	assessed := make([]AssessedPrediction, len(predictions))
	for i, p := range predictions {
		assessment := f.engine.ClassifyStatus(p)
		f.metrics.ObserveStatus(string(assessment.Status))
		assessed[i] = AssessedPrediction{Prediction: p, Assessment: assessment}
	}

	logger.FromContextOrDefault(ctx, f.logger).Debug("forecast computed",
		slog.Int("growth_logs", len(growthLogs)),
		slog.Int("nutrition_logs", len(nutritionLogs)),
		slog.Int("months", months),
		slog.Int("predictions", len(assessed)))

	return &Forecast{
		DataThrough: latestLogDate(growthLogs),
		Months:      months,
		Predictions: assessed,
	}
}

func latestLogDate(logs []domain.GrowthLog) *time.Time {
	if len(logs) == 0 {
		return nil
	}
	latest := logs[0].Date
	for _, l := range logs[1:] {
		if l.Date.After(latest) {
			latest = l.Date
		}
	}
	return &latest
}

// PredictionService forecasts growth for stored children.
type PredictionService interface {
	// PredictForChild fetches the child's growth logs and recent nutrition
	// logs and forecasts the given number of months. Zero months selects the
	// default horizon.
	//
	// A failed nutrition fetch degrades to a forecast without nutrition data;
	// a failed child or growth log fetch is returned.
	PredictForChild(ctx context.Context, childID uuid.UUID, months int) (*Forecast, error)
}

type predictionService struct {
	children      store.ChildStore
	growthLogs    store.GrowthLogStore
	nutritionLogs store.NutritionLogStore
	forecaster    *Forecaster
	logger        *slog.Logger
}

// NewPredictionService creates a PredictionService.
// It returns an error if any of the required dependencies are nil.
func NewPredictionService(
	children store.ChildStore,
	growthLogs store.GrowthLogStore,
	nutritionLogs store.NutritionLogStore,
	forecaster *Forecaster,
	logger *slog.Logger,
) (PredictionService, error) {
	switch {
	case children == nil:
		return nil, &ServiceError{Operation: "create_service", Message: "child store cannot be nil"}
	case growthLogs == nil:
		return nil, &ServiceError{Operation: "create_service", Message: "growth log store cannot be nil"}
	case nutritionLogs == nil:
		return nil, &ServiceError{Operation: "create_service", Message: "nutrition log store cannot be nil"}
	case forecaster == nil:
		return nil, &ServiceError{Operation: "create_service", Message: "forecaster cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &predictionService{
		children:      children,
		growthLogs:    growthLogs,
		nutritionLogs: nutritionLogs,
		forecaster:    forecaster,
		logger:        logger.With("component", "prediction_service"),
	}, nil
}

// PredictForChild implements PredictionService.PredictForChild
func (s *predictionService) PredictForChild(ctx context.Context, childID uuid.UUID, months int) (*Forecast, error) {
	start := time.Now()
	forecast, err := s.predictForChild(ctx, childID, months)
	s.forecaster.metrics.ObservePrediction(metrics.SourceStored, time.Since(start), err)
	return forecast, err
}

func (s *predictionService) predictForChild(ctx context.Context, childID uuid.UUID, months int) (*Forecast, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.String("child_id", childID.String()))

	months, err := s.forecaster.ResolveMonths(months)
	if err != nil {
		return nil, err
	}

	now := s.forecaster.settings.Clock().UTC()
	since := now.AddDate(0, -s.forecaster.settings.NutritionWindowMonths, 0)

	var (
		child        *domain.Child
		growthLogs   []domain.GrowthLog
		nutrition    []domain.NutritionLog
		nutritionErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		child, err = s.children.GetByID(gctx, childID)
		if err != nil {
			return NewServiceError("predict", "failed to retrieve child", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		growthLogs, err = s.growthLogs.ListByChild(gctx, childID)
		if err != nil {
			return NewServiceError("predict", "failed to fetch growth logs", err)
		}
		return nil
	})
	g.Go(func() error {
		// Nutrition data is optional; a failure here never fails the group
		nutrition, nutritionErr = s.nutritionLogs.ListByChildSince(gctx, childID, since)
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("prediction fetch failed", slog.String("error", err.Error()))
		return nil, err
	}

	if nutritionErr != nil {
		log.Warn("nutrition logs unavailable, forecasting without nutrition data",
			slog.String("error", nutritionErr.Error()))
		s.forecaster.metrics.IncNutritionFallback()
		nutrition = nil
	}

	forecast := s.forecaster.run(ctx, child.BirthDate, growthLogs, nutrition, months, now)
	forecast.ChildID = &child.ID

	log.Info("forecast generated",
		slog.Int("months", months),
		slog.Int("predictions", len(forecast.Predictions)))
	return forecast, nil
}

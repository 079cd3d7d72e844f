package growth

import (
	"time"

	"github.com/phrazzld/growthcast-api/internal/domain"
)

// Service defines the interface for growth engine operations.
// Implementations hold no mutable state; every call is independent.
type Service interface {
	// Predict forecasts growth for the given number of months after the
	// latest log. now anchors the nutrition window only.
	Predict(
		logs []domain.GrowthLog,
		birthDate time.Time,
		nutritionLogs []domain.NutritionLog,
		months int,
		now time.Time,
	) []Prediction

	// ClassifyStatus classifies a single forecast as normal, monitor or concern.
	ClassifyStatus(prediction Prediction) StatusAssessment

	// Percentiles places a recorded log on the reference curves for the
	// child's age at the log date.
	Percentiles(log domain.GrowthLog, birthDate time.Time) Percentiles
}

// defaultService is the standard implementation of the Service interface
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new growth engine service with default parameters
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new growth engine service with custom
// parameters. Returns ErrInvalidParams if the parameters fail validation.
func NewServiceWithParams(params *Params) (Service, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &defaultService{
		params: params,
	}, nil
}

// Predict implements Service.Predict
func (s *defaultService) Predict(
	logs []domain.GrowthLog,
	birthDate time.Time,
	nutritionLogs []domain.NutritionLog,
	months int,
	now time.Time,
) []Prediction {
	return predict(logs, birthDate, nutritionLogs, months, now, s.params)
}

// ClassifyStatus implements Service.ClassifyStatus
func (s *defaultService) ClassifyStatus(prediction Prediction) StatusAssessment {
	return classifyStatus(prediction)
}

// Percentiles implements Service.Percentiles
func (s *defaultService) Percentiles(log domain.GrowthLog, birthDate time.Time) Percentiles {
	return MeasurementPercentiles(log, LookupStandard(AgeInMonths(birthDate, log.Date)))
}

// The functions below expose each analysis with the default parameters.

// Predict forecasts growth using the default parameters.
func Predict(
	logs []domain.GrowthLog,
	birthDate time.Time,
	nutritionLogs []domain.NutritionLog,
	months int,
	now time.Time,
) []Prediction {
	return predict(logs, birthDate, nutritionLogs, months, now, NewDefaultParams())
}

// ClassifyStatus classifies a forecast.
func ClassifyStatus(prediction Prediction) StatusAssessment {
	return classifyStatus(prediction)
}

// CalculateVelocity estimates growth velocity using the default parameters.
func CalculateVelocity(logs []domain.GrowthLog) Velocity {
	return calculateVelocity(logs, NewDefaultParams())
}

// AnalyzeNutrition scores nutrition logs using the default parameters.
func AnalyzeNutrition(logs []domain.NutritionLog) NutritionAnalysis {
	return analyzeNutrition(logs, NewDefaultParams())
}

// ClassifyPattern classifies a growth history using the default parameters.
func ClassifyPattern(logs []domain.GrowthLog) PatternAnalysis {
	return classifyPattern(logs, NewDefaultParams())
}

// AnalyzePercentileTrend analyzes percentile trends using the default parameters.
func AnalyzePercentileTrend(logs []domain.GrowthLog, birthDate time.Time) PercentileTrendAnalysis {
	return analyzePercentileTrend(logs, birthDate, NewDefaultParams())
}

package growth

import (
	"strings"
	"time"

	"github.com/phrazzld/growthcast-api/internal/domain"
)

// Recommendation texts attached to forecasts. They are advisory display
// strings, not codes.
const (
	recDeficiencyPrefix  = "Address nutritional deficiencies: "
	recMonitorFrequently = "Growth pattern is variable; monitor measurements more frequently"
	recDietaryAdjustment = "Weight percentile is trending down; consider dietary adjustment"
)

// Factors are the component scores blended into a confidence score.
type Factors struct {
	Nutrition          float64 `json:"nutrition" yaml:"nutrition"`
	Consistency        float64 `json:"consistency" yaml:"consistency"`
	PercentileTracking float64 `json:"percentile_tracking" yaml:"percentile_tracking"`
}

// Prediction is the forecast for one future month.
type Prediction struct {
	Date               time.Time `json:"date" yaml:"date"`
	AgeMonths          int       `json:"age_months" yaml:"age_months"`
	WeightKg           float64   `json:"weight_kg" yaml:"weight_kg"`
	HeightCm           float64   `json:"height_cm" yaml:"height_cm"`
	HeadCm             float64   `json:"head_cm" yaml:"head_cm"`
	WeightPercentile   float64   `json:"weight_percentile" yaml:"weight_percentile"`
	HeightPercentile   float64   `json:"height_percentile" yaml:"height_percentile"`
	HeadPercentile     float64   `json:"head_percentile" yaml:"head_percentile"`
	ConfidenceScore    float64   `json:"confidence_score" yaml:"confidence_score"`
	Factors            Factors   `json:"factors" yaml:"factors"`
	AdjustedPrediction bool      `json:"adjusted_prediction" yaml:"adjusted_prediction"`
	Recommendations    []string  `json:"recommendations" yaml:"recommendations"`
}

// multipliers scales the velocity-driven projection of each measurement.
type multipliers struct {
	weight, height, head float64
}

func (m multipliers) adjusted() bool {
	return m.weight != 1 || m.height != 1 || m.head != 1
}

// predict forecasts growth for the given number of months after the latest log.
//
// Algorithm behavior:
//   - No logs yields an empty, non-nil slice
//   - Non-positive months falls back to params.DefaultMonths
//   - Nutrition logs older than params.NutritionWindowMonths before now are ignored
//   - Velocity, nutrition, pattern and percentile-trend analyses are computed
//     once and shared by every forecast month
//   - Month i is projected to lastLog.Date + i months as
//     last + velocity*i*multiplier, then placed on the reference curve for the
//     child's age at that date
//   - Head circumference is driven by velocity alone
//
// The inputs are never mutated and the output depends only on the arguments.
func predict(
	logs []domain.GrowthLog,
	birthDate time.Time,
	nutritionLogs []domain.NutritionLog,
	months int,
	now time.Time,
	params *Params,
) []Prediction {
	if len(logs) == 0 {
		return []Prediction{}
	}
	if months <= 0 {
		months = params.DefaultMonths
	}

	sorted := sortedByDate(logs)
	last := sorted[len(sorted)-1]

	velocity := calculateVelocity(sorted, params)
	nutrition := analyzeNutrition(recentNutritionLogs(nutritionLogs, now, params), params)
	pattern := classifyPattern(sorted, params)
	trend := analyzePercentileTrend(sorted, birthDate, params)

	factors := Factors{
		Nutrition:          nutrition.NutritionScore,
		Consistency:        pattern.TrendScore,
		PercentileTracking: trend.PercentileScore,
	}
	confidence := factors.Nutrition*params.NutritionWeight +
		factors.Consistency*params.TrendWeight +
		factors.PercentileTracking*params.PercentileWeight

	adj := projectionMultipliers(nutrition, pattern, params)
	recommendations := forecastRecommendations(nutrition, pattern, trend)

	predictions := make([]Prediction, 0, months)
	for i := 1; i <= months; i++ {
		date := last.Date.AddDate(0, i, 0)
		age := AgeInMonths(birthDate, date)
		step := float64(i)

		projected := domain.GrowthLog{
			Date:     date,
			WeightKg: project(last.WeightKg, velocity.Weight, step, adj.weight),
			HeightCm: project(last.HeightCm, velocity.Height, step, adj.height),
			HeadCm:   project(last.HeadCm, velocity.Head, step, adj.head),
		}
		pct := MeasurementPercentiles(projected, LookupStandard(age))

		recs := make([]string, len(recommendations))
		copy(recs, recommendations)

		predictions = append(predictions, Prediction{
			Date:               date,
			AgeMonths:          age,
			WeightKg:           projected.WeightKg,
			HeightCm:           projected.HeightCm,
			HeadCm:             projected.HeadCm,
			WeightPercentile:   pct.Weight,
			HeightPercentile:   pct.Height,
			HeadPercentile:     pct.Head,
			ConfidenceScore:    confidence,
			Factors:            factors,
			AdjustedPrediction: adj.adjusted(),
			Recommendations:    recs,
		})
	}

	return predictions
}

// project extrapolates one measurement. An unrecorded last value stays
// unrecorded rather than being extrapolated from zero.
func project(lastValue, velocity, step, multiplier float64) float64 {
	if lastValue <= 0 {
		return 0
	}
	return lastValue + velocity*step*multiplier
}

// recentNutritionLogs keeps the logs dated on or after the start of the
// nutrition window ending at now.
func recentNutritionLogs(logs []domain.NutritionLog, now time.Time, params *Params) []domain.NutritionLog {
	since := now.AddDate(0, -params.NutritionWindowMonths, 0)
	recent := make([]domain.NutritionLog, 0, len(logs))
	for _, l := range logs {
		if !l.LogDate.Before(since) {
			recent = append(recent, l)
		}
	}
	return recent
}

// projectionMultipliers derives the risk adjustments. Multipliers stack
// multiplicatively.
func projectionMultipliers(nutrition NutritionAnalysis, pattern PatternAnalysis, params *Params) multipliers {
	m := multipliers{weight: 1, height: 1, head: 1}

	if len(nutrition.Deficiencies) > 0 {
		m.weight *= params.DeficiencyWeightMultiplier
		m.height *= params.DeficiencyHeightMultiplier
	}
	if nutrition.lowCalories(params) {
		m.weight *= params.LowCalorieWeightMultiplier
	}
	if pattern.Pattern == PatternVariable {
		m.weight *= params.VariableWeightMultiplier
		m.height *= params.VariableHeightMultiplier
	}

	return m
}

func forecastRecommendations(
	nutrition NutritionAnalysis,
	pattern PatternAnalysis,
	trend PercentileTrendAnalysis,
) []string {
	recs := make([]string, 0, 3)
	if len(nutrition.Deficiencies) > 0 {
		recs = append(recs, recDeficiencyPrefix+strings.Join(nutrition.Deficiencies, ", "))
	}
	if pattern.Pattern == PatternVariable {
		recs = append(recs, recMonitorFrequently)
	}
	if trend.WeightTrend == TrendDecreasing {
		recs = append(recs, recDietaryAdjustment)
	}
	return recs
}

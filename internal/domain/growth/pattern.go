package growth

import (
	"math"

	"github.com/phrazzld/growthcast-api/internal/domain"
)

// Pattern classifies the regularity of recent growth.
type Pattern string

// Possible growth patterns
const (
	PatternSteady     Pattern = "steady"
	PatternVariable   Pattern = "variable"
	PatternConcerning Pattern = "concerning"
)

// PatternAnalysis is the result of classifying a growth history.
type PatternAnalysis struct {
	Pattern    Pattern `json:"growth_pattern" yaml:"growth_pattern"`
	TrendScore float64 `json:"trend_score" yaml:"trend_score"`
}

// classifyPattern inspects the deltas between consecutive recorded weights
// and between consecutive recorded heights.
//
// Fewer than two logs is reported as steady with the neutral score, the same
// shape as genuinely steady growth but a lower score. Head circumference is
// not considered. The concerning thresholds override the variable ones.
func classifyPattern(logs []domain.GrowthLog, params *Params) PatternAnalysis {
	if len(logs) < 2 {
		return PatternAnalysis{Pattern: PatternSteady, TrendScore: params.NeutralScore}
	}

	sorted := sortedByDate(logs)
	weightStdDev := populationStdDev(deltas(recordedReadings(sorted, weightOf)))
	heightStdDev := populationStdDev(deltas(recordedReadings(sorted, heightOf)))

	switch {
	case weightStdDev > params.ConcerningWeightStdDev || heightStdDev > params.ConcerningHeightStdDev:
		return PatternAnalysis{Pattern: PatternConcerning, TrendScore: params.ConcerningScore}
	case weightStdDev > params.VariableWeightStdDev || heightStdDev > params.VariableHeightStdDev:
		return PatternAnalysis{Pattern: PatternVariable, TrendScore: params.VariableScore}
	default:
		return PatternAnalysis{Pattern: PatternSteady, TrendScore: params.SteadyScore}
	}
}

func deltas(readings []reading) []float64 {
	if len(readings) < 2 {
		return nil
	}
	out := make([]float64, 0, len(readings)-1)
	for i := 1; i < len(readings); i++ {
		out = append(out, readings[i].value-readings[i-1].value)
	}
	return out
}

// populationStdDev returns the population standard deviation of values, or 0
// for fewer than two values.
func populationStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(values)))
}

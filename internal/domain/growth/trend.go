package growth

import (
	"math"
	"time"

	"github.com/phrazzld/growthcast-api/internal/domain"
)

// Trend describes how a percentile rank moved across the log history.
type Trend string

// Possible percentile trends
const (
	TrendStable     Trend = "stable"
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
)

// PercentileTrendAnalysis reports per-measurement percentile trends and a
// percentile-consistency score.
type PercentileTrendAnalysis struct {
	WeightTrend     Trend   `json:"weight_trend" yaml:"weight_trend"`
	HeightTrend     Trend   `json:"height_trend" yaml:"height_trend"`
	HeadTrend       Trend   `json:"head_trend" yaml:"head_trend"`
	PercentileScore float64 `json:"percentile_score" yaml:"percentile_score"`
}

// analyzePercentileTrend places the first and last recorded value of each
// measurement on the reference curves for the child's age at those dates and
// compares the two placements. A measurement recorded fewer than twice is
// stable.
//
// A change smaller than params.StablePercentileBand is stable. The score
// starts at 1.0 and is reduced by params.DecliningPercentilePenalty when
// weight or height is decreasing, and by params.DisproportionatePenalty when
// weight is increasing while height is stable.
func analyzePercentileTrend(logs []domain.GrowthLog, birthDate time.Time, params *Params) PercentileTrendAnalysis {
	if len(logs) < 2 {
		return PercentileTrendAnalysis{
			WeightTrend:     TrendStable,
			HeightTrend:     TrendStable,
			HeadTrend:       TrendStable,
			PercentileScore: params.NeutralScore,
		}
	}

	sorted := sortedByDate(logs)
	weight := func(ref ReferenceStandard) Stat { return ref.Weight }
	height := func(ref ReferenceStandard) Stat { return ref.Height }
	head := func(ref ReferenceStandard) Stat { return ref.Head }

	analysis := PercentileTrendAnalysis{
		WeightTrend: classifyTrend(percentileChange(recordedReadings(sorted, weightOf), birthDate, weight), params),
		HeightTrend: classifyTrend(percentileChange(recordedReadings(sorted, heightOf), birthDate, height), params),
		HeadTrend:   classifyTrend(percentileChange(recordedReadings(sorted, headOf), birthDate, head), params),
	}

	score := 1.0
	if analysis.WeightTrend == TrendDecreasing || analysis.HeightTrend == TrendDecreasing {
		score -= params.DecliningPercentilePenalty
	}
	if analysis.WeightTrend == TrendIncreasing && analysis.HeightTrend == TrendStable {
		score -= params.DisproportionatePenalty
	}
	analysis.PercentileScore = clamp01(score)

	return analysis
}

// percentileChange is the movement in percentile rank between the first and
// last readings, each placed at the child's age on its own date.
func percentileChange(readings []reading, birthDate time.Time, stat func(ReferenceStandard) Stat) float64 {
	if len(readings) < 2 {
		return 0
	}
	first := readings[0]
	last := readings[len(readings)-1]
	before := Percentile(first.value, stat(LookupStandard(AgeInMonths(birthDate, first.date))))
	after := Percentile(last.value, stat(LookupStandard(AgeInMonths(birthDate, last.date))))
	return after - before
}

func classifyTrend(change float64, params *Params) Trend {
	switch {
	case math.Abs(change) < params.StablePercentileBand:
		return TrendStable
	case change > 0:
		return TrendIncreasing
	default:
		return TrendDecreasing
	}
}

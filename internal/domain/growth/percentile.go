package growth

import (
	"math"

	"github.com/phrazzld/growthcast-api/internal/domain"
)

// zSaturation bounds the z-score range over which the normal CDF is evaluated.
// Beyond it the percentile is reported as exactly 0 or 100.
const zSaturation = 3.49

// Percentiles holds the percentile placement of each measurement of a log.
type Percentiles struct {
	Weight float64 `json:"weight" yaml:"weight"`
	Height float64 `json:"height" yaml:"height"`
	Head   float64 `json:"head" yaml:"head"`
}

// Percentile converts a measurement into its percentile (0-100) against the
// given population statistic.
//
// The z-score (value-mean)/sd is mapped through the standard normal CDF,
// 50*(1+erf(z/sqrt2)). A non-positive value is an unrecorded measurement and
// yields 0, as does a degenerate statistic.
func Percentile(value float64, s Stat) float64 {
	if value <= 0 || s.SD <= 0 {
		return 0
	}

	z := (value - s.Mean) / s.SD
	switch {
	case z < -zSaturation:
		return 0
	case z > zSaturation:
		return 100
	}

	return 50 * (1 + math.Erf(z/math.Sqrt2))
}

// MeasurementPercentiles computes weight, height and head percentiles of a
// growth log against a reference standard.
func MeasurementPercentiles(log domain.GrowthLog, ref ReferenceStandard) Percentiles {
	return Percentiles{
		Weight: Percentile(log.WeightKg, ref.Weight),
		Height: Percentile(log.HeightCm, ref.Height),
		Head:   Percentile(log.HeadCm, ref.Head),
	}
}

package growth

import (
	"github.com/phrazzld/growthcast-api/internal/domain"
)

// Velocity is the rate of change of each measurement, in units per month.
type Velocity struct {
	Weight float64 `json:"weight" yaml:"weight"`
	Height float64 `json:"height" yaml:"height"`
	Head   float64 `json:"head" yaml:"head"`
}

// calculateVelocity estimates growth velocity from the trailing window of logs.
//
// Algorithm behavior:
//   - Fewer than two logs yields zero velocity
//   - Logs are sorted by date and restricted to the params.VelocityWindowMonths
//     calendar months ending at the latest log
//   - Each measurement uses the first and last logs of the window in which it
//     was recorded; fewer than two such logs yields zero for that measurement
//   - The elapsed time between those logs is counted in whole months and
//     floored at 1
func calculateVelocity(logs []domain.GrowthLog, params *Params) Velocity {
	if len(logs) < 2 {
		return Velocity{}
	}

	sorted := sortedByDate(logs)
	latest := sorted[len(sorted)-1]
	cutoff := latest.Date.AddDate(0, -params.VelocityWindowMonths, 0)

	window := make([]domain.GrowthLog, 0, len(sorted))
	for _, l := range sorted {
		if !l.Date.Before(cutoff) {
			window = append(window, l)
		}
	}

	return Velocity{
		Weight: monthlyRate(recordedReadings(window, weightOf)),
		Height: monthlyRate(recordedReadings(window, heightOf)),
		Head:   monthlyRate(recordedReadings(window, headOf)),
	}
}

func monthlyRate(readings []reading) float64 {
	if len(readings) < 2 {
		return 0
	}
	first := readings[0]
	last := readings[len(readings)-1]

	monthsDiff := wholeMonthsBetween(first.date, last.date)
	if monthsDiff < 1 {
		monthsDiff = 1
	}
	return (last.value - first.value) / float64(monthsDiff)
}

package growth

import (
	"sort"
	"time"

	"github.com/phrazzld/growthcast-api/internal/domain"
)

// wholeMonthsBetween returns the number of completed calendar months from
// start to end. A month is complete once the day-of-month (and time of day)
// of start has been reached again. The result is negative when end precedes
// start.
func wholeMonthsBetween(start, end time.Time) int {
	if end.Before(start) {
		return -wholeMonthsBetween(end, start)
	}

	start = start.UTC()
	end = end.UTC()

	months := (end.Year()-start.Year())*12 + int(end.Month()-start.Month())
	if months > 0 && start.AddDate(0, months, 0).After(end) {
		months--
	}
	return months
}

// AgeInMonths returns the completed months of age at the given date.
func AgeInMonths(birthDate, at time.Time) int {
	return wholeMonthsBetween(birthDate, at)
}

// sortedByDate returns a copy of logs ordered by ascending date. The caller's
// slice is never reordered.
func sortedByDate(logs []domain.GrowthLog) []domain.GrowthLog {
	sorted := make([]domain.GrowthLog, len(logs))
	copy(sorted, logs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}

// reading is one recorded value of a single measurement.
type reading struct {
	date  time.Time
	value float64
}

func weightOf(l domain.GrowthLog) float64 { return l.WeightKg }
func heightOf(l domain.GrowthLog) float64 { return l.HeightCm }
func headOf(l domain.GrowthLog) float64   { return l.HeadCm }

// recordedReadings extracts the values of one measurement from date-ordered
// logs, skipping logs where it was not recorded.
func recordedReadings(sorted []domain.GrowthLog, value func(domain.GrowthLog) float64) []reading {
	out := make([]reading, 0, len(sorted))
	for _, l := range sorted {
		if v := value(l); v > 0 {
			out = append(out, reading{date: l.Date, value: v})
		}
	}
	return out
}

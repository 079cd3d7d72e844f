package growth

import (
	"testing"
	"time"

	"github.com/phrazzld/growthcast-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestPercentile(t *testing.T) {
	t.Parallel()
	stat := Stat{Mean: 10, SD: 2}

	testCases := []struct {
		name     string
		value    float64
		expected float64
	}{
		{name: "value at mean is the median", value: 10, expected: 50},
		{name: "one SD above mean", value: 12, expected: 84.1345},
		{name: "one SD below mean", value: 8, expected: 15.8655},
		{name: "1.96 SD below mean", value: 10 - 1.96*2, expected: 2.4998},
		{name: "exactly at upper saturation bound", value: 10 + 3.49*2, expected: 99.9758},
		{name: "beyond upper bound saturates to 100", value: 10 + 3.5*2, expected: 100},
		{name: "beyond lower bound saturates to 0", value: 10 - 3.5*2, expected: 0},
		{name: "unrecorded value yields 0", value: 0, expected: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, Percentile(tc.value, stat), 1e-3)
		})
	}
}

func TestPercentileExactlyFiftyAtMean(t *testing.T) {
	t.Parallel()

	for age := 0; age <= MaxReferenceAgeMonths; age++ {
		ref := LookupStandard(age)
		for _, s := range []Stat{ref.Weight, ref.Height, ref.Head} {
			if got := Percentile(s.Mean, s); got != 50 {
				t.Errorf("age %d: expected percentile 50 at mean %.1f, got %v", age, s.Mean, got)
			}
		}
	}
}

func TestPercentileMonotonic(t *testing.T) {
	t.Parallel()
	stat := Stat{Mean: 7.5, SD: 0.9}

	prev := -1.0
	for value := 0.1; value <= 15; value += 0.05 {
		got := Percentile(value, stat)
		if got < prev {
			t.Fatalf("percentile decreased at value %.2f: %v < %v", value, got, prev)
		}
		if got < 0 || got > 100 {
			t.Fatalf("percentile %v out of range at value %.2f", got, value)
		}
		prev = got
	}
}

func TestPercentileDegenerateStat(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 0.0, Percentile(5, Stat{Mean: 5, SD: 0}))
}

func TestMeasurementPercentiles(t *testing.T) {
	t.Parallel()
	ref := LookupStandard(2)

	log := domain.GrowthLog{
		Date:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		WeightKg: ref.Weight.Mean,
		HeightCm: ref.Height.Mean + ref.Height.SD,
	}

	got := MeasurementPercentiles(log, ref)
	assert.Equal(t, 50.0, got.Weight)
	assert.InDelta(t, 84.1345, got.Height, 1e-3)
	assert.Equal(t, 0.0, got.Head, "unrecorded head circumference yields percentile 0")
}

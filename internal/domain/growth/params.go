package growth

import (
	"errors"
	"math"
)

// ErrInvalidParams is returned by Params.Validate when a parameter is out of range.
var ErrInvalidParams = errors.New("invalid growth engine parameters")

// Params defines all tunable constants of the growth engine
type Params struct {
	// Forecast horizon used when the caller passes a non-positive month count
	DefaultMonths int

	// Trailing windows, in calendar months
	VelocityWindowMonths  int
	NutritionWindowMonths int

	// Nutrition scoring
	DeficiencyPenalty   float64
	LowCaloriePenalty   float64
	LowCalorieThreshold float64

	// Pattern classification thresholds on the standard deviation of
	// consecutive deltas (kg and cm)
	VariableWeightStdDev   float64
	VariableHeightStdDev   float64
	ConcerningWeightStdDev float64
	ConcerningHeightStdDev float64
	SteadyScore            float64
	VariableScore          float64
	ConcerningScore        float64

	// Percentile trend analysis
	StablePercentileBand       float64
	DecliningPercentilePenalty float64
	DisproportionatePenalty    float64

	// Confidence blend
	NutritionWeight  float64
	TrendWeight      float64
	PercentileWeight float64

	// Projection multipliers
	DeficiencyWeightMultiplier float64
	DeficiencyHeightMultiplier float64
	LowCalorieWeightMultiplier float64
	VariableWeightMultiplier   float64
	VariableHeightMultiplier   float64

	// Neutral score used whenever there is not enough data to judge
	NeutralScore float64
}

// NewDefaultParams creates a new Params instance with default values
func NewDefaultParams() *Params {
	return &Params{
		DefaultMonths: 3,

		VelocityWindowMonths:  3,
		NutritionWindowMonths: 3,

		DeficiencyPenalty:   0.1,
		LowCaloriePenalty:   0.2,
		LowCalorieThreshold: 1500,

		VariableWeightStdDev:   0.5,
		VariableHeightStdDev:   2,
		ConcerningWeightStdDev: 1,
		ConcerningHeightStdDev: 4,
		SteadyScore:            1.0,
		VariableScore:          0.7,
		ConcerningScore:        0.4,

		StablePercentileBand:       5,
		DecliningPercentilePenalty: 0.3,
		DisproportionatePenalty:    0.2,

		NutritionWeight:  0.3,
		TrendWeight:      0.4,
		PercentileWeight: 0.3,

		DeficiencyWeightMultiplier: 0.95,
		DeficiencyHeightMultiplier: 0.97,
		LowCalorieWeightMultiplier: 0.93,
		VariableWeightMultiplier:   0.98,
		VariableHeightMultiplier:   0.99,

		NeutralScore: 0.5,
	}
}

// Validate checks that windows are positive, multipliers lie in (0,1] and the
// confidence weights sum to one.
func (p *Params) Validate() error {
	if p == nil {
		return ErrInvalidParams
	}
	if p.DefaultMonths < 1 || p.VelocityWindowMonths < 1 || p.NutritionWindowMonths < 1 {
		return ErrInvalidParams
	}

	for _, m := range []float64{
		p.DeficiencyWeightMultiplier,
		p.DeficiencyHeightMultiplier,
		p.LowCalorieWeightMultiplier,
		p.VariableWeightMultiplier,
		p.VariableHeightMultiplier,
	} {
		if m <= 0 || m > 1 {
			return ErrInvalidParams
		}
	}

	sum := p.NutritionWeight + p.TrendWeight + p.PercentileWeight
	if math.Abs(sum-1) > 1e-9 {
		return ErrInvalidParams
	}

	return nil
}

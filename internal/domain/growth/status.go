package growth

// Status is the clinical-style severity of a forecast.
type Status string

// Possible statuses, in increasing severity
const (
	StatusNormal  Status = "normal"
	StatusMonitor Status = "monitor"
	StatusConcern Status = "concern"
)

// Status messages appended by the classifier.
const (
	msgWeightVeryLow  = "Weight is below the 3rd percentile; consult a pediatrician"
	msgWeightLow      = "Weight is below the 10th percentile; monitor weight gain closely"
	msgWeightHigh     = "Weight is above the 97th percentile; review feeding with a pediatrician"
	msgHeightVeryLow  = "Height is below the 3rd percentile; consult a pediatrician"
	msgHeightLow      = "Height is below the 10th percentile; monitor linear growth"
	msgHeadOutOfRange = "Head circumference is outside the 3rd-97th percentile range; consult a pediatrician"
	msgNormal         = "Growth is progressing normally"
)

// StatusAssessment is the classification of a single forecast.
type StatusAssessment struct {
	Status          Status   `json:"status" yaml:"status"`
	Recommendations []string `json:"recommendations" yaml:"recommendations"`
}

var statusRank = map[Status]int{
	StatusNormal:  0,
	StatusMonitor: 1,
	StatusConcern: 2,
}

// escalate returns the more severe of two statuses. A status is never
// downgraded by a later check.
func escalate(current, next Status) Status {
	if statusRank[next] > statusRank[current] {
		return next
	}
	return current
}

// classifyStatus evaluates each percentile rule independently. Every rule that
// fires appends its own message; when none fires a single "progressing
// normally" message is returned.
func classifyStatus(p Prediction) StatusAssessment {
	status := StatusNormal
	recs := make([]string, 0, 3)

	switch {
	case p.WeightPercentile < 3:
		status = escalate(status, StatusConcern)
		recs = append(recs, msgWeightVeryLow)
	case p.WeightPercentile < 10:
		status = escalate(status, StatusMonitor)
		recs = append(recs, msgWeightLow)
	case p.WeightPercentile > 97:
		status = escalate(status, StatusMonitor)
		recs = append(recs, msgWeightHigh)
	}

	switch {
	case p.HeightPercentile < 3:
		status = escalate(status, StatusConcern)
		recs = append(recs, msgHeightVeryLow)
	case p.HeightPercentile < 10:
		status = escalate(status, StatusMonitor)
		recs = append(recs, msgHeightLow)
	}

	if p.HeadPercentile < 3 || p.HeadPercentile > 97 {
		status = escalate(status, StatusConcern)
		recs = append(recs, msgHeadOutOfRange)
	}

	if len(recs) == 0 {
		recs = append(recs, msgNormal)
	}

	return StatusAssessment{Status: status, Recommendations: recs}
}

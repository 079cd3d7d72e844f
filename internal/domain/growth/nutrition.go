package growth

import (
	"sort"

	"github.com/phrazzld/growthcast-api/internal/domain"
)

// NutritionAnalysis summarizes the nutrition logs of a window.
type NutritionAnalysis struct {
	// CalorieIntake is the mean over logs that report calories.
	CalorieIntake float64 `json:"calorie_intake" yaml:"calorie_intake"`
	// CaloriesReported is false when no log in the window carried calories,
	// in which case CalorieIntake is 0 and means "unknown".
	CaloriesReported bool `json:"calories_reported" yaml:"calories_reported"`
	// Deficiencies is the deduplicated union of flagged deficiencies, sorted.
	Deficiencies   []string `json:"deficiencies" yaml:"deficiencies"`
	NutritionScore float64  `json:"nutrition_score" yaml:"nutrition_score"`
}

// lowCalories reports whether a known average intake falls below the threshold.
func (n NutritionAnalysis) lowCalories(params *Params) bool {
	return n.CaloriesReported && n.CalorieIntake < params.LowCalorieThreshold
}

// analyzeNutrition scores a set of nutrition logs.
//
// With no logs the analysis is neutral: no intake, no deficiencies and a score
// of params.NeutralScore. Otherwise the score starts at 1.0, loses
// params.DeficiencyPenalty per distinct deficiency and params.LowCaloriePenalty
// when the average intake is below params.LowCalorieThreshold, then is clamped
// to [0,1].
func analyzeNutrition(logs []domain.NutritionLog, params *Params) NutritionAnalysis {
	if len(logs) == 0 {
		return NutritionAnalysis{
			Deficiencies:   []string{},
			NutritionScore: params.NeutralScore,
		}
	}

	var totalCalories float64
	var calorieLogs int
	seen := make(map[string]struct{})
	deficiencies := make([]string, 0)

	for _, l := range logs {
		if l.DailyNutrientIntake.ReportsCalories() {
			totalCalories += l.DailyNutrientIntake.Calories
			calorieLogs++
		}
		for _, d := range l.Deficiencies {
			if _, ok := seen[d]; ok {
				continue
			}
			seen[d] = struct{}{}
			deficiencies = append(deficiencies, d)
		}
	}
	sort.Strings(deficiencies)

	analysis := NutritionAnalysis{
		CaloriesReported: calorieLogs > 0,
		Deficiencies:     deficiencies,
	}
	if calorieLogs > 0 {
		analysis.CalorieIntake = totalCalories / float64(calorieLogs)
	}

	score := 1.0 - params.DeficiencyPenalty*float64(len(deficiencies))
	if analysis.lowCalories(params) {
		score -= params.LowCaloriePenalty
	}
	analysis.NutritionScore = clamp01(score)

	return analysis
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

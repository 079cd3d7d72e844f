package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Nutrition log validation errors
var (
	// ErrNutritionLogIDEmpty is returned when a nutrition log ID is empty or nil.
	ErrNutritionLogIDEmpty = errors.New("nutrition log ID cannot be empty")

	// ErrNutritionLogChildIDEmpty is returned when a nutrition log has no child.
	ErrNutritionLogChildIDEmpty = errors.New("nutrition log child ID cannot be empty")

	// ErrNutritionLogDateEmpty is returned when a nutrition log has no date.
	ErrNutritionLogDateEmpty = fmt.Errorf("%w: nutrition log date cannot be empty", ErrInvalidDate)

	// ErrNegativeNutrient is returned when any reported intake value is negative.
	ErrNegativeNutrient = errors.New("nutrient intake values cannot be negative")
)

// NutrientIntake is the daily intake reported in a nutrition log.
// A non-positive Calories value means calories were not reported.
type NutrientIntake struct {
	Calories float64 `json:"calories" yaml:"calories"`
	Protein  float64 `json:"protein" yaml:"protein"`
	Calcium  float64 `json:"calcium" yaml:"calcium"`
	Iron     float64 `json:"iron" yaml:"iron"`
	VitaminD float64 `json:"vitamin_d" yaml:"vitamin_d"`
}

// ReportsCalories reports whether the intake carries a usable calorie value.
func (n *NutrientIntake) ReportsCalories() bool {
	return n != nil && n.Calories > 0
}

// NutritionLog records a day's nutrient intake and any flagged deficiencies.
type NutritionLog struct {
	ID                  uuid.UUID       `json:"id"`
	ChildID             uuid.UUID       `json:"child_id"`
	LogDate             time.Time       `json:"log_date"`
	DailyNutrientIntake *NutrientIntake `json:"daily_nutrient_intake,omitempty"`
	Deficiencies        []string        `json:"deficiencies,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
}

// NewNutritionLog creates a new NutritionLog. Deficiency names are trimmed and
// blank entries dropped.
func NewNutritionLog(
	childID uuid.UUID,
	logDate time.Time,
	intake *NutrientIntake,
	deficiencies []string,
) (*NutritionLog, error) {
	cleaned := make([]string, 0, len(deficiencies))
	for _, d := range deficiencies {
		if d = strings.TrimSpace(d); d != "" {
			cleaned = append(cleaned, d)
		}
	}

	log := &NutritionLog{
		ID:                  uuid.New(),
		ChildID:             childID,
		LogDate:             logDate.UTC(),
		DailyNutrientIntake: intake,
		Deficiencies:        cleaned,
		CreatedAt:           time.Now().UTC(),
	}

	if err := log.Validate(); err != nil {
		return nil, err
	}

	return log, nil
}

// Validate checks if the NutritionLog has valid data.
func (n *NutritionLog) Validate() error {
	if n.ID == uuid.Nil {
		return ErrNutritionLogIDEmpty
	}

	if n.ChildID == uuid.Nil {
		return ErrNutritionLogChildIDEmpty
	}

	if n.LogDate.IsZero() {
		return ErrNutritionLogDateEmpty
	}

	if in := n.DailyNutrientIntake; in != nil {
		if in.Calories < 0 || in.Protein < 0 || in.Calcium < 0 || in.Iron < 0 || in.VitaminD < 0 {
			return ErrNegativeNutrient
		}
	}

	return nil
}

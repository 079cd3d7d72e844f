package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/phrazzld/growthcast-api/internal/domain"
)

// EncodeNutritionColumns renders the JSON columns of a nutrition log for SQL
// backends. A nil intake becomes NULL; nil deficiencies become "[]".
func EncodeNutritionColumns(log *domain.NutritionLog) (sql.NullString, string, error) {
	var intake sql.NullString
	if log.DailyNutrientIntake != nil {
		b, err := json.Marshal(log.DailyNutrientIntake)
		if err != nil {
			return intake, "", fmt.Errorf("marshal intake: %w", err)
		}
		intake = sql.NullString{String: string(b), Valid: true}
	}

	deficiencies := log.Deficiencies
	if deficiencies == nil {
		deficiencies = []string{}
	}
	b, err := json.Marshal(deficiencies)
	if err != nil {
		return intake, "", fmt.Errorf("marshal deficiencies: %w", err)
	}
	return intake, string(b), nil
}

// DecodeNutritionColumns is the inverse of EncodeNutritionColumns. Empty
// input leaves the intake nil and the deficiencies empty.
func DecodeNutritionColumns(n *domain.NutritionLog, intake, deficiencies []byte) error {
	n.DailyNutrientIntake = nil
	if len(intake) > 0 {
		var in domain.NutrientIntake
		if err := json.Unmarshal(intake, &in); err != nil {
			return fmt.Errorf("unmarshal intake: %w", err)
		}
		n.DailyNutrientIntake = &in
	}

	n.Deficiencies = []string{}
	if len(deficiencies) > 0 {
		if err := json.Unmarshal(deficiencies, &n.Deficiencies); err != nil {
			return fmt.Errorf("unmarshal deficiencies: %w", err)
		}
	}
	return nil
}

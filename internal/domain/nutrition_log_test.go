package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewNutritionLog(t *testing.T) {
	t.Parallel()
	childID := uuid.New()
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	log, err := NewNutritionLog(childID, date, &NutrientIntake{Calories: 1200}, []string{" iron ", "", "  "})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(log.Deficiencies) != 1 || log.Deficiencies[0] != "iron" {
		t.Errorf("Expected deficiencies [iron], got %v", log.Deficiencies)
	}

	if _, err := NewNutritionLog(childID, date, &NutrientIntake{Protein: -2}, nil); err != ErrNegativeNutrient {
		t.Errorf("Expected error %v, got %v", ErrNegativeNutrient, err)
	}

	if _, err := NewNutritionLog(uuid.Nil, date, nil, nil); err != ErrNutritionLogChildIDEmpty {
		t.Errorf("Expected error %v, got %v", ErrNutritionLogChildIDEmpty, err)
	}

	if _, err := NewNutritionLog(childID, time.Time{}, nil, nil); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("Expected error wrapping %v, got %v", ErrInvalidDate, err)
	}
}

func TestReportsCalories(t *testing.T) {
	t.Parallel()

	var missing *NutrientIntake
	if missing.ReportsCalories() {
		t.Error("Expected nil intake to report no calories")
	}

	if (&NutrientIntake{Protein: 20}).ReportsCalories() {
		t.Error("Expected zero calories to count as unreported")
	}

	if !(&NutrientIntake{Calories: 900}).ReportsCalories() {
		t.Error("Expected positive calories to be reported")
	}
}

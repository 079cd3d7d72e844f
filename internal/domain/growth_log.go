package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Upper bounds used to reject obviously mistyped measurements. They are far
// above anything seen in the first years of life.
const (
	maxWeightKg = 60.0
	maxHeightCm = 200.0
	maxHeadCm   = 70.0
)

// Growth log validation errors
var (
	// ErrGrowthLogIDEmpty is returned when a growth log ID is empty or nil.
	ErrGrowthLogIDEmpty = errors.New("growth log ID cannot be empty")

	// ErrGrowthLogChildIDEmpty is returned when a growth log has no child.
	ErrGrowthLogChildIDEmpty = errors.New("growth log child ID cannot be empty")

	// ErrGrowthLogDateEmpty is returned when a growth log has no measurement date.
	ErrGrowthLogDateEmpty = fmt.Errorf("%w: growth log date cannot be empty", ErrInvalidDate)

	// ErrGrowthLogNoMeasurements is returned when none of weight, height or head is recorded.
	ErrGrowthLogNoMeasurements = fmt.Errorf("%w: at least one measurement is required", ErrInvalidMeasurement)
)

// GrowthLog is a single anthropometric observation of a child.
//
// A measurement value of zero means "not recorded"; the growth engine maps
// unrecorded values to percentile 0 and they are persisted as NULL.
type GrowthLog struct {
	ID        uuid.UUID `json:"id"`
	ChildID   uuid.UUID `json:"child_id"`
	Date      time.Time `json:"date"`
	WeightKg  float64   `json:"weight_kg"`
	HeightCm  float64   `json:"height_cm"`
	HeadCm    float64   `json:"head_cm"`
	CreatedAt time.Time `json:"created_at"`
}

// NewGrowthLog creates a new GrowthLog for the given child.
// Returns an error if validation fails.
func NewGrowthLog(childID uuid.UUID, date time.Time, weightKg, heightCm, headCm float64) (*GrowthLog, error) {
	log := &GrowthLog{
		ID:        uuid.New(),
		ChildID:   childID,
		Date:      date.UTC(),
		WeightKg:  weightKg,
		HeightCm:  heightCm,
		HeadCm:    headCm,
		CreatedAt: time.Now().UTC(),
	}

	if err := log.Validate(); err != nil {
		return nil, err
	}

	return log, nil
}

// Validate checks if the GrowthLog has valid data.
func (g *GrowthLog) Validate() error {
	if g.ID == uuid.Nil {
		return ErrGrowthLogIDEmpty
	}

	if g.ChildID == uuid.Nil {
		return ErrGrowthLogChildIDEmpty
	}

	if g.Date.IsZero() {
		return ErrGrowthLogDateEmpty
	}

	if g.WeightKg == 0 && g.HeightCm == 0 && g.HeadCm == 0 {
		return ErrGrowthLogNoMeasurements
	}

	if err := checkRange("weight_kg", g.WeightKg, maxWeightKg); err != nil {
		return err
	}
	if err := checkRange("height_cm", g.HeightCm, maxHeightCm); err != nil {
		return err
	}
	return checkRange("head_cm", g.HeadCm, maxHeadCm)
}

func checkRange(field string, value, max float64) error {
	if value < 0 || value > max {
		return fmt.Errorf("%w: %s must be between 0 and %.0f", ErrInvalidMeasurement, field, max)
	}
	return nil
}

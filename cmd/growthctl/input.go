package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/growthcast-api/internal/domain"
	"github.com/phrazzld/growthcast-api/internal/domain/reminder"
	"github.com/phrazzld/growthcast-api/internal/service"
	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

// ErrUnsupportedFormat is returned for input files that are neither JSON nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported input format, expected .json, .yaml or .yml")

var validate = validator.New()

// growthLogDoc is one measurement. Omitted values were not measured.
type growthLogDoc struct {
	Date     string  `json:"date" yaml:"date" validate:"required,datetime=2006-01-02"`
	WeightKg float64 `json:"weight_kg,omitempty" yaml:"weight_kg,omitempty" validate:"gte=0"`
	HeightCm float64 `json:"height_cm,omitempty" yaml:"height_cm,omitempty" validate:"gte=0"`
	HeadCm   float64 `json:"head_cm,omitempty" yaml:"head_cm,omitempty" validate:"gte=0"`
}

type nutritionLogDoc struct {
	Date         string                 `json:"date" yaml:"date" validate:"required,datetime=2006-01-02"`
	Intake       *domain.NutrientIntake `json:"daily_nutrient_intake,omitempty" yaml:"daily_nutrient_intake,omitempty"`
	Deficiencies []string               `json:"deficiencies,omitempty" yaml:"deficiencies,omitempty"`
}

// forecastDoc is the input of the predict and status commands.
type forecastDoc struct {
	BirthDate     string            `json:"birth_date" yaml:"birth_date" validate:"required,datetime=2006-01-02"`
	Months        int               `json:"months,omitempty" yaml:"months,omitempty" validate:"gte=0"`
	Now           string            `json:"now,omitempty" yaml:"now,omitempty"`
	GrowthLogs    []growthLogDoc    `json:"growth_logs" yaml:"growth_logs" validate:"dive"`
	NutritionLogs []nutritionLogDoc `json:"nutrition_logs,omitempty" yaml:"nutrition_logs,omitempty" validate:"dive"`
}

// scheduleDoc is the input of the reminders command.
type scheduleDoc struct {
	Medication string   `json:"medication,omitempty" yaml:"medication,omitempty"`
	TimesOfDay []string `json:"times_of_day" yaml:"times_of_day" validate:"required,min=1"`
	StartDate  string   `json:"start_date" yaml:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate    string   `json:"end_date" yaml:"end_date" validate:"required,datetime=2006-01-02"`
	Timezone   string   `json:"timezone,omitempty" yaml:"timezone,omitempty"`
}

// readDocument decodes and validates the file at path. The format follows
// the file extension; "-" reads JSON from stdin.
func readDocument(path string, stdin io.Reader, v any) error {
	var (
		data []byte
		err  error
		ext  string
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
		ext = ".json"
	} else {
		data, err = os.ReadFile(path)
		ext = strings.ToLower(filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	switch ext {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(v)
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(v)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}

	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}
	return nil
}

func parseDate(field, s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, domain.NewValidationError(field, "must use YYYY-MM-DD format", domain.ErrInvalidDate)
	}
	return t, nil
}

// toInput converts the document into engine input.
func (d forecastDoc) toInput() (service.ForecastInput, error) {
	birthDate, err := parseDate("birth_date", d.BirthDate)
	if err != nil {
		return service.ForecastInput{}, err
	}

	in := service.ForecastInput{
		BirthDate:     birthDate,
		Months:        d.Months,
		GrowthLogs:    make([]domain.GrowthLog, 0, len(d.GrowthLogs)),
		NutritionLogs: make([]domain.NutritionLog, 0, len(d.NutritionLogs)),
	}
	if d.Now != "" {
		if in.Now, err = time.Parse(time.RFC3339, d.Now); err != nil {
			return service.ForecastInput{}, domain.NewValidationError("now", "must be an RFC 3339 timestamp", domain.ErrInvalidDate)
		}
	}

	for _, g := range d.GrowthLogs {
		date, err := parseDate("date", g.Date)
		if err != nil {
			return service.ForecastInput{}, err
		}
		in.GrowthLogs = append(in.GrowthLogs, domain.GrowthLog{
			Date: date, WeightKg: g.WeightKg, HeightCm: g.HeightCm, HeadCm: g.HeadCm,
		})
	}
	for _, n := range d.NutritionLogs {
		date, err := parseDate("date", n.Date)
		if err != nil {
			return service.ForecastInput{}, err
		}
		in.NutritionLogs = append(in.NutritionLogs, domain.NutritionLog{
			LogDate: date, DailyNutrientIntake: n.Intake, Deficiencies: n.Deficiencies,
		})
	}
	return in, nil
}

// toSchedule converts the document into a schedule and its location.
// An empty timezone means UTC.
func (d scheduleDoc) toSchedule() (reminder.Schedule, *time.Location, error) {
	start, err := parseDate("start_date", d.StartDate)
	if err != nil {
		return reminder.Schedule{}, nil, err
	}
	end, err := parseDate("end_date", d.EndDate)
	if err != nil {
		return reminder.Schedule{}, nil, err
	}

	loc := time.UTC
	if d.Timezone != "" {
		if loc, err = time.LoadLocation(d.Timezone); err != nil {
			return reminder.Schedule{}, nil, fmt.Errorf("unknown timezone %q: %w", d.Timezone, err)
		}
	}

	return reminder.Schedule{
		Medication: d.Medication,
		TimesOfDay: d.TimesOfDay,
		StartDate:  start,
		EndDate:    end,
	}, loc, nil
}

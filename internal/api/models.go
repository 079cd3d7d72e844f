package api

import (
	"time"

	"github.com/phrazzld/growthcast-api/internal/domain"
	"github.com/phrazzld/growthcast-api/internal/domain/growth"
	"github.com/phrazzld/growthcast-api/internal/service"
)

// dateLayout is the wire format of calendar dates.
const dateLayout = "2006-01-02"

// CreateChildRequest defines the payload for registering a child.
type CreateChildRequest struct {
	Name      string `json:"name"       validate:"required,max=200"`
	BirthDate string `json:"birth_date" validate:"required,datetime=2006-01-02"`
}

// ChildResponse is the API representation of a child.
type ChildResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	BirthDate string    `json:"birth_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GrowthLogRequest is one measurement. Omitted or zero values mean the
// measurement was not taken.
type GrowthLogRequest struct {
	Date     string  `json:"date"      validate:"required,datetime=2006-01-02"`
	WeightKg float64 `json:"weight_kg" validate:"gte=0,lte=60"`
	HeightCm float64 `json:"height_cm" validate:"gte=0,lte=200"`
	HeadCm   float64 `json:"head_cm"   validate:"gte=0,lte=70"`
}

// GrowthLogResponse is the API representation of a growth log. Age and
// percentiles are present when listing a child's logs.
type GrowthLogResponse struct {
	ID          string              `json:"id"`
	ChildID     string              `json:"child_id"`
	Date        string              `json:"date"`
	WeightKg    float64             `json:"weight_kg"`
	HeightCm    float64             `json:"height_cm"`
	HeadCm      float64             `json:"head_cm"`
	AgeMonths   *int                `json:"age_months,omitempty"`
	Percentiles *growth.Percentiles `json:"percentiles,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
}

// NutrientIntakeRequest is the reported daily intake.
type NutrientIntakeRequest struct {
	Calories float64 `json:"calories"  validate:"gte=0"`
	Protein  float64 `json:"protein"   validate:"gte=0"`
	Calcium  float64 `json:"calcium"   validate:"gte=0"`
	Iron     float64 `json:"iron"      validate:"gte=0"`
	VitaminD float64 `json:"vitamin_d" validate:"gte=0"`
}

// NutritionLogRequest is one day of nutrition data.
type NutritionLogRequest struct {
	Date         string                 `json:"date"                            validate:"required,datetime=2006-01-02"`
	Intake       *NutrientIntakeRequest `json:"daily_nutrient_intake,omitempty" validate:"omitempty"`
	Deficiencies []string               `json:"deficiencies,omitempty"          validate:"max=20,dive,required,max=64"`
}

// NutritionLogResponse is the API representation of a nutrition log.
type NutritionLogResponse struct {
	ID           string                 `json:"id"`
	ChildID      string                 `json:"child_id"`
	Date         string                 `json:"date"`
	Intake       *domain.NutrientIntake `json:"daily_nutrient_intake,omitempty"`
	Deficiencies []string               `json:"deficiencies"`
	CreatedAt    time.Time              `json:"created_at"`
}

// PredictionRequest is a self-contained forecast request.
type PredictionRequest struct {
	BirthDate     string                `json:"birth_date"               validate:"required,datetime=2006-01-02"`
	Months        *int                  `json:"months,omitempty"`
	Now           string                `json:"now,omitempty"            validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	GrowthLogs    []GrowthLogRequest    `json:"growth_logs"              validate:"max=500,dive"`
	NutritionLogs []NutritionLogRequest `json:"nutrition_logs,omitempty" validate:"max=500,dive"`
}

// ReferenceResponse is the reference standard for one age.
type ReferenceResponse struct {
	AgeMonths int `json:"age_months"`
	growth.ReferenceStandard
}

// ExpandRemindersRequest describes a medication schedule to expand.
type ExpandRemindersRequest struct {
	Medication string   `json:"medication,omitempty"`
	TimesOfDay []string `json:"times_of_day"         validate:"required,min=1,max=24,dive,required"`
	StartDate  string   `json:"start_date"           validate:"required,datetime=2006-01-02"`
	EndDate    string   `json:"end_date"             validate:"required,datetime=2006-01-02"`
	Timezone   string   `json:"timezone,omitempty"   validate:"omitempty,timezone"`
}

// ExpandRemindersResponse lists the expanded reminders.
type ExpandRemindersResponse struct {
	Medication  string      `json:"medication,omitempty"`
	Timezone    string      `json:"timezone"`
	Count       int         `json:"count"`
	Occurrences []time.Time `json:"occurrences"`
}

func childToResponse(c *domain.Child) ChildResponse {
	return ChildResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		BirthDate: c.BirthDate.Format(dateLayout),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func growthLogToResponse(g *domain.GrowthLog) GrowthLogResponse {
	return GrowthLogResponse{
		ID:        g.ID.String(),
		ChildID:   g.ChildID.String(),
		Date:      g.Date.Format(dateLayout),
		WeightKg:  g.WeightKg,
		HeightCm:  g.HeightCm,
		HeadCm:    g.HeadCm,
		CreatedAt: g.CreatedAt,
	}
}

func measuredGrowthLogToResponse(m service.MeasuredGrowthLog) GrowthLogResponse {
	resp := growthLogToResponse(&m.GrowthLog)
	age := m.AgeMonths
	percentiles := m.Percentiles
	resp.AgeMonths = &age
	resp.Percentiles = &percentiles
	return resp
}

func nutritionLogToResponse(n *domain.NutritionLog) NutritionLogResponse {
	deficiencies := n.Deficiencies
	if deficiencies == nil {
		deficiencies = []string{}
	}
	return NutritionLogResponse{
		ID:           n.ID.String(),
		ChildID:      n.ChildID.String(),
		Date:         n.LogDate.Format(dateLayout),
		Intake:       n.DailyNutrientIntake,
		Deficiencies: deficiencies,
		CreatedAt:    n.CreatedAt,
	}
}

func (r *NutrientIntakeRequest) toDomain() *domain.NutrientIntake {
	if r == nil {
		return nil
	}
	return &domain.NutrientIntake{
		Calories: r.Calories,
		Protein:  r.Protein,
		Calcium:  r.Calcium,
		Iron:     r.Iron,
		VitaminD: r.VitaminD,
	}
}

func (r GrowthLogRequest) toInput() (service.GrowthLogInput, error) {
	date, err := parseDate(r.Date)
	if err != nil {
		return service.GrowthLogInput{}, err
	}
	return service.GrowthLogInput{Date: date, WeightKg: r.WeightKg, HeightCm: r.HeightCm, HeadCm: r.HeadCm}, nil
}

func (r NutritionLogRequest) toInput() (service.NutritionLogInput, error) {
	date, err := parseDate(r.Date)
	if err != nil {
		return service.NutritionLogInput{}, err
	}
	return service.NutritionLogInput{Date: date, Intake: r.Intake.toDomain(), Deficiencies: r.Deficiencies}, nil
}

// toInput converts the request into engine input. Logs carry no IDs since
// they are never stored.
func (r PredictionRequest) toInput() (service.ForecastInput, error) {
	birthDate, err := parseDate(r.BirthDate)
	if err != nil {
		return service.ForecastInput{}, err
	}

	months, err := requestedMonths(r.Months)
	if err != nil {
		return service.ForecastInput{}, err
	}

	in := service.ForecastInput{
		BirthDate:     birthDate,
		Months:        months,
		GrowthLogs:    make([]domain.GrowthLog, 0, len(r.GrowthLogs)),
		NutritionLogs: make([]domain.NutritionLog, 0, len(r.NutritionLogs)),
	}
	if r.Now != "" {
		if in.Now, err = time.Parse(time.RFC3339, r.Now); err != nil {
			return service.ForecastInput{}, domain.NewValidationError("now", "has invalid format", domain.ErrInvalidDate)
		}
	}

	for _, g := range r.GrowthLogs {
		gi, err := g.toInput()
		if err != nil {
			return service.ForecastInput{}, err
		}
		if gi.WeightKg == 0 && gi.HeightCm == 0 && gi.HeadCm == 0 {
			return service.ForecastInput{}, domain.ErrGrowthLogNoMeasurements
		}
		in.GrowthLogs = append(in.GrowthLogs, domain.GrowthLog{
			Date: gi.Date, WeightKg: gi.WeightKg, HeightCm: gi.HeightCm, HeadCm: gi.HeadCm,
		})
	}
	for _, n := range r.NutritionLogs {
		ni, err := n.toInput()
		if err != nil {
			return service.ForecastInput{}, err
		}
		in.NutritionLogs = append(in.NutritionLogs, domain.NutritionLog{
			LogDate: ni.Date, DailyNutrientIntake: ni.Intake, Deficiencies: ni.Deficiencies,
		})
	}
	return in, nil
}

// requestedMonths maps an absent horizon to zero, which selects the default.
// An explicit value below one is out of range.
func requestedMonths(months *int) (int, error) {
	if months == nil {
		return 0, nil
	}
	if *months < 1 {
		return 0, service.ErrInvalidMonths
	}
	return *months, nil
}

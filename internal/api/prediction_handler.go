package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/growthcast-api/internal/api/shared"
	"github.com/phrazzld/growthcast-api/internal/domain"
	"github.com/phrazzld/growthcast-api/internal/domain/growth"
	"github.com/phrazzld/growthcast-api/internal/platform/logger"
	"github.com/phrazzld/growthcast-api/internal/service"
)

// PredictionHandler serves growth forecasts and reference standards.
type PredictionHandler struct {
	predictions service.PredictionService
	forecaster  *service.Forecaster
	logger      *slog.Logger
}

// NewPredictionHandler creates a new PredictionHandler
func NewPredictionHandler(
	predictions service.PredictionService,
	forecaster *service.Forecaster,
	logger *slog.Logger,
) *PredictionHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for PredictionHandler")
	}

	return &PredictionHandler{
		predictions: predictions,
		forecaster:  forecaster,
		logger:      logger.With(slog.String("component", "prediction_handler")),
	}
}

// PredictForChild handles GET /api/children/{id}/predictions requests.
// The optional months query parameter selects the horizon.
func (h *PredictionHandler) PredictForChild(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	childID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	var months int
	if r.URL.Query().Has("months") {
		n, err := getQueryInt(r, "months", 0)
		if err != nil {
			HandleAPIError(w, r, err, "Months must be an integer")
			return
		}
		if months, err = requestedMonths(&n); err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
	}

	forecast, err := h.predictions.PredictForChild(r.Context(), childID, months)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("forecast generated",
		slog.String("child_id", childID.String()),
		slog.Int("months", forecast.Months))
	shared.RespondWithCachedJSON(w, r, forecast)
}

// PredictStateless handles POST /api/predictions requests. The request body
// carries every record the forecast needs and nothing is stored.
func (h *PredictionHandler) PredictStateless(w http.ResponseWriter, r *http.Request) {
	var req PredictionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	in, err := req.toInput()
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	forecast, err := h.forecaster.Forecast(r.Context(), in)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithCachedJSON(w, r, forecast)
}

// GetReference handles GET /api/reference?age=N requests. Ages past the end
// of the reference table report the last age bucket.
func (h *PredictionHandler) GetReference(w http.ResponseWriter, r *http.Request) {
	age, err := getQueryInt(r, "age", -1)
	if err != nil {
		HandleAPIError(w, r, err, "Age must be an integer")
		return
	}
	if age < 0 {
		HandleAPIError(w, r,
			domain.NewValidationError("age", "must be a non-negative number of months", domain.ErrValidation),
			"Age must be a non-negative number of months")
		return
	}

	age = min(age, growth.MaxReferenceAgeMonths)
	shared.RespondWithCachedJSON(w, r, ReferenceResponse{
		AgeMonths:         age,
		ReferenceStandard: growth.LookupStandard(age),
	})
}

package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/growthcast-api/internal/api/shared"
	"github.com/phrazzld/growthcast-api/internal/platform/logger"
	"github.com/phrazzld/growthcast-api/internal/service"
)

// ChildHandler handles requests for children and their recorded growth and
// nutrition logs.
type ChildHandler struct {
	children service.ChildService
	records  service.RecordService
	logger   *slog.Logger
}

// NewChildHandler creates a new ChildHandler
func NewChildHandler(children service.ChildService, records service.RecordService, logger *slog.Logger) *ChildHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ChildHandler")
	}

	return &ChildHandler{
		children: children,
		records:  records,
		logger:   logger.With(slog.String("component", "child_handler")),
	}
}

// CreateChild handles POST /api/children requests.
func (h *ChildHandler) CreateChild(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateChildRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	birthDate, err := parseDate(req.BirthDate)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	child, err := h.children.CreateChild(r.Context(), req.Name, birthDate)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("child created", slog.String("child_id", child.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, childToResponse(child))
}

// GetChild handles GET /api/children/{id} requests.
func (h *ChildHandler) GetChild(w http.ResponseWriter, r *http.Request) {
	childID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	child, err := h.children.GetChild(r.Context(), childID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithCachedJSON(w, r, childToResponse(child))
}

// RecordGrowthLog handles POST /api/children/{id}/growth-logs requests.
func (h *ChildHandler) RecordGrowthLog(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	childID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req GrowthLogRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	in, err := req.toInput()
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	growthLog, err := h.records.RecordGrowthLog(r.Context(), childID, in)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("growth log recorded",
		slog.String("child_id", childID.String()),
		slog.String("growth_log_id", growthLog.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, growthLogToResponse(growthLog))
}

// ListGrowthLogs handles GET /api/children/{id}/growth-logs requests.
// Every log carries the child's age and percentiles at the log date.
func (h *ChildHandler) ListGrowthLogs(w http.ResponseWriter, r *http.Request) {
	childID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	logs, err := h.records.ListGrowthLogs(r.Context(), childID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	resp := make([]GrowthLogResponse, 0, len(logs))
	for _, l := range logs {
		resp = append(resp, measuredGrowthLogToResponse(l))
	}
	shared.RespondWithCachedJSON(w, r, resp)
}

// RecordNutritionLog handles POST /api/children/{id}/nutrition-logs requests.
func (h *ChildHandler) RecordNutritionLog(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	childID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req NutritionLogRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	in, err := req.toInput()
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	nutritionLog, err := h.records.RecordNutritionLog(r.Context(), childID, in)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("nutrition log recorded",
		slog.String("child_id", childID.String()),
		slog.String("nutrition_log_id", nutritionLog.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, nutritionLogToResponse(nutritionLog))
}

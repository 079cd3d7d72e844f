package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/growthcast-api/internal/api/shared"
	"github.com/phrazzld/growthcast-api/internal/domain"
	"github.com/phrazzld/growthcast-api/internal/domain/reminder"
	"github.com/phrazzld/growthcast-api/internal/platform/logger"
)

// MaxReminderDays bounds the number of calendar days a single expansion
// request may cover.
const MaxReminderDays = 366

// ReminderHandler expands medication schedules.
type ReminderHandler struct {
	logger *slog.Logger
}

// NewReminderHandler creates a new ReminderHandler
func NewReminderHandler(logger *slog.Logger) *ReminderHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ReminderHandler")
	}
	return &ReminderHandler{logger: logger.With(slog.String("component", "reminder_handler"))}
}

// ExpandReminders handles POST /api/reminders/expand requests.
func (h *ReminderHandler) ExpandReminders(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req ExpandRemindersRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if end.Sub(start) >= MaxReminderDays*24*time.Hour {
		HandleAPIError(w, r,
			domain.NewValidationError("end_date", "range is too long", domain.ErrValidation),
			"Schedule cannot span more than 366 days")
		return
	}

	loc := time.UTC
	if req.Timezone != "" {
		if loc, err = time.LoadLocation(req.Timezone); err != nil {
			HandleAPIError(w, r,
				domain.NewValidationError("timezone", "is unknown", domain.ErrValidation),
				"Invalid timezone: unknown time zone")
			return
		}
	}

	schedule := reminder.Schedule{
		Medication: req.Medication,
		TimesOfDay: req.TimesOfDay,
		StartDate:  start,
		EndDate:    end,
	}
	occurrences, err := reminder.Expand(schedule, loc)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("reminders expanded", slog.Int("count", len(occurrences)))
	shared.RespondWithJSON(w, r, http.StatusOK, ExpandRemindersResponse{
		Medication:  req.Medication,
		Timezone:    loc.String(),
		Count:       len(occurrences),
		Occurrences: occurrences,
	})
}

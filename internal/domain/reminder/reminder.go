// Package reminder expands compact medication schedules into concrete
// reminder timestamps.
package reminder

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// Common errors returned by schedule expansion.
var (
	ErrEmptySchedule    = errors.New("schedule has no times of day")
	ErrInvalidTimeOfDay = errors.New("invalid time of day, expected HH:MM")
	ErrInvalidRange     = errors.New("schedule end date is before start date")
)

// timeOfDayLayout is the accepted format of Schedule.TimesOfDay entries.
const timeOfDayLayout = "15:04"

// Schedule describes a daily medication plan. StartDate and EndDate are
// calendar days; only their year, month and day are used.
type Schedule struct {
	Medication string    `json:"medication,omitempty" yaml:"medication,omitempty"`
	TimesOfDay []string  `json:"times_of_day" yaml:"times_of_day" validate:"required,min=1,dive,required"`
	StartDate  time.Time `json:"start_date" yaml:"start_date" validate:"required"`
	EndDate    time.Time `json:"end_date" yaml:"end_date" validate:"required"`
}

type clock struct {
	hour, minute int
}

func parseTimesOfDay(values []string) ([]clock, error) {
	if len(values) == 0 {
		return nil, ErrEmptySchedule
	}

	clocks := make([]clock, 0, len(values))
	for _, v := range values {
		t, err := time.Parse(timeOfDayLayout, v)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, v)
		}
		clocks = append(clocks, clock{hour: t.Hour(), minute: t.Minute()})
	}
	return clocks, nil
}

// Expand returns every reminder of the schedule in loc: one timestamp per
// time of day for each calendar day from StartDate to EndDate inclusive.
// The result is sorted and free of duplicates. A nil loc means UTC.
func Expand(s Schedule, loc *time.Location) ([]time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}

	clocks, err := parseTimesOfDay(s.TimesOfDay)
	if err != nil {
		return nil, err
	}

	sy, sm, sd := s.StartDate.Date()
	ey, em, ed := s.EndDate.Date()
	start := time.Date(sy, sm, sd, 0, 0, 0, 0, time.UTC)
	end := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)
	if end.Before(start) {
		return nil, ErrInvalidRange
	}

	seen := make(map[int64]struct{})
	reminders := make([]time.Time, 0)
	for i := 0; ; i++ {
		day := start.AddDate(0, 0, i)
		if day.After(end) {
			break
		}
		y, m, d := day.Date()
		for _, c := range clocks {
			at := time.Date(y, m, d, c.hour, c.minute, 0, 0, loc)
			key := at.UnixNano()
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			reminders = append(reminders, at)
		}
	}

	sort.Slice(reminders, func(i, j int) bool {
		return reminders[i].Before(reminders[j])
	})
	return reminders, nil
}

// Next returns the first reminder strictly after the given instant. The
// boolean is false when the schedule has no later reminder.
func Next(s Schedule, after time.Time, loc *time.Location) (time.Time, bool, error) {
	reminders, err := Expand(s, loc)
	if err != nil {
		return time.Time{}, false, err
	}

	i := sort.Search(len(reminders), func(i int) bool {
		return reminders[i].After(after)
	})
	if i == len(reminders) {
		return time.Time{}, false, nil
	}
	return reminders[i], true, nil
}

package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExpand(t *testing.T) {
	t.Parallel()

	s := Schedule{
		TimesOfDay: []string{"20:00", "08:00"},
		StartDate:  date(2024, 5, 1),
		EndDate:    date(2024, 5, 3),
	}

	got, err := Expand(s, time.UTC)
	require.NoError(t, err)

	expected := []time.Time{
		time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 2, 8, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 2, 20, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 3, 8, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 3, 20, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, expected, got)
}

func TestExpandDeduplicatesTimes(t *testing.T) {
	t.Parallel()

	s := Schedule{
		TimesOfDay: []string{"09:30", "09:30"},
		StartDate:  date(2024, 5, 1),
		EndDate:    date(2024, 5, 1),
	}

	got, err := Expand(s, nil)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)}, got)
}

func TestExpandCrossesMonthBoundary(t *testing.T) {
	t.Parallel()

	s := Schedule{
		TimesOfDay: []string{"12:00"},
		StartDate:  date(2024, 2, 28),
		EndDate:    date(2024, 3, 1),
	}

	got, err := Expand(s, time.UTC)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, 29, got[1].Day(), "leap day is included")
	assert.Equal(t, time.March, got[2].Month())
}

func TestExpandKeepsWallClockAcrossDST(t *testing.T) {
	t.Parallel()

	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("time zone data unavailable: %v", err)
	}

	// DST starts on 2024-03-10 in New York
	s := Schedule{
		TimesOfDay: []string{"08:00"},
		StartDate:  date(2024, 3, 9),
		EndDate:    date(2024, 3, 11),
	}

	got, err := Expand(s, loc)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for _, r := range got {
		assert.Equal(t, 8, r.Hour())
		assert.Equal(t, loc, r.Location())
	}
	assert.Equal(t, 23*time.Hour, got[1].Sub(got[0]))
}

func TestExpandErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		schedule Schedule
		expected error
	}{
		{
			name:     "no times of day",
			schedule: Schedule{StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 2)},
			expected: ErrEmptySchedule,
		},
		{
			name:     "malformed time",
			schedule: Schedule{TimesOfDay: []string{"8am"}, StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 2)},
			expected: ErrInvalidTimeOfDay,
		},
		{
			name:     "hour out of range",
			schedule: Schedule{TimesOfDay: []string{"24:00"}, StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 2)},
			expected: ErrInvalidTimeOfDay,
		},
		{
			name:     "end before start",
			schedule: Schedule{TimesOfDay: []string{"08:00"}, StartDate: date(2024, 1, 2), EndDate: date(2024, 1, 1)},
			expected: ErrInvalidRange,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Expand(tc.schedule, time.UTC)
			assert.ErrorIs(t, err, tc.expected)
		})
	}
}

func TestNext(t *testing.T) {
	t.Parallel()

	s := Schedule{
		TimesOfDay: []string{"08:00", "20:00"},
		StartDate:  date(2024, 5, 1),
		EndDate:    date(2024, 5, 2),
	}

	next, ok, err := Next(s, time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC), time.UTC)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC), next, "occurrence must be strictly after")

	next, ok, err = Next(s, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), time.UTC)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC), next)

	_, ok, err = Next(s, time.Date(2024, 5, 2, 20, 0, 0, 0, time.UTC), time.UTC)
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = Next(Schedule{}, time.Now(), time.UTC)
	assert.ErrorIs(t, err, ErrEmptySchedule)
}

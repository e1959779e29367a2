package scheduler_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvf-mortara/turni-manager/backend/internal/scheduler"
)

func TestActiveDatesFiltersWeekdaysAndMonths(t *testing.T) {
	dates := scheduler.ActiveDates(2025, []int{5}, []int{1})

	require.Len(t, dates, 4)
	expected := []time.Time{date(2025, 1, 4), date(2025, 1, 11), date(2025, 1, 18), date(2025, 1, 25)}
	assert.Equal(t, expected, dates)
}

func TestActiveDatesChronologicalFullYear(t *testing.T) {
	dates := scheduler.ActiveDates(2025, []int{4, 5, 6}, nil)

	require.NotEmpty(t, dates)
	for i := 1; i < len(dates); i++ {
		assert.True(t, dates[i-1].Before(dates[i]))
	}
	for _, d := range dates {
		switch d.Weekday() {
		case time.Friday, time.Saturday, time.Sunday:
		default:
			t.Fatalf("giorno inatteso %s (%s)", d.Format("2006-01-02"), d.Weekday())
		}
		assert.Equal(t, 2025, d.Year())
	}
}

func TestActiveDatesEmptyWeekdaysFallsBackToDefault(t *testing.T) {
	withDefault := scheduler.ActiveDates(2025, nil, nil)
	explicit := scheduler.ActiveDates(2025, []int{4, 5, 6}, nil)

	assert.Equal(t, explicit, withDefault)
}

func TestActiveDatesIgnoresOutOfRangeValues(t *testing.T) {
	dates := scheduler.ActiveDates(2025, []int{5, -1, 9}, []int{2, 0, 13})

	require.NotEmpty(t, dates)
	for _, d := range dates {
		assert.Equal(t, time.Saturday, d.Weekday())
		assert.Equal(t, time.February, d.Month())
	}
}

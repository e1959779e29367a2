package scheduler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvf-mortara/turni-manager/backend/internal/scheduler"
)

func TestLoadTrackerRecordUpdatesAllGranularities(t *testing.T) {
	tracker := scheduler.NewLoadTracker()
	tracker.Ensure("Rossi")

	saturday := date(2025, 1, 4) // sabato, settimana ISO 1
	tracker.Record("Rossi", saturday)
	tracker.Record("Rossi", date(2025, 1, 11))
	tracker.Record("Rossi", date(2025, 2, 1))

	assert.Equal(t, 3, tracker.Annual("Rossi"))
	assert.Equal(t, 2, tracker.Month("Rossi", 1))
	assert.Equal(t, 1, tracker.Month("Rossi", 2))
	assert.Equal(t, 2, tracker.MonthWeekday("Rossi", 1, 5))
	assert.Equal(t, 3, tracker.Weekday("Rossi", 5))
	assert.Equal(t, 1, tracker.Week("Rossi", scheduler.WeekKey{Year: 2025, Week: 1}))
	assert.Equal(t, 1, tracker.Week("Rossi", scheduler.WeekKey{Year: 2025, Week: 2}))

	last, ok := tracker.LastWeekday("Rossi")
	require.True(t, ok)
	assert.Equal(t, 5, last)
}

func TestLoadTrackerUnknownPersonIsZero(t *testing.T) {
	tracker := scheduler.NewLoadTracker()

	assert.Equal(t, 0, tracker.Annual("Verdi"))
	assert.Equal(t, 0, tracker.Week("Verdi", scheduler.WeekKey{Year: 2025, Week: 10}))

	_, ok := tracker.LastWeekday("Verdi")
	assert.False(t, ok)
}

func TestLoadTrackerWeekKeySpansYearBoundary(t *testing.T) {
	tracker := scheduler.NewLoadTracker()

	// Il 1° gennaio 2027 (venerdì) appartiene alla settimana ISO 53 del 2026.
	tracker.Record("Rossi", date(2027, 1, 1))

	assert.Equal(t, 1, tracker.Week("Rossi", scheduler.WeekKey{Year: 2026, Week: 53}))
	assert.Equal(t, 0, tracker.Week("Rossi", scheduler.WeekKey{Year: 2027, Week: 1}))
}

package challenge

import (
	"testing"
	"time"

	"github.com/amoltdhage/FitChallengeBackend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeDayStatuses_FirstDay(t *testing.T) {
	start := date(2025, 9, 5)
	views := ComputeDayStatuses(start, start, 21, nil)

	require.Len(t, views, 21)
	assert.Equal(t, StatusActive, views[0].Status)
	for _, v := range views[1:] {
		assert.Equal(t, StatusFuture, v.Status, "day %d", v.DayNumber)
	}
}

func TestComputeDayStatuses_OrderingAndDates(t *testing.T) {
	start := date(2025, 9, 5)
	views := ComputeDayStatuses(start, start, 21, nil)

	require.Len(t, views, 21)
	for i, v := range views {
		assert.Equal(t, i+1, v.DayNumber)
		assert.Equal(t, start.AddDate(0, 0, i), v.ScheduledDate)
		if i > 0 {
			assert.True(t, v.ScheduledDate.After(views[i-1].ScheduledDate))
		}
	}
}

func TestComputeDayStatuses_MidProgram(t *testing.T) {
	start := date(2025, 9, 5)
	today := date(2025, 9, 7)
	records := []models.ActivityRecord{
		{ID: 1, DayNumber: 1, IsCompleted: true, UpdatedAt: today},
	}

	views := ComputeDayStatuses(today, start, 21, records)

	require.Len(t, views, 21)
	assert.Equal(t, StatusCompleted, views[0].Status)
	assert.Equal(t, StatusMissed, views[1].Status)
	assert.Equal(t, StatusActive, views[2].Status)
	for _, v := range views[3:] {
		assert.Equal(t, StatusFuture, v.Status, "day %d", v.DayNumber)
	}
}

func TestComputeDayStatuses_CompletedBeatsDate(t *testing.T) {
	start := date(2025, 9, 5)
	today := date(2025, 9, 20)
	records := []models.ActivityRecord{
		// день в прошлом и день в будущем, оба с отметкой о выполнении
		{ID: 1, DayNumber: 2, IsCompleted: true},
		{ID: 2, DayNumber: 21, IsCompleted: true},
	}

	views := ComputeDayStatuses(today, start, 21, records)

	assert.Equal(t, StatusCompleted, views[1].Status)
	assert.Equal(t, StatusCompleted, views[20].Status)
}

func TestComputeDayStatuses_IncompleteRecordIsNotCompleted(t *testing.T) {
	start := date(2025, 9, 5)
	records := []models.ActivityRecord{
		{ID: 1, DayNumber: 1, IsCompleted: false},
	}

	views := ComputeDayStatuses(date(2025, 9, 6), start, 21, records)

	assert.Equal(t, StatusMissed, views[0].Status)
}

func TestComputeDayStatuses_TimeOfDayIgnored(t *testing.T) {
	start := time.Date(2025, 9, 5, 23, 59, 59, 0, time.UTC)
	today := time.Date(2025, 9, 5, 0, 0, 1, 0, time.UTC)

	views := ComputeDayStatuses(today, start, 21, nil)

	assert.Equal(t, StatusActive, views[0].Status)
	assert.Equal(t, date(2025, 9, 5), views[0].ScheduledDate)
}

func TestComputeDayStatuses_StartInFuture(t *testing.T) {
	views := ComputeDayStatuses(date(2025, 9, 1), date(2025, 9, 10), 21, nil)

	require.Len(t, views, 21)
	for _, v := range views {
		assert.Equal(t, StatusFuture, v.Status, "day %d", v.DayNumber)
	}
}

func TestComputeDayStatuses_ZeroDays(t *testing.T) {
	assert.Empty(t, ComputeDayStatuses(date(2025, 9, 5), date(2025, 9, 5), 0, nil))
	assert.Empty(t, ComputeDayStatuses(date(2025, 9, 5), date(2025, 9, 5), -3, nil))
}

func TestComputeDayStatuses_OutOfRangeRecordIgnored(t *testing.T) {
	start := date(2025, 9, 5)
	records := []models.ActivityRecord{
		{ID: 1, DayNumber: 0, IsCompleted: true},
		{ID: 2, DayNumber: 22, IsCompleted: true},
		{ID: 3, DayNumber: -5, IsCompleted: true},
	}

	views := ComputeDayStatuses(start, start, 21, records)

	require.Len(t, views, 21)
	for _, v := range views {
		assert.NotEqual(t, StatusCompleted, v.Status, "day %d", v.DayNumber)
	}
}

func TestComputeDayStatuses_DuplicateLatestUpdateWins(t *testing.T) {
	start := date(2025, 9, 5)
	older := date(2025, 9, 6)
	newer := date(2025, 9, 7)

	records := []models.ActivityRecord{
		{ID: 1, DayNumber: 1, IsCompleted: true, UpdatedAt: older},
		{ID: 2, DayNumber: 1, IsCompleted: false, UpdatedAt: newer},
	}
	views := ComputeDayStatuses(newer, start, 21, records)
	assert.Equal(t, StatusMissed, views[0].Status, "newer incomplete record must win")

	// при равных UpdatedAt побеждает больший ID
	records = []models.ActivityRecord{
		{ID: 1, DayNumber: 1, IsCompleted: false, UpdatedAt: older},
		{ID: 2, DayNumber: 1, IsCompleted: true, UpdatedAt: older},
	}
	views = ComputeDayStatuses(newer, start, 21, records)
	assert.Equal(t, StatusCompleted, views[0].Status)
}

func TestCountByStatus(t *testing.T) {
	start := date(2025, 9, 5)
	today := date(2025, 9, 7)
	records := []models.ActivityRecord{
		{ID: 1, DayNumber: 1, IsCompleted: true},
	}

	counts := CountByStatus(ComputeDayStatuses(today, start, 21, records))

	assert.Equal(t, 1, counts["completed"])
	assert.Equal(t, 1, counts["missed"])
	assert.Equal(t, 1, counts["active"])
	assert.Equal(t, 18, counts["future"])
	assert.Equal(t, 0, counts["locked"])
}

func TestMidnight(t *testing.T) {
	ts := time.Date(2025, 9, 5, 18, 30, 45, 123, time.FixedZone("IST", 5*3600+1800))
	got := Midnight(ts)

	assert.Equal(t, time.UTC, got.Location())
	assert.Equal(t, 0, got.Hour())
	assert.Equal(t, date(2025, 9, 5), got)
}

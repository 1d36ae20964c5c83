package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/expert-scheduler/internal/httperr"
	"github.com/BruksfildServices01/expert-scheduler/internal/models"
)

const day = "2025-03-10"

func TestGenerateSlots_ExactFit(t *testing.T) {
	got := GenerateSlots([]Window{{Date: day, Start: "09:00", End: "11:00"}}, 30)

	assert.Equal(t, map[string][]string{
		day: {"09:00", "09:30", "10:00", "10:30"},
	}, got)
}

func TestGenerateSlots_RemainderDiscarded(t *testing.T) {
	got := GenerateSlots([]Window{{Date: day, Start: "09:00", End: "10:15"}}, 30)

	assert.Equal(t, []string{"09:00", "09:30"}, got[day])
}

func TestGenerateSlots_NonPositiveDuration(t *testing.T) {
	windows := []Window{{Date: day, Start: "09:00", End: "17:00"}}

	assert.Empty(t, GenerateSlots(windows, 0))
	assert.Empty(t, GenerateSlots(windows, -15))
}

func TestGenerateSlots_InvertedOrEmptyWindow(t *testing.T) {
	got := GenerateSlots([]Window{
		{Date: day, Start: "11:00", End: "09:00"},
		{Date: day, Start: "10:00", End: "10:00"},
		{Date: "not-a-date", Start: "09:00", End: "10:00"},
		{Date: day, Start: "9am", End: "10:00"},
	}, 30)

	assert.Empty(t, got)
}

func TestGenerateSlots_DurationLongerThanWindow(t *testing.T) {
	got := GenerateSlots([]Window{{Date: day, Start: "09:00", End: "09:45"}}, 60)
	assert.Empty(t, got[day])
}

func TestGenerateSlots_MultipleWindowsSameDate(t *testing.T) {
	got := GenerateSlots([]Window{
		{Date: day, Start: "14:00", End: "15:00"},
		{Date: day, Start: "09:00", End: "10:00"},
		{Date: "2025-03-11", Start: "08:00", End: "08:45"},
	}, 30)

	assert.Equal(t, []string{"09:00", "09:30", "14:00", "14:30"}, got[day])
	assert.Equal(t, []string{"08:00"}, got["2025-03-11"])
}

func TestToDaySlots_SortedByDate(t *testing.T) {
	days := ToDaySlots(map[string][]string{
		"2025-03-12": {"10:00"},
		"2025-03-10": {"09:00"},
	})

	require.Len(t, days, 2)
	assert.Equal(t, "2025-03-10", days[0].Date)
	assert.Equal(t, "2025-03-12", days[1].Date)
}

func TestFilterBooked_RemovesOverlappingStarts(t *testing.T) {
	days := []DaySlots{{Date: day, Slots: []string{"09:00", "09:30", "10:00", "10:30"}}}
	busy := []Busy{{
		Start: time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC),
		End:   time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC),
	}}

	got := FilterBooked(days, busy, 30)

	assert.Equal(t, []string{"09:00", "10:00", "10:30"}, got[0].Slots)
}

func TestBusyFrom_SkipsCancelled(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	busy := BusyFrom([]models.Appointment{
		{StartTime: start, EndTime: start.Add(time.Hour), Status: "scheduled"},
		{StartTime: start, EndTime: start.Add(time.Hour), Status: "cancelled"},
		{StartTime: start, EndTime: start.Add(time.Hour), Status: "completed"},
	})

	assert.Len(t, busy, 2)
}

func TestToModels_Validates(t *testing.T) {
	rows, err := ToModels(7, []Input{{Date: day, StartTime: "09:00", EndTime: "12:00", Recurring: true}})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, uint(7), rows[0].ExpertID)
	assert.True(t, rows[0].Recurring)
	assert.Equal(t, []Window{{Date: day, Start: "09:00", End: "12:00"}}, WindowsFrom(rows))

	_, err = ToModels(7, []Input{
		{Date: day, StartTime: "09:00", EndTime: "10:00"},
		{Date: day, StartTime: "12:00", EndTime: "11:00"},
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_interval"))

	_, err = ToModels(7, []Input{{Date: "10/03/2025", StartTime: "09:00", EndTime: "10:00"}})
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))
}

func TestSlotStart(t *testing.T) {
	got, err := SlotStart(day, "14:30")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)))

	_, err = SlotStart(day, "25:00")
	assert.Error(t, err)
}

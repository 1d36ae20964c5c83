package availability

import (
	"time"

	"github.com/BruksfildServices01/expert-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/expert-scheduler/internal/models"
)

// Busy is an occupied interval, typically a live appointment.
type Busy struct {
	Start time.Time
	End   time.Time
}

// FilterBooked drops every slot whose [start, start+duration) overlaps one of
// the busy intervals. Days left without slots are kept with an empty list.
func FilterBooked(days []DaySlots, busy []Busy, durationMinutes int) []DaySlots {
	if len(busy) == 0 || durationMinutes <= 0 {
		return days
	}
	step := time.Duration(durationMinutes) * time.Minute

	out := make([]DaySlots, 0, len(days))
	for _, d := range days {
		kept := make([]string, 0, len(d.Slots))
		for _, hm := range d.Slots {
			start, err := SlotStart(d.Date, hm)
			if err != nil {
				continue
			}
			end := start.Add(step)

			free := true
			for _, b := range busy {
				if appointment.Overlaps(start, end, b.Start, b.End) {
					free = false
					break
				}
			}
			if free {
				kept = append(kept, hm)
			}
		}
		out = append(out, DaySlots{Date: d.Date, Slots: kept})
	}
	return out
}

// BusyFrom converts appointments into busy intervals, skipping cancelled ones.
func BusyFrom(aps []models.Appointment) []Busy {
	out := make([]Busy, 0, len(aps))
	for _, ap := range aps {
		if ap.Status == string(appointment.StatusCancelled) {
			continue
		}
		out = append(out, Busy{Start: ap.StartTime, End: ap.EndTime})
	}
	return out
}

package availability

import (
	"sort"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Window is one availability window: a calendar date plus wall-clock start
// and end, all interpreted in UTC.
type Window struct {
	Date  string
	Start string
	End   string
}

// DaySlots is the API shape of one day of bookable start times.
type DaySlots struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}

// GenerateSlots walks each window in steps of durationMinutes and returns the
// start times whose whole duration fits before the window end, keyed by date.
// A non-positive duration yields nothing, as does a window whose start is not
// before its end or that does not parse.
func GenerateSlots(windows []Window, durationMinutes int) map[string][]string {
	out := map[string][]string{}
	if durationMinutes <= 0 {
		return out
	}

	step := time.Duration(durationMinutes) * time.Minute
	starts := map[string][]time.Time{}

	for _, w := range windows {
		start, end, ok := w.bounds()
		if !ok || !start.Before(end) {
			continue
		}

		for cur := start; !cur.Add(step).After(end); cur = cur.Add(step) {
			starts[w.Date] = append(starts[w.Date], cur)
		}
	}

	for date, ts := range starts {
		sort.SliceStable(ts, func(i, j int) bool { return ts[i].Before(ts[j]) })
		slots := make([]string, 0, len(ts))
		for _, t := range ts {
			slots = append(slots, t.Format(TimeLayout))
		}
		out[date] = slots
	}

	return out
}

// ToDaySlots flattens a generated grid into date order.
func ToDaySlots(grid map[string][]string) []DaySlots {
	dates := make([]string, 0, len(grid))
	for d := range grid {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	out := make([]DaySlots, 0, len(dates))
	for _, d := range dates {
		out = append(out, DaySlots{Date: d, Slots: grid[d]})
	}
	return out
}

func (w Window) bounds() (time.Time, time.Time, bool) {
	day, err := time.ParseInLocation(DateLayout, w.Date, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	start, err := clockOn(day, w.Start)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	end, err := clockOn(day, w.End)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

func clockOn(day time.Time, hm string) (time.Time, error) {
	t, err := time.Parse(TimeLayout, hm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC), nil
}

// SlotStart combines a date and an "HH:mm" start into an absolute UTC time.
func SlotStart(date, hm string) (time.Time, error) {
	day, err := time.ParseInLocation(DateLayout, date, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return clockOn(day, hm)
}

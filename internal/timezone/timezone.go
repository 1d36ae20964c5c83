package timezone

import (
	"time"

	"github.com/BruksfildServices01/expert-scheduler/internal/httperr"
)

// All scheduling happens in UTC.
const (
	MonthLayout = "2006-01"
	DateLayout  = "2006-01-02"
	TimeLayout  = "15:04"
)

var nowFunc = time.Now

func Now() time.Time {
	return nowFunc().UTC()
}

// MonthRange parses "YYYY-MM" into the half-open range [first day, first
// day of the next month).
func MonthRange(month string) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(MonthLayout, month, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, httperr.Validation("invalid_month", "month must be YYYY-MM.")
	}
	return start, start.AddDate(0, 1, 0), nil
}

// ParseInstant accepts RFC 3339 and returns it normalised to UTC.
func ParseInstant(raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// ParseDateTime combines "YYYY-MM-DD" and "HH:mm" into a UTC instant.
func ParseDateTime(date, hm string) (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+TimeLayout, date+" "+hm, time.UTC)
}

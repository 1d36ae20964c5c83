package appointment

import (
	"time"

	"github.com/BruksfildServices01/expert-scheduler/internal/httperr"
)

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Touching endpoints do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// ValidateInterval requires a non-empty interval.
func ValidateInterval(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return httperr.Validation("missing_interval", "Start and end time are required.")
	}
	if !start.Before(end) {
		return httperr.Validation("invalid_interval", "Start time must be before end time.")
	}
	return nil
}

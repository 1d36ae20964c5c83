package availability

import (
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/BruksfildServices01/expert-scheduler/internal/httperr"
	"github.com/BruksfildServices01/expert-scheduler/internal/models"
)

// Input is one window as submitted by an expert.
type Input struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
	Recurring bool   `json:"recurring"`
}

// ToModels validates every input and converts the set into rows owned by
// expertID. The first invalid entry aborts the whole set.
func ToModels(expertID uint, in []Input) ([]models.Availability, error) {
	out := make([]models.Availability, 0, len(in))

	for i, a := range in {
		day, err := time.ParseInLocation(DateLayout, a.Date, time.UTC)
		if err != nil {
			return nil, httperr.Validation("invalid_date", fmt.Sprintf("availabilities[%d]: date must be YYYY-MM-DD.", i))
		}
		start, err := clockOn(day, a.StartTime)
		if err != nil {
			return nil, httperr.Validation("invalid_time", fmt.Sprintf("availabilities[%d]: startTime must be HH:mm.", i))
		}
		end, err := clockOn(day, a.EndTime)
		if err != nil {
			return nil, httperr.Validation("invalid_time", fmt.Sprintf("availabilities[%d]: endTime must be HH:mm.", i))
		}
		if !start.Before(end) {
			return nil, httperr.Validation("invalid_interval", fmt.Sprintf("availabilities[%d]: startTime must be before endTime.", i))
		}

		out = append(out, models.Availability{
			ExpertID:  expertID,
			Date:      datatypes.Date(day),
			StartTime: start.Format(TimeLayout),
			EndTime:   end.Format(TimeLayout),
			Recurring: a.Recurring,
		})
	}

	return out, nil
}

// WindowsFrom projects stored rows onto generator input.
func WindowsFrom(rows []models.Availability) []Window {
	out := make([]Window, 0, len(rows))
	for _, r := range rows {
		out = append(out, Window{
			Date:  time.Time(r.Date).UTC().Format(DateLayout),
			Start: r.StartTime,
			End:   r.EndTime,
		})
	}
	return out
}

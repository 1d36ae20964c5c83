package dto

import (
	"time"

	"github.com/BruksfildServices01/expert-scheduler/internal/models"
)

// AppointmentListDTO flattens an appointment for list views. Names are empty
// when the referenced client or service no longer exists.
type AppointmentListDTO struct {
	ID          uint      `json:"id"`
	ClientID    uint      `json:"client_id"`
	ExpertID    uint      `json:"expert_id"`
	ServiceID   uint      `json:"service_id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Status      string    `json:"status"`
	MeetingURL  string    `json:"meeting_url,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	ClientName  string    `json:"client_name,omitempty"`
	ServiceName string    `json:"service_name,omitempty"`
	ExpertTitle string    `json:"expert_title,omitempty"`
}

func AppointmentList(aps []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(aps))
	for _, ap := range aps {
		row := AppointmentListDTO{
			ID:         ap.ID,
			ClientID:   ap.ClientID,
			ExpertID:   ap.ExpertID,
			ServiceID:  ap.ServiceID,
			StartTime:  ap.StartTime,
			EndTime:    ap.EndTime,
			Status:     ap.Status,
			MeetingURL: ap.MeetingURL,
			Notes:      ap.Notes,
		}
		if ap.Client != nil {
			row.ClientName = ap.Client.Name
		}
		if ap.Service != nil {
			row.ServiceName = ap.Service.Name
		}
		if ap.Expert != nil {
			row.ExpertTitle = ap.Expert.Title
		}
		out = append(out, row)
	}
	return out
}

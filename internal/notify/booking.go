package notify

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/expert-scheduler/internal/models"
)

// Booking carries what the confirmation messages need. Expert or Service
// may be nil when the reference could not be loaded.
type Booking struct {
	Appointment *models.Appointment
	Client      *models.User
	Expert      *models.User
	Service     *models.Service
}

// BookingConfirmation builds the email and SMS messages for both sides of a
// new appointment. Recipients without an address are skipped.
func BookingConfirmation(b Booking) []Notification {
	if b.Appointment == nil {
		return nil
	}

	serviceName := "your session"
	if b.Service != nil && b.Service.Name != "" {
		serviceName = b.Service.Name
	}
	when := b.Appointment.StartTime.UTC().Format(time.RFC1123)

	text := fmt.Sprintf("Appointment #%d for %s is booked for %s (UTC).", b.Appointment.ID, serviceName, when)
	if b.Appointment.MeetingURL != "" {
		text += " Join: " + b.Appointment.MeetingURL
	}
	subject := "Appointment confirmed: " + serviceName

	var out []Notification
	for _, u := range []*models.User{b.Client, b.Expert} {
		if u == nil {
			continue
		}
		if u.Email != "" {
			out = append(out, Notification{Email: &EmailMessage{
				To:      u.Email,
				ToName:  u.Name,
				Subject: subject,
				Text:    text,
				HTML:    "<p>" + text + "</p>",
			}})
		}
		if u.Phone != "" {
			out = append(out, Notification{Phone: u.Phone, SMS: text})
		}
	}
	return out
}

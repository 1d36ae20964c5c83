package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/expert-scheduler/internal/models"
)

type fixture struct {
	client  models.User
	expert  models.Expert
	service models.Service
}

func seed(t *testing.T, db *gorm.DB) fixture {
	t.Helper()

	client := models.User{Name: "Ada Client", Email: "ada@example.com", PasswordHash: "x", Role: models.RoleClient}
	require.NoError(t, db.Create(&client).Error)

	expertUser := models.User{Name: "Grace Expert", Email: "grace@example.com", PasswordHash: "x", Role: models.RoleExpert}
	require.NoError(t, db.Create(&expertUser).Error)

	expert := models.Expert{UserID: expertUser.ID, Title: "Consultant"}
	require.NoError(t, db.Create(&expert).Error)

	service := models.Service{ExpertID: expert.ID, Name: "Session", DurationMin: 60, Price: 50}
	require.NoError(t, db.Create(&service).Error)

	return fixture{client: client, expert: expert, service: service}
}

func hour(h, m int) time.Time {
	return time.Date(2030, 5, 6, h, m, 0, 0, time.UTC)
}

func (f fixture) appointment(start, end time.Time) *models.Appointment {
	return &models.Appointment{
		ClientID:  f.client.ID,
		ExpertID:  f.expert.ID,
		ServiceID: f.service.ID,
		StartTime: start,
		EndTime:   end,
		Status:    "scheduled",
	}
}

package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/expert-scheduler/internal/models"
)

type Repository interface {
	// -------- References --------
	GetService(ctx context.Context, serviceID uint) (*models.Service, error)
	GetUser(ctx context.Context, userID uint) (*models.User, error)
	GetExpert(ctx context.Context, expertID uint) (*models.Expert, error)

	// -------- Conflict gate --------
	HasConflict(
		ctx context.Context,
		expertID uint,
		start time.Time,
		end time.Time,
		excludeID *uint,
	) (bool, error)

	// BookIfAvailable checks for conflicts and inserts ap atomically for
	// ap.ExpertID. It returns a slot_unavailable error on overlap.
	BookIfAvailable(ctx context.Context, ap *models.Appointment) error

	// UpdateIfAvailable re-checks conflicts excluding ap.ID and saves ap
	// atomically for ap.ExpertID.
	UpdateIfAvailable(ctx context.Context, ap *models.Appointment) error

	// -------- State / reads --------
	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)
	UpdateAppointment(ctx context.Context, ap *models.Appointment) error
	SetMeetingURL(ctx context.Context, id uint, url string) error
	DeleteAppointment(ctx context.Context, id uint) error

	ListForClient(ctx context.Context, clientID uint) ([]models.Appointment, error)
	ListForExpert(ctx context.Context, expertID uint) ([]models.Appointment, error)
	ListForPeriod(
		ctx context.Context,
		expertID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}

package dashboard

import (
	"context"
	"time"

	"github.com/BruksfildServices01/expert-scheduler/internal/models"
)

// Repository is read-only: every method must tolerate appointments whose
// service or client no longer exists.
type Repository interface {
	ExpertRevenue(ctx context.Context, expertID uint) (float64, error)
	ExpertClientCount(ctx context.Context, expertID uint) (int64, error)
	StatusBreakdown(ctx context.Context, expertID uint) (map[string]int64, error)
	AverageRating(ctx context.Context, expertID uint) (float64, int64, error)

	UpcomingForExpert(ctx context.Context, expertID uint, now time.Time) ([]models.Appointment, error)
	UpcomingForClient(ctx context.Context, clientID uint, now time.Time) ([]models.Appointment, error)
}

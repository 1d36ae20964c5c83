package availability

import (
	"context"
	"time"

	"github.com/BruksfildServices01/expert-scheduler/internal/models"
)

type Repository interface {
	// ReplaceForExpert swaps the expert's whole set in one transaction.
	ReplaceForExpert(ctx context.Context, expertID uint, rows []models.Availability) error
	ListForExpert(ctx context.Context, expertID uint) ([]models.Availability, error)
	ListForRange(ctx context.Context, expertID uint, from, to time.Time) ([]models.Availability, error)
}

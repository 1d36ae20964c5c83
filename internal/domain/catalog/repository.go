package catalog

import (
	"context"

	"github.com/BruksfildServices01/expert-scheduler/internal/models"
)

// Repository covers experts, their services, reviews and the clients who
// booked them.
type Repository interface {
	GetExpert(ctx context.Context, expertID uint) (*models.Expert, error)
	GetExpertByUser(ctx context.Context, userID uint) (*models.Expert, error)

	ListServices(ctx context.Context, expertID uint) ([]models.Service, error)
	GetService(ctx context.Context, serviceID uint) (*models.Service, error)
	CreateService(ctx context.Context, s *models.Service) error
	UpdateService(ctx context.Context, s *models.Service) error
	DeleteService(ctx context.Context, serviceID uint) error

	ListClients(ctx context.Context, expertID uint, query string) ([]models.User, error)

	CreateReview(ctx context.Context, r *models.Review) error
	ListReviews(ctx context.Context, expertID uint) ([]models.Review, error)
	HasCompletedAppointment(ctx context.Context, expertID, clientID uint) (bool, error)
}

package catalog

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/expert-scheduler/internal/authz"
	domain "github.com/BruksfildServices01/expert-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/expert-scheduler/internal/httperr"
	"github.com/BruksfildServices01/expert-scheduler/internal/models"
)

type CreateReviewInput struct {
	Rating        int    `json:"rating" binding:"required"`
	Comment       string `json:"comment"`
	AppointmentID *uint  `json:"appointmentId"`
}

type Reviews struct {
	repo domain.Repository
}

func NewReviews(repo domain.Repository) *Reviews {
	return &Reviews{repo: repo}
}

// Create stores a review. Only clients with a completed appointment with
// the expert may review them.
func (uc *Reviews) Create(ctx context.Context, actor authz.Actor, expertID uint, in CreateReviewInput) (*models.Review, error) {
	if err := authz.Check(actor, authz.ActionReviewCreate, authz.Resource{}); err != nil {
		return nil, err
	}
	if in.Rating < 1 || in.Rating > 5 {
		return nil, httperr.Validation("invalid_rating", "rating must be between 1 and 5.")
	}

	if _, err := uc.repo.GetExpert(ctx, expertID); err != nil {
		return nil, err
	}

	ok, err := uc.repo.HasCompletedAppointment(ctx, expertID, actor.UserID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, httperr.Validation("review_not_allowed", "You can only review experts you have completed an appointment with.")
	}

	rv := &models.Review{
		ExpertID:      expertID,
		ClientID:      actor.UserID,
		AppointmentID: in.AppointmentID,
		Rating:        in.Rating,
		Comment:       strings.TrimSpace(in.Comment),
	}
	if err := uc.repo.CreateReview(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

func (uc *Reviews) List(ctx context.Context, expertID uint) ([]models.Review, error) {
	if _, err := uc.repo.GetExpert(ctx, expertID); err != nil {
		return nil, err
	}
	return uc.repo.ListReviews(ctx, expertID)
}

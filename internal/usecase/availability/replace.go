package availability

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/expert-scheduler/internal/audit"
	"github.com/BruksfildServices01/expert-scheduler/internal/authz"
	domain "github.com/BruksfildServices01/expert-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/expert-scheduler/internal/models"
)

type ReplaceAvailabilityInput struct {
	Availabilities []domain.Input `json:"availabilities"`
}

type ReplaceAvailability struct {
	repo     domain.Repository
	bookings Bookings
	cache    Cache
	audit    *audit.Dispatcher
	logger   *zap.Logger
}

func NewReplaceAvailability(
	repo domain.Repository,
	bookings Bookings,
	cache Cache,
	dispatcher *audit.Dispatcher,
	logger *zap.Logger,
) *ReplaceAvailability {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cache == nil {
		cache = noCache{}
	}
	return &ReplaceAvailability{repo: repo, bookings: bookings, cache: cache, audit: dispatcher, logger: logger}
}

// Execute swaps the expert's whole availability set. An empty list clears it.
func (uc *ReplaceAvailability) Execute(
	ctx context.Context,
	actor authz.Actor,
	expertID uint,
	in ReplaceAvailabilityInput,
) ([]models.Availability, error) {

	if err := authz.Authenticated(actor); err != nil {
		return nil, err
	}

	expert, err := uc.bookings.GetExpert(ctx, expertID)
	if err != nil {
		return nil, err
	}
	if err := authz.Check(actor, authz.ActionAvailabilityReplace, authz.Resource{OwnerUserID: expert.UserID}); err != nil {
		return nil, err
	}

	rows, err := domain.ToModels(expertID, in.Availabilities)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.ReplaceForExpert(ctx, expertID, rows); err != nil {
		return nil, err
	}

	if err := uc.cache.Invalidate(ctx, expertID); err != nil {
		uc.logger.Warn("slot cache invalidation failed", zap.Uint("expert_id", expertID), zap.Error(err))
	}

	uid := actor.UserID
	uc.audit.Dispatch(audit.Event{
		ExpertID: expertID,
		UserID:   &uid,
		Action:   audit.ActionAvailabilityReplaced,
		Entity:   "availability",
		Metadata: map[string]any{"windows": len(rows)},
	})

	return rows, nil
}

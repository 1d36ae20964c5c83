package appointment

import (
	"context"

	"github.com/BruksfildServices01/expert-scheduler/internal/audit"
	"github.com/BruksfildServices01/expert-scheduler/internal/authz"
	domain "github.com/BruksfildServices01/expert-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/expert-scheduler/internal/models"
	"github.com/BruksfildServices01/expert-scheduler/internal/timezone"
)

type CompleteAppointment struct {
	repo domain.Repository
	fx   *SideEffects
}

func NewCompleteAppointment(repo domain.Repository, fx *SideEffects) *CompleteAppointment {
	return &CompleteAppointment{repo: repo, fx: fx}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	actor authz.Actor,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := loadOwned(ctx, uc.repo, actor, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := domain.Complete(ap, timezone.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.fx.dispatchAudit(auditEvent(ap, actor.UserID, audit.ActionAppointmentCompleted, nil))
	return ap, nil
}

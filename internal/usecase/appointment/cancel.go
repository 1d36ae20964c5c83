package appointment

import (
	"context"

	"github.com/BruksfildServices01/expert-scheduler/internal/audit"
	"github.com/BruksfildServices01/expert-scheduler/internal/authz"
	domain "github.com/BruksfildServices01/expert-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/expert-scheduler/internal/models"
	"github.com/BruksfildServices01/expert-scheduler/internal/timezone"
)

type CancelAppointment struct {
	repo domain.Repository
	fx   *SideEffects
}

func NewCancelAppointment(repo domain.Repository, fx *SideEffects) *CancelAppointment {
	return &CancelAppointment{repo: repo, fx: fx}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	actor authz.Actor,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := loadOwned(ctx, uc.repo, actor, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := domain.Cancel(ap, timezone.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.fx.dispatchAudit(auditEvent(ap, actor.UserID, audit.ActionAppointmentCancelled, nil))
	return ap, nil
}

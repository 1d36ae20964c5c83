package appointment

import (
	"context"

	"github.com/BruksfildServices01/expert-scheduler/internal/audit"
	"github.com/BruksfildServices01/expert-scheduler/internal/authz"
	domain "github.com/BruksfildServices01/expert-scheduler/internal/domain/appointment"
)

// DeleteAppointment removes the row for good. There is no tombstone.
type DeleteAppointment struct {
	repo domain.Repository
	fx   *SideEffects
}

func NewDeleteAppointment(repo domain.Repository, fx *SideEffects) *DeleteAppointment {
	return &DeleteAppointment{repo: repo, fx: fx}
}

func (uc *DeleteAppointment) Execute(ctx context.Context, actor authz.Actor, appointmentID uint) error {
	ap, err := loadOwned(ctx, uc.repo, actor, appointmentID)
	if err != nil {
		return err
	}

	if err := uc.repo.DeleteAppointment(ctx, ap.ID); err != nil {
		return err
	}

	uc.fx.dispatchAudit(auditEvent(ap, actor.UserID, audit.ActionAppointmentDeleted, map[string]any{
		"start":     ap.StartTime,
		"client_id": ap.ClientID,
	}))
	return nil
}

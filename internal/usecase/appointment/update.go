package appointment

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/expert-scheduler/internal/audit"
	"github.com/BruksfildServices01/expert-scheduler/internal/authz"
	domain "github.com/BruksfildServices01/expert-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/expert-scheduler/internal/httperr"
	"github.com/BruksfildServices01/expert-scheduler/internal/models"
	"github.com/BruksfildServices01/expert-scheduler/internal/timezone"
)

// UpdateAppointmentInput is a partial update: nil fields keep their value.
type UpdateAppointmentInput struct {
	ClientID  *uint   `json:"clientId"`
	ServiceID *uint   `json:"serviceId"`
	StartTime *string `json:"startTime"`
	EndTime   *string `json:"endTime"`
	Status    *string `json:"status"`
	Notes     *string `json:"notes"`
}

type UpdateAppointment struct {
	repo domain.Repository
	fx   *SideEffects
}

func NewUpdateAppointment(repo domain.Repository, fx *SideEffects) *UpdateAppointment {
	return &UpdateAppointment{repo: repo, fx: fx}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	actor authz.Actor,
	appointmentID uint,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	ap, err := loadOwned(ctx, uc.repo, actor, appointmentID)
	if err != nil {
		return nil, err
	}

	if domain.Status(ap.Status).Terminal() {
		return nil, httperr.Validation("invalid_state", "Appointment is already "+ap.Status+".")
	}

	// --------------------------------------------------
	// References
	// --------------------------------------------------
	if in.ClientID != nil && *in.ClientID != ap.ClientID {
		if _, err := uc.repo.GetUser(ctx, *in.ClientID); err != nil {
			return nil, err
		}
		ap.ClientID = *in.ClientID
		ap.Client = nil
	}

	if in.ServiceID != nil && *in.ServiceID != ap.ServiceID {
		svc, err := uc.repo.GetService(ctx, *in.ServiceID)
		if err != nil {
			return nil, err
		}
		if svc.ExpertID != ap.ExpertID {
			return nil, httperr.Validation("service_not_offered", "Service belongs to another expert.")
		}
		ap.ServiceID = svc.ID
		ap.Service = svc
	}

	// --------------------------------------------------
	// Interval
	// --------------------------------------------------
	if in.StartTime != nil {
		start, err := timezone.ParseInstant(*in.StartTime)
		if err != nil {
			return nil, httperr.Validation("invalid_start_time", "startTime must be an ISO-8601 timestamp.")
		}
		ap.StartTime = start
	}
	if in.EndTime != nil {
		end, err := timezone.ParseInstant(*in.EndTime)
		if err != nil {
			return nil, httperr.Validation("invalid_end_time", "endTime must be an ISO-8601 timestamp.")
		}
		ap.EndTime = end
	}
	ap.StartTime = ap.StartTime.UTC()
	ap.EndTime = ap.EndTime.UTC()
	if err := domain.ValidateInterval(ap.StartTime, ap.EndTime); err != nil {
		return nil, err
	}

	if in.Notes != nil {
		ap.Notes = strings.TrimSpace(*in.Notes)
	}

	// --------------------------------------------------
	// Status
	// --------------------------------------------------
	if in.Status != nil {
		if err := domain.Transition(ap, domain.Status(*in.Status), timezone.Now()); err != nil {
			return nil, err
		}
	}

	if err := uc.repo.UpdateIfAvailable(ctx, ap); err != nil {
		return nil, err
	}

	uc.fx.dispatchAudit(auditEvent(ap, actor.UserID, audit.ActionAppointmentUpdated, in))
	return ap, nil
}

// loadOwned fetches the appointment and requires actor to be its expert.
func loadOwned(ctx context.Context, repo domain.Repository, actor authz.Actor, id uint) (*models.Appointment, error) {
	if err := authz.Authenticated(actor); err != nil {
		return nil, err
	}

	ap, err := repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Check(actor, authz.ActionAppointmentModify, resourceOf(ap)); err != nil {
		return nil, err
	}
	return ap, nil
}

func resourceOf(ap *models.Appointment) authz.Resource {
	res := authz.Resource{ClientID: ap.ClientID}
	if ap.Expert != nil {
		res.OwnerUserID = ap.Expert.UserID
	}
	return res
}

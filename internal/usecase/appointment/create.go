package appointment

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/expert-scheduler/internal/audit"
	"github.com/BruksfildServices01/expert-scheduler/internal/authz"
	domain "github.com/BruksfildServices01/expert-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/expert-scheduler/internal/httperr"
	"github.com/BruksfildServices01/expert-scheduler/internal/models"
	"github.com/BruksfildServices01/expert-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ServiceID uint   `json:"serviceId" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
	Notes     string `json:"notes"`
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo domain.Repository
	fx   *SideEffects
}

func NewCreateAppointment(repo domain.Repository, fx *SideEffects) *CreateAppointment {
	return &CreateAppointment{repo: repo, fx: fx}
}

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	actor authz.Actor,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	if err := authz.Check(actor, authz.ActionAppointmentCreate, authz.Resource{}); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Service
	// --------------------------------------------------
	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Interval (UTC)
	// --------------------------------------------------
	start, end, err := parseInterval(in.StartTime, in.EndTime)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Commit through the conflict gate
	// --------------------------------------------------
	ap := &models.Appointment{
		ClientID:  actor.UserID,
		ExpertID:  svc.ExpertID,
		ServiceID: svc.ID,
		StartTime: start,
		EndTime:   end,
		Status:    string(domain.InitialStatus()),
		Notes:     strings.TrimSpace(in.Notes),
	}

	if err := uc.repo.BookIfAvailable(ctx, ap); err != nil {
		if httperr.KindOf(err) == httperr.KindSlotUnavailable {
			uc.fx.meter().ObserveBooking("conflict")
			uc.fx.dispatchAudit(auditEvent(ap, actor.UserID, audit.ActionAppointmentConflict, map[string]any{
				"start": start,
				"end":   end,
			}))
		} else {
			uc.fx.meter().ObserveBooking("failed")
		}
		return nil, err
	}
	uc.fx.meter().ObserveBooking("created")

	// --------------------------------------------------
	// Best-effort enrichment
	// --------------------------------------------------
	client, err := uc.repo.GetUser(ctx, actor.UserID)
	if err != nil {
		uc.fx.logger().Warn("client not loaded for notifications", zap.Uint("user_id", actor.UserID), zap.Error(err))
		client = nil
	}
	var expertUser *models.User
	if expert, err := uc.repo.GetExpert(ctx, svc.ExpertID); err == nil {
		expertUser = expert.User
	}

	uc.fx.attachMeeting(ctx, uc.repo, ap, svc, emailOf(client), emailOf(expertUser))
	uc.fx.notifyBooking(ctx, ap, svc, client, expertUser)
	uc.fx.dispatchAudit(auditEvent(ap, actor.UserID, audit.ActionAppointmentCreated, nil))

	ap.Service = svc
	return ap, nil
}

// ======================================================
// HELPERS
// ======================================================

func parseInterval(rawStart, rawEnd string) (start, end time.Time, err error) {
	start, err = timezone.ParseInstant(rawStart)
	if err != nil {
		return start, end, httperr.Validation("invalid_start_time", "startTime must be an ISO-8601 timestamp.")
	}
	end, err = timezone.ParseInstant(rawEnd)
	if err != nil {
		return start, end, httperr.Validation("invalid_end_time", "endTime must be an ISO-8601 timestamp.")
	}
	return start, end, domain.ValidateInterval(start, end)
}

func emailOf(u *models.User) string {
	if u == nil {
		return ""
	}
	return u.Email
}

package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BruksfildServices01/expert-scheduler/internal/audit"
	"github.com/BruksfildServices01/expert-scheduler/internal/authz"
	domain "github.com/BruksfildServices01/expert-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/expert-scheduler/internal/httperr"
	"github.com/BruksfildServices01/expert-scheduler/internal/models"
	"github.com/BruksfildServices01/expert-scheduler/internal/timezone"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

// BasketItem is one booking intent from the client's basket. Date and Time
// are UTC.
type BasketItem struct {
	Service uint   `json:"service"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Notes   string `json:"notes"`
}

type ItemFailure struct {
	Index   int          `json:"index"`
	Kind    httperr.Kind `json:"kind"`
	Code    string       `json:"code"`
	Message string       `json:"message"`
}

// BasketResult lists what was committed and why the rest was not. Items
// are independent: a failure never undoes an earlier success.
type BasketResult struct {
	Appointments []models.Appointment `json:"appointments"`
	Failures     []ItemFailure        `json:"failures"`
}

func (r *BasketResult) AnySucceeded() bool {
	return len(r.Appointments) > 0
}

// ======================================================
// USE CASE
// ======================================================

type CreateMultiAppointments struct {
	repo domain.Repository
	fx   *SideEffects
}

func NewCreateMultiAppointments(repo domain.Repository, fx *SideEffects) *CreateMultiAppointments {
	return &CreateMultiAppointments{repo: repo, fx: fx}
}

func (uc *CreateMultiAppointments) Execute(
	ctx context.Context,
	actor authz.Actor,
	basket []BasketItem,
) (*BasketResult, error) {

	if err := authz.Check(actor, authz.ActionAppointmentCreate, authz.Resource{}); err != nil {
		return nil, err
	}
	if len(basket) == 0 {
		return nil, httperr.Validation("empty_basket", "The basket has no items.")
	}

	out := &BasketResult{
		Appointments: make([]models.Appointment, 0, len(basket)),
		Failures:     []ItemFailure{},
	}

	for i, item := range basket {
		ap, err := uc.book(ctx, actor, item)
		if err != nil {
			uc.fx.meter().ObserveBatchItem(string(httperr.KindOf(err)))
			out.Failures = append(out.Failures, failureOf(i, err))
			continue
		}
		uc.fx.meter().ObserveBatchItem("created")
		out.Appointments = append(out.Appointments, *ap)
	}

	return out, nil
}

func (uc *CreateMultiAppointments) book(ctx context.Context, actor authz.Actor, item BasketItem) (*models.Appointment, error) {
	if item.Service == 0 {
		return nil, httperr.Validation("missing_service", "service is required.")
	}

	svc, err := uc.repo.GetService(ctx, item.Service)
	if err != nil {
		return nil, err
	}
	if svc.DurationMin <= 0 {
		return nil, httperr.Validation("invalid_duration", "Service has no bookable duration.")
	}

	start, err := timezone.ParseDateTime(item.Date, item.Time)
	if err != nil {
		return nil, httperr.Validation("invalid_date_or_time", "date must be YYYY-MM-DD and time HH:mm.")
	}
	end := start.Add(time.Duration(svc.DurationMin) * time.Minute)

	ap := &models.Appointment{
		ClientID:  actor.UserID,
		ExpertID:  svc.ExpertID,
		ServiceID: svc.ID,
		StartTime: start,
		EndTime:   end,
		Status:    string(domain.InitialStatus()),
		Notes:     item.Notes,
	}
	if err := uc.repo.BookIfAvailable(ctx, ap); err != nil {
		return nil, err
	}

	uc.fx.attachMeeting(ctx, uc.repo, ap, svc, actor.Email)
	uc.fx.dispatchAudit(auditEvent(ap, actor.UserID, audit.ActionAppointmentCreated, map[string]any{"source": "basket"}))

	ap.Service = svc
	return ap, nil
}

func failureOf(index int, err error) ItemFailure {
	var be *httperr.Error
	if errors.As(err, &be) {
		return ItemFailure{Index: index, Kind: be.Kind, Code: be.Code, Message: be.Message}
	}
	return ItemFailure{
		Index:   index,
		Kind:    httperr.KindInternal,
		Code:    "internal_error",
		Message: fmt.Sprintf("Item %d could not be booked.", index),
	}
}

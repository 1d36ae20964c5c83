package appointment

import (
	"context"

	"github.com/BruksfildServices01/expert-scheduler/internal/authz"
	domain "github.com/BruksfildServices01/expert-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/expert-scheduler/internal/dto"
	"github.com/BruksfildServices01/expert-scheduler/internal/models"
)

// ======================================================
// GET
// ======================================================

type GetAppointment struct {
	repo domain.Repository
}

func NewGetAppointment(repo domain.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

func (uc *GetAppointment) Execute(ctx context.Context, actor authz.Actor, id uint) (*models.Appointment, error) {
	if err := authz.Authenticated(actor); err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Check(actor, authz.ActionAppointmentView, resourceOf(ap)); err != nil {
		return nil, err
	}
	return ap, nil
}

// ======================================================
// LIST
// ======================================================

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

func (uc *ListAppointments) ForClient(ctx context.Context, actor authz.Actor, clientID uint) ([]dto.AppointmentListDTO, error) {
	if err := authz.Check(actor, authz.ActionAppointmentView, authz.Resource{ClientID: clientID}); err != nil {
		return nil, err
	}

	aps, err := uc.repo.ListForClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return dto.AppointmentList(aps), nil
}

func (uc *ListAppointments) ForExpert(ctx context.Context, actor authz.Actor, expertID uint) ([]dto.AppointmentListDTO, error) {
	if err := authz.Authenticated(actor); err != nil {
		return nil, err
	}

	expert, err := uc.repo.GetExpert(ctx, expertID)
	if err != nil {
		return nil, err
	}
	if err := authz.Check(actor, authz.ActionAppointmentView, authz.Resource{OwnerUserID: expert.UserID}); err != nil {
		return nil, err
	}

	aps, err := uc.repo.ListForExpert(ctx, expertID)
	if err != nil {
		return nil, err
	}
	return dto.AppointmentList(aps), nil
}

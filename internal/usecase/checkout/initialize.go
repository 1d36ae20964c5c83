package checkout

import (
	"context"
	"fmt"
	"strings"

	"github.com/BruksfildServices01/expert-scheduler/internal/authz"
	domain "github.com/BruksfildServices01/expert-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/expert-scheduler/internal/httperr"
	"github.com/BruksfildServices01/expert-scheduler/internal/payment"
)

type Initializer interface {
	Initialize(ctx context.Context, req payment.Request) (payment.Result, error)
}

type InitializePaymentInput struct {
	AppointmentIDs []uint `json:"appointmentIds" binding:"required,min=1"`
	Phone          string `json:"phone"`
}

type InitializePayment struct {
	repo     domain.Repository
	chain    Initializer
	currency string
}

func NewInitializePayment(repo domain.Repository, chain Initializer, currency string) *InitializePayment {
	if currency == "" {
		currency = "BRL"
	}
	return &InitializePayment{repo: repo, chain: chain, currency: currency}
}

// Execute charges the sum of the service prices of the caller's live
// appointments through the provider chain.
func (uc *InitializePayment) Execute(ctx context.Context, actor authz.Actor, in InitializePaymentInput) (payment.Result, error) {
	if err := authz.Check(actor, authz.ActionPaymentInitialize, authz.Resource{}); err != nil {
		return payment.Result{}, err
	}
	if len(in.AppointmentIDs) == 0 {
		return payment.Result{}, httperr.Validation("empty_basket", "No appointments to pay for.")
	}

	var (
		total  float64
		titles []string
		refs   []string
	)
	for _, id := range in.AppointmentIDs {
		ap, err := uc.repo.GetAppointment(ctx, id)
		if err != nil {
			return payment.Result{}, err
		}
		if ap.ClientID != actor.UserID {
			return payment.Result{}, httperr.PermissionDenied("not_owner", "You do not own this resource.")
		}
		if ap.Status == string(domain.StatusCancelled) {
			return payment.Result{}, httperr.Validation("invalid_state", fmt.Sprintf("Appointment %d is cancelled.", id))
		}
		if ap.Service == nil {
			return payment.Result{}, httperr.NotFoundErr("service_not_found", fmt.Sprintf("Service of appointment %d no longer exists.", id))
		}

		total += ap.Service.Price
		titles = append(titles, ap.Service.Name)
		refs = append(refs, fmt.Sprint(ap.ID))
	}

	return uc.chain.Initialize(ctx, payment.Request{
		Amount:     total,
		Currency:   uc.currency,
		PayerEmail: actor.Email,
		PayerPhone: strings.TrimSpace(in.Phone),
		Reference:  "appointments-" + strings.Join(refs, "-"),
		Title:      title(titles),
	})
}

func title(names []string) string {
	if len(names) == 1 {
		return names[0]
	}
	return fmt.Sprintf("%d appointments", len(names))
}

package authz

import (
	"github.com/BruksfildServices01/expert-scheduler/internal/httperr"
	"github.com/BruksfildServices01/expert-scheduler/internal/models"
)

// Actor is the authenticated caller as seen by use cases.
type Actor struct {
	UserID   uint
	Email    string
	Role     string
	ExpertID uint // 0 unless Role is expert
}

func (a Actor) IsAdmin() bool  { return a.Role == models.RoleAdmin }
func (a Actor) IsExpert() bool { return a.Role == models.RoleExpert }
func (a Actor) IsClient() bool { return a.Role == models.RoleClient }

type Action string

const (
	ActionAppointmentCreate   Action = "appointment:create"
	ActionAppointmentView     Action = "appointment:view"
	ActionAppointmentModify   Action = "appointment:modify"
	ActionAvailabilityReplace Action = "availability:replace"
	ActionServiceManage       Action = "service:manage"
	ActionClientsView         Action = "clients:view"
	ActionDashboardView       Action = "dashboard:view"
	ActionReviewCreate        Action = "review:create"
	ActionPaymentInitialize   Action = "payment:initialize"
	ActionAuditView           Action = "audit:view"
)

// Resource names who a target belongs to. OwnerUserID is the user behind the
// owning expert; ClientID is the booking client, when there is one.
type Resource struct {
	OwnerUserID uint
	ClientID    uint
}

var (
	errAuth   = httperr.AuthRequired("auth_required", "Authentication required.")
	errRole   = httperr.PermissionDenied("wrong_role", "Your role cannot perform this action.")
	errOwner  = httperr.PermissionDenied("not_owner", "You do not own this resource.")
	errAction = httperr.PermissionDenied("unknown_action", "Action not permitted.")
)

// Authenticated rejects the zero Actor. Use cases call it before loading a
// resource so anonymous callers never learn whether it exists.
func Authenticated(actor Actor) error {
	if actor.UserID == 0 {
		return errAuth
	}
	return nil
}

// Check decides whether actor may perform action on res.
func Check(actor Actor, action Action, res Resource) error {
	if err := Authenticated(actor); err != nil {
		return err
	}

	switch action {
	case ActionAppointmentCreate, ActionReviewCreate:
		if !actor.IsClient() {
			return errRole
		}
		return nil

	case ActionPaymentInitialize:
		return nil

	case ActionAppointmentModify, ActionAvailabilityReplace, ActionServiceManage:
		if !actor.IsExpert() {
			return errRole
		}
		return ownedBy(actor, res.OwnerUserID)

	case ActionAuditView:
		if !actor.IsExpert() {
			return errRole
		}
		return nil

	case ActionClientsView:
		if actor.IsAdmin() {
			return nil
		}
		if !actor.IsExpert() {
			return errRole
		}
		return ownedBy(actor, res.OwnerUserID)

	case ActionAppointmentView, ActionDashboardView:
		if actor.IsAdmin() {
			return nil
		}
		if res.ClientID != 0 && actor.UserID == res.ClientID {
			return nil
		}
		return ownedBy(actor, res.OwnerUserID)
	}

	return errAction
}

func ownedBy(actor Actor, ownerUserID uint) error {
	if ownerUserID == 0 || actor.UserID != ownerUserID {
		return errOwner
	}
	return nil
}

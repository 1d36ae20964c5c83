package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/expert-scheduler/internal/httperr"
	"github.com/BruksfildServices01/expert-scheduler/internal/models"
)

func TestCheck_Matrix(t *testing.T) {
	client := Actor{UserID: 1, Role: models.RoleClient}
	expert := Actor{UserID: 2, Role: models.RoleExpert, ExpertID: 10}
	otherExpert := Actor{UserID: 3, Role: models.RoleExpert, ExpertID: 11}
	admin := Actor{UserID: 4, Role: models.RoleAdmin}
	anonymous := Actor{}

	booking := Resource{OwnerUserID: 2, ClientID: 1}

	tests := []struct {
		name   string
		actor  Actor
		action Action
		res    Resource
		want   httperr.Kind
	}{
		{"anonymous create", anonymous, ActionAppointmentCreate, Resource{}, httperr.KindAuthRequired},
		{"client creates", client, ActionAppointmentCreate, Resource{}, ""},
		{"expert cannot book", expert, ActionAppointmentCreate, Resource{}, httperr.KindPermissionDenied},
		{"client views own", client, ActionAppointmentView, booking, ""},
		{"expert views own", expert, ActionAppointmentView, booking, ""},
		{"other expert cannot view", otherExpert, ActionAppointmentView, booking, httperr.KindPermissionDenied},
		{"admin views any", admin, ActionAppointmentView, booking, ""},
		{"owner modifies", expert, ActionAppointmentModify, booking, ""},
		{"client cannot modify", client, ActionAppointmentModify, booking, httperr.KindPermissionDenied},
		{"other expert cannot modify", otherExpert, ActionAppointmentModify, booking, httperr.KindPermissionDenied},
		{"admin cannot modify", admin, ActionAppointmentModify, booking, httperr.KindPermissionDenied},
		{"owner replaces availability", expert, ActionAvailabilityReplace, Resource{OwnerUserID: 2}, ""},
		{"missing owner denied", expert, ActionServiceManage, Resource{}, httperr.KindPermissionDenied},
		{"admin dashboards", admin, ActionDashboardView, Resource{OwnerUserID: 2}, ""},
		{"client own dashboard", client, ActionDashboardView, Resource{ClientID: 1}, ""},
		{"client other dashboard", client, ActionDashboardView, Resource{ClientID: 9}, httperr.KindPermissionDenied},
		{"admin lists clients", admin, ActionClientsView, Resource{OwnerUserID: 2}, ""},
		{"client review", client, ActionReviewCreate, Resource{}, ""},
		{"expert review", expert, ActionReviewCreate, Resource{}, httperr.KindPermissionDenied},
		{"anyone pays", expert, ActionPaymentInitialize, Resource{}, ""},
		{"unknown action", admin, Action("nope"), Resource{}, httperr.KindPermissionDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(tt.actor, tt.action, tt.res)
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.want, httperr.KindOf(err))
		})
	}
}

func TestAuthenticated(t *testing.T) {
	assert.Equal(t, httperr.KindAuthRequired, httperr.KindOf(Authenticated(Actor{})))
	assert.NoError(t, Authenticated(Actor{UserID: 1}))
}

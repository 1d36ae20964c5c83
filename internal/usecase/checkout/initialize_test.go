package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/expert-scheduler/internal/authz"
	"github.com/BruksfildServices01/expert-scheduler/internal/httperr"
	"github.com/BruksfildServices01/expert-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/expert-scheduler/internal/models"
	"github.com/BruksfildServices01/expert-scheduler/internal/payment"
	"github.com/BruksfildServices01/expert-scheduler/internal/testutil"
)

type recordingChain struct {
	got payment.Request
}

func (r *recordingChain) Initialize(_ context.Context, req payment.Request) (payment.Result, error) {
	r.got = req
	return payment.Result{Status: payment.StatusSuccess, Provider: "fake", Reference: "ref-1"}, nil
}

func TestInitializePayment_SumsServicePrices(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()

	client := models.User{Name: "Ada", Email: "ada@example.com", PasswordHash: "x", Role: models.RoleClient}
	require.NoError(t, db.Create(&client).Error)
	other := models.User{Name: "Bob", Email: "bob@example.com", PasswordHash: "x", Role: models.RoleClient}
	require.NoError(t, db.Create(&other).Error)

	a := models.Service{ExpertID: 1, Name: "Intro", DurationMin: 30, Price: 40}
	b := models.Service{ExpertID: 1, Name: "Deep dive", DurationMin: 60, Price: 60.5}
	require.NoError(t, db.Create(&a).Error)
	require.NoError(t, db.Create(&b).Error)

	start := time.Date(2030, 5, 6, 9, 0, 0, 0, time.UTC)
	mk := func(clientID, serviceID uint, status string, offset time.Duration) uint {
		ap := models.Appointment{
			ClientID: clientID, ExpertID: 1, ServiceID: serviceID,
			StartTime: start.Add(offset), EndTime: start.Add(offset + 30*time.Minute), Status: status,
		}
		require.NoError(t, db.Create(&ap).Error)
		return ap.ID
	}
	first := mk(client.ID, a.ID, "scheduled", 0)
	second := mk(client.ID, b.ID, "scheduled", time.Hour)
	cancelled := mk(client.ID, a.ID, "cancelled", 2*time.Hour)
	foreign := mk(other.ID, a.ID, "scheduled", 3*time.Hour)
	orphan := mk(client.ID, 9999, "scheduled", 4*time.Hour)

	chain := &recordingChain{}
	uc := NewInitializePayment(repository.NewAppointmentGormRepository(db), chain, "")
	actor := authz.Actor{UserID: client.ID, Email: client.Email, Role: models.RoleClient}

	res, err := uc.Execute(ctx, actor, InitializePaymentInput{AppointmentIDs: []uint{first, second}})
	require.NoError(t, err)
	assert.Equal(t, "ref-1", res.Reference)
	assert.InDelta(t, 100.5, chain.got.Amount, 0.001)
	assert.Equal(t, "BRL", chain.got.Currency)
	assert.Equal(t, "ada@example.com", chain.got.PayerEmail)
	assert.Equal(t, "2 appointments", chain.got.Title)

	_, err = uc.Execute(ctx, actor, InitializePaymentInput{AppointmentIDs: []uint{cancelled}})
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	_, err = uc.Execute(ctx, actor, InitializePaymentInput{AppointmentIDs: []uint{foreign}})
	assert.Equal(t, httperr.KindPermissionDenied, httperr.KindOf(err))

	_, err = uc.Execute(ctx, actor, InitializePaymentInput{AppointmentIDs: []uint{orphan}})
	assert.Equal(t, httperr.KindNotFound, httperr.KindOf(err))

	_, err = uc.Execute(ctx, actor, InitializePaymentInput{})
	assert.True(t, httperr.IsBusiness(err, "empty_basket"))

	_, err = uc.Execute(ctx, authz.Actor{}, InitializePaymentInput{AppointmentIDs: []uint{first}})
	assert.Equal(t, httperr.KindAuthRequired, httperr.KindOf(err))
}

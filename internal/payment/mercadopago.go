package payment

import (
	"context"
	"errors"
	"strings"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

type preferenceCreator interface {
	Create(ctx context.Context, request preference.Request) (*preference.Response, error)
}

// MercadoPagoProvider creates a checkout preference and returns its
// redirect URL.
type MercadoPagoProvider struct {
	prefs preferenceCreator
}

// NewMercadoPagoProvider returns nil, nil when no access token is configured.
func NewMercadoPagoProvider(accessToken string) (*MercadoPagoProvider, error) {
	if accessToken == "" {
		return nil, nil
	}
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, err
	}
	return &MercadoPagoProvider{prefs: preference.NewClient(cfg)}, nil
}

func (m *MercadoPagoProvider) Name() string { return "mercadopago" }

func (m *MercadoPagoProvider) Initialize(ctx context.Context, req Request) Result {
	title := req.Title
	if title == "" {
		title = "Appointment"
	}

	pref := preference.Request{
		Items: []preference.ItemRequest{{
			Title:      title,
			Quantity:   1,
			UnitPrice:  req.Amount,
			CurrencyID: strings.ToUpper(req.Currency),
		}},
		ExternalReference: req.Reference,
	}
	if req.PayerEmail != "" {
		pref.Payer = &preference.PayerRequest{Email: req.PayerEmail}
	}

	resp, err := m.prefs.Create(ctx, pref)
	if err != nil {
		return unavailable(m.Name(), err)
	}
	if resp == nil || resp.InitPoint == "" {
		return unavailable(m.Name(), errors.New("mercadopago: empty preference"))
	}

	return Result{
		Status:      StatusSuccess,
		Provider:    m.Name(),
		Reference:   resp.ID,
		RedirectURL: resp.InitPoint,
	}
}

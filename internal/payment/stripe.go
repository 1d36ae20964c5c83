package payment

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

type intentCreator interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

// StripeProvider creates a PaymentIntent and hands back its client secret.
type StripeProvider struct {
	intents intentCreator
}

// NewStripeProvider returns nil when no secret key is configured.
func NewStripeProvider(secretKey string) *StripeProvider {
	if secretKey == "" {
		return nil
	}
	return &StripeProvider{
		intents: &paymentintent.Client{B: stripe.GetBackend(stripe.APIBackend), Key: secretKey},
	}
}

func (s *StripeProvider) Name() string { return "stripe" }

func (s *StripeProvider) Initialize(ctx context.Context, req Request) Result {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(toMinorUnits(req.Amount)),
		Currency: stripe.String(strings.ToLower(req.Currency)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	if req.PayerEmail != "" {
		params.ReceiptEmail = stripe.String(req.PayerEmail)
	}
	if req.Reference != "" {
		params.AddMetadata("reference", req.Reference)
	}
	params.Context = ctx

	pi, err := s.intents.New(params)
	if err != nil {
		var se *stripe.Error
		if errors.As(err, &se) && se.Type == stripe.ErrorTypeCard {
			return Result{Status: StatusDeclined, Provider: s.Name(), Detail: se.Msg}
		}
		return unavailable(s.Name(), err)
	}

	return Result{
		Status:    StatusSuccess,
		Provider:  s.Name(),
		Reference: pi.ID,
		Secret:    pi.ClientSecret,
	}
}

func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

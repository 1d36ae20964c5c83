package payment

import "context"

type Status string

const (
	StatusSuccess     Status = "success"
	StatusDeclined    Status = "declined"
	StatusUnavailable Status = "unavailable"
)

// Request is one payment to initialize. Amount is in major currency units.
type Request struct {
	Amount     float64
	Currency   string
	PayerEmail string
	PayerPhone string
	Reference  string
	Title      string
}

// Result is the tagged outcome of one provider attempt.
type Result struct {
	Status      Status `json:"status"`
	Provider    string `json:"provider"`
	Reference   string `json:"reference,omitempty"`
	RedirectURL string `json:"redirect_url,omitempty"`
	Secret      string `json:"client_secret,omitempty"`
	Detail      string `json:"detail,omitempty"`
}

// Provider initializes a payment. It never returns a Go error: transport
// and configuration failures are reported as StatusUnavailable.
type Provider interface {
	Name() string
	Initialize(ctx context.Context, req Request) Result
}

func unavailable(provider string, err error) Result {
	return Result{Status: StatusUnavailable, Provider: provider, Detail: err.Error()}
}

package payment

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/expert-scheduler/internal/httperr"
)

var (
	ErrDeclined    = httperr.Validation("payment_declined", "The payment was declined.")
	errNoProviders = errors.New("payment: no provider available")
)

// Chain tries providers in order. It stops at the first success or decline
// and moves on only when a provider is unavailable.
type Chain struct {
	providers []Provider
	logger    *zap.Logger
}

func NewChain(logger *zap.Logger, providers ...Provider) *Chain {
	if logger == nil {
		logger = zap.NewNop()
	}
	out := make([]Provider, 0, len(providers))
	for _, p := range providers {
		if p != nil {
			out = append(out, p)
		}
	}
	return &Chain{providers: out, logger: logger}
}

func (c *Chain) Initialize(ctx context.Context, req Request) (Result, error) {
	if req.Amount <= 0 {
		return Result{}, httperr.Validation("invalid_amount", "Amount must be greater than zero.")
	}

	last := Result{Status: StatusUnavailable}
	for _, p := range c.providers {
		res := p.Initialize(ctx, req)
		if res.Provider == "" {
			res.Provider = p.Name()
		}

		switch res.Status {
		case StatusSuccess:
			return res, nil
		case StatusDeclined:
			return res, ErrDeclined
		}

		c.logger.Warn("payment provider unavailable",
			zap.String("provider", res.Provider),
			zap.String("detail", res.Detail),
		)
		last = res
	}

	return last, httperr.External("payment_unavailable", errNoProviders)
}

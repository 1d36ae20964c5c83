package notify

import (
	"context"

	"go.uber.org/zap"
)

type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) error
}

// StubSMSSender logs instead of sending. No SMS provider is wired yet.
type StubSMSSender struct {
	logger *zap.Logger
}

func NewStubSMSSender(logger *zap.Logger) *StubSMSSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StubSMSSender{logger: logger}
}

func (s *StubSMSSender) SendSMS(_ context.Context, to, body string) error {
	s.logger.Info("stub sms sender: would send sms",
		zap.String("to", to),
		zap.Int("length", len(body)),
	)
	return nil
}

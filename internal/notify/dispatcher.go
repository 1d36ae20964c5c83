package notify

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Notification is one outbound message on a single channel. Exactly one of
// Email or Phone is set.
type Notification struct {
	Email *EmailMessage
	Phone string
	SMS   string
}

// FailureObserver is told about every delivery that failed.
type FailureObserver interface {
	ObserveSideEffectFailure(kind string)
}

// Dispatcher delivers notifications in the background. A full queue drops
// the notification; callers are never blocked or failed.
type Dispatcher struct {
	email    EmailSender
	sms      SMSSender
	logger   *zap.Logger
	observer FailureObserver
	timeout  time.Duration

	queue chan Notification
	wg    sync.WaitGroup
	once  sync.Once
}

func NewDispatcher(email EmailSender, sms SMSSender, size int, logger *zap.Logger, observer FailureObserver) *Dispatcher {
	if size <= 0 {
		size = 100
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	d := &Dispatcher{
		email:    email,
		sms:      sms,
		logger:   logger,
		observer: observer,
		timeout:  10 * time.Second,
		queue:    make(chan Notification, size),
	}

	d.wg.Add(1)
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for n := range d.queue {
		d.deliver(n)
	}
}

func (d *Dispatcher) deliver(n Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	var (
		err  error
		kind string
	)
	switch {
	case n.Email != nil && d.email != nil:
		kind = "email"
		err = d.email.Send(ctx, *n.Email)
	case n.Phone != "" && d.sms != nil:
		kind = "sms"
		err = d.sms.SendSMS(ctx, n.Phone, n.SMS)
	default:
		return
	}

	if err != nil {
		d.logger.Warn("notification failed", zap.String("channel", kind), zap.Error(err))
		if d.observer != nil {
			d.observer.ObserveSideEffectFailure("notify_" + kind)
		}
	}
}

// Dispatch enqueues n without blocking.
func (d *Dispatcher) Dispatch(n Notification) {
	select {
	case d.queue <- n:
	default:
		d.logger.Warn("notification queue full, dropping")
	}
}

// Close stops accepting work and waits for the queue to drain.
func (d *Dispatcher) Close() {
	d.once.Do(func() {
		close(d.queue)
	})
	d.wg.Wait()
}

// Package dispatcher delivers shipping progress notifications requested over
// kafka, retrying transient failures.
package dispatcher

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/BearBump/OrderTrack/internal/broker/kafka"
	"github.com/BearBump/OrderTrack/internal/broker/messages"
	"github.com/BearBump/OrderTrack/internal/metrics"
	"github.com/BearBump/OrderTrack/internal/models"
	"github.com/BearBump/OrderTrack/internal/services/notifications"
)

type Consumer interface {
	Consume(ctx context.Context, handler kafka.Handler) error
}

type Sender interface {
	SendShippingProgressNotification(ctx context.Context, buyerID, trackedOrderID int64, status string, deliveryDate time.Time) error
}

type Dispatcher struct {
	consumer Consumer
	sender   Sender
	log      *zap.Logger

	backoff      *Backoff
	maxAttempts  int
	restartDelay time.Duration

	startedAtUnixNano   int64
	lastMessageUnixNano atomic.Int64
	totalReceived       atomic.Int64
	totalDelivered      atomic.Int64
	totalDropped        atomic.Int64
	totalRetries        atomic.Int64
	consuming           atomic.Bool
	lastErrorMu         sync.Mutex
	lastError           string
}

func New(consumer Consumer, sender Sender, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{
		consumer:          consumer,
		sender:            sender,
		log:               log,
		backoff:           NewBackoff(DefaultBackoffConfig(), nil),
		maxAttempts:       4,
		restartDelay:      2 * time.Second,
		startedAtUnixNano: time.Now().UTC().UnixNano(),
	}
}

func (d *Dispatcher) WithSettings(maxAttempts int, restartDelay time.Duration) *Dispatcher {
	if maxAttempts > 0 {
		d.maxAttempts = maxAttempts
	}
	if restartDelay > 0 {
		d.restartDelay = restartDelay
	}
	return d
}

func (d *Dispatcher) WithBackoff(cfg BackoffConfig) *Dispatcher {
	d.backoff = NewBackoff(cfg, nil)
	return d
}

type Stats struct {
	StartedAt      time.Time  `json:"startedAt"`
	LastMessageAt  *time.Time `json:"lastMessageAt,omitempty"`
	TotalReceived  int64      `json:"totalReceived"`
	TotalDelivered int64      `json:"totalDelivered"`
	TotalDropped   int64      `json:"totalDropped"`
	TotalRetries   int64      `json:"totalRetries"`
	Consuming      bool       `json:"consuming"`
	LastError      string     `json:"lastError,omitempty"`
}

func (d *Dispatcher) Stats() Stats {
	st := Stats{
		StartedAt:      time.Unix(0, d.startedAtUnixNano).UTC(),
		TotalReceived:  d.totalReceived.Load(),
		TotalDelivered: d.totalDelivered.Load(),
		TotalDropped:   d.totalDropped.Load(),
		TotalRetries:   d.totalRetries.Load(),
		Consuming:      d.consuming.Load(),
	}
	if n := d.lastMessageUnixNano.Load(); n > 0 {
		t := time.Unix(0, n).UTC()
		st.LastMessageAt = &t
	}
	d.lastErrorMu.Lock()
	st.LastError = d.lastError
	d.lastErrorMu.Unlock()
	return st
}

// Run consumes until ctx is done. A broken consumer loop is restarted after
// restartDelay; uncommitted messages are then fetched again.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		d.consuming.Store(true)
		err := d.consumer.Consume(ctx, d.Handle)
		d.consuming.Store(false)

		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			d.setLastError(err)
			d.log.Error("consume shipping progress", zap.Error(err))
		}
		if err := sleep(ctx, d.restartDelay); err != nil {
			return err
		}
	}
}

// Handle delivers one message. It returns an error only when ctx is done, so
// the message stays uncommitted; anything else is delivered or dropped.
func (d *Dispatcher) Handle(ctx context.Context, msg kafka.Message) error {
	d.totalReceived.Add(1)
	d.lastMessageUnixNano.Store(time.Now().UTC().UnixNano())

	req, err := messages.DecodeShippingProgressRequested(msg.Value)
	if err != nil {
		d.drop(err, zap.Int64("offset", msg.Offset))
		return nil
	}
	log := d.log.With(
		zap.String("event_id", req.EventID),
		zap.Int64("buyer_id", req.BuyerID),
		zap.Int64("tracked_order_id", req.TrackedOrderID),
	)

	for attempt := 1; ; attempt++ {
		err := d.sender.SendShippingProgressNotification(ctx, req.BuyerID, req.TrackedOrderID, req.Status, req.DeliveryDate)
		if err == nil {
			d.totalDelivered.Add(1)
			log.Debug("shipping progress delivered", zap.Int("attempt", attempt))
			return nil
		}
		if !retryable(err) || attempt >= d.maxAttempts {
			d.drop(err, zap.String("event_id", req.EventID), zap.Int("attempts", attempt))
			return nil
		}

		d.totalRetries.Add(1)
		metrics.DispatchRetriesTotal.Inc()
		log.Warn("shipping progress delivery failed, retrying", zap.Int("attempt", attempt), zap.Error(err))
		if err := sleep(ctx, d.backoff.Delay(attempt)); err != nil {
			return err
		}
	}
}

func (d *Dispatcher) drop(err error, fields ...zap.Field) {
	d.totalDropped.Add(1)
	d.setLastError(err)
	metrics.NotificationFailuresSwallowedTotal.WithLabelValues("dispatch").Inc()
	d.log.Warn("shipping progress dropped", append(fields, zap.Error(err))...)
}

func (d *Dispatcher) setLastError(err error) {
	d.lastErrorMu.Lock()
	d.lastError = err.Error()
	d.lastErrorMu.Unlock()
}

// retryable reports whether another attempt can change the outcome.
func retryable(err error) bool {
	switch {
	case errors.Is(err, notifications.ErrThrottled),
		errors.Is(err, models.ErrInvalidArgument),
		errors.Is(err, models.ErrUnsupportedVariant):
		return false
	default:
		return true
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Package notifications stores, renders and sends user notifications.
package notifications

import (
	"context"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/BearBump/OrderTrack/internal/metrics"
	"github.com/BearBump/OrderTrack/internal/models"
)

// ErrThrottled is returned when a buyer received too many shipping progress
// notifications within the rate limit window.
var ErrThrottled = errors.New("notification throttled")

type Store interface {
	AddNotification(ctx context.Context, n models.Notification) (int64, error)
	GetNotificationsForUser(ctx context.Context, recipientID int64) ([]models.Notification, error)
	MarkAsRead(ctx context.Context, notificationID int64) error
}

type RateLimiter interface {
	Allow(ctx context.Context, subject string, limit int64, window time.Duration) (bool, int64, error)
}

type Service struct {
	store Store
	log   *zap.Logger
	now   func() time.Time

	rl       RateLimiter
	rlLimit  int64
	rlWindow time.Duration
}

func New(store Store, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		store: store,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// WithRateLimit throttles shipping progress notifications per buyer.
// A nil limiter or non-positive limit disables throttling.
func (s *Service) WithRateLimit(rl RateLimiter, limit int64, window time.Duration) *Service {
	s.rl = rl
	s.rlLimit = limit
	s.rlWindow = window
	return s
}

func (s *Service) AddNotification(ctx context.Context, n models.Notification) (int64, error) {
	n = models.ValueOf(n)
	if n == nil {
		return 0, errors.Wrap(models.ErrUnsupportedVariant, "nil notification")
	}
	id, err := s.store.AddNotification(ctx, n)
	if err != nil {
		return 0, err
	}
	metrics.NotificationsSentTotal.WithLabelValues(string(n.Category())).Inc()
	return id, nil
}

func (s *Service) GetNotificationsForUser(ctx context.Context, recipientID int64) ([]models.Notification, error) {
	return s.store.GetNotificationsForUser(ctx, recipientID)
}

func (s *Service) MarkAsRead(ctx context.Context, notificationID int64) error {
	return s.store.MarkAsRead(ctx, notificationID)
}

func (s *Service) UnreadCount(ctx context.Context, recipientID int64) (int, error) {
	list, err := s.store.GetNotificationsForUser(ctx, recipientID)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, it := range list {
		if !it.Header().IsRead {
			n++
		}
	}
	return n, nil
}

// SendShippingProgressNotification records an order shipping progress
// notification for buyerID about trackedOrderID.
func (s *Service) SendShippingProgressNotification(ctx context.Context, buyerID, trackedOrderID int64, status string, deliveryDate time.Time) error {
	if buyerID <= 0 {
		return errors.Wrapf(models.ErrInvalidArgument, "buyer id %d", buyerID)
	}

	if s.rl != nil && s.rlLimit > 0 {
		allowed, count, err := s.rl.Allow(ctx, strconv.FormatInt(buyerID, 10), s.rlLimit, s.rlWindow)
		switch {
		case err != nil:
			// limiter outage must not block notifications
			s.log.Warn("rate limiter unavailable", zap.Int64("buyer_id", buyerID), zap.Error(err))
		case !allowed:
			metrics.NotificationsThrottledTotal.Inc()
			s.log.Info("shipping notification throttled",
				zap.Int64("buyer_id", buyerID), zap.Int64("count", count))
			return errors.Wrapf(ErrThrottled, "buyer %d", buyerID)
		}
	}

	_, err := s.AddNotification(ctx, models.OrderShippingProgress{
		NotificationBase: models.NotificationBase{
			RecipientID: buyerID,
			Timestamp:   s.now(),
		},
		OrderID:       trackedOrderID,
		ShippingState: status,
		DeliveryDate:  models.DateOf(deliveryDate),
	})
	return err
}

// Package trackedorders coordinates tracked orders, their checkpoint history
// and the shipping progress notifications sent to buyers.
package trackedorders

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/BearBump/OrderTrack/internal/cache"
	"github.com/BearBump/OrderTrack/internal/metrics"
	"github.com/BearBump/OrderTrack/internal/models"
)

type Store interface {
	AddTrackedOrder(ctx context.Context, o models.TrackedOrder) (int64, error)
	AddOrderCheckpoint(ctx context.Context, c models.OrderCheckpoint) (int64, error)
	DeleteTrackedOrder(ctx context.Context, trackedOrderID int64) (bool, error)
	DeleteOrderCheckpoint(ctx context.Context, checkpointID int64) (bool, error)
	GetTrackedOrderByID(ctx context.Context, trackedOrderID int64) (*models.TrackedOrder, error)
	GetOrderCheckpointByID(ctx context.Context, checkpointID int64) (*models.OrderCheckpoint, error)
	GetAllTrackedOrders(ctx context.Context) ([]*models.TrackedOrder, error)
	GetAllOrderCheckpoints(ctx context.Context, trackedOrderID int64) ([]*models.OrderCheckpoint, error)
	UpdateTrackedOrder(ctx context.Context, upd models.TrackedOrderUpdate) error
	UpdateOrderCheckpoint(ctx context.Context, upd models.CheckpointUpdate) error
}

// OrderLookup resolves the order behind a tracked order, mainly to find its buyer.
type OrderLookup interface {
	GetOrderByID(ctx context.Context, orderID int64) (*models.Order, bool, error)
}

type NotificationSender interface {
	SendShippingProgressNotification(ctx context.Context, buyerID, trackedOrderID int64, status string, deliveryDate time.Time) error
}

type Service struct {
	store  Store
	orders OrderLookup
	sender NotificationSender
	log    *zap.Logger
	now    func() time.Time

	cache    cache.BytesCache
	cacheTTL time.Duration

	notifyOn map[models.OrderStatus]struct{}
}

func New(store Store, orders OrderLookup, sender NotificationSender, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		store:    store,
		orders:   orders,
		sender:   sender,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
		notifyOn: map[models.OrderStatus]struct{}{models.OrderStatusShipped: {}},
	}
}

// WithCache enables read-through caching of GetTrackedOrder. A nil cache or
// non-positive ttl keeps caching off.
func (s *Service) WithCache(c cache.BytesCache, ttl time.Duration) *Service {
	s.cache = c
	s.cacheTTL = ttl
	return s
}

// WithNotifyStatuses replaces the set of statuses that trigger a shipping
// progress notification on update. An empty list keeps the current set.
func (s *Service) WithNotifyStatuses(statuses []models.OrderStatus) *Service {
	if len(statuses) == 0 {
		return s
	}
	s.notifyOn = make(map[models.OrderStatus]struct{}, len(statuses))
	for _, st := range statuses {
		s.notifyOn[st] = struct{}{}
	}
	return s
}

func (s *Service) notifyWorthy(st models.OrderStatus) bool {
	_, ok := s.notifyOn[st]
	return ok
}

// AddTrackedOrder persists o and announces it to the buyer. The new id is
// returned even when the buyer cannot be resolved or the notification fails.
func (s *Service) AddTrackedOrder(ctx context.Context, o models.TrackedOrder) (int64, error) {
	if o.OrderID <= 0 {
		return 0, errors.Wrapf(models.ErrInvalidArgument, "order id %d", o.OrderID)
	}
	if o.CurrentStatus == "" {
		o.CurrentStatus = models.OrderStatusProcessing
	}
	if !o.CurrentStatus.Valid() {
		return 0, errors.Wrapf(models.ErrInvalidArgument, "status %q", o.CurrentStatus)
	}
	o.EstimatedDeliveryDate = models.DateOf(o.EstimatedDeliveryDate)

	id, err := s.store.AddTrackedOrder(ctx, o)
	if err != nil {
		return 0, err
	}
	metrics.TrackedOrdersCreatedTotal.Inc()

	s.notifyShippingProgress(ctx, o.OrderID, id, o.CurrentStatus, o.EstimatedDeliveryDate)
	return id, nil
}

// UpdateTrackedOrder replaces delivery date and status, keeping the address.
// A notify-worthy status is announced to the buyer.
func (s *Service) UpdateTrackedOrder(ctx context.Context, trackedOrderID int64, deliveryDate time.Time, status models.OrderStatus) error {
	if !status.Valid() {
		return errors.Wrapf(models.ErrInvalidArgument, "status %q", status)
	}
	upd := models.TrackedOrderUpdate{
		TrackedOrderID:        trackedOrderID,
		EstimatedDeliveryDate: models.DateOf(deliveryDate),
		Status:                status,
	}
	if err := s.applyUpdate(ctx, upd); err != nil {
		return err
	}

	if !s.notifyWorthy(status) {
		return nil
	}
	cur, err := s.store.GetTrackedOrderByID(ctx, trackedOrderID)
	if err != nil {
		s.swallow("lookup", trackedOrderID, 0, err)
		return nil
	}
	s.notifyShippingProgress(ctx, cur.OrderID, trackedOrderID, status, upd.EstimatedDeliveryDate)
	return nil
}

// UpdateTrackedOrderFor applies upd only when the tracked order belongs to
// orderID. A mismatch reports false and leaves the store untouched.
func (s *Service) UpdateTrackedOrderFor(ctx context.Context, orderID int64, upd models.TrackedOrderUpdate) (bool, error) {
	if !upd.Status.Valid() {
		return false, errors.Wrapf(models.ErrInvalidArgument, "status %q", upd.Status)
	}
	cur, err := s.store.GetTrackedOrderByID(ctx, upd.TrackedOrderID)
	if err != nil {
		return false, err
	}
	if cur.OrderID != orderID {
		return false, nil
	}

	upd.EstimatedDeliveryDate = models.DateOf(upd.EstimatedDeliveryDate)
	if err := s.applyUpdate(ctx, upd); err != nil {
		return false, err
	}
	if s.notifyWorthy(upd.Status) {
		s.notifyShippingProgress(ctx, orderID, upd.TrackedOrderID, upd.Status, upd.EstimatedDeliveryDate)
	}
	return true, nil
}

func (s *Service) applyUpdate(ctx context.Context, upd models.TrackedOrderUpdate) error {
	if err := s.store.UpdateTrackedOrder(ctx, upd); err != nil {
		return err
	}
	metrics.StatusUpdatesTotal.WithLabelValues(string(upd.Status)).Inc()
	s.dropCached(ctx, upd.TrackedOrderID)
	return nil
}

func (s *Service) GetTrackedOrder(ctx context.Context, trackedOrderID int64) (*models.TrackedOrder, error) {
	useCache := s.cache != nil && s.cacheTTL > 0
	key := currentKey(trackedOrderID)

	if useCache {
		if b, ok, err := s.cache.Get(ctx, key); err == nil && ok {
			var o models.TrackedOrder
			if json.Unmarshal(b, &o) == nil {
				return &o, nil
			}
		}
	}

	o, err := s.store.GetTrackedOrderByID(ctx, trackedOrderID)
	if err != nil {
		return nil, err
	}
	if useCache {
		b, _ := json.Marshal(o)
		_ = s.cache.Set(ctx, key, b, s.cacheTTL)
	}
	return o, nil
}

func (s *Service) GetAllTrackedOrders(ctx context.Context) ([]*models.TrackedOrder, error) {
	return s.store.GetAllTrackedOrders(ctx)
}

func (s *Service) DeleteTrackedOrder(ctx context.Context, trackedOrderID int64) (bool, error) {
	ok, err := s.store.DeleteTrackedOrder(ctx, trackedOrderID)
	if err != nil {
		return false, err
	}
	s.dropCached(ctx, trackedOrderID)
	return ok, nil
}

// notifyShippingProgress is fire-and-forget: every failure is logged, counted
// and dropped.
func (s *Service) notifyShippingProgress(ctx context.Context, orderID, trackedOrderID int64, status models.OrderStatus, deliveryDate time.Time) {
	if s.sender == nil || s.orders == nil {
		return
	}

	order, found, err := s.orders.GetOrderByID(ctx, orderID)
	if err != nil {
		s.swallow("lookup", trackedOrderID, 0, err)
		return
	}
	if !found || order == nil {
		s.swallow("lookup", trackedOrderID, 0, errors.Wrapf(models.ErrNotFound, "order %d", orderID))
		return
	}

	if err := s.sender.SendShippingProgressNotification(ctx, order.BuyerID, trackedOrderID, string(status), deliveryDate); err != nil {
		s.swallow("send", trackedOrderID, order.BuyerID, err)
	}
}

func (s *Service) swallow(stage string, trackedOrderID, buyerID int64, err error) {
	metrics.NotificationFailuresSwallowedTotal.WithLabelValues(stage).Inc()
	s.log.Warn("shipping notification dropped",
		zap.String("stage", stage),
		zap.Int64("tracked_order_id", trackedOrderID),
		zap.Int64("buyer_id", buyerID),
		zap.Error(err),
	)
}

func (s *Service) dropCached(ctx context.Context, trackedOrderID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, currentKey(trackedOrderID)); err != nil {
		s.log.Debug("drop cached tracked order", zap.Int64("tracked_order_id", trackedOrderID), zap.Error(err))
	}
}

func currentKey(trackedOrderID int64) string {
	return fmt.Sprintf("tracked_order:%d:current", trackedOrderID)
}

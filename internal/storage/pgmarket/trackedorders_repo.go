package pgmarket

import (
	"context"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/pkg/errors"

	"github.com/BearBump/OrderTrack/internal/models"
)

const selectTrackedOrders = `
SELECT tracked_order_id, order_id, order_status, estimated_delivery_date, delivery_address
FROM tracked_orders`

func (s *Storage) AddTrackedOrder(ctx context.Context, o models.TrackedOrder) (int64, error) {
	return s.insert(ctx, procInsertTrackedOrder,
		o.OrderID, string(o.CurrentStatus), models.DateOf(o.EstimatedDeliveryDate), o.DeliveryAddress)
}

func (s *Storage) DeleteTrackedOrder(ctx context.Context, trackedOrderID int64) (bool, error) {
	n, err := s.nonQuery(ctx, procDeleteTrackedOrder, trackedOrderID)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Storage) GetTrackedOrderByID(ctx context.Context, trackedOrderID int64) (*models.TrackedOrder, error) {
	var o models.TrackedOrder
	err := pgxscan.Get(ctx, s.db, &o, selectTrackedOrders+` WHERE tracked_order_id = $1`, trackedOrderID)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, errors.Wrapf(models.ErrNotFound, "tracked order %d", trackedOrderID)
		}
		return nil, errors.Wrap(err, "select tracked order")
	}
	return &o, nil
}

func (s *Storage) GetAllTrackedOrders(ctx context.Context) ([]*models.TrackedOrder, error) {
	out := []*models.TrackedOrder{}
	if err := pgxscan.Select(ctx, s.db, &out, selectTrackedOrders+` ORDER BY tracked_order_id`); err != nil {
		return nil, errors.Wrap(err, "select tracked orders")
	}
	return out, nil
}

// UpdateTrackedOrder replaces date, status and, when given, the address.
// Last write wins.
func (s *Storage) UpdateTrackedOrder(ctx context.Context, upd models.TrackedOrderUpdate) error {
	n, err := s.nonQuery(ctx, procUpdateTrackedOrder,
		upd.TrackedOrderID, models.DateOf(upd.EstimatedDeliveryDate), string(upd.Status), upd.DeliveryAddress)
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.Wrapf(models.ErrNotFound, "tracked order %d", upd.TrackedOrderID)
	}
	return nil
}

package models

import (
	"time"

	"github.com/pkg/errors"
)

// OrderStatus is a delivery lifecycle state. No transition graph is enforced:
// any status may follow any other.
type OrderStatus string

const (
	OrderStatusProcessing     OrderStatus = "PROCESSING"
	OrderStatusShipped        OrderStatus = "SHIPPED"
	OrderStatusInWarehouse    OrderStatus = "IN_WAREHOUSE"
	OrderStatusInTransit      OrderStatus = "IN_TRANSIT"
	OrderStatusOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	OrderStatusDelivered      OrderStatus = "DELIVERED"
)

var orderStatuses = map[OrderStatus]struct{}{
	OrderStatusProcessing:     {},
	OrderStatusShipped:        {},
	OrderStatusInWarehouse:    {},
	OrderStatusInTransit:      {},
	OrderStatusOutForDelivery: {},
	OrderStatusDelivered:      {},
}

func (s OrderStatus) Valid() bool {
	_, ok := orderStatuses[s]
	return ok
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	st := OrderStatus(s)
	if !st.Valid() {
		return "", errors.Wrapf(ErrInvalidArgument, "unknown order status %q", s)
	}
	return st, nil
}

// TrackedOrder follows delivery progress of exactly one Order.
type TrackedOrder struct {
	TrackedOrderID        int64       `db:"tracked_order_id" json:"tracked_order_id"`
	OrderID               int64       `db:"order_id" json:"order_id"`
	CurrentStatus         OrderStatus `db:"order_status" json:"current_status"`
	EstimatedDeliveryDate time.Time   `db:"estimated_delivery_date" json:"estimated_delivery_date"`
	DeliveryAddress       string      `db:"delivery_address" json:"delivery_address"`
}

// OrderCheckpoint is one append-only entry of a tracked order's history.
// The latest checkpoint is the one with the greatest CheckpointID.
type OrderCheckpoint struct {
	CheckpointID   int64       `db:"checkpoint_id" json:"checkpoint_id"`
	Timestamp      time.Time   `db:"checkpoint_timestamp" json:"timestamp"`
	Location       *string     `db:"location" json:"location,omitempty"`
	Description    string      `db:"description" json:"description"`
	Status         OrderStatus `db:"checkpoint_status" json:"status"`
	TrackedOrderID int64       `db:"tracked_order_id" json:"tracked_order_id"`
}

// TrackedOrderUpdate replaces the mutable fields of a tracked order.
// A nil DeliveryAddress keeps the stored address.
type TrackedOrderUpdate struct {
	TrackedOrderID        int64
	EstimatedDeliveryDate time.Time
	Status                OrderStatus
	DeliveryAddress       *string
}

// CheckpointUpdate replaces every mutable field of a checkpoint.
type CheckpointUpdate struct {
	CheckpointID int64
	Timestamp    time.Time
	Location     *string
	Description  string
	Status       OrderStatus
}

// DateOf drops the time component. The calendar date is taken in t's own
// location and returned labelled as UTC midnight, without converting t to UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

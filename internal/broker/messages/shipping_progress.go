package messages

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

const TopicShippingProgress = "notifications.shipping_progress"

// ShippingProgressRequested asks the notify worker to record an
// order shipping progress notification for a buyer.
type ShippingProgressRequested struct {
	EventID        string    `json:"event_id"`
	BuyerID        int64     `json:"buyer_id"`
	TrackedOrderID int64     `json:"tracked_order_id"`
	Status         string    `json:"status"`
	DeliveryDate   time.Time `json:"delivery_date"`
	RequestedAt    time.Time `json:"requested_at"`
}

func (m ShippingProgressRequested) Validate() error {
	if m.EventID == "" {
		return errors.New("event_id is required")
	}
	if m.BuyerID <= 0 {
		return errors.New("buyer_id is required")
	}
	if m.TrackedOrderID <= 0 {
		return errors.New("tracked_order_id is required")
	}
	if m.Status == "" {
		return errors.New("status is required")
	}
	return nil
}

func DecodeShippingProgressRequested(b []byte) (ShippingProgressRequested, error) {
	var m ShippingProgressRequested
	if err := json.Unmarshal(b, &m); err != nil {
		return m, errors.Wrap(err, "decode shipping progress")
	}
	if err := m.Validate(); err != nil {
		return m, err
	}
	return m, nil
}

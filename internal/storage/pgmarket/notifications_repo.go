package pgmarket

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/BearBump/OrderTrack/internal/models"
)

// notificationParams mirrors the AddNotification argument list. Columns a
// variant does not use stay nil and are stored as NULL.
type notificationParams struct {
	RecipientID    int64
	Timestamp      time.Time
	Category       models.NotificationCategory
	ContractID     *int64
	IsAccepted     *bool
	ProductID      *int64
	OrderID        *int64
	ShippingState  *string
	DeliveryDate   *time.Time
	ExpirationDate *time.Time
}

func (p notificationParams) args() []any {
	return []any{
		p.RecipientID, p.Timestamp.UTC(), string(p.Category),
		p.ContractID, p.IsAccepted, p.ProductID, p.OrderID,
		p.ShippingState, p.DeliveryDate, p.ExpirationDate,
	}
}

// notificationRow is one row of the wide notifications table.
type notificationRow struct {
	NotificationID int64      `db:"notification_id"`
	RecipientID    int64      `db:"recipient_id"`
	Timestamp      time.Time  `db:"notification_timestamp"`
	IsRead         bool       `db:"is_read"`
	Category       string     `db:"category"`
	ContractID     *int64     `db:"contract_id"`
	IsAccepted     *bool      `db:"is_accepted"`
	ProductID      *int64     `db:"product_id"`
	OrderID        *int64     `db:"order_id"`
	ShippingState  *string    `db:"shipping_state"`
	DeliveryDate   *time.Time `db:"delivery_date"`
	ExpirationDate *time.Time `db:"expiration_date"`
}

func ptr[T any](v T) *T { return &v }

func val[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func bindNotification(n models.Notification) (notificationParams, error) {
	n = models.ValueOf(n)
	if n == nil {
		return notificationParams{}, errors.Wrap(models.ErrUnsupportedVariant, "nil notification")
	}

	h := n.Header()
	p := notificationParams{
		RecipientID: h.RecipientID,
		Timestamp:   h.Timestamp,
		Category:    n.Category(),
	}
	if p.Timestamp.IsZero() {
		p.Timestamp = time.Now().UTC()
	}

	switch v := n.(type) {
	case models.ContractRenewalAnswer:
		p.ContractID = ptr(v.ContractID)
		p.IsAccepted = ptr(v.IsAccepted)
	case models.ContractRenewalWaitlist:
		p.ProductID = ptr(v.ProductID)
	case models.Outbidded:
		p.ProductID = ptr(v.ProductID)
	case models.OrderShippingProgress:
		p.OrderID = ptr(v.OrderID)
		p.ShippingState = ptr(v.ShippingState)
		p.DeliveryDate = ptr(models.DateOf(v.DeliveryDate))
	case models.PaymentConfirmation:
		p.OrderID = ptr(v.OrderID)
		p.ProductID = ptr(v.ProductID)
	case models.ProductRemoved:
		p.ProductID = ptr(v.ProductID)
	case models.ProductAvailable:
		p.ProductID = ptr(v.ProductID)
	case models.ContractRenewalRequest:
		p.ContractID = ptr(v.ContractID)
	case models.ContractExpiration:
		p.ContractID = ptr(v.ContractID)
		p.ExpirationDate = ptr(v.ExpirationDate.UTC())
	default:
		return notificationParams{}, errors.Wrapf(models.ErrUnsupportedVariant, "%T", n)
	}

	return p, nil
}

func notificationFromRow(r notificationRow) (models.Notification, error) {
	base := models.NotificationBase{
		NotificationID: r.NotificationID,
		RecipientID:    r.RecipientID,
		Timestamp:      r.Timestamp,
		IsRead:         r.IsRead,
	}

	switch models.NotificationCategory(r.Category) {
	case models.CategoryContractRenewalAnswer:
		return models.ContractRenewalAnswer{NotificationBase: base, ContractID: val(r.ContractID), IsAccepted: val(r.IsAccepted)}, nil
	case models.CategoryContractRenewalWaitlist:
		return models.ContractRenewalWaitlist{NotificationBase: base, ProductID: val(r.ProductID)}, nil
	case models.CategoryOutbidded:
		return models.Outbidded{NotificationBase: base, ProductID: val(r.ProductID)}, nil
	case models.CategoryOrderShippingProgress:
		return models.OrderShippingProgress{
			NotificationBase: base,
			OrderID:          val(r.OrderID),
			ShippingState:    val(r.ShippingState),
			DeliveryDate:     val(r.DeliveryDate),
		}, nil
	case models.CategoryPaymentConfirmation:
		return models.PaymentConfirmation{NotificationBase: base, OrderID: val(r.OrderID), ProductID: val(r.ProductID)}, nil
	case models.CategoryProductRemoved:
		return models.ProductRemoved{NotificationBase: base, ProductID: val(r.ProductID)}, nil
	case models.CategoryProductAvailable:
		return models.ProductAvailable{NotificationBase: base, ProductID: val(r.ProductID)}, nil
	case models.CategoryContractRenewalRequest:
		return models.ContractRenewalRequest{NotificationBase: base, ContractID: val(r.ContractID)}, nil
	case models.CategoryContractExpiration:
		return models.ContractExpiration{NotificationBase: base, ContractID: val(r.ContractID), ExpirationDate: val(r.ExpirationDate)}, nil
	default:
		return nil, errors.Wrapf(models.ErrUnsupportedVariant, "category %q", r.Category)
	}
}

func (s *Storage) AddNotification(ctx context.Context, n models.Notification) (int64, error) {
	p, err := bindNotification(n)
	if err != nil {
		return 0, err
	}
	return s.insert(ctx, procAddNotification, p.args()...)
}

// GetNotificationsForUser returns the recipient's notifications, newest first.
func (s *Storage) GetNotificationsForUser(ctx context.Context, recipientID int64) ([]models.Notification, error) {
	var rows []notificationRow
	if err := s.reader(ctx, procGetNotificationsByRecipient, &rows, recipientID); err != nil {
		return nil, err
	}

	out := make([]models.Notification, 0, len(rows))
	for _, r := range rows {
		n, err := notificationFromRow(r)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// MarkAsRead is idempotent: marking an already-read or missing notification is not an error.
func (s *Storage) MarkAsRead(ctx context.Context, notificationID int64) error {
	_, err := s.nonQuery(ctx, procMarkNotificationAsRead, notificationID)
	return err
}

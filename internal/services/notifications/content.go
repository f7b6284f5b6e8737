package notifications

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/BearBump/OrderTrack/internal/models"
)

const dateLayout = "Jan 2, 2006"

// Content is the user-facing text of a notification.
type Content struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Body     string `json:"body"`
}

// Render builds the display text of a notification. It has no side effects.
func Render(n models.Notification) (Content, error) {
	switch v := models.ValueOf(n).(type) {
	case models.ContractRenewalAnswer:
		if v.IsAccepted {
			return Content{
				Title:    "Contract Renewal Answer",
				Subtitle: fmt.Sprintf("Contract %d", v.ContractID),
				Body:     fmt.Sprintf("Your renewal request for contract %d was accepted.", v.ContractID),
			}, nil
		}
		return Content{
			Title:    "Contract Renewal Answer",
			Subtitle: fmt.Sprintf("Contract %d", v.ContractID),
			Body:     fmt.Sprintf("Your renewal request for contract %d was denied.", v.ContractID),
		}, nil
	case models.ContractRenewalWaitlist:
		return Content{
			Title:    "Contract Renewal in Waitlist",
			Subtitle: fmt.Sprintf("Product %d", v.ProductID),
			Body:     fmt.Sprintf("Your renewal request for product %d is on the waitlist.", v.ProductID),
		}, nil
	case models.Outbidded:
		return Content{
			Title:    "Outbid",
			Subtitle: fmt.Sprintf("Product %d", v.ProductID),
			Body:     fmt.Sprintf("You've been outbid on product %d. Place a new bid to stay in the auction.", v.ProductID),
		}, nil
	case models.OrderShippingProgress:
		return Content{
			Title:    "Order Shipping Update",
			Subtitle: fmt.Sprintf("Order %d", v.OrderID),
			Body: fmt.Sprintf("Order %d has reached the %s stage. Estimated delivery on %s.",
				v.OrderID, v.ShippingState, v.DeliveryDate.Format(dateLayout)),
		}, nil
	case models.PaymentConfirmation:
		return Content{
			Title:    "Payment Confirmation",
			Subtitle: fmt.Sprintf("Order %d", v.OrderID),
			Body:     fmt.Sprintf("Your payment for product %d in order %d was confirmed.", v.ProductID, v.OrderID),
		}, nil
	case models.ProductRemoved:
		return Content{
			Title:    "Product Removed",
			Subtitle: fmt.Sprintf("Product %d", v.ProductID),
			Body:     fmt.Sprintf("Product %d is no longer available on the marketplace.", v.ProductID),
		}, nil
	case models.ProductAvailable:
		return Content{
			Title:    "Product Available",
			Subtitle: fmt.Sprintf("Product %d", v.ProductID),
			Body:     fmt.Sprintf("Product %d you were waiting for is available again.", v.ProductID),
		}, nil
	case models.ContractRenewalRequest:
		return Content{
			Title:    "Contract Renewal Request",
			Subtitle: fmt.Sprintf("Contract %d", v.ContractID),
			Body:     fmt.Sprintf("A renewal was requested for contract %d.", v.ContractID),
		}, nil
	case models.ContractExpiration:
		return Content{
			Title:    "Contract Expiration",
			Subtitle: fmt.Sprintf("Contract %d", v.ContractID),
			Body:     fmt.Sprintf("Contract %d will expire on %s.", v.ContractID, v.ExpirationDate.Format(dateLayout)),
		}, nil
	default:
		return Content{}, errors.Wrapf(models.ErrUnsupportedVariant, "%T", n)
	}
}

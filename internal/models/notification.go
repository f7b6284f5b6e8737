package models

import "time"

// NotificationCategory is the persisted discriminator of a notification row.
type NotificationCategory string

const (
	CategoryContractRenewalAnswer   NotificationCategory = "CONTRACT_RENEWAL_ANS"
	CategoryContractRenewalWaitlist NotificationCategory = "CONTRACT_RENEWAL_WAITLIST"
	CategoryOutbidded               NotificationCategory = "OUTBIDDED"
	CategoryOrderShippingProgress   NotificationCategory = "ORDER_SHIPPING_PROGRESS"
	CategoryPaymentConfirmation     NotificationCategory = "PAYMENT_CONFIRMATION"
	CategoryProductRemoved          NotificationCategory = "PRODUCT_REMOVED"
	CategoryProductAvailable        NotificationCategory = "PRODUCT_AVAILABLE"
	CategoryContractRenewalRequest  NotificationCategory = "CONTRACT_RENEWAL_REQUEST"
	CategoryContractExpiration      NotificationCategory = "CONTRACT_EXPIRATION"
)

// AllNotificationCategories is the closed set of variants. Adding a variant means
// extending this list, the storage binding/factory and the content templates.
var AllNotificationCategories = []NotificationCategory{
	CategoryContractRenewalAnswer,
	CategoryContractRenewalWaitlist,
	CategoryOutbidded,
	CategoryOrderShippingProgress,
	CategoryPaymentConfirmation,
	CategoryProductRemoved,
	CategoryProductAvailable,
	CategoryContractRenewalRequest,
	CategoryContractExpiration,
}

// Notification is implemented only by the variant types of this package.
// Pointer variants are accepted wherever a Notification is taken; see ValueOf.
type Notification interface {
	Category() NotificationCategory
	Header() NotificationBase
	notification()
}

// NotificationBase holds the fields shared by every variant.
type NotificationBase struct {
	NotificationID int64     `json:"notification_id"`
	RecipientID    int64     `json:"recipient_id"`
	Timestamp      time.Time `json:"timestamp"`
	IsRead         bool      `json:"is_read"`
}

func (b NotificationBase) Header() NotificationBase { return b }

func (NotificationBase) notification() {}

type ContractRenewalAnswer struct {
	NotificationBase
	ContractID int64 `json:"contract_id"`
	IsAccepted bool  `json:"is_accepted"`
}

func (ContractRenewalAnswer) Category() NotificationCategory { return CategoryContractRenewalAnswer }

type ContractRenewalWaitlist struct {
	NotificationBase
	ProductID int64 `json:"product_id"`
}

func (ContractRenewalWaitlist) Category() NotificationCategory {
	return CategoryContractRenewalWaitlist
}

type Outbidded struct {
	NotificationBase
	ProductID int64 `json:"product_id"`
}

func (Outbidded) Category() NotificationCategory { return CategoryOutbidded }

// OrderShippingProgress announces a delivery state change. OrderID carries the
// tracked order id handed to the shipping-progress sender.
type OrderShippingProgress struct {
	NotificationBase
	OrderID       int64     `json:"order_id"`
	ShippingState string    `json:"shipping_state"`
	DeliveryDate  time.Time `json:"delivery_date"`
}

func (OrderShippingProgress) Category() NotificationCategory { return CategoryOrderShippingProgress }

type PaymentConfirmation struct {
	NotificationBase
	OrderID   int64 `json:"order_id"`
	ProductID int64 `json:"product_id"`
}

func (PaymentConfirmation) Category() NotificationCategory { return CategoryPaymentConfirmation }

type ProductRemoved struct {
	NotificationBase
	ProductID int64 `json:"product_id"`
}

func (ProductRemoved) Category() NotificationCategory { return CategoryProductRemoved }

type ProductAvailable struct {
	NotificationBase
	ProductID int64 `json:"product_id"`
}

func (ProductAvailable) Category() NotificationCategory { return CategoryProductAvailable }

type ContractRenewalRequest struct {
	NotificationBase
	ContractID int64 `json:"contract_id"`
}

func (ContractRenewalRequest) Category() NotificationCategory {
	return CategoryContractRenewalRequest
}

type ContractExpiration struct {
	NotificationBase
	ContractID     int64     `json:"contract_id"`
	ExpirationDate time.Time `json:"expiration_date"`
}

func (ContractExpiration) Category() NotificationCategory { return CategoryContractExpiration }

// ValueOf returns the value form of a pointer variant; value variants come
// back unchanged and a nil pointer becomes nil.
func ValueOf(n Notification) Notification {
	switch v := n.(type) {
	case *ContractRenewalAnswer:
		if v != nil {
			return *v
		}
	case *ContractRenewalWaitlist:
		if v != nil {
			return *v
		}
	case *Outbidded:
		if v != nil {
			return *v
		}
	case *OrderShippingProgress:
		if v != nil {
			return *v
		}
	case *PaymentConfirmation:
		if v != nil {
			return *v
		}
	case *ProductRemoved:
		if v != nil {
			return *v
		}
	case *ProductAvailable:
		if v != nil {
			return *v
		}
	case *ContractRenewalRequest:
		if v != nil {
			return *v
		}
	case *ContractExpiration:
		if v != nil {
			return *v
		}
	default:
		return n
	}
	return nil
}

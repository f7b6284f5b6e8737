package models

import (
	"strings"
	"time"
)

// ProductType is stored numerically in orders.product_type.
type ProductType int

const (
	ProductTypeNew      ProductType = 1
	ProductTypeUsed     ProductType = 2
	ProductTypeBorrowed ProductType = 3
)

func (t ProductType) String() string {
	switch t {
	case ProductTypeNew:
		return "new"
	case ProductTypeUsed:
		return "used"
	case ProductTypeBorrowed:
		return "borrowed"
	default:
		return "unknown"
	}
}

// Order is a placed transaction. It is read-only for this service.
type Order struct {
	OrderID        int64       `db:"order_id" json:"order_id"`
	ProductID      int64       `db:"product_id" json:"product_id"`
	BuyerID        int64       `db:"buyer_id" json:"buyer_id"`
	OrderSummaryID int64       `db:"order_summary_id" json:"order_summary_id"`
	OrderHistoryID int64       `db:"order_history_id" json:"order_history_id"`
	ProductType    ProductType `db:"product_type" json:"product_type"`
	PaymentMethod  string      `db:"payment_method" json:"payment_method"`
	OrderDate      time.Time   `db:"order_date" json:"order_date"`
}

// HistoryFilter selects which order-history query backs a combined history.
type HistoryFilter string

const (
	HistoryFilterAll         HistoryFilter = "all"
	HistoryFilterThreeMonths HistoryFilter = "3months"
	HistoryFilterSixMonths   HistoryFilter = "6months"
	HistoryFilterYear2024    HistoryFilter = "2024"
	HistoryFilterYear2025    HistoryFilter = "2025"
)

// ParseHistoryFilter is lenient: anything unrecognized maps to HistoryFilterAll.
// The second result reports whether the input was recognized.
func ParseHistoryFilter(s string) (HistoryFilter, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "all", "":
		return HistoryFilterAll, true
	case "3months", "three_months", "last3months":
		return HistoryFilterThreeMonths, true
	case "6months", "six_months", "last6months":
		return HistoryFilterSixMonths, true
	case "2024", "year2024":
		return HistoryFilterYear2024, true
	case "2025", "year2025":
		return HistoryFilterYear2025, true
	default:
		return HistoryFilterAll, false
	}
}

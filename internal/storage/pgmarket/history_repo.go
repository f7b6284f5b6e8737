package pgmarket

import (
	"context"

	"github.com/BearBump/OrderTrack/internal/models"
)

func (s *Storage) orders(ctx context.Context, proc string, args ...any) ([]*models.Order, error) {
	out := []*models.Order{}
	if err := s.reader(ctx, proc, &out, args...); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Storage) BorrowedOrderHistory(ctx context.Context, buyerID int64) ([]*models.Order, error) {
	return s.orders(ctx, procBorrowedOrderHistory, buyerID)
}

func (s *Storage) NewOrUsedOrderHistory(ctx context.Context, buyerID int64) ([]*models.Order, error) {
	return s.orders(ctx, procNewOrUsedOrderHistory, buyerID)
}

func (s *Storage) OrdersFromLastThreeMonths(ctx context.Context, buyerID int64) ([]*models.Order, error) {
	return s.orders(ctx, procOrdersLast3Months, buyerID)
}

func (s *Storage) OrdersFromLastSixMonths(ctx context.Context, buyerID int64) ([]*models.Order, error) {
	return s.orders(ctx, procOrdersLast6Months, buyerID)
}

func (s *Storage) OrdersFrom2024(ctx context.Context, buyerID int64) ([]*models.Order, error) {
	return s.orders(ctx, procOrdersFrom2024, buyerID)
}

func (s *Storage) OrdersFrom2025(ctx context.Context, buyerID int64) ([]*models.Order, error) {
	return s.orders(ctx, procOrdersFrom2025, buyerID)
}

// OrdersByName matches text as a case-insensitive substring of the product name.
func (s *Storage) OrdersByName(ctx context.Context, buyerID int64, text string) ([]*models.Order, error) {
	return s.orders(ctx, procOrdersByName, buyerID, text)
}

func (s *Storage) OrdersFromOrderHistory(ctx context.Context, orderHistoryID int64) ([]*models.Order, error) {
	return s.orders(ctx, procOrdersFromOrderHistory, orderHistoryID)
}

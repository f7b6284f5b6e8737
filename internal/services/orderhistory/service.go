// Package orderhistory composes order history queries into buyer-facing views
// and resolves single orders.
package orderhistory

import (
	"context"

	"go.uber.org/zap"

	"github.com/BearBump/OrderTrack/internal/models"
)

type Repository interface {
	BorrowedOrderHistory(ctx context.Context, buyerID int64) ([]*models.Order, error)
	NewOrUsedOrderHistory(ctx context.Context, buyerID int64) ([]*models.Order, error)
	OrdersFromLastThreeMonths(ctx context.Context, buyerID int64) ([]*models.Order, error)
	OrdersFromLastSixMonths(ctx context.Context, buyerID int64) ([]*models.Order, error)
	OrdersFrom2024(ctx context.Context, buyerID int64) ([]*models.Order, error)
	OrdersFrom2025(ctx context.Context, buyerID int64) ([]*models.Order, error)
	OrdersByName(ctx context.Context, buyerID int64, text string) ([]*models.Order, error)
	OrdersFromOrderHistory(ctx context.Context, orderHistoryID int64) ([]*models.Order, error)
}

// allBuyers makes the history queries ignore the buyer.
const allBuyers int64 = 0

type Service struct {
	repo Repository
	log  *zap.Logger
}

func New(repo Repository, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, log: log}
}

func (s *Service) BorrowedOrderHistory(ctx context.Context, buyerID int64) ([]*models.Order, error) {
	return s.repo.BorrowedOrderHistory(ctx, buyerID)
}

func (s *Service) NewOrUsedOrderHistory(ctx context.Context, buyerID int64) ([]*models.Order, error) {
	return s.repo.NewOrUsedOrderHistory(ctx, buyerID)
}

func (s *Service) OrdersFromLastThreeMonths(ctx context.Context, buyerID int64) ([]*models.Order, error) {
	return s.repo.OrdersFromLastThreeMonths(ctx, buyerID)
}

func (s *Service) OrdersFromLastSixMonths(ctx context.Context, buyerID int64) ([]*models.Order, error) {
	return s.repo.OrdersFromLastSixMonths(ctx, buyerID)
}

func (s *Service) OrdersFrom2024(ctx context.Context, buyerID int64) ([]*models.Order, error) {
	return s.repo.OrdersFrom2024(ctx, buyerID)
}

func (s *Service) OrdersFrom2025(ctx context.Context, buyerID int64) ([]*models.Order, error) {
	return s.repo.OrdersFrom2025(ctx, buyerID)
}

func (s *Service) OrdersByName(ctx context.Context, buyerID int64, text string) ([]*models.Order, error) {
	return s.repo.OrdersByName(ctx, buyerID, text)
}

func (s *Service) OrdersFromOrderHistory(ctx context.Context, orderHistoryID int64) ([]*models.Order, error) {
	return s.repo.OrdersFromOrderHistory(ctx, orderHistoryID)
}

// GetCombinedOrderHistory returns the buyer's orders for the given filter.
// HistoryFilterAll and anything unrecognized yield borrowed orders followed by
// new/used ones.
func (s *Service) GetCombinedOrderHistory(ctx context.Context, buyerID int64, filter models.HistoryFilter) ([]*models.Order, error) {
	switch filter {
	case models.HistoryFilterThreeMonths:
		return s.repo.OrdersFromLastThreeMonths(ctx, buyerID)
	case models.HistoryFilterSixMonths:
		return s.repo.OrdersFromLastSixMonths(ctx, buyerID)
	case models.HistoryFilterYear2024:
		return s.repo.OrdersFrom2024(ctx, buyerID)
	case models.HistoryFilterYear2025:
		return s.repo.OrdersFrom2025(ctx, buyerID)
	case models.HistoryFilterAll:
	default:
		s.log.Debug("unknown history filter, using all", zap.String("filter", string(filter)))
	}

	borrowed, err := s.repo.BorrowedOrderHistory(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	newOrUsed, err := s.repo.NewOrUsedOrderHistory(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	out := make([]*models.Order, 0, len(borrowed)+len(newOrUsed))
	out = append(out, borrowed...)
	out = append(out, newOrUsed...)
	return out, nil
}

// GetOrderByID looks the order up across all buyers. The new/used list is only
// queried when the borrowed one has no match. Absence is not an error.
func (s *Service) GetOrderByID(ctx context.Context, orderID int64) (*models.Order, bool, error) {
	borrowed, err := s.repo.BorrowedOrderHistory(ctx, allBuyers)
	if err != nil {
		return nil, false, err
	}
	if o := findOrder(borrowed, orderID); o != nil {
		return o, true, nil
	}

	newOrUsed, err := s.repo.NewOrUsedOrderHistory(ctx, allBuyers)
	if err != nil {
		return nil, false, err
	}
	if o := findOrder(newOrUsed, orderID); o != nil {
		return o, true, nil
	}
	return nil, false, nil
}

func findOrder(orders []*models.Order, orderID int64) *models.Order {
	for _, o := range orders {
		if o != nil && o.OrderID == orderID {
			return o
		}
	}
	return nil
}

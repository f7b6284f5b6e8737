package pgmarket

import (
	"context"
	"strconv"
	"strings"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/pkg/errors"

	"github.com/BearBump/OrderTrack/internal/models"
)

// Stored function names. Postgres folds unquoted identifiers, so the
// mixed-case names resolve to the lowercase functions created in schema.go.
const (
	procInsertTrackedOrder    = "uspInsertTrackedOrder"
	procInsertOrderCheckpoint = "uspInsertOrderCheckpoint"
	procDeleteTrackedOrder    = "uspDeleteTrackedOrder"
	procDeleteOrderCheckpoint = "uspDeleteOrderCheckpoint"
	procUpdateTrackedOrder    = "uspUpdateTrackedOrder"
	procUpdateOrderCheckpoint = "uspUpdateOrderCheckpoint"

	procBorrowedOrderHistory   = "get_borrowed_order_history"
	procNewOrUsedOrderHistory  = "get_new_or_used_order_history"
	procOrdersLast3Months      = "get_orders_from_last_3_months"
	procOrdersLast6Months      = "get_orders_from_last_6_months"
	procOrdersFrom2024         = "get_orders_from_2024"
	procOrdersFrom2025         = "get_orders_from_2025"
	procOrdersByName           = "get_orders_by_name"
	procOrdersFromOrderHistory = "get_orders_from_order_history"

	procAddNotification             = "AddNotification"
	procGetNotificationsByRecipient = "GetNotificationsByRecipient"
	procMarkNotificationAsRead      = "MarkNotificationAsRead"
)

func placeholders(n int) string {
	ps := make([]string, n)
	for i := range ps {
		ps[i] = "$" + strconv.Itoa(i+1)
	}
	return strings.Join(ps, ", ")
}

// scalarCall invokes a function returning a single value (generated id or row count).
func scalarCall(name string, nargs int) string {
	return "SELECT " + name + "(" + placeholders(nargs) + ")"
}

// readerCall invokes a set-returning function.
func readerCall(name string, nargs int) string {
	return "SELECT * FROM " + name + "(" + placeholders(nargs) + ")"
}

func (s *Storage) scalar(ctx context.Context, name string, dst any, args ...any) error {
	if err := s.db.QueryRow(ctx, scalarCall(name, len(args)), args...).Scan(dst); err != nil {
		return errors.Wrap(err, "call "+name)
	}
	return nil
}

// nonQuery runs a mutating function that reports the number of affected rows.
func (s *Storage) nonQuery(ctx context.Context, name string, args ...any) (int64, error) {
	var n int64
	if err := s.scalar(ctx, name, &n, args...); err != nil {
		return 0, err
	}
	return n, nil
}

// insert runs an insert function and validates the generated identifier.
func (s *Storage) insert(ctx context.Context, name string, args ...any) (int64, error) {
	var id int64
	if err := s.scalar(ctx, name, &id, args...); err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, errors.Wrapf(models.ErrPersistence, "%s returned id %d", name, id)
	}
	return id, nil
}

func (s *Storage) reader(ctx context.Context, name string, dst any, args ...any) error {
	if err := pgxscan.Select(ctx, s.db, dst, readerCall(name, len(args)), args...); err != nil {
		return errors.Wrap(err, "call "+name)
	}
	return nil
}

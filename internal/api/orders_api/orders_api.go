// Package orders_api exposes tracked orders, order history and notifications as JSON over chi.
package orders_api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/BearBump/OrderTrack/internal/models"
)

type TrackedOrders interface {
	AddTrackedOrder(ctx context.Context, o models.TrackedOrder) (int64, error)
	GetAllTrackedOrders(ctx context.Context) ([]*models.TrackedOrder, error)
	GetTrackedOrder(ctx context.Context, trackedOrderID int64) (*models.TrackedOrder, error)
	UpdateTrackedOrder(ctx context.Context, trackedOrderID int64, deliveryDate time.Time, status models.OrderStatus) error
	UpdateTrackedOrderFor(ctx context.Context, orderID int64, upd models.TrackedOrderUpdate) (bool, error)
	DeleteTrackedOrder(ctx context.Context, trackedOrderID int64) (bool, error)

	AddOrderCheckpoint(ctx context.Context, c models.OrderCheckpoint) (int64, error)
	GetCheckpoints(ctx context.Context, trackedOrderID int64) ([]*models.OrderCheckpoint, error)
	GetCheckpoint(ctx context.Context, checkpointID int64) (*models.OrderCheckpoint, error)
	GetLastCheckpoint(ctx context.Context, o *models.TrackedOrder) (*models.OrderCheckpoint, error)
	GetNumberOfCheckpoints(ctx context.Context, o *models.TrackedOrder) (int, error)
	UpdateOrderCheckpoint(ctx context.Context, upd models.CheckpointUpdate) error
	UpdateOrderCheckpointFor(ctx context.Context, trackedOrderID int64, upd models.CheckpointUpdate) (bool, error)
	DeleteOrderCheckpoint(ctx context.Context, checkpointID int64) (bool, error)

	RevertToPreviousCheckpoint(ctx context.Context, o *models.TrackedOrder) error
	RevertToLastCheckpoint(ctx context.Context, o *models.TrackedOrder) (bool, error)
}

type OrderHistory interface {
	GetCombinedOrderHistory(ctx context.Context, buyerID int64, filter models.HistoryFilter) ([]*models.Order, error)
	OrdersByName(ctx context.Context, buyerID int64, text string) ([]*models.Order, error)
	OrdersFromOrderHistory(ctx context.Context, orderHistoryID int64) ([]*models.Order, error)
	GetOrderByID(ctx context.Context, orderID int64) (*models.Order, bool, error)
}

type Notifications interface {
	GetNotificationsForUser(ctx context.Context, recipientID int64) ([]models.Notification, error)
	UnreadCount(ctx context.Context, recipientID int64) (int, error)
	MarkAsRead(ctx context.Context, notificationID int64) error
}

type OrdersAPI struct {
	tracked       TrackedOrders
	history       OrderHistory
	notifications Notifications

	validate *validator.Validate
	log      *zap.Logger
}

func New(tracked TrackedOrders, history OrderHistory, notifications Notifications, log *zap.Logger) *OrdersAPI {
	if log == nil {
		log = zap.NewNop()
	}
	return &OrdersAPI{
		tracked:       tracked,
		history:       history,
		notifications: notifications,
		validate:      validator.New(validator.WithRequiredStructEnabled()),
		log:           log,
	}
}

// Handler returns a router with every API route registered.
func (a *OrdersAPI) Handler() http.Handler {
	r := chi.NewRouter()
	a.Register(r)
	return r
}

func (a *OrdersAPI) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequestID, middleware.Recoverer, a.accessLog)

		r.Route("/tracked-orders", func(r chi.Router) {
			r.Post("/", a.handleCreateTrackedOrder)
			r.Get("/", a.handleListTrackedOrders)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", a.handleGetTrackedOrder)
				r.Put("/", a.handleUpdateTrackedOrder)
				r.Delete("/", a.handleDeleteTrackedOrder)

				r.Get("/checkpoints", a.handleListCheckpoints)
				r.Post("/checkpoints", a.handleAddCheckpoint)
				r.Get("/checkpoints/last", a.handleLastCheckpoint)
				r.Get("/checkpoints/count", a.handleCountCheckpoints)

				r.Post("/revert-previous", a.handleRevertPrevious)
				r.Post("/revert-last", a.handleRevertLast)
			})
		})

		r.Route("/checkpoints/{id}", func(r chi.Router) {
			r.Get("/", a.handleGetCheckpoint)
			r.Put("/", a.handleUpdateCheckpoint)
			r.Delete("/", a.handleDeleteCheckpoint)
		})

		r.Get("/buyers/{id}/orders", a.handleBuyerOrders)
		r.Get("/buyers/{id}/orders/search", a.handleSearchOrders)
		r.Get("/orders/{id}", a.handleGetOrder)
		r.Get("/order-histories/{id}/orders", a.handleOrderHistoryOrders)

		r.Get("/users/{id}/notifications", a.handleListNotifications)
		r.Get("/users/{id}/notifications/unread-count", a.handleUnreadCount)
		r.Post("/notifications/{id}/read", a.handleMarkRead)
	})
}

func (a *OrdersAPI) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		a.log.Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("took", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

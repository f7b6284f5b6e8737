package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/BearBump/OrderTrack/internal/models"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) AddTrackedOrder(ctx context.Context, o models.TrackedOrder) (int64, error) {
	args := m.Called(ctx, o)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) AddOrderCheckpoint(ctx context.Context, c models.OrderCheckpoint) (int64, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) DeleteTrackedOrder(ctx context.Context, trackedOrderID int64) (bool, error) {
	args := m.Called(ctx, trackedOrderID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) DeleteOrderCheckpoint(ctx context.Context, checkpointID int64) (bool, error) {
	args := m.Called(ctx, checkpointID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) GetTrackedOrderByID(ctx context.Context, trackedOrderID int64) (*models.TrackedOrder, error) {
	args := m.Called(ctx, trackedOrderID)
	var o *models.TrackedOrder
	if v := args.Get(0); v != nil {
		o = v.(*models.TrackedOrder)
	}
	return o, args.Error(1)
}

func (m *MockStore) GetOrderCheckpointByID(ctx context.Context, checkpointID int64) (*models.OrderCheckpoint, error) {
	args := m.Called(ctx, checkpointID)
	var c *models.OrderCheckpoint
	if v := args.Get(0); v != nil {
		c = v.(*models.OrderCheckpoint)
	}
	return c, args.Error(1)
}

func (m *MockStore) GetAllTrackedOrders(ctx context.Context) ([]*models.TrackedOrder, error) {
	args := m.Called(ctx)
	var out []*models.TrackedOrder
	if v := args.Get(0); v != nil {
		out = v.([]*models.TrackedOrder)
	}
	return out, args.Error(1)
}

func (m *MockStore) GetAllOrderCheckpoints(ctx context.Context, trackedOrderID int64) ([]*models.OrderCheckpoint, error) {
	args := m.Called(ctx, trackedOrderID)
	var out []*models.OrderCheckpoint
	if v := args.Get(0); v != nil {
		out = v.([]*models.OrderCheckpoint)
	}
	return out, args.Error(1)
}

func (m *MockStore) UpdateTrackedOrder(ctx context.Context, upd models.TrackedOrderUpdate) error {
	args := m.Called(ctx, upd)
	return args.Error(0)
}

func (m *MockStore) UpdateOrderCheckpoint(ctx context.Context, upd models.CheckpointUpdate) error {
	args := m.Called(ctx, upd)
	return args.Error(0)
}

type MockOrderLookup struct {
	mock.Mock
}

func (m *MockOrderLookup) GetOrderByID(ctx context.Context, orderID int64) (*models.Order, bool, error) {
	args := m.Called(ctx, orderID)
	var o *models.Order
	if v := args.Get(0); v != nil {
		o = v.(*models.Order)
	}
	return o, args.Bool(1), args.Error(2)
}

type MockNotificationSender struct {
	mock.Mock
}

func (m *MockNotificationSender) SendShippingProgressNotification(ctx context.Context, buyerID, trackedOrderID int64, status string, deliveryDate time.Time) error {
	args := m.Called(ctx, buyerID, trackedOrderID, status, deliveryDate)
	return args.Error(0)
}

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

func (m *MockStore) AddNotification(ctx context.Context, n models.Notification) (int64, error) {
	args := m.Called(ctx, n)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) GetNotificationsForUser(ctx context.Context, recipientID int64) ([]models.Notification, error) {
	args := m.Called(ctx, recipientID)
	var out []models.Notification
	if v := args.Get(0); v != nil {
		out = v.([]models.Notification)
	}
	return out, args.Error(1)
}

func (m *MockStore) MarkAsRead(ctx context.Context, notificationID int64) error {
	args := m.Called(ctx, notificationID)
	return args.Error(0)
}

type MockRateLimiter struct {
	mock.Mock
}

func (m *MockRateLimiter) Allow(ctx context.Context, subject string, limit int64, window time.Duration) (bool, int64, error) {
	args := m.Called(ctx, subject, limit, window)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}

package trackedorders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/BearBump/OrderTrack/internal/models"
	trackedmocks "github.com/BearBump/OrderTrack/internal/services/trackedorders/mocks"
)

type ServiceSuite struct {
	suite.Suite

	store  *trackedmocks.MockStore
	orders *trackedmocks.MockOrderLookup
	sender *trackedmocks.MockNotificationSender
	svc    *Service

	eta time.Time
	ctx context.Context
}

func (s *ServiceSuite) SetupTest() {
	s.store = &trackedmocks.MockStore{}
	s.orders = &trackedmocks.MockOrderLookup{}
	s.sender = &trackedmocks.MockNotificationSender{}
	s.svc = New(s.store, s.orders, s.sender, nil)
	s.eta = time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)
	s.ctx = context.Background()
}

func (s *ServiceSuite) trackedOrder(status models.OrderStatus) *models.TrackedOrder {
	return &models.TrackedOrder{
		TrackedOrderID:        123,
		OrderID:               456,
		CurrentStatus:         status,
		EstimatedDeliveryDate: s.eta,
		DeliveryAddress:       "Main st. 1",
	}
}

func checkpoints(statuses ...models.OrderStatus) []*models.OrderCheckpoint {
	out := make([]*models.OrderCheckpoint, 0, len(statuses))
	for i, st := range statuses {
		out = append(out, &models.OrderCheckpoint{CheckpointID: int64(i + 1), Status: st, TrackedOrderID: 123})
	}
	return out
}

func (s *ServiceSuite) TestGetLastCheckpoint_GreatestID() {
	s.store.On("GetAllOrderCheckpoints", mock.Anything, int64(123)).
		Return(checkpoints(models.OrderStatusProcessing, models.OrderStatusShipped), nil).
		Once()

	last, err := s.svc.GetLastCheckpoint(s.ctx, s.trackedOrder(models.OrderStatusProcessing))
	s.Require().NoError(err)
	s.Require().NotNil(last)
	s.Require().Equal(int64(2), last.CheckpointID)
	s.Require().Equal(models.OrderStatusShipped, last.Status)
}

func (s *ServiceSuite) TestGetLastCheckpoint_UnorderedInput() {
	cps := []*models.OrderCheckpoint{
		{CheckpointID: 9, Status: models.OrderStatusInTransit},
		{CheckpointID: 3, Status: models.OrderStatusShipped},
		{CheckpointID: 12, Status: models.OrderStatusDelivered},
		{CheckpointID: 7, Status: models.OrderStatusInWarehouse},
	}
	s.store.On("GetAllOrderCheckpoints", mock.Anything, int64(123)).Return(cps, nil).Twice()

	last, err := s.svc.GetLastCheckpoint(s.ctx, s.trackedOrder(models.OrderStatusProcessing))
	s.Require().NoError(err)
	s.Require().Equal(int64(12), last.CheckpointID)

	n, err := s.svc.GetNumberOfCheckpoints(s.ctx, s.trackedOrder(models.OrderStatusProcessing))
	s.Require().NoError(err)
	s.Require().Equal(len(cps), n)
}

func (s *ServiceSuite) TestGetLastCheckpoint_NoneIsNil() {
	s.store.On("GetAllOrderCheckpoints", mock.Anything, int64(123)).
		Return([]*models.OrderCheckpoint{}, nil).
		Twice()

	last, err := s.svc.GetLastCheckpoint(s.ctx, s.trackedOrder(models.OrderStatusProcessing))
	s.Require().NoError(err)
	s.Require().Nil(last)

	n, err := s.svc.GetNumberOfCheckpoints(s.ctx, s.trackedOrder(models.OrderStatusProcessing))
	s.Require().NoError(err)
	s.Require().Zero(n)
}

func (s *ServiceSuite) TestDerivedReads_NilTrackedOrder() {
	_, err := s.svc.GetLastCheckpoint(s.ctx, nil)
	s.Require().ErrorIs(err, models.ErrInvalidArgument)

	_, err = s.svc.GetNumberOfCheckpoints(s.ctx, nil)
	s.Require().ErrorIs(err, models.ErrInvalidArgument)
}

func (s *ServiceSuite) TestRevertToLastCheckpoint_NilNoCalls() {
	ok, err := s.svc.RevertToLastCheckpoint(s.ctx, nil)
	s.Require().NoError(err)
	s.Require().False(ok)

	s.store.AssertNotCalled(s.T(), "UpdateTrackedOrder", mock.Anything, mock.Anything)
	s.store.AssertNotCalled(s.T(), "UpdateOrderCheckpoint", mock.Anything, mock.Anything)
	s.store.AssertNotCalled(s.T(), "DeleteOrderCheckpoint", mock.Anything, mock.Anything)
	s.store.AssertNotCalled(s.T(), "DeleteTrackedOrder", mock.Anything, mock.Anything)
}

func (s *ServiceSuite) TestRevertToLastCheckpoint_NoCheckpoints() {
	s.store.On("GetAllOrderCheckpoints", mock.Anything, int64(123)).
		Return([]*models.OrderCheckpoint{}, nil).
		Once()

	ok, err := s.svc.RevertToLastCheckpoint(s.ctx, s.trackedOrder(models.OrderStatusShipped))
	s.Require().NoError(err)
	s.Require().False(ok)
	s.store.AssertNotCalled(s.T(), "UpdateTrackedOrder", mock.Anything, mock.Anything)
}

func (s *ServiceSuite) TestRevertToLastCheckpoint_ResetsStatus() {
	to := s.trackedOrder(models.OrderStatusDelivered)
	s.store.On("GetAllOrderCheckpoints", mock.Anything, int64(123)).
		Return(checkpoints(models.OrderStatusProcessing, models.OrderStatusShipped), nil).
		Once()
	s.store.On("GetTrackedOrderByID", mock.Anything, int64(123)).Return(s.trackedOrder(models.OrderStatusDelivered), nil).Once()
	s.store.On("UpdateTrackedOrder", mock.Anything, models.TrackedOrderUpdate{
		TrackedOrderID: 123, EstimatedDeliveryDate: s.eta, Status: models.OrderStatusShipped,
	}).Return(nil).Once()

	ok, err := s.svc.RevertToLastCheckpoint(s.ctx, to)
	s.Require().NoError(err)
	s.Require().True(ok)
	s.Require().Equal(models.OrderStatusShipped, to.CurrentStatus)
	s.store.AssertExpectations(s.T())
	// откат не рассылает уведомлений
	s.sender.AssertNotCalled(s.T(), "SendShippingProgressNotification", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ServiceSuite) TestRevertToPreviousCheckpoint_Errors() {
	err := s.svc.RevertToPreviousCheckpoint(s.ctx, nil)
	s.Require().ErrorIs(err, models.ErrInvalidArgument)

	s.store.On("GetAllOrderCheckpoints", mock.Anything, int64(123)).
		Return([]*models.OrderCheckpoint{}, nil).
		Once()
	err = s.svc.RevertToPreviousCheckpoint(s.ctx, s.trackedOrder(models.OrderStatusProcessing))
	s.Require().ErrorIs(err, models.ErrNoHistory)
	s.store.AssertNotCalled(s.T(), "DeleteOrderCheckpoint", mock.Anything, mock.Anything)
	s.store.AssertNotCalled(s.T(), "UpdateTrackedOrder", mock.Anything, mock.Anything)
}

func (s *ServiceSuite) TestRevertToPreviousCheckpoint_DropsLatest() {
	to := s.trackedOrder(models.OrderStatusShipped)
	s.store.On("GetAllOrderCheckpoints", mock.Anything, int64(123)).
		Return(checkpoints(models.OrderStatusInWarehouse, models.OrderStatusShipped), nil).
		Once()
	s.store.On("DeleteOrderCheckpoint", mock.Anything, int64(2)).Return(true, nil).Once()
	s.store.On("GetTrackedOrderByID", mock.Anything, int64(123)).Return(s.trackedOrder(models.OrderStatusShipped), nil).Once()
	s.store.On("UpdateTrackedOrder", mock.Anything, models.TrackedOrderUpdate{
		TrackedOrderID: 123, EstimatedDeliveryDate: s.eta, Status: models.OrderStatusInWarehouse,
	}).Return(nil).Once()

	s.Require().NoError(s.svc.RevertToPreviousCheckpoint(s.ctx, to))
	s.Require().Equal(models.OrderStatusInWarehouse, to.CurrentStatus)
	s.store.AssertExpectations(s.T())
}

func (s *ServiceSuite) TestRevertToPreviousCheckpoint_LastOneFallsBackToProcessing() {
	to := s.trackedOrder(models.OrderStatusShipped)
	s.store.On("GetAllOrderCheckpoints", mock.Anything, int64(123)).
		Return(checkpoints(models.OrderStatusShipped), nil).
		Once()
	s.store.On("DeleteOrderCheckpoint", mock.Anything, int64(1)).Return(true, nil).Once()
	s.store.On("GetTrackedOrderByID", mock.Anything, int64(123)).Return(s.trackedOrder(models.OrderStatusShipped), nil).Once()
	s.store.On("UpdateTrackedOrder", mock.Anything, models.TrackedOrderUpdate{
		TrackedOrderID: 123, EstimatedDeliveryDate: s.eta, Status: models.OrderStatusProcessing,
	}).Return(nil).Once()

	s.Require().NoError(s.svc.RevertToPreviousCheckpoint(s.ctx, to))
	s.Require().Equal(models.OrderStatusProcessing, to.CurrentStatus)
	s.store.AssertExpectations(s.T())
}

func (s *ServiceSuite) TestUpdateOrderCheckpointFor_Mismatch() {
	upd := models.CheckpointUpdate{CheckpointID: 5, Timestamp: s.eta, Description: "d", Status: models.OrderStatusInTransit}
	s.store.On("GetOrderCheckpointByID", mock.Anything, int64(5)).
		Return(&models.OrderCheckpoint{CheckpointID: 5, TrackedOrderID: 999}, nil).
		Once()

	ok, err := s.svc.UpdateOrderCheckpointFor(s.ctx, 123, upd)
	s.Require().NoError(err)
	s.Require().False(ok)
	s.store.AssertNotCalled(s.T(), "UpdateOrderCheckpoint", mock.Anything, mock.Anything)
	s.store.AssertNotCalled(s.T(), "UpdateTrackedOrder", mock.Anything, mock.Anything)
}

func (s *ServiceSuite) TestUpdateOrderCheckpointFor_MatchResyncsStatus() {
	upd := models.CheckpointUpdate{CheckpointID: 2, Timestamp: s.eta, Description: "d", Status: models.OrderStatusInTransit}
	s.store.On("GetOrderCheckpointByID", mock.Anything, int64(2)).
		Return(&models.OrderCheckpoint{CheckpointID: 2, TrackedOrderID: 123}, nil).
		Once()
	s.store.On("UpdateOrderCheckpoint", mock.Anything, upd).Return(nil).Once()
	s.store.On("GetTrackedOrderByID", mock.Anything, int64(123)).Return(s.trackedOrder(models.OrderStatusShipped), nil).Once()
	s.store.On("GetAllOrderCheckpoints", mock.Anything, int64(123)).
		Return(checkpoints(models.OrderStatusShipped, models.OrderStatusInTransit), nil).
		Once()
	s.store.On("UpdateTrackedOrder", mock.Anything, models.TrackedOrderUpdate{
		TrackedOrderID: 123, EstimatedDeliveryDate: s.eta, Status: models.OrderStatusInTransit,
	}).Return(nil).Once()

	ok, err := s.svc.UpdateOrderCheckpointFor(s.ctx, 123, upd)
	s.Require().NoError(err)
	s.Require().True(ok)
	s.store.AssertNumberOfCalls(s.T(), "UpdateOrderCheckpoint", 1)
	s.store.AssertExpectations(s.T())
	s.sender.AssertNotCalled(s.T(), "SendShippingProgressNotification", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ServiceSuite) TestUpdateOrderCheckpointFor_SyncFailureReportsApplied() {
	upd := models.CheckpointUpdate{CheckpointID: 2, Timestamp: s.eta, Description: "d", Status: models.OrderStatusInTransit}
	s.store.On("GetOrderCheckpointByID", mock.Anything, int64(2)).
		Return(&models.OrderCheckpoint{CheckpointID: 2, TrackedOrderID: 123}, nil).
		Once()
	s.store.On("UpdateOrderCheckpoint", mock.Anything, upd).Return(nil).Once()
	s.store.On("GetTrackedOrderByID", mock.Anything, int64(123)).Return(nil, errors.New("db down")).Once()

	ok, err := s.svc.UpdateOrderCheckpointFor(s.ctx, 123, upd)
	s.Require().Error(err)
	s.Require().Contains(err.Error(), "sync status")
	// запись уже применена
	s.Require().True(ok)
	s.store.AssertNumberOfCalls(s.T(), "UpdateOrderCheckpoint", 1)
	s.store.AssertNotCalled(s.T(), "UpdateTrackedOrder", mock.Anything, mock.Anything)
}

func (s *ServiceSuite) TestUpdateOrderCheckpoint_NotFound() {
	upd := models.CheckpointUpdate{CheckpointID: 77, Status: models.OrderStatusShipped}
	s.store.On("GetOrderCheckpointByID", mock.Anything, int64(77)).Return(nil, models.ErrNotFound).Once()

	err := s.svc.UpdateOrderCheckpoint(s.ctx, upd)
	s.Require().ErrorIs(err, models.ErrNotFound)
	s.store.AssertNotCalled(s.T(), "UpdateOrderCheckpoint", mock.Anything, mock.Anything)
}

func (s *ServiceSuite) TestUpdateTrackedOrderFor_Mismatch() {
	addr := "Other st. 2"
	upd := models.TrackedOrderUpdate{TrackedOrderID: 123, EstimatedDeliveryDate: s.eta, Status: models.OrderStatusShipped, DeliveryAddress: &addr}
	s.store.On("GetTrackedOrderByID", mock.Anything, int64(123)).Return(s.trackedOrder(models.OrderStatusProcessing), nil).Once()

	ok, err := s.svc.UpdateTrackedOrderFor(s.ctx, 999, upd)
	s.Require().NoError(err)
	s.Require().False(ok)
	s.store.AssertNotCalled(s.T(), "UpdateTrackedOrder", mock.Anything, mock.Anything)
	s.sender.AssertNotCalled(s.T(), "SendShippingProgressNotification", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ServiceSuite) TestUpdateTrackedOrderFor_ShippedNotifiesBuyerOnce() {
	addr := "Other st. 2"
	upd := models.TrackedOrderUpdate{TrackedOrderID: 123, EstimatedDeliveryDate: s.eta, Status: models.OrderStatusShipped, DeliveryAddress: &addr}
	s.store.On("GetTrackedOrderByID", mock.Anything, int64(123)).Return(s.trackedOrder(models.OrderStatusProcessing), nil).Once()
	s.store.On("UpdateTrackedOrder", mock.Anything, upd).Return(nil).Once()
	s.orders.On("GetOrderByID", mock.Anything, int64(456)).Return(&models.Order{OrderID: 456, BuyerID: 77}, true, nil).Once()
	s.sender.On("SendShippingProgressNotification", mock.Anything, int64(77), int64(123), "SHIPPED", s.eta).Return(nil).Once()

	ok, err := s.svc.UpdateTrackedOrderFor(s.ctx, 456, upd)
	s.Require().NoError(err)
	s.Require().True(ok)
	s.sender.AssertNumberOfCalls(s.T(), "SendShippingProgressNotification", 1)
	s.sender.AssertExpectations(s.T())
}

func (s *ServiceSuite) TestUpdateTrackedOrder_OnlyNotifyWorthyStatusesNotify() {
	s.store.On("UpdateTrackedOrder", mock.Anything, models.TrackedOrderUpdate{
		TrackedOrderID: 123, EstimatedDeliveryDate: s.eta, Status: models.OrderStatusInTransit,
	}).Return(nil).Once()

	s.Require().NoError(s.svc.UpdateTrackedOrder(s.ctx, 123, s.eta, models.OrderStatusInTransit))
	s.store.AssertNotCalled(s.T(), "GetTrackedOrderByID", mock.Anything, mock.Anything)
	s.orders.AssertNotCalled(s.T(), "GetOrderByID", mock.Anything, mock.Anything)
	s.sender.AssertNotCalled(s.T(), "SendShippingProgressNotification", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ServiceSuite) TestUpdateTrackedOrder_ShippedSendFailureSwallowed() {
	s.store.On("UpdateTrackedOrder", mock.Anything, models.TrackedOrderUpdate{
		TrackedOrderID: 123, EstimatedDeliveryDate: s.eta, Status: models.OrderStatusShipped,
	}).Return(nil).Once()
	s.store.On("GetTrackedOrderByID", mock.Anything, int64(123)).Return(s.trackedOrder(models.OrderStatusShipped), nil).Once()
	s.orders.On("GetOrderByID", mock.Anything, int64(456)).Return(&models.Order{OrderID: 456, BuyerID: 77}, true, nil).Once()
	s.sender.On("SendShippingProgressNotification", mock.Anything, int64(77), int64(123), "SHIPPED", s.eta).
		Return(errors.New("smtp down")).Once()

	// время обрезается до даты
	s.Require().NoError(s.svc.UpdateTrackedOrder(s.ctx, 123, s.eta.Add(15*time.Hour), models.OrderStatusShipped))
	s.sender.AssertExpectations(s.T())
}

func (s *ServiceSuite) TestUpdateTrackedOrder_CustomNotifySet() {
	s.svc.WithNotifyStatuses([]models.OrderStatus{models.OrderStatusDelivered})
	s.store.On("UpdateTrackedOrder", mock.Anything, mock.Anything).Return(nil).Twice()
	s.store.On("GetTrackedOrderByID", mock.Anything, int64(123)).Return(s.trackedOrder(models.OrderStatusDelivered), nil).Once()
	s.orders.On("GetOrderByID", mock.Anything, int64(456)).Return(&models.Order{OrderID: 456, BuyerID: 77}, true, nil).Once()
	s.sender.On("SendShippingProgressNotification", mock.Anything, int64(77), int64(123), "DELIVERED", s.eta).Return(nil).Once()

	s.Require().NoError(s.svc.UpdateTrackedOrder(s.ctx, 123, s.eta, models.OrderStatusShipped))
	s.Require().NoError(s.svc.UpdateTrackedOrder(s.ctx, 123, s.eta, models.OrderStatusDelivered))
	s.sender.AssertNumberOfCalls(s.T(), "SendShippingProgressNotification", 1)
}

func (s *ServiceSuite) TestUpdateTrackedOrder_InvalidStatus() {
	err := s.svc.UpdateTrackedOrder(s.ctx, 123, s.eta, models.OrderStatus("LOST"))
	s.Require().ErrorIs(err, models.ErrInvalidArgument)
	s.store.AssertNotCalled(s.T(), "UpdateTrackedOrder", mock.Anything, mock.Anything)
}

func (s *ServiceSuite) TestAddTrackedOrder_ReturnsIDWhenSendFails() {
	in := *s.trackedOrder(models.OrderStatusProcessing)
	in.TrackedOrderID = 0
	s.store.On("AddTrackedOrder", mock.Anything, in).Return(int64(123), nil).Once()
	s.orders.On("GetOrderByID", mock.Anything, int64(456)).Return(&models.Order{OrderID: 456, BuyerID: 77}, true, nil).Once()
	s.sender.On("SendShippingProgressNotification", mock.Anything, int64(77), int64(123), "PROCESSING", s.eta).
		Return(errors.New("notification service down")).Once()

	id, err := s.svc.AddTrackedOrder(s.ctx, in)
	s.Require().NoError(err)
	s.Require().Equal(int64(123), id)
	s.sender.AssertExpectations(s.T())
}

func (s *ServiceSuite) TestAddTrackedOrder_ReturnsIDWhenLookupFails() {
	in := *s.trackedOrder(models.OrderStatusProcessing)
	s.store.On("AddTrackedOrder", mock.Anything, mock.Anything).Return(int64(124), nil).Twice()
	s.orders.On("GetOrderByID", mock.Anything, int64(456)).Return(nil, false, errors.New("db down")).Once()

	id, err := s.svc.AddTrackedOrder(s.ctx, in)
	s.Require().NoError(err)
	s.Require().Equal(int64(124), id)

	s.orders.On("GetOrderByID", mock.Anything, int64(456)).Return(nil, false, nil).Once()
	id, err = s.svc.AddTrackedOrder(s.ctx, in)
	s.Require().NoError(err)
	s.Require().Equal(int64(124), id)

	s.sender.AssertNotCalled(s.T(), "SendShippingProgressNotification", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ServiceSuite) TestAddTrackedOrder_StoreErrorPropagates() {
	s.store.On("AddTrackedOrder", mock.Anything, mock.Anything).Return(int64(0), models.ErrPersistence).Once()

	_, err := s.svc.AddTrackedOrder(s.ctx, *s.trackedOrder(models.OrderStatusProcessing))
	s.Require().ErrorIs(err, models.ErrPersistence)
	s.orders.AssertNotCalled(s.T(), "GetOrderByID", mock.Anything, mock.Anything)
}

func (s *ServiceSuite) TestAddTrackedOrder_Validation() {
	_, err := s.svc.AddTrackedOrder(s.ctx, models.TrackedOrder{})
	s.Require().ErrorIs(err, models.ErrInvalidArgument)

	_, err = s.svc.AddTrackedOrder(s.ctx, models.TrackedOrder{OrderID: 1, CurrentStatus: "LOST"})
	s.Require().ErrorIs(err, models.ErrInvalidArgument)
	s.store.AssertNotCalled(s.T(), "AddTrackedOrder", mock.Anything, mock.Anything)
}

func (s *ServiceSuite) TestAddOrderCheckpoint_ShippedSyncsAndNotifies() {
	ts := s.eta.Add(-48 * time.Hour)
	in := models.OrderCheckpoint{Timestamp: ts, Description: "handed to courier", Status: models.OrderStatusShipped, TrackedOrderID: 123}
	s.store.On("AddOrderCheckpoint", mock.Anything, in).Return(int64(2), nil).Once()
	s.store.On("GetTrackedOrderByID", mock.Anything, int64(123)).Return(s.trackedOrder(models.OrderStatusProcessing), nil).Once()
	s.store.On("GetAllOrderCheckpoints", mock.Anything, int64(123)).
		Return(checkpoints(models.OrderStatusProcessing, models.OrderStatusShipped), nil).
		Once()
	s.store.On("UpdateTrackedOrder", mock.Anything, models.TrackedOrderUpdate{
		TrackedOrderID: 123, EstimatedDeliveryDate: s.eta, Status: models.OrderStatusShipped,
	}).Return(nil).Once()
	s.orders.On("GetOrderByID", mock.Anything, int64(456)).Return(&models.Order{OrderID: 456, BuyerID: 77}, true, nil).Once()
	s.sender.On("SendShippingProgressNotification", mock.Anything, int64(77), int64(123), "SHIPPED", s.eta).Return(nil).Once()

	id, err := s.svc.AddOrderCheckpoint(s.ctx, in)
	s.Require().NoError(err)
	s.Require().Equal(int64(2), id)
	s.store.AssertExpectations(s.T())
	s.sender.AssertExpectations(s.T())
}

func (s *ServiceSuite) TestAddOrderCheckpoint_SameStatusNoWrite() {
	in := models.OrderCheckpoint{Timestamp: s.eta, Description: "sorted", Status: models.OrderStatusProcessing, TrackedOrderID: 123}
	s.store.On("AddOrderCheckpoint", mock.Anything, in).Return(int64(1), nil).Once()
	s.store.On("GetTrackedOrderByID", mock.Anything, int64(123)).Return(s.trackedOrder(models.OrderStatusProcessing), nil).Once()
	s.store.On("GetAllOrderCheckpoints", mock.Anything, int64(123)).Return(checkpoints(models.OrderStatusProcessing), nil).Once()

	_, err := s.svc.AddOrderCheckpoint(s.ctx, in)
	s.Require().NoError(err)
	s.store.AssertNotCalled(s.T(), "UpdateTrackedOrder", mock.Anything, mock.Anything)
}

func (s *ServiceSuite) TestDeleteOrderCheckpoint_Missing() {
	s.store.On("GetOrderCheckpointByID", mock.Anything, int64(8)).Return(nil, models.ErrNotFound).Once()

	ok, err := s.svc.DeleteOrderCheckpoint(s.ctx, 8)
	s.Require().NoError(err)
	s.Require().False(ok)
	s.store.AssertNotCalled(s.T(), "DeleteOrderCheckpoint", mock.Anything, mock.Anything)
}

func (s *ServiceSuite) TestDeleteOrderCheckpoint_Resyncs() {
	s.store.On("GetOrderCheckpointByID", mock.Anything, int64(2)).
		Return(&models.OrderCheckpoint{CheckpointID: 2, TrackedOrderID: 123}, nil).Once()
	s.store.On("DeleteOrderCheckpoint", mock.Anything, int64(2)).Return(true, nil).Once()
	s.store.On("GetTrackedOrderByID", mock.Anything, int64(123)).Return(s.trackedOrder(models.OrderStatusShipped), nil).Once()
	s.store.On("GetAllOrderCheckpoints", mock.Anything, int64(123)).Return(checkpoints(models.OrderStatusInWarehouse), nil).Once()
	s.store.On("UpdateTrackedOrder", mock.Anything, models.TrackedOrderUpdate{
		TrackedOrderID: 123, EstimatedDeliveryDate: s.eta, Status: models.OrderStatusInWarehouse,
	}).Return(nil).Once()

	ok, err := s.svc.DeleteOrderCheckpoint(s.ctx, 2)
	s.Require().NoError(err)
	s.Require().True(ok)
	s.store.AssertExpectations(s.T())
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

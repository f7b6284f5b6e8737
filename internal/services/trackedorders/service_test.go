package trackedorders

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	cachemocks "github.com/BearBump/OrderTrack/internal/cache/mocks"
	"github.com/BearBump/OrderTrack/internal/models"
	trackedmocks "github.com/BearBump/OrderTrack/internal/services/trackedorders/mocks"
)

// memStore keeps tracked orders and checkpoints in memory with store-like ids.
type memStore struct {
	orders map[int64]*models.TrackedOrder
	cps    map[int64]*models.OrderCheckpoint
	nextID int64

	updates int
}

func newMemStore() *memStore {
	return &memStore{orders: map[int64]*models.TrackedOrder{}, cps: map[int64]*models.OrderCheckpoint{}}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) AddTrackedOrder(ctx context.Context, o models.TrackedOrder) (int64, error) {
	o.TrackedOrderID = m.id()
	m.orders[o.TrackedOrderID] = &o
	return o.TrackedOrderID, nil
}
func (m *memStore) AddOrderCheckpoint(ctx context.Context, c models.OrderCheckpoint) (int64, error) {
	if _, ok := m.orders[c.TrackedOrderID]; !ok {
		return 0, models.ErrNotFound
	}
	c.CheckpointID = m.id()
	m.cps[c.CheckpointID] = &c
	return c.CheckpointID, nil
}
func (m *memStore) DeleteTrackedOrder(ctx context.Context, id int64) (bool, error) {
	if _, ok := m.orders[id]; !ok {
		return false, nil
	}
	delete(m.orders, id)
	for cid, c := range m.cps {
		if c.TrackedOrderID == id {
			delete(m.cps, cid)
		}
	}
	return true, nil
}
func (m *memStore) DeleteOrderCheckpoint(ctx context.Context, id int64) (bool, error) {
	_, ok := m.cps[id]
	delete(m.cps, id)
	return ok, nil
}
func (m *memStore) GetTrackedOrderByID(ctx context.Context, id int64) (*models.TrackedOrder, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *o
	return &cp, nil
}
func (m *memStore) GetOrderCheckpointByID(ctx context.Context, id int64) (*models.OrderCheckpoint, error) {
	c, ok := m.cps[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *c
	return &cp, nil
}
func (m *memStore) GetAllTrackedOrders(ctx context.Context) ([]*models.TrackedOrder, error) {
	out := []*models.TrackedOrder{}
	for _, o := range m.orders {
		cp := *o
		out = append(out, &cp)
	}
	return out, nil
}
func (m *memStore) GetAllOrderCheckpoints(ctx context.Context, trackedOrderID int64) ([]*models.OrderCheckpoint, error) {
	out := []*models.OrderCheckpoint{}
	for id := int64(1); id <= m.nextID; id++ {
		if c, ok := m.cps[id]; ok && c.TrackedOrderID == trackedOrderID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}
func (m *memStore) UpdateTrackedOrder(ctx context.Context, upd models.TrackedOrderUpdate) error {
	o, ok := m.orders[upd.TrackedOrderID]
	if !ok {
		return models.ErrNotFound
	}
	m.updates++
	o.EstimatedDeliveryDate = upd.EstimatedDeliveryDate
	o.CurrentStatus = upd.Status
	if upd.DeliveryAddress != nil {
		o.DeliveryAddress = *upd.DeliveryAddress
	}
	return nil
}
func (m *memStore) UpdateOrderCheckpoint(ctx context.Context, upd models.CheckpointUpdate) error {
	c, ok := m.cps[upd.CheckpointID]
	if !ok {
		return models.ErrNotFound
	}
	c.Timestamp, c.Location, c.Description, c.Status = upd.Timestamp, upd.Location, upd.Description, upd.Status
	return nil
}

type recordingSender struct {
	sent []string
}

func (r *recordingSender) SendShippingProgressNotification(ctx context.Context, buyerID, trackedOrderID int64, status string, deliveryDate time.Time) error {
	r.sent = append(r.sent, status)
	return nil
}

type staticOrders struct{}

func (staticOrders) GetOrderByID(ctx context.Context, orderID int64) (*models.Order, bool, error) {
	return &models.Order{OrderID: orderID, BuyerID: 1}, true, nil
}

// The latest checkpoint always drives the status, whatever sequence of
// appends, edits and reverts happened before.
func TestService_StatusFollowsLatestCheckpoint(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()
	snd := &recordingSender{}
	s := New(st, staticOrders{}, snd, nil)

	id, err := s.AddTrackedOrder(ctx, models.TrackedOrder{OrderID: 10, EstimatedDeliveryDate: time.Now()})
	require.NoError(t, err)

	steps := []models.OrderStatus{models.OrderStatusShipped, models.OrderStatusInWarehouse, models.OrderStatusInTransit}
	var last int64
	for _, stp := range steps {
		last, err = s.AddOrderCheckpoint(ctx, models.OrderCheckpoint{TrackedOrderID: id, Description: string(stp), Status: stp})
		require.NoError(t, err)
		o, err := st.GetTrackedOrderByID(ctx, id)
		require.NoError(t, err)
		require.Equal(t, stp, o.CurrentStatus)
	}

	require.NoError(t, s.UpdateOrderCheckpoint(ctx, models.CheckpointUpdate{CheckpointID: last, Description: "x", Status: models.OrderStatusOutForDelivery}))
	o, _ := st.GetTrackedOrderByID(ctx, id)
	require.Equal(t, models.OrderStatusOutForDelivery, o.CurrentStatus)

	// ручная правка статуса, затем откат к последнему чекпоинту
	require.NoError(t, s.UpdateTrackedOrder(ctx, id, o.EstimatedDeliveryDate, models.OrderStatusDelivered))
	ok, err := s.RevertToLastCheckpoint(ctx, o)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, models.OrderStatusOutForDelivery, o.CurrentStatus)

	require.NoError(t, s.RevertToPreviousCheckpoint(ctx, o))
	require.Equal(t, models.OrderStatusInWarehouse, o.CurrentStatus)
	n, err := s.GetNumberOfCheckpoints(ctx, o)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	require.NoError(t, s.RevertToPreviousCheckpoint(ctx, o))
	require.NoError(t, s.RevertToPreviousCheckpoint(ctx, o))
	stored, _ := st.GetTrackedOrderByID(ctx, id)
	require.Equal(t, models.OrderStatusProcessing, stored.CurrentStatus)
	require.ErrorIs(t, s.RevertToPreviousCheckpoint(ctx, o), models.ErrNoHistory)

	// creation plus the SHIPPED checkpoint
	require.Equal(t, []string{"PROCESSING", "SHIPPED"}, snd.sent)
}

func TestService_GetTrackedOrder_CacheHitSkipsStore(t *testing.T) {
	st := &trackedmocks.MockStore{}
	c := &cachemocks.MockBytesCache{}
	s := New(st, nil, nil, nil).WithCache(c, time.Minute)

	b, _ := json.Marshal(models.TrackedOrder{TrackedOrderID: 5, OrderID: 6, CurrentStatus: models.OrderStatusShipped})
	c.On("Get", mock.Anything, "tracked_order:5:current").Return(b, true, nil).Once()

	o, err := s.GetTrackedOrder(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, int64(6), o.OrderID)
	st.AssertNotCalled(t, "GetTrackedOrderByID", mock.Anything, mock.Anything)
}

func TestService_GetTrackedOrder_MissFillsCache(t *testing.T) {
	st := &trackedmocks.MockStore{}
	c := &cachemocks.MockBytesCache{}
	s := New(st, nil, nil, nil).WithCache(c, time.Minute)

	c.On("Get", mock.Anything, "tracked_order:5:current").Return(nil, false, nil).Once()
	st.On("GetTrackedOrderByID", mock.Anything, int64(5)).Return(&models.TrackedOrder{TrackedOrderID: 5, OrderID: 6}, nil).Once()
	c.On("Set", mock.Anything, "tracked_order:5:current", mock.Anything, time.Minute).Return(nil).Once()

	o, err := s.GetTrackedOrder(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, int64(6), o.OrderID)
	c.AssertExpectations(t)
}

func TestService_GetTrackedOrder_NotFound(t *testing.T) {
	s := New(newMemStore(), nil, nil, nil)
	_, err := s.GetTrackedOrder(context.Background(), 404)
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestService_MutationsDropCache(t *testing.T) {
	st := &trackedmocks.MockStore{}
	c := &cachemocks.MockBytesCache{}
	s := New(st, nil, nil, nil).WithCache(c, time.Minute)

	st.On("UpdateTrackedOrder", mock.Anything, mock.Anything).Return(nil).Once()
	st.On("DeleteTrackedOrder", mock.Anything, int64(5)).Return(true, nil).Once()
	c.On("Delete", mock.Anything, "tracked_order:5:current").Return(nil).Twice()

	require.NoError(t, s.UpdateTrackedOrder(context.Background(), 5, time.Now(), models.OrderStatusInTransit))
	ok, err := s.DeleteTrackedOrder(context.Background(), 5)
	require.NoError(t, err)
	require.True(t, ok)
	c.AssertExpectations(t)
}

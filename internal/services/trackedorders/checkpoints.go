package trackedorders

import (
	"context"

	"github.com/pkg/errors"

	"github.com/BearBump/OrderTrack/internal/metrics"
	"github.com/BearBump/OrderTrack/internal/models"
)

// AddOrderCheckpoint appends c to its tracked order's history and moves the
// order's status to the new latest checkpoint. The checkpoint id is returned
// even when that status write fails.
func (s *Service) AddOrderCheckpoint(ctx context.Context, c models.OrderCheckpoint) (int64, error) {
	if c.TrackedOrderID <= 0 {
		return 0, errors.Wrapf(models.ErrInvalidArgument, "tracked order id %d", c.TrackedOrderID)
	}
	if !c.Status.Valid() {
		return 0, errors.Wrapf(models.ErrInvalidArgument, "status %q", c.Status)
	}
	if c.Timestamp.IsZero() {
		c.Timestamp = s.now()
	}

	id, err := s.store.AddOrderCheckpoint(ctx, c)
	if err != nil {
		return 0, err
	}
	metrics.CheckpointsAppendedTotal.Inc()

	if err := s.syncStatus(ctx, c.TrackedOrderID); err != nil {
		return id, errors.Wrap(err, "sync status")
	}
	return id, nil
}

// UpdateOrderCheckpoint replaces the checkpoint and re-derives its tracked
// order's status. The two writes are not atomic.
func (s *Service) UpdateOrderCheckpoint(ctx context.Context, upd models.CheckpointUpdate) error {
	if !upd.Status.Valid() {
		return errors.Wrapf(models.ErrInvalidArgument, "status %q", upd.Status)
	}
	cur, err := s.store.GetOrderCheckpointByID(ctx, upd.CheckpointID)
	if err != nil {
		return err
	}
	if err := s.store.UpdateOrderCheckpoint(ctx, upd); err != nil {
		return err
	}
	return s.syncStatus(ctx, cur.TrackedOrderID)
}

// UpdateOrderCheckpointFor is UpdateOrderCheckpoint guarded by ownership: a
// checkpoint of another tracked order reports false and nothing is written.
func (s *Service) UpdateOrderCheckpointFor(ctx context.Context, trackedOrderID int64, upd models.CheckpointUpdate) (bool, error) {
	if !upd.Status.Valid() {
		return false, errors.Wrapf(models.ErrInvalidArgument, "status %q", upd.Status)
	}
	cur, err := s.store.GetOrderCheckpointByID(ctx, upd.CheckpointID)
	if err != nil {
		return false, err
	}
	if cur.TrackedOrderID != trackedOrderID {
		return false, nil
	}
	if err := s.store.UpdateOrderCheckpoint(ctx, upd); err != nil {
		return false, err
	}
	if err := s.syncStatus(ctx, trackedOrderID); err != nil {
		return true, errors.Wrap(err, "sync status")
	}
	return true, nil
}

// DeleteOrderCheckpoint removes one checkpoint and re-derives the status.
// A missing checkpoint reports false.
func (s *Service) DeleteOrderCheckpoint(ctx context.Context, checkpointID int64) (bool, error) {
	cur, err := s.store.GetOrderCheckpointByID(ctx, checkpointID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	ok, err := s.store.DeleteOrderCheckpoint(ctx, checkpointID)
	if err != nil || !ok {
		return false, err
	}
	if err := s.syncStatus(ctx, cur.TrackedOrderID); err != nil {
		return true, errors.Wrap(err, "sync status")
	}
	return true, nil
}

func (s *Service) GetCheckpoints(ctx context.Context, trackedOrderID int64) ([]*models.OrderCheckpoint, error) {
	return s.store.GetAllOrderCheckpoints(ctx, trackedOrderID)
}

func (s *Service) GetCheckpoint(ctx context.Context, checkpointID int64) (*models.OrderCheckpoint, error) {
	return s.store.GetOrderCheckpointByID(ctx, checkpointID)
}

// GetLastCheckpoint returns the checkpoint with the greatest id, or nil when
// the tracked order has none.
func (s *Service) GetLastCheckpoint(ctx context.Context, o *models.TrackedOrder) (*models.OrderCheckpoint, error) {
	if o == nil {
		return nil, errors.Wrap(models.ErrInvalidArgument, "tracked order is nil")
	}
	cps, err := s.store.GetAllOrderCheckpoints(ctx, o.TrackedOrderID)
	if err != nil {
		return nil, err
	}
	return latest(cps), nil
}

func (s *Service) GetNumberOfCheckpoints(ctx context.Context, o *models.TrackedOrder) (int, error) {
	if o == nil {
		return 0, errors.Wrap(models.ErrInvalidArgument, "tracked order is nil")
	}
	cps, err := s.store.GetAllOrderCheckpoints(ctx, o.TrackedOrderID)
	if err != nil {
		return 0, err
	}
	return len(cps), nil
}

// syncStatus makes the tracked order's status match its latest checkpoint,
// or PROCESSING when the history is empty. Moving into a notify-worthy
// status is announced like an explicit update.
func (s *Service) syncStatus(ctx context.Context, trackedOrderID int64) error {
	cur, err := s.store.GetTrackedOrderByID(ctx, trackedOrderID)
	if err != nil {
		return err
	}
	cps, err := s.store.GetAllOrderCheckpoints(ctx, trackedOrderID)
	if err != nil {
		return err
	}

	status := derivedStatus(cps)
	if status == cur.CurrentStatus {
		return nil
	}
	if err := s.applyUpdate(ctx, models.TrackedOrderUpdate{
		TrackedOrderID:        trackedOrderID,
		EstimatedDeliveryDate: cur.EstimatedDeliveryDate,
		Status:                status,
	}); err != nil {
		return err
	}
	if s.notifyWorthy(status) {
		s.notifyShippingProgress(ctx, cur.OrderID, trackedOrderID, status, cur.EstimatedDeliveryDate)
	}
	return nil
}

func latest(cps []*models.OrderCheckpoint) *models.OrderCheckpoint {
	var last *models.OrderCheckpoint
	for _, c := range cps {
		if c != nil && (last == nil || c.CheckpointID > last.CheckpointID) {
			last = c
		}
	}
	return last
}

func derivedStatus(cps []*models.OrderCheckpoint) models.OrderStatus {
	if last := latest(cps); last != nil {
		return last.Status
	}
	return models.OrderStatusProcessing
}

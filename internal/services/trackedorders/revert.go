package trackedorders

import (
	"context"

	"github.com/pkg/errors"

	"github.com/BearBump/OrderTrack/internal/models"
)

// RevertToPreviousCheckpoint drops the latest checkpoint of o and rolls the
// status back to the one before it, or to PROCESSING when none is left.
// o.CurrentStatus is updated in place. Reverts are not announced to buyers.
func (s *Service) RevertToPreviousCheckpoint(ctx context.Context, o *models.TrackedOrder) error {
	if o == nil {
		return errors.Wrap(models.ErrInvalidArgument, "tracked order is nil")
	}
	cps, err := s.store.GetAllOrderCheckpoints(ctx, o.TrackedOrderID)
	if err != nil {
		return err
	}
	last := latest(cps)
	if last == nil {
		return errors.Wrapf(models.ErrNoHistory, "tracked order %d", o.TrackedOrderID)
	}

	if _, err := s.store.DeleteOrderCheckpoint(ctx, last.CheckpointID); err != nil {
		return err
	}

	rest := make([]*models.OrderCheckpoint, 0, len(cps)-1)
	for _, c := range cps {
		if c != nil && c.CheckpointID != last.CheckpointID {
			rest = append(rest, c)
		}
	}
	return s.resetStatus(ctx, o, derivedStatus(rest))
}

// RevertToLastCheckpoint resets the status of o to its latest checkpoint,
// undoing any manual status change made since. It reports false without
// writing when o is nil or has no checkpoints.
func (s *Service) RevertToLastCheckpoint(ctx context.Context, o *models.TrackedOrder) (bool, error) {
	if o == nil {
		return false, nil
	}
	cps, err := s.store.GetAllOrderCheckpoints(ctx, o.TrackedOrderID)
	if err != nil {
		return false, err
	}
	last := latest(cps)
	if last == nil {
		return false, nil
	}
	if err := s.resetStatus(ctx, o, last.Status); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) resetStatus(ctx context.Context, o *models.TrackedOrder, status models.OrderStatus) error {
	cur, err := s.store.GetTrackedOrderByID(ctx, o.TrackedOrderID)
	if err != nil {
		return err
	}
	if err := s.applyUpdate(ctx, models.TrackedOrderUpdate{
		TrackedOrderID:        o.TrackedOrderID,
		EstimatedDeliveryDate: cur.EstimatedDeliveryDate,
		Status:                status,
	}); err != nil {
		return err
	}
	o.CurrentStatus = status
	return nil
}

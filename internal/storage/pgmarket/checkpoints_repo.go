package pgmarket

import (
	"context"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/pkg/errors"

	"github.com/BearBump/OrderTrack/internal/models"
)

const selectCheckpoints = `
SELECT checkpoint_id, checkpoint_timestamp, location, description, checkpoint_status, tracked_order_id
FROM order_checkpoints`

func (s *Storage) AddOrderCheckpoint(ctx context.Context, c models.OrderCheckpoint) (int64, error) {
	return s.insert(ctx, procInsertOrderCheckpoint,
		c.Timestamp.UTC(), c.Location, c.Description, string(c.Status), c.TrackedOrderID)
}

func (s *Storage) DeleteOrderCheckpoint(ctx context.Context, checkpointID int64) (bool, error) {
	n, err := s.nonQuery(ctx, procDeleteOrderCheckpoint, checkpointID)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Storage) GetOrderCheckpointByID(ctx context.Context, checkpointID int64) (*models.OrderCheckpoint, error) {
	var c models.OrderCheckpoint
	err := pgxscan.Get(ctx, s.db, &c, selectCheckpoints+` WHERE checkpoint_id = $1`, checkpointID)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, errors.Wrapf(models.ErrNotFound, "checkpoint %d", checkpointID)
		}
		return nil, errors.Wrap(err, "select checkpoint")
	}
	return &c, nil
}

// GetAllOrderCheckpoints returns the history of one tracked order in insertion order.
func (s *Storage) GetAllOrderCheckpoints(ctx context.Context, trackedOrderID int64) ([]*models.OrderCheckpoint, error) {
	out := []*models.OrderCheckpoint{}
	err := pgxscan.Select(ctx, s.db, &out,
		selectCheckpoints+` WHERE tracked_order_id = $1 ORDER BY checkpoint_id ASC`, trackedOrderID)
	if err != nil {
		return nil, errors.Wrap(err, "select checkpoints")
	}
	return out, nil
}

func (s *Storage) UpdateOrderCheckpoint(ctx context.Context, upd models.CheckpointUpdate) error {
	n, err := s.nonQuery(ctx, procUpdateOrderCheckpoint,
		upd.CheckpointID, upd.Timestamp.UTC(), upd.Location, upd.Description, string(upd.Status))
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.Wrapf(models.ErrNotFound, "checkpoint %d", upd.CheckpointID)
	}
	return nil
}

package orders_api

import (
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/BearBump/OrderTrack/internal/models"
)

type createTrackedOrderRequest struct {
	OrderID               int64  `json:"order_id" validate:"gt=0"`
	Status                string `json:"status" validate:"omitempty,oneof=PROCESSING SHIPPED IN_WAREHOUSE IN_TRANSIT OUT_FOR_DELIVERY DELIVERED"`
	EstimatedDeliveryDate string `json:"estimated_delivery_date" validate:"required,datetime=2006-01-02"`
	DeliveryAddress       string `json:"delivery_address" validate:"required,max=512"`
}

// updateTrackedOrderRequest with order_id set is applied only when the
// tracked order belongs to that order.
type updateTrackedOrderRequest struct {
	OrderID               int64   `json:"order_id" validate:"gte=0"`
	Status                string  `json:"status" validate:"required,oneof=PROCESSING SHIPPED IN_WAREHOUSE IN_TRANSIT OUT_FOR_DELIVERY DELIVERED"`
	EstimatedDeliveryDate string  `json:"estimated_delivery_date" validate:"required,datetime=2006-01-02"`
	DeliveryAddress       *string `json:"delivery_address" validate:"omitempty,max=512"`
}

type checkpointRequest struct {
	Timestamp   *time.Time `json:"timestamp"`
	Location    *string    `json:"location" validate:"omitempty,max=256"`
	Description string     `json:"description" validate:"max=1024"`
	Status      string     `json:"status" validate:"required,oneof=PROCESSING SHIPPED IN_WAREHOUSE IN_TRANSIT OUT_FOR_DELIVERY DELIVERED"`
}

type updateCheckpointRequest struct {
	checkpointRequest
	TrackedOrderID int64 `json:"tracked_order_id" validate:"gte=0"`
}

type idResponse struct {
	ID int64 `json:"id"`
}

func (a *OrdersAPI) handleCreateTrackedOrder(w http.ResponseWriter, r *http.Request) {
	var req createTrackedOrderRequest
	if err := a.decode(r, &req); err != nil {
		a.fail(w, "add_tracked_order", err)
		return
	}
	eta, _ := time.Parse(dateLayout, req.EstimatedDeliveryDate)

	id, err := a.tracked.AddTrackedOrder(r.Context(), models.TrackedOrder{
		OrderID:               req.OrderID,
		CurrentStatus:         models.OrderStatus(req.Status),
		EstimatedDeliveryDate: eta,
		DeliveryAddress:       req.DeliveryAddress,
	})
	if err != nil {
		a.fail(w, "add_tracked_order", err)
		return
	}
	respondJSON(w, http.StatusCreated, idResponse{ID: id})
}

func (a *OrdersAPI) handleListTrackedOrders(w http.ResponseWriter, r *http.Request) {
	all, err := a.tracked.GetAllTrackedOrders(r.Context())
	if err != nil {
		a.fail(w, "list_tracked_orders", err)
		return
	}
	respondJSON(w, http.StatusOK, all)
}

func (a *OrdersAPI) handleGetTrackedOrder(w http.ResponseWriter, r *http.Request) {
	o, ok := a.trackedOrderFromPath(w, r, "get_tracked_order")
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, o)
}

func (a *OrdersAPI) handleUpdateTrackedOrder(w http.ResponseWriter, r *http.Request) {
	const op = "update_tracked_order"
	id, err := pathID(r)
	if err != nil {
		a.fail(w, op, err)
		return
	}
	var req updateTrackedOrderRequest
	if err := a.decode(r, &req); err != nil {
		a.fail(w, op, err)
		return
	}
	eta, _ := time.Parse(dateLayout, req.EstimatedDeliveryDate)
	status := models.OrderStatus(req.Status)

	if req.OrderID == 0 && req.DeliveryAddress == nil {
		if err := a.tracked.UpdateTrackedOrder(r.Context(), id, eta, status); err != nil {
			a.fail(w, op, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if req.OrderID == 0 {
		a.fail(w, op, errors.Wrap(models.ErrInvalidArgument, "delivery_address requires order_id"))
		return
	}
	applied, err := a.tracked.UpdateTrackedOrderFor(r.Context(), req.OrderID, models.TrackedOrderUpdate{
		TrackedOrderID:        id,
		EstimatedDeliveryDate: eta,
		Status:                status,
		DeliveryAddress:       req.DeliveryAddress,
	})
	if err != nil {
		a.fail(w, op, err)
		return
	}
	if !applied {
		respondError(w, http.StatusConflict, "tracked order belongs to another order")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *OrdersAPI) handleDeleteTrackedOrder(w http.ResponseWriter, r *http.Request) {
	const op = "delete_tracked_order"
	id, err := pathID(r)
	if err != nil {
		a.fail(w, op, err)
		return
	}
	deleted, err := a.tracked.DeleteTrackedOrder(r.Context(), id)
	if err != nil {
		a.fail(w, op, err)
		return
	}
	if !deleted {
		respondError(w, http.StatusNotFound, "tracked order not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *OrdersAPI) handleListCheckpoints(w http.ResponseWriter, r *http.Request) {
	const op = "list_checkpoints"
	id, err := pathID(r)
	if err != nil {
		a.fail(w, op, err)
		return
	}
	cps, err := a.tracked.GetCheckpoints(r.Context(), id)
	if err != nil {
		a.fail(w, op, err)
		return
	}
	respondJSON(w, http.StatusOK, cps)
}

func (a *OrdersAPI) handleAddCheckpoint(w http.ResponseWriter, r *http.Request) {
	const op = "add_checkpoint"
	id, err := pathID(r)
	if err != nil {
		a.fail(w, op, err)
		return
	}
	var req checkpointRequest
	if err := a.decode(r, &req); err != nil {
		a.fail(w, op, err)
		return
	}

	c := models.OrderCheckpoint{
		Location:       req.Location,
		Description:    req.Description,
		Status:         models.OrderStatus(req.Status),
		TrackedOrderID: id,
	}
	if req.Timestamp != nil {
		c.Timestamp = req.Timestamp.UTC()
	}

	cpID, err := a.tracked.AddOrderCheckpoint(r.Context(), c)
	if err != nil && cpID == 0 {
		a.fail(w, op, err)
		return
	}
	if err != nil {
		// the checkpoint is stored, only the status write failed
		a.fail(w, op, errors.Wrapf(err, "checkpoint %d stored", cpID))
		return
	}
	respondJSON(w, http.StatusCreated, idResponse{ID: cpID})
}

func (a *OrdersAPI) handleLastCheckpoint(w http.ResponseWriter, r *http.Request) {
	const op = "last_checkpoint"
	o, ok := a.trackedOrderFromPath(w, r, op)
	if !ok {
		return
	}
	cp, err := a.tracked.GetLastCheckpoint(r.Context(), o)
	if err != nil {
		a.fail(w, op, err)
		return
	}
	if cp == nil {
		respondError(w, http.StatusNotFound, "tracked order has no checkpoints")
		return
	}
	respondJSON(w, http.StatusOK, cp)
}

func (a *OrdersAPI) handleCountCheckpoints(w http.ResponseWriter, r *http.Request) {
	const op = "count_checkpoints"
	o, ok := a.trackedOrderFromPath(w, r, op)
	if !ok {
		return
	}
	n, err := a.tracked.GetNumberOfCheckpoints(r.Context(), o)
	if err != nil {
		a.fail(w, op, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"count": n})
}

func (a *OrdersAPI) handleRevertPrevious(w http.ResponseWriter, r *http.Request) {
	const op = "revert_previous"
	o, ok := a.trackedOrderFromPath(w, r, op)
	if !ok {
		return
	}
	if err := a.tracked.RevertToPreviousCheckpoint(r.Context(), o); err != nil {
		a.fail(w, op, err)
		return
	}
	respondJSON(w, http.StatusOK, o)
}

func (a *OrdersAPI) handleRevertLast(w http.ResponseWriter, r *http.Request) {
	const op = "revert_last"
	o, ok := a.trackedOrderFromPath(w, r, op)
	if !ok {
		return
	}
	reverted, err := a.tracked.RevertToLastCheckpoint(r.Context(), o)
	if err != nil {
		a.fail(w, op, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"reverted": reverted, "tracked_order": o})
}

func (a *OrdersAPI) handleGetCheckpoint(w http.ResponseWriter, r *http.Request) {
	const op = "get_checkpoint"
	id, err := pathID(r)
	if err != nil {
		a.fail(w, op, err)
		return
	}
	cp, err := a.tracked.GetCheckpoint(r.Context(), id)
	if err != nil {
		a.fail(w, op, err)
		return
	}
	respondJSON(w, http.StatusOK, cp)
}

func (a *OrdersAPI) handleUpdateCheckpoint(w http.ResponseWriter, r *http.Request) {
	const op = "update_checkpoint"
	id, err := pathID(r)
	if err != nil {
		a.fail(w, op, err)
		return
	}
	var req updateCheckpointRequest
	if err := a.decode(r, &req); err != nil {
		a.fail(w, op, err)
		return
	}
	if req.Timestamp == nil {
		a.fail(w, op, errors.Wrap(models.ErrInvalidArgument, "timestamp is required"))
		return
	}

	upd := models.CheckpointUpdate{
		CheckpointID: id,
		Timestamp:    req.Timestamp.UTC(),
		Location:     req.Location,
		Description:  req.Description,
		Status:       models.OrderStatus(req.Status),
	}

	if req.TrackedOrderID == 0 {
		if err := a.tracked.UpdateOrderCheckpoint(r.Context(), upd); err != nil {
			a.fail(w, op, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	applied, err := a.tracked.UpdateOrderCheckpointFor(r.Context(), req.TrackedOrderID, upd)
	if err != nil && !applied {
		a.fail(w, op, err)
		return
	}
	if err != nil {
		a.fail(w, op, errors.Wrapf(err, "checkpoint %d updated", id))
		return
	}
	if !applied {
		respondError(w, http.StatusConflict, "checkpoint belongs to another tracked order")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *OrdersAPI) handleDeleteCheckpoint(w http.ResponseWriter, r *http.Request) {
	const op = "delete_checkpoint"
	id, err := pathID(r)
	if err != nil {
		a.fail(w, op, err)
		return
	}
	deleted, err := a.tracked.DeleteOrderCheckpoint(r.Context(), id)
	if err != nil && !deleted {
		a.fail(w, op, err)
		return
	}
	if err != nil {
		a.fail(w, op, errors.Wrapf(err, "checkpoint %d deleted", id))
		return
	}
	if !deleted {
		respondError(w, http.StatusNotFound, "checkpoint not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *OrdersAPI) trackedOrderFromPath(w http.ResponseWriter, r *http.Request, op string) (*models.TrackedOrder, bool) {
	id, err := pathID(r)
	if err != nil {
		a.fail(w, op, err)
		return nil, false
	}
	o, err := a.tracked.GetTrackedOrder(r.Context(), id)
	if err != nil {
		a.fail(w, op, err)
		return nil, false
	}
	return o, true
}

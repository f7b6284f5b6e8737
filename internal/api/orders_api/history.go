package orders_api

import (
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/BearBump/OrderTrack/internal/models"
)

// handleBuyerOrders serves the combined history; an unknown filter falls back to all.
func (a *OrdersAPI) handleBuyerOrders(w http.ResponseWriter, r *http.Request) {
	const op = "buyer_orders"
	buyerID, err := pathID(r)
	if err != nil {
		a.fail(w, op, err)
		return
	}
	filter, _ := models.ParseHistoryFilter(r.URL.Query().Get("filter"))

	orders, err := a.history.GetCombinedOrderHistory(r.Context(), buyerID, filter)
	if err != nil {
		a.fail(w, op, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

func (a *OrdersAPI) handleSearchOrders(w http.ResponseWriter, r *http.Request) {
	const op = "search_orders"
	buyerID, err := pathID(r)
	if err != nil {
		a.fail(w, op, err)
		return
	}
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		a.fail(w, op, errors.Wrap(models.ErrInvalidArgument, "name is required"))
		return
	}

	orders, err := a.history.OrdersByName(r.Context(), buyerID, name)
	if err != nil {
		a.fail(w, op, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

func (a *OrdersAPI) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	const op = "get_order"
	orderID, err := pathID(r)
	if err != nil {
		a.fail(w, op, err)
		return
	}
	o, found, err := a.history.GetOrderByID(r.Context(), orderID)
	if err != nil {
		a.fail(w, op, err)
		return
	}
	if !found {
		respondError(w, http.StatusNotFound, "order not found")
		return
	}
	respondJSON(w, http.StatusOK, o)
}

func (a *OrdersAPI) handleOrderHistoryOrders(w http.ResponseWriter, r *http.Request) {
	const op = "order_history_orders"
	historyID, err := pathID(r)
	if err != nil {
		a.fail(w, op, err)
		return
	}
	orders, err := a.history.OrdersFromOrderHistory(r.Context(), historyID)
	if err != nil {
		a.fail(w, op, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

package orders_api

import (
	"net/http"

	"github.com/BearBump/OrderTrack/internal/models"
	"github.com/BearBump/OrderTrack/internal/services/notifications"
)

type notificationView struct {
	Category     models.NotificationCategory `json:"category"`
	Content      notifications.Content       `json:"content"`
	Notification models.Notification         `json:"notification"`
}

func (a *OrdersAPI) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	const op = "list_notifications"
	userID, err := pathID(r)
	if err != nil {
		a.fail(w, op, err)
		return
	}
	list, err := a.notifications.GetNotificationsForUser(r.Context(), userID)
	if err != nil {
		a.fail(w, op, err)
		return
	}

	out := make([]notificationView, 0, len(list))
	for _, n := range list {
		c, err := notifications.Render(n)
		if err != nil {
			a.fail(w, op, err)
			return
		}
		out = append(out, notificationView{Category: n.Category(), Content: c, Notification: n})
	}
	respondJSON(w, http.StatusOK, out)
}

func (a *OrdersAPI) handleUnreadCount(w http.ResponseWriter, r *http.Request) {
	const op = "unread_count"
	userID, err := pathID(r)
	if err != nil {
		a.fail(w, op, err)
		return
	}
	n, err := a.notifications.UnreadCount(r.Context(), userID)
	if err != nil {
		a.fail(w, op, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"unread": n})
}

// handleMarkRead is idempotent, like the store call behind it.
func (a *OrdersAPI) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	const op = "mark_read"
	id, err := pathID(r)
	if err != nil {
		a.fail(w, op, err)
		return
	}
	if err := a.notifications.MarkAsRead(r.Context(), id); err != nil {
		a.fail(w, op, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TrackedOrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ordertrack_tracked_orders_created_total",
		Help: "Total number of tracked orders created.",
	})

	CheckpointsAppendedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ordertrack_checkpoints_appended_total",
		Help: "Total number of checkpoints appended to tracked orders.",
	})

	StatusUpdatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ordertrack_status_updates_total",
		Help: "Total number of tracked order status writes, by resulting status.",
	},
		[]string{"status"},
	)

	NotificationsSentTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ordertrack_notifications_sent_total",
		Help: "Total number of notifications persisted, by category.",
	},
		[]string{"category"},
	)

	NotificationsThrottledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ordertrack_notifications_throttled_total",
		Help: "Total number of shipping progress notifications rejected by the per-buyer limit.",
	})

	NotificationFailuresSwallowedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ordertrack_notification_failures_swallowed_total",
		Help: "Total number of notification failures logged and discarded, by stage.",
	},
		[]string{"stage"},
	)

	DispatchRetriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ordertrack_dispatch_retries_total",
		Help: "Total number of notification delivery retries in the notify worker.",
	})

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ordertrack_operation_errors_total",
		Help: "Total number of errors returned by HTTP operations.",
	},
		[]string{"operation"},
	)
)

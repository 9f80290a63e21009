// Package metrics defines and registers all custom Prometheus metrics for the
// storefront console. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// ── Session metrics ──────────────────────────────────────────────────────────

// SessionLoginsTotal counts login attempts.
// Label:
//   - result: "success", "rejected" or "error"
var SessionLoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SessionClearsTotal counts forced and voluntary session teardowns.
// Label:
//   - reason: "logout", "expired", "malformed", "unreachable"
var SessionClearsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_clears_total",
		Help:      "Total number of session clears, by reason.",
	},
	[]string{"reason"},
)

// ── Cart metrics ─────────────────────────────────────────────────────────────

// CartMutationsTotal counts cart mutations.
// Label:
//   - op: "add", "update", "remove", "clear", "consume"
var CartMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_mutations_total",
		Help:      "Total number of cart mutations, by operation.",
	},
	[]string{"op"},
)

// CartStockRejectionsTotal counts mutations refused by the stock ceiling.
var CartStockRejectionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_stock_rejections_total",
		Help:      "Total number of cart mutations refused because they exceeded stock.",
	},
)

// CartPersistErrorsTotal counts failed writes of a cart partition.
var CartPersistErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_persist_errors_total",
		Help:      "Total number of cart persistence writes that failed.",
	},
)

// CartWriterQueueDepth tracks pending persistence writes per writer shard.
// Label:
//   - worker_id: numeric worker index
var CartWriterQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "cart_writer_queue_depth",
		Help:      "Current number of cart writes pending in each writer shard.",
	},
	[]string{"worker_id"},
)

// ── Checkout / order metrics ─────────────────────────────────────────────────

// CheckoutsTotal counts checkout attempts.
// Label:
//   - result: "success", "order_failed", "session_failed"
var CheckoutsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkouts_total",
		Help:      "Total number of checkout attempts, by result.",
	},
	[]string{"result"},
)

// CheckoutAmount observes the grand total of submitted carts.
var CheckoutAmount = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "checkout_amount",
		Help:      "Grand total of carts submitted at checkout.",
		Buckets:   []float64{25, 50, 100, 200, 300, 500, 1000, 2500},
	},
)

// OrderRefreshesTotal counts order list refresh outcomes.
// Label:
//   - result: "applied", "stale", "error"
var OrderRefreshesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_refreshes_total",
		Help:      "Total number of order list refreshes, by outcome.",
	},
	[]string{"result"},
)

// BackendRequestDuration measures calls to the REST backend.
// Labels:
//   - method: HTTP method
//   - status: HTTP status code, or "error" on transport failure
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of requests to the storefront backend.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "status"},
)

// ── Notification metrics ─────────────────────────────────────────────────────

// NotificationsDroppedTotal counts notifications a slow subscriber missed.
var NotificationsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_dropped_total",
		Help:      "Total number of notifications dropped because a subscriber buffer was full.",
	},
)

// NotificationSubscribers tracks currently mounted renderers.
var NotificationSubscribers = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_subscribers",
		Help:      "Current number of notification subscribers.",
	},
)

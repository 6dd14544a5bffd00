// Package metrics defines and registers all custom Prometheus metrics for the
// storefront API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry at import time
// via promauto; the HTTP layer exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "ok", "unknown_user", "bad_password"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SignupsTotal counts signup attempts by outcome.
// Label:
//   - result: "ok" or "error"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of signup attempts, by result.",
	},
	[]string{"result"},
)

// TokenVerificationsTotal counts bearer-token checks in the auth middleware.
// Label:
//   - result: "ok", "missing", "invalid", "expired", "stale_identity"
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of bearer token verifications, by result.",
	},
	[]string{"result"},
)

// ActivityQueueDepth tracks pending entries per activity dispatcher worker.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of activity records pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ActivityProcessingDuration measures activity persistence latency.
// Label:
//   - action: the recorded action, or "error" on failure
var ActivityProcessingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "activity_processing_duration_seconds",
		Help:      "Duration of activity record processing from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"action"},
)

// Package metrics defines and registers all custom Prometheus metrics of the
// StockManager admin console. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics are registered with the default Prometheus registry at package init
// through promauto, and exposed by the console on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "stockmanager"

// ── Backend API metrics ───────────────────────────────────────────────────────

// APIRequestsTotal counts outgoing backend calls.
// Labels:
//   - resource: "auth", "products", "categories" or "stats"
//   - method: HTTP method
//   - code: HTTP status code, or "error" when the request never completed
var APIRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "api",
		Name:      "requests_total",
		Help:      "Total number of backend API requests, by resource, method and status code.",
	},
	[]string{"resource", "method", "code"},
)

// APIRequestDuration measures backend round-trip latency.
var APIRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "api",
		Name:      "request_duration_seconds",
		Help:      "Duration of backend API requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"resource", "method"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionTransitionsTotal counts session state transitions.
// Labels:
//   - to: the resulting state ("authenticated", "anonymous")
//   - cause: "check_auth", "login", "logout" or "expired"
var SessionTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "session",
		Name:      "transitions_total",
		Help:      "Total number of session state transitions.",
	},
	[]string{"to", "cause"},
)

// ── View metrics ──────────────────────────────────────────────────────────────

// ListLoadsTotal counts list page loads.
// Labels:
//   - view: "products", "categories" or "dashboard"
//   - result: "ok", "failed" or "cancelled"
var ListLoadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "view",
		Name:      "loads_total",
		Help:      "Total number of page data loads, by view and result.",
	},
	[]string{"view", "result"},
)

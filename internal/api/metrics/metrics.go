// Package metrics defines and registers all custom Prometheus metrics for
// the ESG admin gateway. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at import time; the
// router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "esggw"

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionLoginsTotal counts login attempts.
// Label:
//   - outcome: "success", "rejected" or "unavailable"
var SessionLoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// SessionInvalidationsTotal counts session teardowns.
// Label:
//   - reason: "logout" or "token_rejected"
var SessionInvalidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_invalidations_total",
		Help:      "Total number of session invalidations, by reason.",
	},
	[]string{"reason"},
)

// ── Analytics metrics ─────────────────────────────────────────────────────────

// AnalyticsFallbacksTotal counts capability results served from the
// placeholder payload instead of live data.
// Label:
//   - capability: "predictions", "risks", "carbon", "recommendations",
//     "document" or "report"
var AnalyticsFallbacksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "analytics_fallbacks_total",
		Help:      "Total number of analytics results served as synthetic fallbacks.",
	},
	[]string{"capability"},
)

// UpstreamRequestDuration measures platform API round trips from the
// gateway's side.
// Labels:
//   - path: upstream endpoint path
//   - outcome: "ok", "auth", "rejected" or "transient"
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of requests to the platform API.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"path", "outcome"},
)

// PanelQueueDepth tracks the refresh jobs waiting in each dispatcher worker
// channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var PanelQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "panel_queue_depth",
		Help:      "Current number of panel refresh jobs pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// PanelRefreshDuration measures how long a full panel bundle refresh takes.
// Label:
//   - outcome: "ok", "partial" (some capability failed) or "error"
var PanelRefreshDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "panel_refresh_duration_seconds",
		Help:      "Duration of a dashboard panel bundle refresh.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"outcome"},
)

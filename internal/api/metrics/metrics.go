// Package metrics defines and registers all custom Prometheus metrics for
// the course-market API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at import time; the
// router exposes them on GET /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "coursemarket"

// ── Auth metrics ─────────────────────────────────────────────────────────────

// SignupsTotal counts successful signups.
// Label:
//   - scope: "user" or "admin"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of successful signups, by scope.",
	},
	[]string{"scope"},
)

// LoginsTotal counts login attempts.
// Labels:
//   - scope: "user" or "admin"
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by scope and result.",
	},
	[]string{"scope", "result"},
)

// AuthRejectionsTotal counts requests turned away at the auth gate.
// Labels:
//   - scope: "user" or "admin"
//   - reason: "missing" (no Authorization header) or "invalid" (verification failed)
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected by the auth middleware.",
	},
	[]string{"scope", "reason"},
)

// ── Purchase metrics ─────────────────────────────────────────────────────────

// PurchasesTotal counts purchase attempts.
// Label:
//   - result: "created", "duplicate", "course_not_found"
var PurchasesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "purchases_total",
		Help:      "Total number of purchase attempts, by result.",
	},
	[]string{"result"},
)

// AuditQueueDepth tracks the number of purchase events waiting in each
// dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of purchase events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Catalog metrics ──────────────────────────────────────────────────────────

// CatalogCacheTotal counts preview cache lookups.
// Label:
//   - result: "hit" or "miss"
var CatalogCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_cache_total",
		Help:      "Total number of course preview cache lookups, by result (hit/miss).",
	},
	[]string{"result"},
)

// Package metrics defines the custom Prometheus metrics of the bootcamp
// directory API. Request-level HTTP metrics come from echoprometheus; the
// counters here cover the access-control chain and resource writes.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "devcamper"

// ── Access control ────────────────────────────────────────────────────────────

// AuthRejectionsTotal counts requests the access guard turned away.
// Label:
//   - reason: "missing", "malformed" or "invalid"
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected for a missing or invalid credential.",
	},
	[]string{"reason"},
)

// AccessDeniedTotal counts authenticated requests refused with 403.
// Label:
//   - check: "role" (role authorizer) or "ownership" (ownership check)
var AccessDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Total number of authenticated requests denied, by the check that denied them.",
	},
	[]string{"check"},
)

// ── Resources ─────────────────────────────────────────────────────────────────

// ResourceWritesTotal counts successful writes.
// Labels:
//   - resource: "bootcamp", "course", "review" or "user"
//   - action: "create", "update" or "delete"
var ResourceWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resource_writes_total",
		Help:      "Total number of successful writes, by resource and action.",
	},
	[]string{"resource", "action"},
)

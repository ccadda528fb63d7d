// Package metrics defines and registers all custom Prometheus metrics for the
// logistics API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry at import time
// via promauto; the echoprometheus handler on /metrics serves them alongside
// the per-request HTTP metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "logistics"

// SignupsTotal counts successful account registrations.
// Label:
//   - role: "ADMIN" or "DRIVER"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of user accounts created, by role.",
	},
	[]string{"role"},
)

// SigninsTotal counts signin attempts.
// Label:
//   - result: "success" or "failure" (failure covers both unknown email and
//     wrong password; the two are never told apart)
var SigninsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signins_total",
		Help:      "Total number of signin attempts, by result.",
	},
	[]string{"result"},
)

// ResourcesCreatedTotal counts owned resources created.
// Label:
//   - kind: "truck", "facility", "organization", or "ticket"
var ResourcesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resources_created_total",
		Help:      "Total number of resources created, by kind.",
	},
	[]string{"kind"},
)

// AuthzDenialsTotal counts ownership checks that denied access. Absent and
// not-owned resources are counted together, mirroring the response policy.
// Label:
//   - kind: "truck", "facility", "organization", or "ticket"
var AuthzDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_denials_total",
		Help:      "Total number of denied resource accesses, by kind.",
	},
	[]string{"kind"},
)

// RateLimitedTotal counts requests rejected by the auth rate limiter.
var RateLimitedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected by the rate limiter.",
	},
)

// Package metrics defines and registers all custom Prometheus metrics for
// the account service. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "account"

// RegistrationsTotal counts successfully registered users.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of users registered.",
	},
)

// LoginFailuresTotal counts rejected authentication attempts.
// Label:
//   - reason: "bad_credentials" or "locked"
var LoginFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_failures_total",
		Help:      "Total number of failed authentication attempts, by reason.",
	},
	[]string{"reason"},
)

// LockoutsTotal counts accounts locked by the brute-force tracker.
var LockoutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lockouts_total",
		Help:      "Total number of accounts locked after repeated authentication failures.",
	},
)

// AuditEventsTotal counts appended security events by action.
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of security events appended to the audit trail, by action.",
	},
	[]string{"action"},
)

// AccessDeniedTotal counts authenticated requests rejected by the
// capability gate.
var AccessDeniedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Total number of requests rejected by the authorization gate.",
	},
)

// RateLimitedTotal counts requests rejected by the auth rate limiter.
var RateLimitedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected by the rate limiter.",
	},
)

// Package metrics declares the Prometheus collectors exported at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ApplicationsSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "creditline_applications_submitted_total",
			Help: "Total number of credit applications submitted",
		},
	)

	// Decisions counts engine verdicts by tier (A, B, none) and stage
	// (submission or evaluation).
	Decisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "creditline_decisions_total",
			Help: "Total number of credit decisions by tier and stage",
		},
		[]string{"tier", "stage"},
	)

	StatusTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "creditline_status_transitions_total",
			Help: "Total number of application status transitions",
		},
		[]string{"from", "to"},
	)

	RejectedTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "creditline_rejected_transitions_total",
			Help: "Total number of status updates refused as illegal",
		},
		[]string{"from", "to"},
	)

	UsersRegistered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "creditline_users_registered_total",
			Help: "Total number of registered users by role",
		},
		[]string{"role"},
	)

	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "creditline_login_attempts_total",
			Help: "Total number of login attempts by outcome",
		},
		[]string{"outcome"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "creditline_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "creditline_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

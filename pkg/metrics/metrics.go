// Package metrics provides Prometheus metrics for the Arbor service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal tracks inbound HTTP requests by route and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "arbor",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of inbound HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)

	// HTTPRequestDuration tracks inbound HTTP request duration
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "arbor",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of inbound HTTP requests in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route"},
	)

	// EntityOperationsTotal tracks repository operations by entity family
	EntityOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "arbor",
			Subsystem: "repository",
			Name:      "operations_total",
			Help:      "Total number of repository operations by entity and outcome",
		},
		[]string{"entity", "operation", "outcome"},
	)

	// AttachmentUploadsTotal tracks attachment uploads by outcome
	AttachmentUploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "arbor",
			Subsystem: "attachments",
			Name:      "uploads_total",
			Help:      "Total number of attachment uploads by outcome",
		},
		[]string{"entity", "outcome"},
	)

	// DashboardSummariesTotal tracks dashboard aggregate computations
	DashboardSummariesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "arbor",
			Subsystem: "dashboard",
			Name:      "summaries_total",
			Help:      "Total number of dashboard summary computations",
		},
	)

	// DashboardFamilyFailures tracks per-family failures inside a summary
	DashboardFamilyFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "arbor",
			Subsystem: "dashboard",
			Name:      "family_failures_total",
			Help:      "Total number of entity families that failed during a dashboard summary",
		},
		[]string{"entity"},
	)

	// EventsPublished tracks lifecycle events published to Kafka
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "arbor",
			Subsystem: "events",
			Name:      "published_total",
			Help:      "Total number of entity lifecycle events published",
		},
		[]string{"event_type", "status"},
	)

	// BookingLockContention tracks booking slot lock acquisition failures
	BookingLockContention = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "arbor",
			Subsystem: "bookings",
			Name:      "lock_contention_total",
			Help:      "Total number of booking creations rejected due to slot lock contention",
		},
	)
)

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: Namespace + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    Namespace + "_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	IdentityFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: Namespace + "_identity_fetches_total",
			Help: "Total number of identity endpoint resolutions by result",
		},
		[]string{"result"},
	)

	IdentityFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    Namespace + "_identity_fetch_duration_seconds",
			Help:    "Time to resolve the current user against the backend",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
	)

	RedirectIntentOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: Namespace + "_redirect_intent_operations_total",
			Help: "Total number of redirect intent store operations",
		},
		[]string{"operation", "outcome"},
	)

	BackendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: Namespace + "_backend_requests_total",
			Help: "Total number of requests proxied to the platform API",
		},
		[]string{"endpoint", "status"},
	)

	BackendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    Namespace + "_backend_request_duration_seconds",
			Help:    "Platform API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	GuardDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: Namespace + "_guard_decisions_total",
			Help: "Total number of route guard decisions by state",
		},
		[]string{"state"},
	)
)

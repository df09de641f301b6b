// Package metrics exposes Prometheus collectors for the HTTP surface and
// the assistant gateway.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label names.
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelOperation = "operation"
	LabelOutcome   = "outcome"
)

// Gateway outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
	OutcomeCached  = "cached"
)

// Gateway operations.
const (
	OperationAnalyze = "analyze"
	OperationAdvise  = "advise"
)

var httpLatencyBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5}

var assistantLatencyBuckets = []float64{.25, .5, 1, 2, 4, 8, 16, 32, 64}

// HTTP metrics.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shouna_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shouna_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: httpLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "shouna_http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		},
	)
)

// Assistant gateway metrics.
var (
	AssistantRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shouna_assistant_requests_total",
			Help: "Total number of assistant gateway calls by outcome",
		},
		[]string{LabelOperation, LabelOutcome},
	)

	AssistantDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shouna_assistant_request_duration_seconds",
			Help:    "Assistant provider latency in seconds",
			Buckets: assistantLatencyBuckets,
		},
		[]string{LabelOperation},
	)
)

// Catalog metrics.
var (
	ItemsAdded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shouna_items_added_total",
			Help: "Total number of items added to the catalog",
		},
	)

	LocationsAdded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shouna_locations_added_total",
			Help: "Total number of locations added to the catalog",
		},
	)
)

// ServiceDesk Proxy - Helpdesk API Token-Shielding Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicedesk-proxy

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Upstream request outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeStatus  = "http_error"
	OutcomeTimeout = "timeout"
	OutcomeNetwork = "network_error"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	CORSRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "api_cors_rejections_total",
			Help: "Total number of requests rejected for a disallowed Origin",
		},
	)

	AdminSyncAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admin_sync_attempts_total",
			Help: "Account sync attempts by result",
		},
		[]string{"result"}, // "denied", "success", "error"
	)

	// Upstream Helpdesk Metrics
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "servicedesk_requests_total",
			Help: "Upstream helpdesk request attempts by outcome",
		},
		[]string{"resource", "outcome"},
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "servicedesk_request_duration_seconds",
			Help:    "Upstream helpdesk attempt duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
		},
		[]string{"resource"},
	)

	UpstreamRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "servicedesk_retries_total",
			Help: "Upstream helpdesk retries after a failed attempt",
		},
		[]string{"resource"},
	)

	UpstreamPagesFetched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "servicedesk_pages_fetched_total",
			Help: "Upstream list pages fetched successfully",
		},
		[]string{"resource"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "canceled", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordAPIRequest records one served API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit records a 429 issued by the per-IP limiter.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordCORSRejection records a request refused for its Origin.
func RecordCORSRejection() {
	CORSRejections.Inc()
}

// RecordAdminSync records an account sync attempt.
func RecordAdminSync(result string) {
	AdminSyncAttempts.WithLabelValues(result).Inc()
}

// RecordUpstreamAttempt records one upstream attempt and its duration.
func RecordUpstreamAttempt(resource, outcome string, duration time.Duration) {
	UpstreamRequestsTotal.WithLabelValues(resource, outcome).Inc()
	UpstreamRequestDuration.WithLabelValues(resource).Observe(duration.Seconds())
}

// RecordUpstreamRetry records a retry scheduled after a failed attempt.
func RecordUpstreamRetry(resource string) {
	UpstreamRetries.WithLabelValues(resource).Inc()
}

// RecordPageFetched records a successfully decoded list page.
func RecordPageFetched(resource string) {
	UpstreamPagesFetched.WithLabelValues(resource).Inc()
}

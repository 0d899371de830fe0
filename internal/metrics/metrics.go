// Package metrics provides Prometheus metrics for the gallery API.
package metrics

import (
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal     atomic.Pointer[prometheus.CounterVec]
	requestDuration   atomic.Pointer[prometheus.HistogramVec]
	authFailuresTotal atomic.Pointer[prometheus.CounterVec]
	eventsTotal       atomic.Pointer[prometheus.CounterVec]
	gatherer          atomic.Pointer[prometheus.Gatherer]
)

// Init registers all collectors with reg. Call once at startup; record
// functions are no-ops before that.
func Init(reg prometheus.Registerer) error {
	requestsTotalVec := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gallery",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled",
		},
		[]string{"method", "path", "status"},
	)
	if err := reg.Register(requestsTotalVec); err != nil {
		return fmt.Errorf("failed to register requestsTotal: %w", err)
	}

	requestDurationVec := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "gallery",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	if err := reg.Register(requestDurationVec); err != nil {
		return fmt.Errorf("failed to register requestDuration: %w", err)
	}

	authFailuresTotalVec := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gallery",
			Subsystem: "auth",
			Name:      "failures_total",
			Help:      "Total number of rejected tokens by guard and reason",
		},
		[]string{"guard", "reason"},
	)
	if err := reg.Register(authFailuresTotalVec); err != nil {
		return fmt.Errorf("failed to register authFailures: %w", err)
	}

	eventsTotalVec := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gallery",
			Subsystem: "events",
			Name:      "published_total",
			Help:      "Domain events handed to the broker, by type and outcome",
		},
		[]string{"type", "outcome"},
	)
	if err := reg.Register(eventsTotalVec); err != nil {
		return fmt.Errorf("failed to register eventsTotal: %w", err)
	}

	requestsTotal.Store(requestsTotalVec)
	requestDuration.Store(requestDurationVec)
	authFailuresTotal.Store(authFailuresTotalVec)
	eventsTotal.Store(eventsTotalVec)
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer.Store(&g)
	}
	return nil
}

// RecordRequest counts one request and observes its latency. path should be
// the route template ("/api/user/collections/:id/photos"), not the raw URL.
func RecordRequest(method, path, status string, seconds float64) {
	if counter := requestsTotal.Load(); counter != nil {
		counter.WithLabelValues(method, path, status).Inc()
	}
	if hist := requestDuration.Load(); hist != nil {
		hist.WithLabelValues(method, path, status).Observe(seconds)
	}
}

// RecordAuthFailure counts a rejected request. guard is "user" or "admin";
// common reasons are "missing_token", "invalid_token" and "forbidden".
func RecordAuthFailure(guard, reason string) {
	if counter := authFailuresTotal.Load(); counter != nil {
		counter.WithLabelValues(guard, reason).Inc()
	}
}

// RecordEvent counts a publish attempt; outcome is "ok" or "error".
func RecordEvent(eventType, outcome string) {
	if counter := eventsTotal.Load(); counter != nil {
		counter.WithLabelValues(eventType, outcome).Inc()
	}
}

// Handler serves the registry passed to Init when it is also a Gatherer,
// and the default registry otherwise.
func Handler() http.Handler {
	if g := gatherer.Load(); g != nil {
		return promhttp.HandlerFor(*g, promhttp.HandlerOpts{})
	}
	return promhttp.Handler()
}

// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track HTTP request patterns and performance
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration tracks request latency with buckets sized for
	// form-submission response times, enabling p95/p99 measurements.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestsInFlight tracks the current number of HTTP requests being processed.
	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		},
	)
)

// Business metrics track application-specific operations
var (
	// ArticlesSavedTotal counts successful article saves by mode (create/update)
	ArticlesSavedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "articles_saved_total",
			Help: "Total number of articles saved through the article form",
		},
		[]string{"mode"},
	)

	// FormValidationFailuresTotal counts validation failures by field and error kind
	FormValidationFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "form_validation_failures_total",
			Help: "Total number of article form validation failures",
		},
		[]string{"field", "kind"},
	)

	// ImagesStoredTotal counts article images written to blob storage
	ImagesStoredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "images_stored_total",
			Help: "Total number of article images stored",
		},
	)

	// ImagesDeletedTotal counts article images removed from blob storage
	ImagesDeletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "images_deleted_total",
			Help: "Total number of article images deleted",
		},
	)

	// OrphanedUploadsSweptTotal counts files reclaimed by the upload sweeper
	OrphanedUploadsSweptTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orphaned_uploads_swept_total",
			Help: "Total number of orphaned upload files removed by the sweeper",
		},
	)

	// LoginAttemptsTotal counts login attempts by outcome
	LoginAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "login_attempts_total",
			Help: "Total number of login attempts",
		},
		[]string{"outcome"},
	)

	// ArticlesTotal tracks total number of articles in database
	ArticlesTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "articles_total",
			Help: "Total number of articles in the database",
		},
	)
)

package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "screentime_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "screentime_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Extraction metrics
	extractionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "screentime_extractions_total",
			Help: "Total number of extraction requests",
		},
		[]string{"kind", "status"}, // kind: overall, category
	)

	extractionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "screentime_extraction_duration_seconds",
			Help:    "Extraction processing duration in seconds",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 25},
		},
		[]string{"kind"},
	)

	// File upload metrics
	uploadSizeBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "screentime_upload_size_bytes",
			Help:    "Size of uploaded screenshots in bytes",
			Buckets: []float64{10 * 1024, 100 * 1024, 512 * 1024, 1024 * 1024, 5 * 1024 * 1024, 20 * 1024 * 1024},
		},
	)
)

// observeExtraction records outcome and latency of one extraction.
func observeExtraction(kind string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	extractionsTotal.WithLabelValues(kind, status).Inc()
	extractionDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}

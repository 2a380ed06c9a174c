package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "translater_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "translater_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	translationRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "translater_translation_requests_total",
			Help: "Total number of translation requests",
		},
		[]string{"type", "status"}, // type: text, pdf, image, docx
	)

	translationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "translater_translation_duration_seconds",
			Help:    "Document translation duration in seconds",
			Buckets: []float64{.5, 1, 2.5, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"type"},
	)

	translationChunks = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "translater_translation_chunks",
			Help:    "Number of chunks per translated document",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 250},
		},
		[]string{"type"},
	)

	rateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "translater_rate_limit_hits_total",
			Help: "Total number of rate limit hits",
		},
		[]string{"type"},
	)

	uploadSizeBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "translater_upload_size_bytes",
			Help:    "Size of uploaded documents in bytes",
			Buckets: []float64{1024, 10 * 1024, 100 * 1024, 1024 * 1024, 10 * 1024 * 1024, 50 * 1024 * 1024},
		},
	)

	websocketConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "translater_websocket_active_connections",
			Help: "Number of active WebSocket connections",
		},
	)
)

// Package metrics registers the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by method, path and status code",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method and path",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	InvoiceExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "invoice_exports_total",
			Help: "Invoice PDF exports by outcome",
		},
		[]string{"outcome"},
	)

	InvoiceExportDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "invoice_export_duration_seconds",
			Help:    "End-to-end render+paginate+encode time for PDF exports",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30},
		},
	)

	InvoiceExportPages = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "invoice_export_pages",
			Help:    "Pages per exported invoice document",
			Buckets: []float64{1, 2, 3, 5, 8, 13},
		},
	)
)

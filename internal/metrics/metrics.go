// Package metrics exposes Prometheus metrics for the HTTP mode.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all metrics for the application
type Registry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Render Metrics
	RendersTotal      *prometheus.CounterVec
	RenderNodes       prometheus.Histogram
	RenderEdges       prometheus.Histogram
	RenderOutputBytes *prometheus.HistogramVec

	registry *prometheus.Registry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}

	r.initHTTPMetrics()
	r.initRenderMetrics()
	r.registry.MustRegister(collectors.NewGoCollector())

	return r
}

func (r *Registry) initHTTPMetrics() {
	r.HTTPRequestsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphfocus_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	r.HTTPRequestDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "graphfocus_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	r.HTTPRequestsInFlight = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "graphfocus_http_requests_in_flight",
			Help: "Current number of HTTP requests being processed",
		},
	)
}

func (r *Registry) initRenderMetrics() {
	r.RendersTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphfocus_renders_total",
			Help: "Total number of rendered graphs by output format and status",
		},
		[]string{"format", "status"},
	)

	r.RenderNodes = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "graphfocus_render_nodes",
			Help:    "Number of nodes per rendered graph",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	r.RenderEdges = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "graphfocus_render_edges",
			Help:    "Number of edges per rendered graph",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	r.RenderOutputBytes = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "graphfocus_render_output_bytes",
			Help:    "Rendered output size in bytes",
			Buckets: []float64{1000, 10000, 100000, 1000000, 10000000},
		},
		[]string{"format"},
	)
}

// RecordHTTPRequest records an HTTP request with its duration
func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordRender records a successful render of a graph.
func (r *Registry) RecordRender(format string, nodes, edges, size int) {
	r.RendersTotal.WithLabelValues(format, "success").Inc()
	r.RenderNodes.Observe(float64(nodes))
	r.RenderEdges.Observe(float64(edges))
	r.RenderOutputBytes.WithLabelValues(format).Observe(float64(size))
}

// RecordRenderError records a failed render.
func (r *Registry) RecordRenderError(format string) {
	r.RendersTotal.WithLabelValues(format, "error").Inc()
}

// Handler serves the registry in the Prometheus text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

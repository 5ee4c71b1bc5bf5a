package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the server's Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	requests       *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	renders        *prometheus.CounterVec
	renderLatency  *prometheus.HistogramVec
	parseErrors    prometheus.Counter
	editOps        *prometheus.CounterVec
	cacheLookups   *prometheus.CounterVec
	backendCalls   *prometheus.CounterVec
}

// NewMetrics registers the collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "resume_editor_http_requests_total",
			Help: "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		requestLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "resume_editor_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		renders: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "resume_editor_renders_total",
			Help: "Rendered outputs by format.",
		}, []string{"format"}),
		renderLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "resume_editor_render_duration_seconds",
			Help:    "Time to produce one rendered output.",
			Buckets: []float64{.005, .01, .05, .1, .5, 1, 2.5, 5, 10, 30},
		}, []string{"format"}),
		parseErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "resume_editor_parse_errors_total",
			Help: "Imported documents rejected by the parser.",
		}),
		editOps: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "resume_editor_edit_operations_total",
			Help: "Applied edit operations by kind.",
		}, []string{"op"}),
		cacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "resume_editor_render_cache_lookups_total",
			Help: "Render cache lookups by result.",
		}, []string{"result"}),
		backendCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "resume_editor_backend_calls_total",
			Help: "Calls to the generation backend by operation and outcome.",
		}, []string{"op", "outcome"}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) observeRender(format string, start time.Time) {
	m.renders.WithLabelValues(format).Inc()
	m.renderLatency.WithLabelValues(format).Observe(time.Since(start).Seconds())
}

func (m *Metrics) observeCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

func (m *Metrics) observeBackend(op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.backendCalls.WithLabelValues(op, outcome).Inc()
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withMetrics records request counts and latency. The route label is the
// matched ServeMux pattern so that path parameters do not explode cardinality.
func (s *Server) withMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		s.metrics.requests.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		s.metrics.requestLatency.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

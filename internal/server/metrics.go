package server

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/starbar/pkg/observability"
)

const metricsNamespace = "starbar"

// Metrics records pipeline, cache and HTTP events as Prometheus series.
// It implements all three observability hook interfaces.
type Metrics struct {
	layoutDuration  *prometheus.HistogramVec
	renderDuration  *prometheus.HistogramVec
	stageErrors     *prometheus.CounterVec
	cacheEvents     *prometheus.CounterVec
	cacheBytes      prometheus.Counter
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestErrors   *prometheus.CounterVec
}

var (
	_ observability.PipelineHooks = (*Metrics)(nil)
	_ observability.CacheHooks    = (*Metrics)(nil)
	_ observability.HTTPHooks     = (*Metrics)(nil)
)

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		layoutDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "layout_duration_seconds",
			Help:      "Time spent computing star layouts.",
			Buckets:   prometheus.ExponentialBuckets(0.00005, 4, 8),
		}, []string{"mode"}),
		renderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "render_duration_seconds",
			Help:      "Time spent rendering artifacts.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"formats"}),
		stageErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "pipeline_errors_total",
			Help:      "Pipeline stage failures.",
		}, []string{"stage"}),
		cacheEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "cache_events_total",
			Help:      "Artifact cache hits, misses and writes.",
		}, []string{"kind", "event"}),
		cacheBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "cache_written_bytes_total",
			Help:      "Bytes written to the artifact cache.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "HTTP responses by route and status.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		requestErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_request_errors_total",
			Help:      "Requests that failed with an error.",
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		m.layoutDuration, m.renderDuration, m.stageErrors,
		m.cacheEvents, m.cacheBytes,
		m.requests, m.requestDuration, m.requestErrors,
	)
	return m
}

// Install makes m the global hook implementation.
func (m *Metrics) Install() {
	observability.SetPipelineHooks(m)
	observability.SetCacheHooks(m)
	observability.SetHTTPHooks(m)
}

func (m *Metrics) OnLayoutStart(context.Context, int, string) {}

func (m *Metrics) OnLayoutComplete(_ context.Context, mode string, d time.Duration, err error) {
	if err != nil {
		m.stageErrors.WithLabelValues("layout").Inc()
		return
	}
	m.layoutDuration.WithLabelValues(mode).Observe(d.Seconds())
}

func (m *Metrics) OnRenderStart(context.Context, []string) {}

func (m *Metrics) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		m.stageErrors.WithLabelValues("render").Inc()
		return
	}
	m.renderDuration.WithLabelValues(formatsLabel(formats)).Observe(d.Seconds())
}

func (m *Metrics) OnCacheHit(_ context.Context, kind string) {
	m.cacheEvents.WithLabelValues(kind, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, kind string) {
	m.cacheEvents.WithLabelValues(kind, "miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, kind string, size int) {
	m.cacheEvents.WithLabelValues(kind, "set").Inc()
	m.cacheBytes.Add(float64(size))
}

func (m *Metrics) OnRequest(context.Context, string, string) {}

func (m *Metrics) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *Metrics) OnError(_ context.Context, method, route string, _ error) {
	m.requestErrors.WithLabelValues(method, route).Inc()
}

// formatsLabel joins formats in request order. The server renders one
// format per request, so cardinality stays small.
func formatsLabel(formats []string) string {
	if len(formats) == 0 {
		return "none"
	}
	return strings.Join(formats, ",")
}

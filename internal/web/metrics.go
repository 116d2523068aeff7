package web

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/huangsam/debtboard/core"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Load outcomes recorded by Metrics.
const (
	OutcomeSuccess    = "success"
	OutcomeParseError = "parse_error"
	OutcomeShapeError = "shape_error"
	OutcomeReadError  = "read_error"
	OutcomeStale      = "stale"
)

// Metrics holds the Prometheus collectors of the dashboard server.
// Each instance has its own registry so servers never share counters.
type Metrics struct {
	registry        *prometheus.Registry
	reportLoads     *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers the dashboard collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		reportLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "debtboard",
			Name:      "report_loads_total",
			Help:      "Report loads by outcome.",
		}, []string{"outcome"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "debtboard",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latencies by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	m.registry.MustRegister(m.reportLoads, m.requestDuration)
	return m
}

// ObserveLoad records the outcome of one report load.
// It has the shape of dashboard.ReloadFunc so watchers can report through it.
func (m *Metrics) ObserveLoad(applied bool, err error) {
	m.reportLoads.WithLabelValues(LoadOutcome(applied, err)).Inc()
}

// LoadOutcome classifies a load result.
func LoadOutcome(applied bool, err error) string {
	var (
		parseErr *core.ParseError
		shapeErr *core.ShapeError
	)
	switch {
	case err == nil && !applied:
		return OutcomeStale
	case err == nil:
		return OutcomeSuccess
	case errors.As(err, &parseErr):
		return OutcomeParseError
	case errors.As(err, &shapeErr):
		return OutcomeShapeError
	default:
		return OutcomeReadError
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records the duration of every request under its route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requestDuration.WithLabelValues(r.Method, route, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
	})
}

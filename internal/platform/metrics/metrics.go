// Package metrics exposes Prometheus collectors for the board. All methods
// are safe on a nil *Metrics so components can run without instrumentation.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bedboard"

// Write results recorded by ObserveWrite.
const (
	WriteOK            = "ok"
	WriteInvalidStatus = "invalid_status"
	WriteInvalidBed    = "invalid_bed"
	WriteStoreFailure  = "store_unavailable"
)

type Metrics struct {
	registry      *prometheus.Registry
	bedWrites     *prometheus.CounterVec
	snapshotReads *prometheus.CounterVec
	bedsByStatus  *prometheus.GaugeVec
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
}

// New builds a Metrics with its own registry, including Go runtime and
// process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		bedWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bed_writes_total",
			Help:      "Admin bed status writes by result.",
		}, []string{"result"}),
		snapshotReads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_reads_total",
			Help:      "Store snapshot reads by result.",
		}, []string{"result"}),
		bedsByStatus: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "beds",
			Help:      "Distinct catalog beds per status as of the last board render.",
		}, []string{"status"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.bedWrites,
		m.snapshotReads,
		m.bedsByStatus,
		m.httpRequests,
		m.httpDuration,
	)
	return m
}

func (m *Metrics) ObserveWrite(result string) {
	if m == nil {
		return
	}
	m.bedWrites.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveRead(err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.snapshotReads.WithLabelValues(result).Inc()
}

// SetBedCounts replaces the per-status gauge values.
func (m *Metrics) SetBedCounts(counts map[string]int) {
	if m == nil {
		return
	}
	m.bedsByStatus.Reset()
	for status, n := range counts {
		m.bedsByStatus.WithLabelValues(status).Set(float64(n))
	}
}

// Handler serves the exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware records request counts and latency keyed by the route pattern,
// not the raw path, so bed ids do not become label values.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if m == nil {
				return next(c)
			}
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				} else if !c.Response().Committed {
					status = http.StatusInternalServerError
				}
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method
			m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			m.httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

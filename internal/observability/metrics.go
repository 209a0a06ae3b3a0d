package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Login outcomes recorded by RecordLogin.
const (
	LoginSucceeded = "success"
	LoginRejected  = "invalid_credentials"
	LoginInactive  = "inactive"
)

// Metrics exposes Prometheus collectors on a private registry.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	errorsTotal     *prometheus.CounterVec
	loginsTotal     *prometheus.CounterVec
	movesTotal      *prometheus.CounterVec
	activeSessions  prometheus.Gauge
}

// NewMetrics initializes the registry and collectors.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "crm_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "crm_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		errorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "crm_http_errors_total",
			Help: "Rendered error responses by route and error code.",
		}, []string{"route", "method", "code"}),
		loginsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "crm_logins_total",
			Help: "Login attempts by outcome.",
		}, []string{"outcome"}),
		movesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "crm_pipeline_moves_total",
			Help: "Pipeline drops by destination bucket and whether the status changed.",
		}, []string{"destination", "changed"}),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "crm_active_sessions",
			Help: "Sessions signed in through this process and not yet signed out.",
		}),
	}
	registry.MustRegister(m.requestsTotal, m.requestDuration, m.errorsTotal, m.loginsTotal, m.movesTotal, m.activeSessions)
	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return m
}

// Handler returns the /metrics handler.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Registry exposes the underlying registry for tests and custom collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(route, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// RecordError increments error counters.
func (m *Metrics) RecordError(route, method, code string) {
	if m == nil {
		return
	}
	m.errorsTotal.WithLabelValues(route, method, code).Inc()
}

// RecordLogin counts a login attempt by outcome.
func (m *Metrics) RecordLogin(outcome string) {
	if m == nil {
		return
	}
	m.loginsTotal.WithLabelValues(outcome).Inc()
	if outcome == LoginSucceeded {
		m.activeSessions.Inc()
	}
}

// RecordLogout marks a session as ended.
func (m *Metrics) RecordLogout() {
	if m == nil {
		return
	}
	m.activeSessions.Dec()
}

// RecordMove counts a pipeline drop.
func (m *Metrics) RecordMove(destination string, changed bool) {
	if m == nil {
		return
	}
	m.movesTotal.WithLabelValues(destination, strconv.FormatBool(changed)).Inc()
}

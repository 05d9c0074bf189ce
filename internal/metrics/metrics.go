package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of the server.
type Metrics struct {
	registry         *prometheus.Registry
	activeSessions   prometheus.Gauge
	sessionsTotal    prometheus.Counter
	ticksTotal       prometheus.Counter
	intentsTotal     *prometheus.CounterVec
	notifications    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestsInFlight prometheus.Gauge
}

// New registers all collectors on a fresh registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "streamify_watch_sessions_active",
			Help: "Number of open watch sessions.",
		}),
		sessionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "streamify_watch_sessions_total",
			Help: "Total watch sessions started.",
		}),
		ticksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "streamify_player_ticks_total",
			Help: "Total playback ticks applied across sessions.",
		}),
		intentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "streamify_intents_total",
			Help: "Total player and comment intents handled, by intent.",
		}, []string{"intent"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "streamify_notifications_total",
			Help: "Total notifications emitted for listing actions, by action.",
		}, []string{"action"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "streamify_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds, by route, method and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
		requestsInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "streamify_http_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.activeSessions,
		m.sessionsTotal,
		m.ticksTotal,
		m.intentsTotal,
		m.notifications,
		m.requestDuration,
		m.requestsInFlight,
	)

	return m
}

func (m *Metrics) SessionStarted() {
	m.activeSessions.Inc()
	m.sessionsTotal.Inc()
}

func (m *Metrics) SessionEnded() {
	m.activeSessions.Dec()
}

func (m *Metrics) TickApplied() {
	m.ticksTotal.Inc()
}

func (m *Metrics) IntentHandled(intent string) {
	m.intentsTotal.WithLabelValues(intent).Inc()
}

func (m *Metrics) NotificationSent(action string) {
	m.notifications.WithLabelValues(action).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware records request duration and in-flight count. Requests are
// labelled by chi route pattern so path parameters do not explode
// cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.requestsInFlight.Inc()
		defer m.requestsInFlight.Dec()

		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.requestDuration.
			WithLabelValues(route, r.Method, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
	})
}

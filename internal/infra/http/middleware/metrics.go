package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	leadsCaptured = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leads_captured_total",
			Help: "Total number of leads captured through the public intake",
		},
		[]string{"category"},
	)

	intakeRateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "intake_rate_limited_total",
			Help: "Total number of intake requests rejected by the rate limiter",
		},
	)

	leadExports = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_exports_total",
			Help: "Total number of lead exports by format",
		},
		[]string{"format"},
	)

	notifierErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifier_errors_total",
			Help: "Total number of outbound notification failures",
		},
		[]string{"channel"},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
	})
}

func RecordLeadCaptured(category string) {
	if category == "" {
		category = "unknown"
	}
	leadsCaptured.WithLabelValues(category).Inc()
}

func RecordRateLimited() {
	intakeRateLimited.Inc()
}

func RecordExport(format string) {
	leadExports.WithLabelValues(format).Inc()
}

func RecordNotifierError(channel string) {
	notifierErrors.WithLabelValues(channel).Inc()
}

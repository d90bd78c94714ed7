package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	metricRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "arcade_http_requests_total",
			Help: "Total HTTP requests by method and status",
		},
		[]string{"method", "status"},
	)
	metricRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "arcade_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)
	metricActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "arcade_sessions_active",
			Help: "Hosted sessions currently in play",
		},
	)
	metricSessionsCompleted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "arcade_sessions_completed_total",
			Help: "Completed sessions by mechanic and outcome",
		},
		[]string{"mechanic", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(metricRequests)
	prometheus.MustRegister(metricRequestDuration)
	prometheus.MustRegister(metricActiveSessions)
	prometheus.MustRegister(metricSessionsCompleted)
}

// MetricsMiddleware records request counts and latency.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		metricRequests.WithLabelValues(r.Method, strconv.Itoa(ww.Status())).Inc()
		metricRequestDuration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
	})
}

// MetricsHandler exposes the prometheus registry.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}

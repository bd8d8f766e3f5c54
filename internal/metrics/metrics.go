// Package metrics exposes Prometheus collectors for the console.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tradedesk",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tradedesk",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "route"},
	)

	recordOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tradedesk",
			Subsystem: "records",
			Name:      "operations_total",
			Help:      "Record lifecycle operations by kind, operation and outcome.",
		},
		[]string{"kind", "op", "outcome"},
	)

	logins = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tradedesk",
			Subsystem: "auth",
			Name:      "logins_total",
			Help:      "Login attempts by outcome.",
		},
		[]string{"outcome"},
	)

	accessDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tradedesk",
			Subsystem: "auth",
			Name:      "access_decisions_total",
			Help:      "Authorization policy decisions.",
		},
		[]string{"decision"},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		recordOperations,
		logins,
		accessDecisions,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency per matched route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// RecordOperation counts one record lifecycle operation.
func RecordOperation(kind, op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	recordOperations.WithLabelValues(kind, op, outcome).Inc()
}

// Login counts one login attempt.
func Login(success bool) {
	outcome := "failure"
	if success {
		outcome = "success"
	}
	logins.WithLabelValues(outcome).Inc()
}

// AccessDecision counts one policy decision.
func AccessDecision(decision string) {
	accessDecisions.WithLabelValues(decision).Inc()
}

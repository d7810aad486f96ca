package middleware

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricsOnce           sync.Once
	httpRequestsTotal     *prometheus.CounterVec
	httpRequestDuration   *prometheus.HistogramVec
	checkoutSessionsTotal *prometheus.CounterVec
)

func initMetrics() {
	metricsOnce.Do(func() {
		httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "still_goods",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests served",
		}, []string{"method", "path", "status"})

		httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "still_goods",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP request handling",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"})

		checkoutSessionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "still_goods",
			Subsystem: "checkout",
			Name:      "sessions_total",
			Help:      "Checkout session creation attempts by outcome",
		}, []string{"outcome"})
	})
}

// MetricsMiddleware records request counts and latencies. Paths are taken
// from the matched route template so SKUs and query strings never become
// label values.
func MetricsMiddleware() gin.HandlerFunc {
	initMetrics()

	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		status := strconv.Itoa(c.Writer.Status())
		httpRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// RecordCheckoutOutcome tracks the result category of a checkout attempt.
func RecordCheckoutOutcome(outcome string) {
	initMetrics()
	checkoutSessionsTotal.WithLabelValues(outcome).Inc()
}

package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"path", "method", "status"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)
	invariantRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "invariant_rejections_total",
			Help: "Total number of requests rejected by a domain invariant",
		},
		[]string{"path"},
	)
)

// InitPrometheus registers the metrics. Call this from main.go.
func InitPrometheus() {
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpRequestDuration)
	prometheus.MustRegister(invariantRejections)
}

// Monitor tracks request counts and latency per route. The echo route
// template is used rather than the raw path so ids don't explode the
// metric cardinality.
func Monitor() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			status := c.Response().Status
			if err != nil {
				if httpErr, ok := err.(*echo.HTTPError); ok {
					status = httpErr.Code
				} else {
					status = http.StatusInternalServerError
				}
			}

			path := c.Path()
			httpRequestsTotal.WithLabelValues(path, c.Request().Method, strconv.Itoa(status)).Inc()
			httpRequestDuration.WithLabelValues(path, c.Request().Method).Observe(time.Since(start).Seconds())
			if status == http.StatusConflict || status == http.StatusUnprocessableEntity {
				invariantRejections.WithLabelValues(path).Inc()
			}

			return err
		}
	}
}

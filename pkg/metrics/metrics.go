// Package metrics exposes the server's prometheus instrumentation.
package metrics

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_http_requests_total",
		Help: "HTTP requests handled, by method, route and status.",
	}, []string{"method", "route", "status"})

	RecommendationRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inventory_recommendation_requests_total",
		Help: "Calls made to the external completion provider.",
	})

	RecommendationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inventory_recommendation_failures_total",
		Help: "Provider calls that failed or returned malformed payloads.",
	})
)

// Middleware counts every handled request.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// Handler serves the /metrics endpoint.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

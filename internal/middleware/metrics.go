package middleware

import (
	"strconv"
	"time"

	"github.com/SscSPs/bank_demo_app/internal/platform/metrics"
	"github.com/gin-gonic/gin"
)

// MetricsMiddleware counts served requests by route template, so identity
// numbers in the path do not blow up label cardinality.
func MetricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveHTTPRequest(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}

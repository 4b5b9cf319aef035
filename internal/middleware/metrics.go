package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hosfile/prepay-api/internal/service"
)

// Metrics records per-request duration and count. The route template is used
// as the path label so parameterized routes (/:id) collapse into one series
// and unmatched requests cannot inflate label cardinality.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil || c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}

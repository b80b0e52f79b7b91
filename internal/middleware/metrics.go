package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/hiring-pipeline-api/internal/service"
)

// Metrics records request latency by route template. Unmatched routes are
// grouped under one label to keep cardinality bounded.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
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

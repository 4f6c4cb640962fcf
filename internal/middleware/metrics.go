package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/yoga-studio-admin/internal/service"
)

// Metrics records every request on the Prometheus registry, labelled by
// route template rather than raw path.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}

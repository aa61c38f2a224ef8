package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/huangang/taskflow/pkg/metrics"
)

// Metrics records request durations labeled by route template, so
// /api/tasks/42 and /api/tasks/7 land in the same series.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.RecordHTTPRequest(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start),
		)
	}
}

package middleware

import (
	"strconv"
	"time"

	"github.com/firf18/red-salud-sub010/internal/infrastructure/metrics"
	"github.com/gin-gonic/gin"
)

// Metrics records per-request latency labeled by method, route template
// and status code. The route template is used instead of the raw path so
// parameterized routes collapse into one series.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.RequestDuration.
			WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

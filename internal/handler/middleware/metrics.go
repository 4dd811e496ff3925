package middleware

import (
	"strconv"
	"time"

	"github.com/ait-dev/patientcare/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// Metrics records request counts, latency, and in-flight gauge. The
// route template (c.FullPath) is used as the path label to keep
// cardinality bounded.
func Metrics(mc *metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		mc.InFlightGauge.Inc()

		c.Next()

		mc.InFlightGauge.Dec()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		mc.RequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		mc.RequestDuration.WithLabelValues(c.Request.Method, path, status).
			Observe(time.Since(start).Seconds())
	}
}

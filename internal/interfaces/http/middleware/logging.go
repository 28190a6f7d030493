package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/richlegrande-dot/care2connect-intake/internal/infrastructure/monitoring/logging"
	"github.com/richlegrande-dot/care2connect-intake/internal/infrastructure/monitoring/prometheus"
)

// Logging emits one structured access log line per request.  Transcript
// bodies are never logged; only method, route, status and timing.
func Logging(logger logging.Logger) gin.HandlerFunc {
	logger = logger.Named("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []logging.Field{
			logging.String("method", c.Request.Method),
			logging.String("path", c.FullPath()),
			logging.Int("status", c.Writer.Status()),
			logging.Duration("duration", time.Since(start)),
			logging.String("request_id", GetRequestID(c)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, logging.String("errors", c.Errors.String()))
			logger.Warn("request completed with errors", fields...)
			return
		}
		logger.Info("request completed", fields...)
	}
}

// Metrics records request counts and latency per route.  c.FullPath keeps
// label cardinality bounded: unmatched routes all collapse to "".
func Metrics(metrics *prometheus.ExtractionMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		metrics.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(
			c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Logger tags every request with a trace ID and logs method, path, status
// and latency once the handler chain completes.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := uuid.New().String()
		c.Set("trace_id", traceID)
		c.Header("X-Trace-ID", traceID)

		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		logrus.WithFields(logrus.Fields{
			"trace_id": traceID,
			"method":   method,
			"path":     path,
			"status":   c.Writer.Status(),
			"latency":  time.Since(start).String(),
		}).Info("request completed")
	}
}

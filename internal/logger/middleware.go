package logger

import (
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs one line per request with method, route, status and latency.
// Server errors are logged at error level, client errors at warn.
func RequestLogger(log *Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		status := c.Writer.Status()
		fields := []any{
			"method", c.Request.Method,
			"route", route,
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if uid, ok := c.Get("userId"); ok {
			fields = append(fields, "user_id", uid)
		}

		switch {
		case status >= 500:
			log.Errorw("http_request", fields...)
		case status >= 400:
			log.Warnw("http_request", fields...)
		default:
			log.Infow("http_request", fields...)
		}
	}
}

package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/studyhub/auth-service/internal/logger"
)

// RequestLogger logs one line per request. Query strings are left out
// because OAuth callbacks carry codes and state in them.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := map[string]any{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"ip":         c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}

		switch {
		case c.Writer.Status() >= 500:
			logger.Error("request", fields)
		default:
			logger.Info("request", fields)
		}
	}
}

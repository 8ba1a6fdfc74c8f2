package server

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gaurav-prajapat/featuresgym-sub002/internal/logger"
)

// requestLoggingMiddleware logs one line per request after the handler runs.
func requestLoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if raw != "" {
			path = path + "?" + raw
		}

		logger.Infof("%s %s -> %d (%dms) ip=%s ua=%q",
			c.Request.Method,
			path,
			c.Writer.Status(),
			time.Since(start).Milliseconds(),
			c.ClientIP(),
			c.Request.UserAgent(),
		)
	}
}

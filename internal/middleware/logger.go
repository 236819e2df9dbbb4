// Package middleware holds the gin.HandlerFunc chain the HTTP transport
// wraps every route with: request logging, request IDs, rate limiting,
// maintenance mode, and admin bearer-token authentication.
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Logger emits one structured log line per request.
func Logger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if raw != "" {
			path = path + "?" + raw
		}

		logger.Info().
			Str("request_id", c.GetString("request_id")).
			Str("client_ip", c.ClientIP()).
			Str("method", c.Request.Method).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Str("path", path).
			Str("error", c.Errors.ByType(gin.ErrorTypePrivate).String()).
			Msg("request")
	}
}

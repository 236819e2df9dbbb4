package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/domeball/core/internal/utils"
)

// RequestID attaches an X-Request-ID to every request, generating one when
// the caller doesn't supply it.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = utils.GenerateRequestID()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

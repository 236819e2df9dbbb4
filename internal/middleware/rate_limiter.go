package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/domeball/core/internal/store"
)

// RateLimiter caps each client to a fixed request budget per window,
// tracked in Redis so it holds across every server process behind the
// load balancer. Errors reaching Redis fail open rather than blocking
// every request on a degraded cache.
func RateLimiter(gateway *store.Gateway, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var key string
		if adminKey, exists := c.Get("admin_role"); exists {
			key = fmt.Sprintf("rate_limit:admin:%v", adminKey)
		} else {
			key = fmt.Sprintf("rate_limit:ip:%s", c.ClientIP())
		}

		count, err := gateway.Redis().Incr(c.Request.Context(), key).Result()
		if err != nil {
			c.Next()
			return
		}
		if count == 1 {
			gateway.Redis().Expire(c.Request.Context(), key, window)
		}

		if int(count) > limit {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"retry_after": window.Seconds(),
			})
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", limit-int(count)))
		c.Next()
	}
}

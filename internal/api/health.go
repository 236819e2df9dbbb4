package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/domeball/core/internal/config"
)

// HealthCheck reports process liveness plus which optional features are
// turned on, for load balancer and monitoring probes.
func HealthCheck(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "healthy",
			"environment": cfg.Environment,
			"services": gin.H{
				"websocket": cfg.Features.EnableWebSocket,
				"metrics":   cfg.Features.EnableMetrics,
			},
		})
	}
}

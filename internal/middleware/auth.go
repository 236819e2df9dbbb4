package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/domeball/core/internal/utils"
)

// RequireAdmin validates the admin bearer token this surface uses in place
// of a full identity system: a single ADMIN role, no user model, no
// sessions. It exists only for operations spec §9 reserves for an
// administrator (force-resolving a forfeit left SCHEDULED, for example),
// not for every route.
func RequireAdmin(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format"})
			c.Abort()
			return
		}

		role, err := utils.ValidateAdminToken(parts[1], secret)
		if err != nil || role != "ADMIN" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("admin_role", role)
		c.Next()
	}
}

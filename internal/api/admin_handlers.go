package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HandleForceResolveForfeit lets an administrator manually trigger the
// roster-check-and-forfeit path for a game stuck SCHEDULED past its match
// window, rather than waiting for the next automated sweep (spec §9).
func HandleForceResolveForfeit(c *Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		forfeited, err := c.Tournament.CheckRosterAndForfeit(ctx.Request.Context(), ctx.Param("gameId"))
		if err != nil {
			writeError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"forfeited": forfeited})
	}
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HandleGetSeasonState returns the current season's number, day, and phase.
func HandleGetSeasonState(c *Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		season, err := c.Gateway.CurrentSeason(ctx.Request.Context())
		if err != nil {
			writeError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, season)
	}
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/domeball/core/internal/coreerr"
)

// HandleGetGame returns a match's current row, including score and status.
func HandleGetGame(c *Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		game, err := c.Gateway.GetGame(ctx.Request.Context(), ctx.Param("gameId"))
		if err != nil {
			writeError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, game)
	}
}

// HandleGetMatchStats returns a completed match's full stat line, read back
// from the persisted event log.
func HandleGetMatchStats(c *Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		game, err := c.Gateway.GetGame(ctx.Request.Context(), ctx.Param("gameId"))
		if err != nil {
			writeError(ctx, err)
			return
		}
		if game.EventLogRef == "" {
			writeError(ctx, coreerr.GameNotFound(game.ID))
			return
		}
		doc, err := c.Gateway.ReadEventLog(ctx.Request.Context(), game.EventLogRef)
		if err != nil {
			writeError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, doc.Final)
	}
}

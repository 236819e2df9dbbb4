package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/domeball/core/internal/models"
)

// HandleRegisterForTournament resolves the currently open REGISTERING
// tournament for a type/division and registers the requesting team into it.
func HandleRegisterForTournament(c *Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req struct {
			Type        models.TournamentType `json:"type" binding:"required"`
			Division    int                   `json:"division" binding:"required"`
			TeamID      string                `json:"teamId" binding:"required"`
			PayWithGems bool                  `json:"payWithGems"`
		}
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		t, err := c.Gateway.FindRegisteringTournament(ctx.Request.Context(), req.Type, req.Division)
		if err != nil {
			writeError(ctx, err)
			return
		}
		if err := c.Tournament.Register(ctx.Request.Context(), t.ID, req.TeamID, time.Now().UTC(), req.PayWithGems); err != nil {
			writeError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"tournamentId": t.ID})
	}
}

// HandleGetBracket returns every slot across every round of a tournament.
func HandleGetBracket(c *Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tournamentID := ctx.Param("id")
		t, err := c.Gateway.GetTournament(ctx.Request.Context(), tournamentID)
		if err != nil {
			writeError(ctx, err)
			return
		}
		matches, err := c.Gateway.ListAllBracketMatches(ctx.Request.Context(), tournamentID)
		if err != nil {
			writeError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"tournament": t, "matches": matches})
	}
}

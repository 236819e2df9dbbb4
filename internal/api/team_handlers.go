package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/domeball/core/internal/coreerr"
	"github.com/domeball/core/internal/models"
)

// HandleGetTeam returns a team's public state.
func HandleGetTeam(c *Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		team, err := c.Gateway.GetTeam(ctx.Request.Context(), ctx.Param("id"))
		if err != nil {
			writeError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, team)
	}
}

// HandleSetTactics updates a team's tactical focus.
func HandleSetTactics(c *Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req struct {
			TacticalFocus models.TacticalFocus `json:"tacticalFocus" binding:"required"`
		}
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		team, err := c.Gateway.GetTeam(ctx.Request.Context(), ctx.Param("id"))
		if err != nil {
			writeError(ctx, err)
			return
		}
		if err := c.Gateway.SetTeamTactics(ctx.Request.Context(), team.ID, req.TacticalFocus, team.HomeFieldSize); err != nil {
			writeError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"message": "tactics updated"})
	}
}

// HandleSetHomeField updates a team's home field size.
func HandleSetHomeField(c *Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req struct {
			HomeFieldSize models.FieldSize `json:"homeFieldSize" binding:"required"`
		}
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		team, err := c.Gateway.GetTeam(ctx.Request.Context(), ctx.Param("id"))
		if err != nil {
			writeError(ctx, err)
			return
		}
		if err := c.Gateway.SetTeamTactics(ctx.Request.Context(), team.ID, team.TacticalFocus, req.HomeFieldSize); err != nil {
			writeError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"message": "home field updated"})
	}
}

// HandleListPlayers returns a team's full roster including the taxi squad.
func HandleListPlayers(c *Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		roster, err := c.Gateway.ListRoster(ctx.Request.Context(), ctx.Param("id"))
		if err != nil {
			writeError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"players": roster})
	}
}

// HandleGetPlayer returns a single player.
func HandleGetPlayer(c *Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		p, err := c.Gateway.GetPlayer(ctx.Request.Context(), ctx.Param("playerId"))
		if err != nil {
			writeError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, p)
	}
}

// HandleMoveToTaxiSquad flags a player as taxi squad, enforcing the
// 2-player cap (spec §3 Team invariant).
func HandleMoveToTaxiSquad(c *Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		playerID := ctx.Param("playerId")
		p, err := c.Gateway.GetPlayer(ctx.Request.Context(), playerID)
		if err != nil {
			writeError(ctx, err)
			return
		}
		count, err := c.Gateway.CountTaxiSquad(ctx.Request.Context(), p.TeamID)
		if err != nil {
			writeError(ctx, err)
			return
		}
		if count >= 2 {
			writeError(ctx, coreerr.InvalidRoster("taxi squad is full"))
			return
		}
		if err := c.Gateway.SetPlayerTaxiSquad(ctx.Request.Context(), playerID, true); err != nil {
			writeError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"message": "moved to taxi squad"})
	}
}

// HandlePromoteFromTaxiSquad clears a player's taxi-squad flag.
func HandlePromoteFromTaxiSquad(c *Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		playerID := ctx.Param("playerId")
		if err := c.Gateway.SetPlayerTaxiSquad(ctx.Request.Context(), playerID, false); err != nil {
			writeError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"message": "promoted from taxi squad"})
	}
}

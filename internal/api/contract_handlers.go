package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/domeball/core/internal/contracts"
)

// HandleProposeContract evaluates a salary offer against a player's UVF
// floor and signs the contract if accepted.
func HandleProposeContract(c *Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req struct {
			TeamID   string `json:"teamId" binding:"required"`
			PlayerID string `json:"playerId" binding:"required"`
			Salary   int64  `json:"salary" binding:"required"`
			Bonus    int64  `json:"bonus"`
			Years    int    `json:"years" binding:"required"`
		}
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		outcome, amount, err := c.Contracts.ProposeContract(ctx.Request.Context(), req.TeamID, req.PlayerID, req.Salary, req.Bonus, req.Years)
		if outcome == contracts.OutcomeCountered {
			ctx.JSON(http.StatusOK, gin.H{"outcome": outcome, "counterSalary": amount})
			return
		}
		if err != nil {
			writeError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"outcome": outcome, "salary": amount})
	}
}

// HandleCancelContract terminates a contract before its term expires.
func HandleCancelContract(c *Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if err := c.Contracts.CancelContract(ctx.Request.Context(), ctx.Param("id")); err != nil {
			writeError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"message": "contract cancelled"})
	}
}

package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/domeball/core/internal/models"
)

// HandleListPlayer creates a new marketplace listing for a player.
func HandleListPlayer(c *Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req struct {
			SellerTeamID string `json:"sellerTeamId" binding:"required"`
			PlayerID     string `json:"playerId" binding:"required"`
			StartBid     int64  `json:"startBid" binding:"required"`
			BuyNow       *int64 `json:"buyNow"`
			DurationSecs int64  `json:"durationSeconds" binding:"required"`
			Phase        models.Phase `json:"phase" binding:"required"`
		}
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		listing, err := c.Marketplace.List(ctx.Request.Context(), req.SellerTeamID, req.PlayerID,
			req.StartBid, req.BuyNow, time.Duration(req.DurationSecs)*time.Second, req.Phase)
		if err != nil {
			writeError(ctx, err)
			return
		}
		ctx.JSON(http.StatusCreated, listing)
	}
}

// HandlePlaceBid places a new high bid on a listing.
func HandlePlaceBid(c *Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req struct {
			BidderTeamID string `json:"bidderTeamId" binding:"required"`
			Amount       int64  `json:"amount" binding:"required"`
		}
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if err := c.Marketplace.Bid(ctx.Request.Context(), ctx.Param("id"), req.BidderTeamID, req.Amount); err != nil {
			writeError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"message": "bid accepted"})
	}
}

// HandleBuyNow settles a listing immediately at its buy-now price.
func HandleBuyNow(c *Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req struct {
			BidderTeamID string `json:"bidderTeamId" binding:"required"`
		}
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if err := c.Marketplace.BuyNow(ctx.Request.Context(), ctx.Param("id"), req.BidderTeamID); err != nil {
			writeError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"message": "purchased"})
	}
}

// HandleCancelListing withdraws a listing before it receives a bid.
func HandleCancelListing(c *Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req struct {
			SellerTeamID string `json:"sellerTeamId" binding:"required"`
		}
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if err := c.Marketplace.CancelListing(ctx.Request.Context(), ctx.Param("id"), req.SellerTeamID); err != nil {
			writeError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"message": "listing cancelled"})
	}
}

// HandleGetListings returns every currently active listing.
func HandleGetListings(c *Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		listings, err := c.Gateway.ListActiveListings(ctx.Request.Context())
		if err != nil {
			writeError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"listings": listings})
	}
}

package api

import (
	"github.com/gin-gonic/gin"

	"github.com/domeball/core/internal/config"
	"github.com/domeball/core/internal/middleware"
)

// RegisterTeamRoutes wires team and roster management.
func RegisterTeamRoutes(router *gin.RouterGroup, c *Container) {
	teams := router.Group("/teams")
	teams.GET("/:id", HandleGetTeam(c))
	teams.PUT("/:id/tactics", HandleSetTactics(c))
	teams.PUT("/:id/home-field", HandleSetHomeField(c))
	teams.GET("/:id/players", HandleListPlayers(c))
	teams.GET("/:id/players/:playerId", HandleGetPlayer(c))
	teams.POST("/:id/players/:playerId/taxi-squad", HandleMoveToTaxiSquad(c))
	teams.DELETE("/:id/players/:playerId/taxi-squad", HandlePromoteFromTaxiSquad(c))
}

// RegisterContractRoutes wires contract negotiation.
func RegisterContractRoutes(router *gin.RouterGroup, c *Container) {
	contracts := router.Group("/contracts")
	contracts.POST("", HandleProposeContract(c))
	contracts.DELETE("/:id", HandleCancelContract(c))
}

// RegisterMarketplaceRoutes wires the auction engine's external surface.
func RegisterMarketplaceRoutes(router *gin.RouterGroup, c *Container) {
	marketplace := router.Group("/marketplace")
	marketplace.GET("/listings", HandleGetListings(c))
	marketplace.POST("/listings", HandleListPlayer(c))
	marketplace.POST("/listings/:id/bids", HandlePlaceBid(c))
	marketplace.POST("/listings/:id/buy-now", HandleBuyNow(c))
	marketplace.DELETE("/listings/:id", HandleCancelListing(c))
}

// RegisterTournamentRoutes wires tournament registration and bracket views.
func RegisterTournamentRoutes(router *gin.RouterGroup, c *Container) {
	tournaments := router.Group("/tournaments")
	tournaments.POST("/register", HandleRegisterForTournament(c))
	tournaments.GET("/:id/bracket", HandleGetBracket(c))
}

// RegisterMatchRoutes wires match lookup and completed-match stats. The
// live event stream is a websocket upgrade registered separately by
// internal/server, since it needs the raw bus and connection logger rather
// than the JSON-response Container handlers here.
func RegisterMatchRoutes(router *gin.RouterGroup, c *Container) {
	matches := router.Group("/matches")
	matches.GET("/:gameId", HandleGetGame(c))
	matches.GET("/:gameId/stats", HandleGetMatchStats(c))
}

// RegisterSeasonRoutes wires the read-only season state endpoint.
func RegisterSeasonRoutes(router *gin.RouterGroup, c *Container) {
	router.GET("/season", HandleGetSeasonState(c))
}

// RegisterHealthRoute wires the unauthenticated liveness probe.
func RegisterHealthRoute(router *gin.Engine, cfg *config.Config) {
	router.GET("/health", HealthCheck(cfg))
}

// RegisterAdminRoutes wires the small set of operator-only operations spec
// §9 reserves for an administrator, gated behind the admin bearer token.
func RegisterAdminRoutes(router *gin.RouterGroup, c *Container, adminSecret string) {
	admin := router.Group("/admin")
	admin.Use(middleware.RequireAdmin(adminSecret))
	admin.POST("/matches/:gameId/force-forfeit", HandleForceResolveForfeit(c))
}

// Package server wires the gin engine: global middleware, route groups,
// the websocket upgrade endpoint, and graceful shutdown. It is a thin HTTP
// transport layer over the core components in internal/api.Container, the
// way the teacher's internal/server owns gin setup while internal/services
// owns the actual business logic.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/domeball/core/internal/api"
	"github.com/domeball/core/internal/config"
	"github.com/domeball/core/internal/metrics"
	"github.com/domeball/core/internal/middleware"
	coreWebsocket "github.com/domeball/core/internal/websocket"
)

// Server owns the gin engine and the underlying http.Server.
type Server struct {
	config *config.Config
	logger zerolog.Logger
	http   *http.Server
}

// New builds the router with every middleware and route group attached,
// and wraps it in an http.Server configured from cfg.Server.
func New(cfg *config.Config, container *api.Container, logger zerolog.Logger) *Server {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, container, logger)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &Server{config: cfg, logger: logger, http: httpServer}
}

func setupRouter(cfg *config.Config, container *api.Container, logger zerolog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.RequestID())
	router.Use(middleware.RateLimiter(container.Gateway, 120, time.Minute)) // 120 req/min per client

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if cfg.Features.MaintenanceMode {
		router.Use(middleware.MaintenanceMode())
	}

	api.RegisterHealthRoute(router, cfg)

	if cfg.Features.EnableMetrics {
		router.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	v1 := router.Group("/api/v1")
	{
		api.RegisterTeamRoutes(v1, container)
		api.RegisterContractRoutes(v1, container)
		api.RegisterMarketplaceRoutes(v1, container)
		api.RegisterTournamentRoutes(v1, container)
		api.RegisterMatchRoutes(v1, container)
		api.RegisterSeasonRoutes(v1, container)
		api.RegisterAdminRoutes(v1, container, cfg.Auth.AdminTokenSecret)
	}

	if cfg.Features.EnableWebSocket {
		router.GET("/ws/matches/:gameId/events", coreWebsocket.HandleSubscribeLiveEvents(container.Bus, logger))
	}

	return router
}

// Start begins serving HTTP requests, blocking until Shutdown is called.
func (s *Server) Start() error {
	return s.http.ListenAndServe()
}

// Shutdown gracefully drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("shutting down HTTP server")
	return s.http.Shutdown(ctx)
}

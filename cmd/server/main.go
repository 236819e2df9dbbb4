// Process entrypoint: loads configuration, wires every component, recovers
// any match left IN_PROGRESS by a prior process, starts the season
// automation loop and the HTTP server, and shuts down gracefully on signal.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/domeball/core/internal/api"
	"github.com/domeball/core/internal/clock"
	"github.com/domeball/core/internal/commentary"
	"github.com/domeball/core/internal/config"
	"github.com/domeball/core/internal/contracts"
	"github.com/domeball/core/internal/database"
	"github.com/domeball/core/internal/eventbus"
	"github.com/domeball/core/internal/livematch"
	"github.com/domeball/core/internal/marketplace"
	"github.com/domeball/core/internal/season"
	"github.com/domeball/core/internal/server"
	"github.com/domeball/core/internal/simulation"
	"github.com/domeball/core/internal/store"
	"github.com/domeball/core/internal/tournament"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	logger := config.NewLogger(cfg.Environment)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	conns, err := database.Initialize(ctx, cfg.Database, logger)
	cancel()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize database connections")
	}
	defer conns.Close()

	gateway := store.New(conns.MySQL, conns.MongoDB, conns.Redis, logger.With().Str("component", "store").Logger())

	clk, err := clock.New(cfg.Season.TimeZone)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load season time zone")
	}

	bus := eventbus.New(logger.With().Str("component", "eventbus").Logger())
	selector := commentary.New()
	orchestrator := tournament.New(gateway, clk)
	marketEngine := marketplace.New(gateway)
	contractService := contracts.New(gateway)
	matches := livematch.NewManager(gateway, bus, selector,
		logger.With().Str("component", "livematch").Logger(),
		cfg.Simulation.CheckpointInterval, cfg.Simulation.StallThreshold, cfg.Simulation.StallReleaseAfter)

	recoverCtx, recoverCancel := context.WithTimeout(context.Background(), 60*time.Second)
	recovered, err := matches.RecoverAll(recoverCtx, func(gameID string) (simulation.MatchInput, error) {
		return season.BuildMatchInputForGame(recoverCtx, gateway, gameID)
	})
	recoverCancel()
	if err != nil {
		logger.Error().Err(err).Msg("match recovery scan failed")
	} else {
		logger.Info().Int("count", len(recovered)).Msg("recovered in-progress matches")
	}

	scheduler := season.New(gateway, clk, orchestrator, matches, selector,
		logger.With().Str("component", "season").Logger(), cfg.Season.AdvisoryLockKey)
	if err := scheduler.Start(cfg.Season.TickInterval); err != nil {
		logger.Fatal().Err(err).Msg("failed to start season scheduler")
	}
	defer scheduler.Stop()

	container := &api.Container{
		Gateway: gateway, Clock: clk, Marketplace: marketEngine, Contracts: contractService,
		Tournament: orchestrator, LiveMatch: matches, Bus: bus,
	}
	srv := server.New(cfg, container, logger)

	go func() {
		logger.Info().Str("port", cfg.Server.Port).Str("environment", cfg.Environment).Msg("starting server")
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutdown signal received")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
	}
	logger.Info().Msg("server exited")
}

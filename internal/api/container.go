package api

import (
	"github.com/domeball/core/internal/clock"
	"github.com/domeball/core/internal/contracts"
	"github.com/domeball/core/internal/eventbus"
	"github.com/domeball/core/internal/livematch"
	"github.com/domeball/core/internal/marketplace"
	"github.com/domeball/core/internal/store"
	"github.com/domeball/core/internal/tournament"
)

// Container bundles every core component a handler might need, mirroring
// the services.Container pattern but over this module's components
// instead of per-resource services.
type Container struct {
	Gateway     *store.Gateway
	Clock       *clock.Clock
	Marketplace *marketplace.Engine
	Contracts   *contracts.Service
	Tournament  *tournament.Orchestrator
	LiveMatch   *livematch.Manager
	Bus         *eventbus.Bus
}

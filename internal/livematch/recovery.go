package livematch

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/domeball/core/internal/coreerr"
	"github.com/domeball/core/internal/metrics"
	"github.com/domeball/core/internal/models"
	"github.com/domeball/core/internal/simulation"
)

// RecoverAll scans for matches left IN_PROGRESS by a prior process (a
// crash or restart) and resumes each from its latest checkpoint, replaying
// ticks without broadcasting them up to the checkpoint's tick (or until
// the match terminates). Ticks that would have elapsed between that
// checkpoint and the restart are not fast-forwarded: the match continues
// from the checkpoint's tick.
func (m *Manager) RecoverAll(ctx context.Context, inputsByGameID func(gameID string) (simulation.MatchInput, error)) ([]*Worker, error) {
	games, err := m.gateway.ListInProgressGames(ctx)
	if err != nil {
		return nil, err
	}

	var recovered []*Worker
	for _, g := range games {
		ck, err := m.gateway.LatestCheckpoint(ctx, g.ID)
		if err != nil {
			m.logger.Error().Err(err).Str("gameId", g.ID).Msg("no checkpoint available, cannot recover match")
			continue
		}

		input, err := inputsByGameID(g.ID)
		if err != nil {
			m.logger.Error().Err(err).Str("gameId", g.ID).Msg("failed to rebuild match input for recovery")
			continue
		}
		input.Seed = ck.Seed

		ownerID := uuid.NewString()
		acquired, err := m.gateway.AcquireLock(ctx, lockKeyFor(g.ID), ownerID, m.lockTTL)
		if err != nil || !acquired {
			continue
		}

		engine, err := simulation.New(input, m.selector)
		if err != nil {
			_ = m.gateway.ReleaseLock(ctx, lockKeyFor(g.ID), ownerID)
			continue
		}

		// Replay at accelerated cadence (no broadcast) up to the checkpoint's
		// tick, then continue from there -- this reproduces the exact engine
		// state the crashed worker held, since the engine is a pure function
		// of (input, seed, tick count).
		for i := 0; i < ck.Tick && !engine.IsDone(); i++ {
			engine.Tick()
		}

		w := &Worker{
			gameID: g.ID, ownerID: ownerID, gateway: m.gateway, bus: m.bus, selector: m.selector,
			logger: m.logger, stallThreshold: m.stallThreshold, checkpointEvery: m.checkpointEvery,
			engine: engine, status: liveStatusFor(engine), lastTickAt: time.Now(), stop: make(chan struct{}),
		}

		m.logger.Info().Err(coreerr.CheckpointRestored(g.ID, ck.Tick)).Str("gameId", g.ID).Msg("match restored from checkpoint")

		m.mu.Lock()
		m.workers[g.ID] = w
		m.mu.Unlock()
		recovered = append(recovered, w)
	}
	metrics.SetLiveMatchesActive(m.activeCount())
	return recovered, nil
}

func liveStatusFor(e *simulation.Engine) Status {
	if e.IsDone() {
		return models.LiveCompleted
	}
	return models.LiveInProgress
}

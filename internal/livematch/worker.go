// Package livematch owns the lifecycle of any match with status
// IN_PROGRESS (C4): one LiveMatchWorker per game, holding an advisory lock,
// driving the simulation engine tick by tick, checkpointing periodically,
// and handing events to the event bus for fan-out. The simulation itself
// never blocks on a transport consumer; ownership and checkpointing are the
// only durable-state interactions a worker performs outside its own memory.
package livematch

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/domeball/core/internal/commentary"
	"github.com/domeball/core/internal/coreerr"
	"github.com/domeball/core/internal/eventbus"
	"github.com/domeball/core/internal/metrics"
	"github.com/domeball/core/internal/models"
	"github.com/domeball/core/internal/simulation"
	"github.com/domeball/core/internal/store"
)

// Status mirrors models.LiveMatchStatus but is owned in-memory by the worker.
type Status = models.LiveMatchStatus

// Worker owns one live match end-to-end. Create via Manager.Start or
// Manager.RecoverAll, never directly.
type Worker struct {
	gameID   string
	ownerID  string
	gateway  *store.Gateway
	bus      *eventbus.Bus
	selector *commentary.Selector
	logger   zerolog.Logger

	stallThreshold time.Duration
	checkpointEvery time.Duration

	mu           sync.Mutex
	engine       *simulation.Engine
	status       Status
	lastTickAt   time.Time
	lastCheckpoint time.Time
	ticksSinceCheckpoint int

	stop chan struct{}
}

// Manager tracks every currently-owned worker in this process and provides
// process-start crash recovery.
type Manager struct {
	gateway  *store.Gateway
	bus      *eventbus.Bus
	selector *commentary.Selector
	logger   zerolog.Logger

	checkpointEvery time.Duration
	stallThreshold  time.Duration
	lockTTL         time.Duration

	mu      sync.Mutex
	workers map[string]*Worker
}

func NewManager(gateway *store.Gateway, bus *eventbus.Bus, selector *commentary.Selector, logger zerolog.Logger, checkpointEvery, stallThreshold, lockTTL time.Duration) *Manager {
	return &Manager{
		gateway: gateway, bus: bus, selector: selector, logger: logger,
		checkpointEvery: checkpointEvery, stallThreshold: stallThreshold, lockTTL: lockTTL,
		workers: make(map[string]*Worker),
	}
}

func lockKeyFor(gameID string) string { return "domeball:match:" + gameID }

// Start transactionally sets a SCHEDULED game to IN_PROGRESS, chooses a
// deterministic seed, and spins up its owning worker. Rejected if the game
// is not SCHEDULED.
func (m *Manager) Start(ctx context.Context, gameID string, seasonNumber int, bootNonce int64, input simulation.MatchInput) (*Worker, error) {
	seed := deterministicSeed(gameID, seasonNumber, bootNonce)
	input.Seed = seed

	ownerID := uuid.NewString()
	acquired, err := m.gateway.AcquireLock(ctx, lockKeyFor(gameID), ownerID, m.lockTTL)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, coreerr.ListingBusy(gameID) // another worker already owns this match
	}

	if err := m.gateway.MarkInProgress(ctx, gameID, seed); err != nil {
		_ = m.gateway.ReleaseLock(ctx, lockKeyFor(gameID), ownerID)
		return nil, err
	}

	engine, err := simulation.New(input, m.selector)
	if err != nil {
		_ = m.gateway.ReleaseLock(ctx, lockKeyFor(gameID), ownerID)
		return nil, err
	}

	w := &Worker{
		gameID: gameID, ownerID: ownerID, gateway: m.gateway, bus: m.bus, selector: m.selector,
		logger: m.logger, stallThreshold: m.stallThreshold, checkpointEvery: m.checkpointEvery,
		engine: engine, status: models.LiveInProgress, lastTickAt: time.Now(), stop: make(chan struct{}),
	}
	m.mu.Lock()
	m.workers[gameID] = w
	m.mu.Unlock()
	metrics.SetLiveMatchesActive(m.activeCount())

	return w, nil
}

// activeCount returns the number of workers this process currently owns.
// Caller must not hold m.mu.
func (m *Manager) activeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.workers)
}

// deterministicSeed derives a match's simulation seed from its identity
// rather than wall-clock time, so re-simulation after recovery is
// reproducible (spec §4.4).
func deterministicSeed(gameID string, seasonNumber int, bootNonce int64) int64 {
	h := uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("%s:%d:%d", gameID, seasonNumber, bootNonce)))
	var seed int64
	for i := 0; i < 8; i++ {
		seed = seed<<8 | int64(h[i])
	}
	if seed < 0 {
		seed = -seed
	}
	return seed
}

// Worker returns the worker currently owning a game, if any, in this process.
func (m *Manager) Worker(gameID string) (*Worker, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.workers[gameID]
	return w, ok
}

func (m *Manager) remove(gameID string) {
	m.mu.Lock()
	delete(m.workers, gameID)
	m.mu.Unlock()
	metrics.SetLiveMatchesActive(m.activeCount())
}

// GameID returns the match this worker owns.
func (w *Worker) GameID() string { return w.gameID }

// Status returns the worker's current lifecycle status.
func (w *Worker) Status() Status {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

// Pause is administrative only; the tick loop is idempotent under pause.
func (w *Worker) Pause() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.status == models.LiveInProgress {
		w.status = models.LivePaused
	}
}

// Resume lifts an administrative pause.
func (w *Worker) Resume() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.status == models.LivePaused {
		w.status = models.LiveInProgress
		w.lastTickAt = time.Now()
	}
}

// Substitute is the entry point for manager-initiated substitutions. It
// returns an error for a completed match and otherwise returns nil; it
// does not validate the players named or change either lineup. The only
// substitutions that take effect are the simulation engine's automatic
// stamina/injury substitutions.
func (w *Worker) Substitute(team, outID, inID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.status == models.LiveCompleted {
		return coreerr.Invariant("cannot substitute in a completed match")
	}
	return nil
}

// Tick advances the owned match by one simulated second, provided this
// worker still holds its advisory lock. Returns true once the match has
// reached its terminal tick, or true with an error once the worker has
// lost its advisory lock.
func (w *Worker) Tick(ctx context.Context) (done bool, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.status == models.LivePaused {
		return false, nil
	}

	held, err := w.gateway.RenewLock(ctx, lockKeyFor(w.gameID), w.ownerID, 90*time.Second)
	if err != nil {
		return false, err
	}
	if !held {
		w.logger.Warn().Str("gameId", w.gameID).Msg("lost advisory lock, halting worker")
		return true, coreerr.Invariant("lost ownership of match " + w.gameID)
	}

	if time.Since(w.lastTickAt) > w.stallThreshold {
		w.logger.Warn().Err(coreerr.MatchStalled(w.gameID, lastEventTick(w.engine))).Msg("match stall detected")
	}
	w.lastTickAt = time.Now()

	before := len(w.engine.Result().Events)
	w.engine.Tick()
	after := w.engine.Result().Events

	for _, evt := range after[before:] {
		w.bus.Publish(w.gameID, models.LiveEventEnvelope{
			GameID: w.gameID, Tick: evt.Tick, Type: evt.Type, Actors: evt.ActorIDs,
			Payload: evt, Commentary: evt.CommentaryRef,
		})
	}

	w.ticksSinceCheckpoint++
	if w.ticksSinceCheckpoint >= models.CheckpointIntervalTicks {
		w.ticksSinceCheckpoint = 0
		ckErr := w.writeCheckpoint(ctx)
		metrics.RecordLiveMatchCheckpoint(ckErr)
		if ckErr != nil {
			w.logger.Error().Err(ckErr).Str("gameId", w.gameID).Msg("checkpoint write failed")
		}
	}

	if w.engine.IsDone() {
		w.status = models.LiveCompleted
		return true, nil
	}
	return false, nil
}

func lastEventTick(e *simulation.Engine) int {
	tick, _, _, _, _ := e.Snapshot()
	return tick
}

func (w *Worker) writeCheckpoint(ctx context.Context) error {
	tick, half, homeScore, awayScore, possession := w.engine.Snapshot()
	ck := models.Checkpoint{
		GameID: w.gameID, Seed: w.engine.Input().Seed, Tick: tick, Half: half, PossessionTeamID: possession,
		HomeScore: homeScore, AwayScore: awayScore, WrittenAt: time.Now().UTC(),
	}
	return w.gateway.WriteCheckpoint(ctx, ck)
}

// Complete finalizes the match: persists the full event log, final score,
// per-player seasonal minutes, team standings, home-side stadium gate
// revenue for LEAGUE matches, releases the broadcast channel, and releases
// the advisory lock. Caller must have observed Tick returning done=true
// first.
func (m *Manager) Complete(ctx context.Context, w *Worker) error {
	result := w.engine.Result()
	input := w.engine.Input()

	ref, err := m.gateway.WriteEventLog(ctx, w.gameID, input.Seed, result.Events, &result.Final)
	if err != nil {
		return err
	}

	err = m.gateway.WithTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := m.gateway.PersistMatchResultTx(ctx, tx, w.gameID, result.Final.HomeScore, result.Final.AwayScore, ref); err != nil {
			return err
		}
		if err := m.gateway.ApplyFinalStatsTx(ctx, tx, result.Final, input.MatchType); err != nil {
			return err
		}
		if input.MatchType != models.MatchLeague {
			return nil
		}
		drawn := result.Final.HomeScore == result.Final.AwayScore
		if err := m.gateway.UpdateStandingsTx(ctx, tx, input.Home.TeamID, result.Final.HomeScore > result.Final.AwayScore, drawn); err != nil {
			return err
		}
		if err := m.gateway.UpdateStandingsTx(ctx, tx, input.Away.TeamID, result.Final.AwayScore > result.Final.HomeScore, drawn); err != nil {
			return err
		}

		home, err := m.gateway.GetTeam(ctx, input.Home.TeamID)
		if err != nil {
			return err
		}
		revenue := models.StadiumRevenue(home.FanLoyalty, home.HomeFieldSize)
		return m.gateway.CreditTeamTx(ctx, tx, home.ID, revenue, 0, models.LedgerStadiumRevenue, w.gameID)
	})
	if err != nil {
		return err
	}

	m.bus.CloseMatch(w.gameID)
	_ = m.gateway.ReleaseLock(ctx, lockKeyFor(w.gameID), w.ownerID)
	m.remove(w.gameID)
	return nil
}

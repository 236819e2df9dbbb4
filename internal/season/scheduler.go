package season

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/domeball/core/internal/clock"
	"github.com/domeball/core/internal/commentary"
	"github.com/domeball/core/internal/livematch"
	"github.com/domeball/core/internal/metrics"
	"github.com/domeball/core/internal/store"
	"github.com/domeball/core/internal/tournament"
)

// advisoryLockTTL must comfortably exceed TickInterval so a slow tick
// doesn't let a second process win leadership mid-reconciliation.
const advisoryLockTTL = 90 * time.Second

// Scheduler is C8: a single-leader tick loop reconciling the database
// against the wall clock. Exactly one process in a deployment is the
// leader at any instant, decided by a Redis advisory lock re-contested
// every tick (spec §4.8).
type Scheduler struct {
	gateway      *store.Gateway
	clk          *clock.Clock
	orchestrator *tournament.Orchestrator
	matches      *livematch.Manager
	selector     *commentary.Selector
	logger       zerolog.Logger

	lockKey string
	ownerID string
	rng     *rand.Rand

	cron *cron.Cron

	lastAutoStartScan time.Time
	lastNextRoundScan time.Time
	lastWindowScan    time.Time
	lastLateSignup    time.Time
}

// New builds a Scheduler. lockKey identifies the leader-election lock;
// every process in a deployment must use the same key.
func New(gateway *store.Gateway, clk *clock.Clock, orchestrator *tournament.Orchestrator, matches *livematch.Manager, selector *commentary.Selector, logger zerolog.Logger, lockKey string) *Scheduler {
	return &Scheduler{
		gateway: gateway, clk: clk, orchestrator: orchestrator, matches: matches, selector: selector, logger: logger,
		lockKey: lockKey, ownerID: uuid.NewString(), rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Start registers the tick loop on a cron schedule and begins running it.
// The spec's 60-second cadence is expressed as an "@every" cron spec
// rather than a fixed wall-clock minute, matching the stdlib ticker
// semantics the previous process used before this rewrite.
func (s *Scheduler) Start(tickInterval time.Duration) error {
	s.cron = cron.New()
	_, err := s.cron.AddFunc("@every "+tickInterval.String(), func() {
		ctx, cancel := context.WithTimeout(context.Background(), tickInterval)
		defer cancel()
		if err := s.Tick(ctx); err != nil {
			s.logger.Error().Err(err).Msg("season tick failed")
		}
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop halts the cron loop and waits for any in-flight tick to finish.
func (s *Scheduler) Stop() context.Context {
	if s.cron == nil {
		return context.Background()
	}
	return s.cron.Stop()
}

// Tick is one reconciliation pass: contest leadership, then if (and only
// if) leadership is held this tick, run the five ordered steps against
// the current season row. A tick that loses the leadership race is not an
// error -- most processes in a deployment will see this on most ticks.
func (s *Scheduler) Tick(ctx context.Context) error {
	leader, err := s.acquireOrRenewLeadership(ctx)
	if err != nil {
		return err
	}
	metrics.SetSeasonLeader(leader)
	if !leader {
		return nil
	}

	current, err := s.gateway.CurrentSeason(ctx)
	if err != nil {
		return err
	}
	now := s.clk.Now()

	if err := s.timedStep("day_advance", func() error { return s.reconcileDay(ctx, current, now) }); err != nil {
		return err
	}

	// Re-fetch: day advancement (or rollover) may have changed the current
	// season row underneath the steps below.
	current, err = s.gateway.CurrentSeason(ctx)
	if err != nil {
		return err
	}

	if now.Sub(s.lastWindowScan) >= 15*time.Minute {
		s.lastWindowScan = now
		if err := s.timedStep("match_window", func() error { return s.scanMatchWindow(ctx, current, now) }); err != nil {
			return err
		}
	}

	if now.Sub(s.lastAutoStartScan) >= time.Minute {
		s.lastAutoStartScan = now
		if err := s.timedStep("tournament_auto_start", func() error { return s.orchestrator.ScanAutoStart(ctx, now, s.rng) }); err != nil {
			return err
		}
	}
	if now.Sub(s.lastNextRoundScan) >= 5*time.Minute {
		s.lastNextRoundScan = now
		if err := s.timedStep("tournament_next_round", func() error { return s.orchestrator.ScanNextRound(ctx, now) }); err != nil {
			return err
		}
	}

	if now.Sub(s.lastLateSignup) >= time.Minute {
		s.lastLateSignup = now
		if err := s.timedStep("late_signup", func() error { return s.processLateSignup(ctx, current, now) }); err != nil {
			return err
		}
	}

	return nil
}

func (s *Scheduler) timedStep(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	metrics.ObserveSeasonTickStep(name, time.Since(start))
	return err
}

// acquireOrRenewLeadership tries a fresh SetNX first; if another owner
// already holds the key it falls back to renewing -- the only way this
// process could hold it is from a prior tick, so a renew failure here
// just means some other process is leading.
func (s *Scheduler) acquireOrRenewLeadership(ctx context.Context) (bool, error) {
	acquired, err := s.gateway.AcquireLock(ctx, s.lockKey, s.ownerID, advisoryLockTTL)
	if err != nil {
		return false, err
	}
	if acquired {
		return true, nil
	}
	return s.gateway.RenewLock(ctx, s.lockKey, s.ownerID, advisoryLockTTL)
}

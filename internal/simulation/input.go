// Package simulation is the deterministic match simulation engine (C3). It
// consumes an immutable snapshot of both rosters plus a seed and produces a
// byte-identical event stream regardless of whether it is driven to
// completion synchronously (INSTANT) or one tick at a time (LIVE) -- the
// only permitted entropy source is the seeded PRNG threaded through every
// call, never wall-clock time, map iteration order, or goroutine scheduling.
package simulation

import (
	"github.com/domeball/core/internal/models"
)

// TeamSnapshot is the immutable per-team input to a simulation: every
// fieldable roster player plus team-level modifiers in effect at kickoff.
type TeamSnapshot struct {
	TeamID        string
	Players       []models.Player // fieldable candidates, role-tagged
	TacticalFocus models.TacticalFocus
	HomeFieldSize models.FieldSize
	Camaraderie   int
	IsHome        bool
}

// MatchInput is the full immutable snapshot C3 consumes.
type MatchInput struct {
	GameID    string
	Home      TeamSnapshot
	Away      TeamSnapshot
	MatchType models.MatchType
	Seed      int64
}

// Mode selects synchronous-vs-incremental driving of the engine. Both
// produce the identical event stream for the same input+seed.
type Mode string

const (
	ModeInstant Mode = "INSTANT"
	ModeLive    Mode = "LIVE"
)

// Result is the synchronous output of an INSTANT simulation.
type Result struct {
	Events []models.MatchEvent
	Final  models.FinalStats
}

const (
	minFieldablePerSide = 6 // one per field slot, spec's 6-a-side dome ball
)

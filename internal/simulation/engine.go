package simulation

import (
	"math/rand"
	"time"

	"github.com/domeball/core/internal/commentary"
	"github.com/domeball/core/internal/coreerr"
	"github.com/domeball/core/internal/metrics"
	"github.com/domeball/core/internal/models"
)

// playerState is the engine's private mutable view of one fielded player
// across ticks -- never exposed outside the engine; checkpoints (C4) are
// derived from it via Snapshot.
type playerState struct {
	player   models.Player
	stamina  int // in-game stamina, distinct from models.Player.DailyStamina which is the daily starting value
	onField  bool
}

// teamState is the engine's private mutable view of one team across ticks.
type teamState struct {
	teamID        string
	tacticalFocus models.TacticalFocus
	homeFieldSize models.FieldSize
	camaraderie   int
	isHome        bool
	field         []*playerState // exactly minFieldablePerSide while healthy
	bench         []*playerState
	stats         map[string]*models.PlayerMatchStats
	teamStats     *models.TeamMatchStats
}

// Engine drives one match's simulation, tick by tick, maintaining the
// exact state needed to resume deterministically from any tick boundary
// (the property C4's checkpoint/replay semantics depend on).
type Engine struct {
	input      MatchInput
	rng        *rand.Rand
	selector   *commentary.Selector
	home, away *teamState

	tick            int
	half            int
	regulationSecs  int
	overtimeEligible bool
	inOvertime      bool
	possessionTeam  string
	homeScore       int
	awayScore       int
	events          []models.MatchEvent
	done            bool
}

// New builds an engine ready to tick from t=0. It returns
// InsufficientLineupError if either side cannot field the minimum roster.
func New(input MatchInput, selector *commentary.Selector) (*Engine, error) {
	homeFieldable := fieldableOf(input.Home.Players)
	awayFieldable := fieldableOf(input.Away.Players)
	if len(homeFieldable) < minFieldablePerSide {
		return nil, coreerr.InsufficientLineup(len(homeFieldable), minFieldablePerSide)
	}
	if len(awayFieldable) < minFieldablePerSide {
		return nil, coreerr.InsufficientLineup(len(awayFieldable), minFieldablePerSide)
	}

	regulation, otEligible := matchDuration(input.MatchType)

	e := &Engine{
		input:            input,
		rng:              rand.New(rand.NewSource(input.Seed)),
		selector:         selector,
		regulationSecs:   regulation,
		overtimeEligible: otEligible,
		half:             1,
	}
	e.home = newTeamState(input.Home, homeFieldable)
	e.away = newTeamState(input.Away, awayFieldable)
	e.possessionTeam = input.Home.TeamID
	return e, nil
}

func fieldableOf(players []models.Player) []models.Player {
	var out []models.Player
	for _, p := range players {
		if p.Fieldable() {
			out = append(out, p)
		}
	}
	return out
}

func matchDuration(mt models.MatchType) (regulationSeconds int, overtimeEligible bool) {
	switch mt {
	case models.MatchExhibition:
		return 30 * 60, false
	case models.MatchLeague:
		return 40 * 60, false
	case models.MatchTournament, models.MatchPlayoff:
		return 40 * 60, true
	default:
		return 40 * 60, false
	}
}

func newTeamState(snap TeamSnapshot, fieldable []models.Player) *teamState {
	ts := &teamState{
		teamID:        snap.TeamID,
		tacticalFocus: snap.TacticalFocus,
		homeFieldSize: snap.HomeFieldSize,
		camaraderie:   snap.Camaraderie,
		isHome:        snap.IsHome,
		stats:         make(map[string]*models.PlayerMatchStats),
		teamStats:     &models.TeamMatchStats{TeamID: snap.TeamID},
	}
	for i, p := range fieldable {
		ps := &playerState{player: p, stamina: p.DailyStamina, onField: i < minFieldablePerSide}
		if ps.onField {
			ts.field = append(ts.field, ps)
		} else {
			ts.bench = append(ts.bench, ps)
		}
		ts.stats[p.ID] = &models.PlayerMatchStats{PlayerID: p.ID}
	}
	return ts
}

// IsDone reports whether the match has reached its terminal tick.
func (e *Engine) IsDone() bool { return e.done }

// Input returns the immutable snapshot this engine was built from, used by
// callers that need the seed or match type after construction (event log
// persistence, metrics labeling).
func (e *Engine) Input() MatchInput { return e.input }

// Run drives the engine to completion and returns the full INSTANT result.
func Run(input MatchInput, selector *commentary.Selector) (Result, error) {
	start := time.Now()
	e, err := New(input, selector)
	if err != nil {
		return Result{}, err
	}
	for !e.IsDone() {
		e.Tick()
	}
	metrics.RecordMatchSimulated("instant", string(input.MatchType), time.Since(start))
	return e.Result(), nil
}

// Tick advances simulated time by one second, mutating engine state and
// appending at most one MatchEvent. It is a no-op once IsDone() is true.
func (e *Engine) Tick() {
	if e.done {
		return
	}

	e.decayStamina(e.home)
	e.decayStamina(e.away)
	e.applySubstitutionTriggers(e.home)
	e.applySubstitutionTriggers(e.away)

	evt := e.resolveTickEvent()
	if evt != nil {
		e.events = append(e.events, *evt)
	}

	e.tick++
	e.advanceClock()
}

// advanceClock handles half/overtime/completion transitions. Halves are of
// equal length (regulationSecs/2). An overtime-eligible match tied at the
// end of regulation goes to an overtime of at most OvertimeSeconds in which
// the first score ends the match (maybeScore calls finish); a match still
// tied when overtime runs out ends tied.
func (e *Engine) advanceClock() {
	halfLen := e.regulationSecs / 2
	switch {
	case e.half == 1 && e.tick >= halfLen:
		e.half = 2
		e.events = append(e.events, models.MatchEvent{
			Tick: e.tick, Type: models.EventHalftime, HomeScore: e.homeScore, AwayScore: e.awayScore,
		})
	case e.half == 2 && !e.inOvertime && e.tick >= e.regulationSecs:
		if e.overtimeEligible && e.homeScore == e.awayScore {
			e.inOvertime = true
		} else {
			e.finish()
		}
	case e.inOvertime && e.tick >= e.regulationSecs+models.OvertimeSeconds:
		e.finish()
	case e.inOvertime && e.homeScore != e.awayScore:
		// sudden death: first score ends it, checked in resolveTickEvent via maybeScore
	}
}

func (e *Engine) finish() {
	e.done = true
	e.events = append(e.events, models.MatchEvent{
		Tick: e.tick, Type: models.EventMatchComplete, HomeScore: e.homeScore, AwayScore: e.awayScore,
	})
}

// Result packages the accumulated event stream and final stats. Only
// meaningful once IsDone() is true (or to inspect partial progress during
// a LIVE drive).
func (e *Engine) Result() Result {
	final := models.FinalStats{
		GameID:      e.input.GameID,
		HomeScore:   e.homeScore,
		AwayScore:   e.awayScore,
		PlayerStats: make(map[string]*models.PlayerMatchStats),
		TeamStats:   map[string]*models.TeamMatchStats{e.home.teamID: e.home.teamStats, e.away.teamID: e.away.teamStats},
	}
	for id, s := range e.home.stats {
		final.PlayerStats[id] = s
	}
	for id, s := range e.away.stats {
		final.PlayerStats[id] = s
	}
	return Result{Events: append([]models.MatchEvent{}, e.events...), Final: final}
}

// Snapshot returns the compact state needed for a C4 checkpoint.
func (e *Engine) Snapshot() (tick, half, homeScore, awayScore int, possession string) {
	return e.tick, e.half, e.homeScore, e.awayScore, e.possessionTeam
}

package simulation

import (
	"github.com/domeball/core/internal/commentary"
	"github.com/domeball/core/internal/models"
)

// resolveTickEvent picks at most one primary event for the current tick,
// weighted by role distribution, tactical focus, field size, camaraderie,
// and situational modifiers, then attaches commentary. The exact numeric
// weights are an implementation choice left open by spec §9; this
// implementation fixes the *structure* (one primary event per tick,
// role-weighted selection, pass/run/kick backed by the named formulas)
// required to satisfy the determinism and stamina laws in §8.
func (e *Engine) resolveTickEvent() *models.MatchEvent {
	offense, defense := e.home, e.away
	offenseIsHome := true
	if e.possessionTeam != e.home.teamID {
		offense, defense = e.away, e.home
		offenseIsHome = false
	}

	actor := e.pickActionActor(offense)
	if actor == nil {
		return nil
	}

	mod := e.situationalModifier(offenseIsHome)
	intimidation := intimidationOf(defense)

	switch actor.player.Role {
	case models.RolePasser:
		return e.resolvePass(offense, defense, actor, intimidation, mod)
	case models.RoleRunner:
		return e.resolveRun(offense, defense, actor, mod)
	default:
		return e.resolveBlockOrTackle(offense, defense, actor, mod)
	}
}

// pickActionActor chooses which fielded player has the ball this tick,
// weighted toward passers/runners by tactical focus.
func (e *Engine) pickActionActor(t *teamState) *playerState {
	if len(t.field) == 0 {
		return nil
	}
	weights := make([]float64, len(t.field))
	total := 0.0
	for i, ps := range t.field {
		w := 1.0
		switch ps.player.Role {
		case models.RolePasser:
			if t.tacticalFocus == models.TacticsAllOutAttack {
				w = 2.0
			} else {
				w = 1.5
			}
		case models.RoleRunner:
			w = 1.3
		case models.RoleBlocker:
			w = 0.5
		}
		weights[i] = w
		total += w
	}
	r := e.rng.Float64() * total
	acc := 0.0
	for i, w := range weights {
		acc += w
		if r <= acc {
			return t.field[i]
		}
	}
	return t.field[len(t.field)-1]
}

func (e *Engine) resolvePass(offense, defense *teamState, actor *playerState, intimidation int, mod float64) *models.MatchEvent {
	speedAgilityPenalty, _ := staminaPenalty(actor.stamina)
	throwing := actor.player.Attributes.Throwing + int(speedAgilityPenalty)
	prob := clamp(passSuccessProbability(throwing, offense.camaraderie, intimidation, actor.stamina)*mod, 0.05, 0.95)

	stats := offense.stats[actor.player.ID]
	stats.PassAttempts++

	if e.rng.Float64() < prob {
		stats.PassCompletions++
		yards := 3 + e.rng.Intn(12)
		stats.Yards += yards
		offense.teamStats.TotalYards += yards
		evt := models.MatchEvent{Tick: e.tick, Type: models.EventPass, ActorIDs: []string{actor.player.ID}, Yards: &yards}
		return e.maybeScore(offense, defense, evt, yards)
	}

	stats.Drops++
	offense.teamStats.Turnovers++
	e.possessionTeam = defenseTeamID(defense)
	return e.attachCommentary(models.MatchEvent{Tick: e.tick, Type: models.EventFumble, ActorIDs: []string{actor.player.ID}}, actor.player.Race)
}

func (e *Engine) resolveRun(offense, defense *teamState, actor *playerState, mod float64) *models.MatchEvent {
	speedAgilityPenalty, _ := staminaPenalty(actor.stamina)
	speed := actor.player.Attributes.Speed + int(speedAgilityPenalty)
	agility := actor.player.Attributes.Agility + int(speedAgilityPenalty)
	if offense.homeFieldSize == models.FieldSmall {
		// SMALL grants a power bonus in tackle contests, modeled here as
		// a small boost to the ball carrier's effective agility.
		agility += 2
	}
	prob := clamp(runSuccessProbability(speed, agility, offense.camaraderie, actor.stamina)*mod, 0.05, 0.95)

	stats := offense.stats[actor.player.ID]

	if e.rng.Float64() < prob {
		yards := 2 + e.rng.Intn(8)
		stats.Yards += yards
		offense.teamStats.TotalYards += yards
		evt := models.MatchEvent{Tick: e.tick, Type: models.EventRun, ActorIDs: []string{actor.player.ID}, Yards: &yards}
		return e.maybeScore(offense, defense, evt, yards)
	}

	tackler := e.pickDefender(defense)
	if tackler != nil {
		defense.stats[tackler.player.ID].Tackles++
	}
	if e.gryllReducesKnockdown(actor) {
		return e.attachCommentary(models.MatchEvent{Tick: e.tick, Type: models.EventTackle, ActorIDs: actorIDs(actor, tackler)}, actor.player.Race)
	}
	if tackler != nil {
		defense.stats[tackler.player.ID].Knockdowns++
	}
	e.possessionTeam = defenseTeamID(defense)
	return e.attachCommentary(models.MatchEvent{Tick: e.tick, Type: models.EventKnockdown, ActorIDs: actorIDs(actor, tackler)}, actor.player.Race)
}

func (e *Engine) resolveBlockOrTackle(offense, defense *teamState, actor *playerState, mod float64) *models.MatchEvent {
	kicking := actor.player.Attributes.Kicking
	intimidation := intimidationOf(defense)
	prob := clamp(kickSuccessProbability(kicking, offense.camaraderie, intimidation, actor.stamina)*mod, 0.05, 0.95)

	if e.rng.Float64() < prob {
		evt := models.MatchEvent{Tick: e.tick, Type: models.EventKick, ActorIDs: []string{actor.player.ID}}
		return e.maybeScore(offense, defense, evt, 0)
	}
	return e.attachCommentary(models.MatchEvent{Tick: e.tick, Type: models.EventKick, ActorIDs: []string{actor.player.ID}}, actor.player.Race)
}

// maybeScore awards a score roughly once per sufficiently long gain,
// keeping scoring infrequent but reachable within a realistic match length.
func (e *Engine) maybeScore(offense, defense *teamState, evt models.MatchEvent, yards int) *models.MatchEvent {
	if yards >= 10 && e.rng.Float64() < 0.25 {
		evt.Type = models.EventScore
		if offense.isHome {
			e.homeScore += 6
		} else {
			e.awayScore += 6
		}
		evt.HomeScore = e.homeScore
		evt.AwayScore = e.awayScore
		if e.inOvertime {
			e.finish()
		}
	}
	e.possessionTeam = e.nextPossession(offense, defense, evt.Type)
	return e.attachCommentary(evt, e.actorRaceOf(evt))
}

func (e *Engine) nextPossession(offense, defense *teamState, evtType models.MatchEventType) string {
	if evtType == models.EventScore {
		return defenseTeamID(defense) // kickoff to the scored-upon team
	}
	return offense.teamID
}

func (e *Engine) pickDefender(t *teamState) *playerState {
	var blockers []*playerState
	for _, ps := range t.field {
		if ps.player.Role == models.RoleBlocker {
			blockers = append(blockers, ps)
		}
	}
	if len(blockers) == 0 {
		if len(t.field) == 0 {
			return nil
		}
		return t.field[e.rng.Intn(len(t.field))]
	}
	return blockers[e.rng.Intn(len(blockers))]
}

func (e *Engine) gryllReducesKnockdown(actor *playerState) bool {
	return actor.player.Race == models.RaceGryll && e.rng.Float64() < 0.30
}

func (e *Engine) attachCommentary(evt models.MatchEvent, race models.Race) *models.MatchEvent {
	if e.selector != nil {
		diff := e.homeScore - e.awayScore
		evt.CommentaryRef = e.selector.Select(commentary.SelectionContext{
			Event:             evt,
			ActorRace:         race,
			ScoreDifferential: diff,
			SecondsRemaining:  e.regulationSecs - e.tick,
		}, e.rng)
	}
	evt.PossessionTeamID = e.possessionTeam
	return &evt
}

func (e *Engine) actorRaceOf(evt models.MatchEvent) models.Race {
	if len(evt.ActorIDs) == 0 {
		return ""
	}
	for _, ps := range e.home.field {
		if ps.player.ID == evt.ActorIDs[0] {
			return ps.player.Race
		}
	}
	for _, ps := range e.away.field {
		if ps.player.ID == evt.ActorIDs[0] {
			return ps.player.Race
		}
	}
	return ""
}

func actorIDs(actor, defender *playerState) []string {
	if defender == nil {
		return []string{actor.player.ID}
	}
	return []string{actor.player.ID, defender.player.ID}
}

func defenseTeamID(defense *teamState) string { return defense.teamID }

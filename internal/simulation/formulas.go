package simulation

import (
	"github.com/domeball/core/internal/models"
)

func clamp(p, lo, hi float64) float64 {
	if p < lo {
		return lo
	}
	if p > hi {
		return hi
	}
	return p
}

// passSuccessProbability implements spec §4.3: 0.6 + throwing/100 +
// camaraderieMod/100 - intimidation/100 - (100-stamina)/200, clamped to
// [0.05, 0.95].
func passSuccessProbability(throwing, camaraderie, intimidation, stamina int) float64 {
	p := 0.6 + float64(throwing)/100 + models.CamaraderieModifier(camaraderie)/100 -
		float64(intimidation)/100 - float64(100-stamina)/200
	return clamp(p, 0.05, 0.95)
}

// runSuccessProbability implements spec §4.3: 0.5 + (speed+agility)/200 +
// camaraderieMod/100 - (100-stamina)/200.
func runSuccessProbability(speed, agility, camaraderie, stamina int) float64 {
	p := 0.5 + float64(speed+agility)/200 + models.CamaraderieModifier(camaraderie)/100 -
		float64(100-stamina)/200
	return clamp(p, 0.05, 0.95)
}

// kickSuccessProbability implements spec §4.3: 0.4 + kicking/120 +
// camaraderieMod/120 - intimidation/120 - (100-stamina)/300.
func kickSuccessProbability(kicking, camaraderie, intimidation, stamina int) float64 {
	p := 0.4 + float64(kicking)/120 + models.CamaraderieModifier(camaraderie)/120 -
		float64(intimidation)/120 - float64(100-stamina)/300
	return clamp(p, 0.05, 0.95)
}

// staminaPenalty returns the additive speed/agility and power penalties
// applied below 20 stamina: -1 per 5 points lost below 20 for speed/agility,
// -0.5 per 5 for power (spec §4.3 step 1).
func staminaPenalty(stamina int) (speedAgility, power float64) {
	if stamina >= 20 {
		return 0, 0
	}
	deficitSteps := float64(20-stamina) / 5
	return -1 * deficitSteps, -0.5 * deficitSteps
}

// decayStamina applies per-tick stamina loss and race-specific regeneration
// effects (spec §4.3: SYLVAN 10%/+2, LUMINA 5%/+1-to-all-teammates).
func (e *Engine) decayStamina(t *teamState) {
	luminaBoost := false
	for _, ps := range t.field {
		if ps.player.Race == models.RaceLumina && e.rng.Float64() < 0.05 {
			luminaBoost = true
		}
	}
	for _, ps := range t.field {
		decay := 1
		if t.homeFieldSize == models.FieldLarge {
			decay = 2 // LARGE increases stamina depletion
		}
		ps.stamina -= decay

		if ps.player.Race == models.RaceSylvan && e.rng.Float64() < 0.10 {
			ps.stamina += 2
		}
		if luminaBoost {
			ps.stamina += 1
		}
		if ps.stamina < 0 {
			ps.stamina = 0
		}
		if ps.stamina > 100 {
			ps.stamina = 100
		}
	}
}

// substitutionThreshold is the in-game stamina floor below which a player
// is pulled for a bench replacement of the same role (spec §4.4).
const substitutionThreshold = 50

// applySubstitutionTriggers swaps out a fielded player whose stamina has
// dropped below threshold, or whose injury has worsened to
// MODERATE/SEVERE, for the next eligible same-role bench player. If none is
// eligible the field player continues with penalties instead.
func (e *Engine) applySubstitutionTriggers(t *teamState) {
	for i, ps := range t.field {
		needsSub := ps.stamina < substitutionThreshold ||
			ps.player.Injury == models.InjuryModerate || ps.player.Injury == models.InjurySevere
		if !needsSub {
			continue
		}
		for j, bench := range t.bench {
			if bench.player.Role != ps.player.Role || !bench.player.Fieldable() {
				continue
			}
			t.field[i], t.bench[j] = bench, ps
			t.field[i].onField = true
			t.bench[j].onField = false
			e.events = append(e.events, models.MatchEvent{
				Tick: e.tick, Type: models.EventSubstitution,
				ActorIDs: []string{ps.player.ID, bench.player.ID},
			})
			break
		}
	}
}

// intimidationOf is a small deterministic proxy for the opposing team's
// awareness/leadership-driven "intimidation" term used by the pass/kick
// formulas, derived from the defending team's average leadership.
func intimidationOf(t *teamState) int {
	if len(t.field) == 0 {
		return 0
	}
	sum := 0
	for _, ps := range t.field {
		sum += ps.player.Attributes.Leadership
	}
	return sum / len(t.field) / 4
}

// situationalModifier implements spec §4.3's second-half desperation /
// conservative / clutch rules, returning a multiplicative factor applied to
// the acting team's success probability.
func (e *Engine) situationalModifier(actingTeamIsHome bool) float64 {
	if e.half != 2 {
		return 1.0
	}
	diff := e.homeScore - e.awayScore
	if !actingTeamIsHome {
		diff = -diff
	}

	secondsRemaining := e.regulationSecs - e.tick
	if secondsRemaining <= 300 && abs(diff) <= 2 {
		leader := e.home
		if diff < 0 {
			leader = e.away
		}
		clutchSwing := (float64(leader.camaraderie) - 50) / 100 * 0.30
		if diff >= 0 {
			return 1.0 + clutchSwing
		}
		return 1.0 - clutchSwing
	}

	switch {
	case diff <= -6:
		return 1.80 // trailing: desperation, +80% aggression/risk
	case diff >= 6:
		return 0.60 // leading: conservative, -40% risk
	default:
		return 1.0
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

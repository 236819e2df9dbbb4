package progression

import (
	"math/rand"

	"github.com/domeball/core/internal/models"
)

// ActivityInput captures the minutes and performance signal feeding a
// player's daily progression roll count (spec §4.7).
type ActivityInput struct {
	LeagueMinutes     int
	TournamentMinutes int
	ExhibitionMinutes int
	PerformanceBonus  float64
}

// ActivityScore implements: leagueMin/40*10 + tournamentMin/40*7 + exhibitionMin/40*2 + performanceBonus.
func ActivityScore(a ActivityInput) float64 {
	return float64(a.LeagueMinutes)/40*10 +
		float64(a.TournamentMinutes)/40*7 +
		float64(a.ExhibitionMinutes)/40*2 +
		a.PerformanceBonus
}

// ProgressionRolls is floor(ActivityScore / 5).
func ProgressionRolls(score float64) int {
	n := int(score / 5)
	if n < 0 {
		return 0
	}
	return n
}

// attributeField identifies one of the eight trainable attributes by name,
// used for the uniform roll and cap-enforced increment.
type attributeField int

const (
	attrSpeed attributeField = iota
	attrPower
	attrAgility
	attrThrowing
	attrCatching
	attrKicking
	attrStamina
	attrLeadership
)

var physicalAttributes = []attributeField{attrSpeed, attrAgility, attrPower}
var allAttributes = []attributeField{attrSpeed, attrPower, attrAgility, attrThrowing, attrCatching, attrKicking, attrStamina, attrLeadership}

func eligibleAttributes(age int) []attributeField {
	if age < 34 {
		return allAttributes
	}
	var out []attributeField
	for _, a := range allAttributes {
		if !isPhysical(a) {
			out = append(out, a)
		}
	}
	return out
}

func isPhysical(a attributeField) bool {
	for _, p := range physicalAttributes {
		if p == a {
			return true
		}
	}
	return false
}

func attrValue(attrs *models.Attributes, f attributeField) *int {
	switch f {
	case attrSpeed:
		return &attrs.Speed
	case attrPower:
		return &attrs.Power
	case attrAgility:
		return &attrs.Agility
	case attrThrowing:
		return &attrs.Throwing
	case attrCatching:
		return &attrs.Catching
	case attrKicking:
		return &attrs.Kicking
	case attrStamina:
		return &attrs.Stamina
	default:
		return &attrs.Leadership
	}
}

// Modifiers bundles the additive probability terms from spec §4.7 other
// than the fixed 5% base and the uniform noise term.
type Modifiers struct {
	PotentialMod   float64
	AgeMod         float64
	StaffMod       float64
	CamaraderieMod float64
	InjuryMod      float64
}

// trainerRoleFor maps a player's on-field role to the staff specialization
// that boosts it, the one-to-one trainer/role pairing spec §3 GLOSSARY's
// staff roster implies.
func trainerRoleFor(r models.Role) models.StaffType {
	switch r {
	case models.RoleRunner:
		return models.StaffRunnerTrainer
	case models.RoleBlocker:
		return models.StaffBlockerTrainer
	default:
		return models.StaffPasserTrainer
	}
}

// staffAttrCeiling is the maximum a single StaffAttributes.Sum() can reach
// (7 attributes x the [1,40] per-attribute ceiling), used to normalize
// staffMod onto the same small-percentage scale as the other terms.
const staffAttrCeiling = 7 * 40

// DeriveModifiers computes the five additive terms of spec §4.7's daily
// progression success probability from a player's own state, their team's
// camaraderie, and the team's coaching staff. potentialMod and ageMod have
// no named formula in the source material; both follow camaraderieMod's
// existing convention here and in the simulation package's formulas.go of
// keeping every named modifier within roughly [-5%, +5%].
func DeriveModifiers(p models.Player, camaraderie int, staff []models.Staff) Modifiers {
	potentialMod := (p.Potential - 2.75) * 0.01

	ageMod := 0.0
	switch {
	case p.Age < 24:
		ageMod = 0.02
	case p.Age <= 30:
		ageMod = 0.01
	case p.Age <= 34:
		ageMod = 0.0
	default:
		ageMod = -0.02
	}

	staffMod := 0.0
	wanted := trainerRoleFor(p.Role)
	for _, s := range staff {
		if s.Type == wanted {
			staffMod = float64(s.Attributes.Sum()) / float64(staffAttrCeiling) * 0.05
			break
		}
	}

	injuryMod := 0.0
	switch p.Injury {
	case models.InjuryMinor:
		injuryMod = -0.01
	case models.InjuryModerate:
		injuryMod = -0.02
	case models.InjurySevere:
		injuryMod = -0.03
	}

	return Modifiers{
		PotentialMod:   potentialMod,
		AgeMod:         ageMod,
		StaffMod:       staffMod,
		CamaraderieMod: models.CamaraderieModifier(camaraderie) / 100,
		InjuryMod:      injuryMod,
	}
}

// successProbability implements:
// P = 5% + potentialMod + ageMod + staffMod + camaraderieMod + injuryMod + U(-1%,+1%), clamped [1%,95%].
func successProbability(m Modifiers, rng *rand.Rand) float64 {
	noise := (rng.Float64()*2 - 1) * 0.01
	p := 0.05 + m.PotentialMod + m.AgeMod + m.StaffMod + m.CamaraderieMod + m.InjuryMod + noise
	if p < 0.01 {
		p = 0.01
	}
	if p > 0.95 {
		p = 0.95
	}
	return p
}

// baseStaminaRestore is the floor amount of daily stamina every non-retired
// player recovers overnight regardless of age or usage (spec §4.8 step 1c:
// "restore daily stamina toward 100 with a formula that favors younger and
// less-used players").
const baseStaminaRestore = 20

// RestoreDailyStamina ticks one player's daily stamina back toward 100,
// favoring younger players (a player at the 16-year floor gets double the
// base restore; it tapers linearly to zero extra by the 45-year retirement
// ceiling) and less-used ones (minutesSinceRest above the full-day 40
// minutes taper the restore down; the day-advancement step passes the
// player's season-to-date minutes).
func RestoreDailyStamina(p *models.Player, minutesSinceRest int) {
	ageFactor := 1.0
	if p.Age < 45 {
		ageFactor = 1.0 + float64(45-p.Age)/29.0 // 16 -> ~2.0, 45 -> 1.0
	}
	usageFactor := 1.0
	if minutesSinceRest > 40 {
		usageFactor = 40.0 / float64(minutesSinceRest)
	}
	restore := int(float64(baseStaminaRestore) * ageFactor * usageFactor)
	p.DailyStamina += restore
	if p.DailyStamina > 100 {
		p.DailyStamina = 100
	}
}

// DecrementInjury steps a player's injury one severity level down (SEVERE ->
// MODERATE -> MINOR -> HEALTHY) once their recovery points reach the
// threshold for that step, and resets the counter; otherwise it just
// accrues a recovery point for the day.
func DecrementInjury(p *models.Player) {
	if p.Injury == models.InjuryHealthy {
		return
	}
	p.RecoveryPoints++
	const pointsPerStep = 3
	if p.RecoveryPoints < pointsPerStep {
		return
	}
	p.RecoveryPoints = 0
	switch p.Injury {
	case models.InjurySevere:
		p.Injury = models.InjuryModerate
	case models.InjuryModerate:
		p.Injury = models.InjuryMinor
	case models.InjuryMinor:
		p.Injury = models.InjuryHealthy
	}
}

// ApplyDailyProgression performs ProgressionRolls(score) independent rolls
// against a player's attributes, in place, respecting the age>=34 physical
// exclusion and the floor(potential*8) cap.
func ApplyDailyProgression(p *models.Player, activity ActivityInput, mods Modifiers, rng *rand.Rand) int {
	rolls := ProgressionRolls(ActivityScore(activity))
	attrCap := p.AttributeCap()
	successes := 0

	candidates := eligibleAttributes(p.Age)
	if len(candidates) == 0 {
		return 0
	}

	for i := 0; i < rolls; i++ {
		field := candidates[rng.Intn(len(candidates))]
		prob := successProbability(mods, rng)
		if rng.Float64() < prob {
			v := attrValue(&p.Attributes, field)
			if *v < attrCap {
				*v++
				successes++
			}
		}
	}
	return successes
}

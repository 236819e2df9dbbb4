package progression

import (
	"math/rand"

	"github.com/domeball/core/internal/models"
)

// SeasonalMinuteQuota is the full-participation baseline (14 days x 40
// minutes) that usagePenalty is computed against (spec §4.7).
const SeasonalMinuteQuota = 560

// DeclineChance implements: (age-30) x 2.5%, only checked for age >= 31.
func DeclineChance(age int) float64 {
	if age < 31 {
		return 0
	}
	return float64(age-30) * 0.025
}

// ApplyDeclineCheck rolls the decline check and, on a hit, decrements
// Speed/Agility (weight x2) or Power (weight x1), floored at 1.
func ApplyDeclineCheck(p *models.Player, rng *rand.Rand) bool {
	if rng.Float64() >= DeclineChance(p.Age) {
		return false
	}
	// weighted choice: Speed x2, Agility x2, Power x1
	r := rng.Intn(5)
	switch {
	case r < 2:
		decrement(&p.Attributes.Speed)
	case r < 4:
		decrement(&p.Attributes.Agility)
	default:
		decrement(&p.Attributes.Power)
	}
	return true
}

func decrement(v *int) {
	if *v > 1 {
		*v--
	}
}

func baseAgeRetirementChance(age int) float64 {
	if age < 35 {
		return 0
	}
	return float64(age-34) * 0.05
}

// usagePenalty implements the two seasonal-minutes thresholds from spec §4.7.
func usagePenalty(seasonalMinutes int) float64 {
	switch {
	case seasonalMinutes < (5.0/14.0)*SeasonalMinuteQuota:
		return 0.15
	case seasonalMinutes < (10.0/14.0)*SeasonalMinuteQuota:
		return 0.05
	default:
		return 0
	}
}

// RetirementChance implements: baseAgeChance(age) + careerInjuries*2% + usagePenalty.
func RetirementChance(p models.Player) float64 {
	return baseAgeRetirementChance(p.Age) + float64(p.CareerInjuries)*0.02 + usagePenalty(p.SeasonalMinutes.Total())
}

// ApplyRetirementCheck evaluates the stochastic retirement roll for age>=35
// and the hard age>=45 floor, mutating p.Retired in place.
func ApplyRetirementCheck(p *models.Player, rng *rand.Rand) bool {
	p.ApplyRetirementRules() // hard age>=45 floor
	if p.Retired {
		return true
	}
	if p.Age < 35 {
		return false
	}
	if rng.Float64() < RetirementChance(*p) {
		p.Retired = true
		return true
	}
	return false
}

// ApplyEndOfSeason runs decline, retirement, aging, and the seasonal
// minutes reset for one player, in the order spec §4.7 describes.
func ApplyEndOfSeason(p *models.Player, rng *rand.Rand) {
	ApplyDeclineCheck(p, rng)
	retired := ApplyRetirementCheck(p, rng)
	if !retired {
		p.Age++
	}
	p.SeasonalMinutes = models.MinutesPlayed{}
}

// Package progression implements the Universal Value Formula, daily
// stochastic progression, and end-of-season decline/retirement rules (C7).
package progression

import (
	"math"

	"github.com/domeball/core/internal/coreerr"
	"github.com/domeball/core/internal/models"
)

// MinimumOfferPercent is the floor on a contract offer relative to the UVF.
const MinimumOfferPercent = 0.70

// AgeModifier returns the UVF age bracket multiplier (spec §4.7).
func AgeModifier(age int) float64 {
	switch {
	case age >= 16 && age <= 23:
		return 0.8
	case age >= 24 && age <= 30:
		return 1.2
	case age >= 31 && age <= 34:
		return 1.0
	default:
		return 0.7
	}
}

// PlayerUVF computes the Universal Value Formula for a player.
// potential10 is the player's potential rescaled from [0.5,5.0] to [1,10].
func PlayerUVF(p models.Player) float64 {
	attributeValue := float64(p.Attributes.Sum()) * 50
	potential10 := p.Potential * 2
	potentialValue := potential10 * 1000
	return (attributeValue + potentialValue) * AgeModifier(p.Age)
}

// StaffUVF computes the Universal Value Formula for a staff member. Staff
// have no potential term (spec §4.7 defines PotentialValue only for players).
func StaffUVF(s models.Staff, age int) float64 {
	attributeValue := float64(s.Attributes.Sum()) * 150
	return attributeValue * AgeModifier(age)
}

// MinimumOfferFloor returns the lowest salary a contract offer may carry
// for a player of this UVF.
func MinimumOfferFloor(uvf float64) int64 {
	return int64(math.Round(uvf * MinimumOfferPercent))
}

// ValidateOffer enforces the 70%-of-UVF floor (spec §3 Contract invariant).
func ValidateOffer(uvf float64, offeredSalary int64) error {
	floor := MinimumOfferFloor(uvf)
	if offeredSalary < floor {
		return coreerr.ContractBelowFloor(offeredSalary, floor)
	}
	return nil
}

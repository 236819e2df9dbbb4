package progression

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/domeball/core/internal/models"
)

func TestPhysicalAttributesNeverIncreaseAtOrAbove34(t *testing.T) {
	p := models.Player{
		Age: 34, Potential: 4.0,
		Attributes: models.Attributes{Speed: 10, Agility: 10, Power: 10, Throwing: 10, Catching: 10, Kicking: 10, Stamina: 10, Leadership: 10},
	}
	rng := rand.New(rand.NewSource(1))
	mods := Modifiers{PotentialMod: 0.5} // push success probability high to stress-test the exclusion

	for day := 0; day < 100; day++ {
		ApplyDailyProgression(&p, ActivityInput{LeagueMinutes: 40, PerformanceBonus: 10}, mods, rng)
	}

	assert.Equal(t, 10, p.Attributes.Speed)
	assert.Equal(t, 10, p.Attributes.Agility)
	assert.Equal(t, 10, p.Attributes.Power)
}

func TestAttributeNeverExceedsPotentialCap(t *testing.T) {
	p := models.Player{Age: 20, Potential: 1.0, Attributes: models.Attributes{Throwing: 7}}
	rng := rand.New(rand.NewSource(2))
	mods := Modifiers{PotentialMod: 0.8}

	for day := 0; day < 200; day++ {
		ApplyDailyProgression(&p, ActivityInput{LeagueMinutes: 40, PerformanceBonus: 20}, mods, rng)
	}

	assert.LessOrEqual(t, p.Attributes.Throwing, p.AttributeCap())
}

func TestActivityScoreAndRolls(t *testing.T) {
	score := ActivityScore(ActivityInput{LeagueMinutes: 40, TournamentMinutes: 40, ExhibitionMinutes: 40})
	assert.InDelta(t, 19.0, score, 0.001)
	assert.Equal(t, 3, ProgressionRolls(score))
}

func TestUVFAgeModifier(t *testing.T) {
	assert.Equal(t, 0.8, AgeModifier(20))
	assert.Equal(t, 1.2, AgeModifier(27))
	assert.Equal(t, 1.0, AgeModifier(32))
	assert.Equal(t, 0.7, AgeModifier(40))
}

func TestValidateOfferRejectsBelowFloor(t *testing.T) {
	p := models.Player{Age: 25, Potential: 3.0, Attributes: models.Attributes{Speed: 20, Power: 20, Agility: 20, Throwing: 20, Catching: 20, Kicking: 20, Stamina: 20, Leadership: 20}}
	uvf := PlayerUVF(p)
	err := ValidateOffer(uvf, int64(uvf*0.5))
	assert.Error(t, err)
	assert.NoError(t, ValidateOffer(uvf, int64(uvf)))
}

func TestHardRetirementFloor(t *testing.T) {
	p := models.Player{Age: 45}
	rng := rand.New(rand.NewSource(3))
	retired := ApplyRetirementCheck(&p, rng)
	assert.True(t, retired)
	assert.True(t, p.Retired)
}

func TestDeriveModifiersInjuryWorsensWithSeverity(t *testing.T) {
	base := models.Player{Age: 27, Potential: 2.75, Role: models.RoleRunner}

	healthy := base
	healthy.Injury = models.InjuryHealthy
	minor := base
	minor.Injury = models.InjuryMinor
	severe := base
	severe.Injury = models.InjurySevere

	mHealthy := DeriveModifiers(healthy, 50, nil)
	mMinor := DeriveModifiers(minor, 50, nil)
	mSevere := DeriveModifiers(severe, 50, nil)

	assert.Zero(t, mHealthy.InjuryMod)
	assert.Less(t, mMinor.InjuryMod, mHealthy.InjuryMod)
	assert.Less(t, mSevere.InjuryMod, mMinor.InjuryMod)
}

func TestDeriveModifiersStaffMatchesPlayerRole(t *testing.T) {
	p := models.Player{Age: 27, Potential: 2.75, Role: models.RoleRunner}
	staff := []models.Staff{
		{Type: models.StaffPasserTrainer, Attributes: models.StaffAttributes{Offense: 40, Defense: 40, Physical: 40, Scouting: 40, Recovery: 40, Motivation: 40, Tactics: 40}},
		{Type: models.StaffRunnerTrainer, Attributes: models.StaffAttributes{Offense: 20, Defense: 20, Physical: 20, Scouting: 20, Recovery: 20, Motivation: 20, Tactics: 20}},
	}

	withStaff := DeriveModifiers(p, 50, staff)
	withoutStaff := DeriveModifiers(p, 50, nil)

	assert.Greater(t, withStaff.StaffMod, withoutStaff.StaffMod)
	assert.Zero(t, withoutStaff.StaffMod)
}

func TestDeriveModifiersAgeTapersFromYouthBonusToVeteranPenalty(t *testing.T) {
	young := models.Player{Age: 20, Potential: 2.75}
	prime := models.Player{Age: 40, Potential: 2.75}

	mYoung := DeriveModifiers(young, 50, nil)
	mPrime := DeriveModifiers(prime, 50, nil)

	assert.Greater(t, mYoung.AgeMod, mPrime.AgeMod)
}

func TestRestoreDailyStaminaFavorsYoungerLessUsedPlayers(t *testing.T) {
	young := models.Player{Age: 18, DailyStamina: 50}
	old := models.Player{Age: 44, DailyStamina: 50}
	RestoreDailyStamina(&young, 40)
	RestoreDailyStamina(&old, 40)
	assert.Greater(t, young.DailyStamina, old.DailyStamina)

	rested := models.Player{Age: 25, DailyStamina: 50}
	heavilyUsed := models.Player{Age: 25, DailyStamina: 50}
	RestoreDailyStamina(&rested, 40)
	RestoreDailyStamina(&heavilyUsed, 200)
	assert.Greater(t, rested.DailyStamina, heavilyUsed.DailyStamina)
}

func TestRestoreDailyStaminaCapsAt100(t *testing.T) {
	p := models.Player{Age: 20, DailyStamina: 95}
	RestoreDailyStamina(&p, 10)
	assert.Equal(t, 100, p.DailyStamina)
}

func TestDecrementInjurySkipsHealthyPlayers(t *testing.T) {
	p := models.Player{Injury: models.InjuryHealthy}
	DecrementInjury(&p)
	assert.Equal(t, models.InjuryHealthy, p.Injury)
	assert.Zero(t, p.RecoveryPoints)
}

func TestDecrementInjuryStepsDownAfterThreePoints(t *testing.T) {
	p := models.Player{Injury: models.InjurySevere}
	DecrementInjury(&p)
	DecrementInjury(&p)
	assert.Equal(t, models.InjurySevere, p.Injury)
	DecrementInjury(&p)
	assert.Equal(t, models.InjuryModerate, p.Injury)
	assert.Zero(t, p.RecoveryPoints)
}

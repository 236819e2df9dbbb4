package tournament

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domeball/core/internal/models"
)

func TestSeedOrderEightTeamsHighMeetsLow(t *testing.T) {
	order := seedOrder(8)
	assert.Equal(t, []int{1, 8, 4, 5, 2, 7, 3, 6}, order)
}

func TestBuildFirstRoundPairsHighestAgainstLowest(t *testing.T) {
	seeded := make([]SeededTeam, 8)
	for i := range seeded {
		seeded[i] = SeededTeam{TeamID: string(rune('A' + i))}
	}
	matches, err := BuildFirstRound("t1", seeded)
	require.NoError(t, err)
	require.Len(t, matches, 4)

	assert.Equal(t, "A", *matches[0].Team1ID)
	assert.Equal(t, "H", *matches[0].Team2ID)
}

func TestBuildFirstRoundRejectsNonPowerOfTwo(t *testing.T) {
	_, err := BuildFirstRound("t1", make([]SeededTeam, 6))
	assert.Error(t, err)
}

func TestFeederSlotMapping(t *testing.T) {
	next, isTeam1 := FeederSlot(0)
	assert.Equal(t, 0, next)
	assert.True(t, isTeam1)

	next, isTeam1 = FeederSlot(1)
	assert.Equal(t, 0, next)
	assert.False(t, isTeam1)

	next, isTeam1 = FeederSlot(3)
	assert.Equal(t, 1, next)
	assert.False(t, isTeam1)
}

func TestTrueStrengthIsDeterministicAndOrdersByRosterPower(t *testing.T) {
	strongRoster := []models.Player{
		{Injury: models.InjuryHealthy, Attributes: models.Attributes{Speed: 30, Power: 30, Agility: 30, Throwing: 30, Catching: 30, Kicking: 30}},
	}
	weakRoster := []models.Player{
		{Injury: models.InjuryHealthy, Attributes: models.Attributes{Speed: 10, Power: 10, Agility: 10, Throwing: 10, Catching: 10, Kicking: 10}},
	}

	strong := TrueStrength(TeamStrengthInput{Team: models.Team{ID: "strong", Camaraderie: 50}, Roster: strongRoster})
	weak := TrueStrength(TeamStrengthInput{Team: models.Team{ID: "weak", Camaraderie: 50}, Roster: weakRoster})
	assert.Greater(t, strong, weak)

	again := TrueStrength(TeamStrengthInput{Team: models.Team{ID: "strong", Camaraderie: 50}, Roster: strongRoster})
	assert.Equal(t, strong, again)
}

func TestSeedTeamsBreaksTiesByTeamID(t *testing.T) {
	inputs := []TeamStrengthInput{
		{Team: models.Team{ID: "b"}},
		{Team: models.Team{ID: "a"}},
	}
	seeded := SeedTeams(inputs)
	assert.Equal(t, "a", seeded[0].TeamID)
	assert.Equal(t, "b", seeded[1].TeamID)
}

package season

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func eightTeamIDs() []string {
	return []string{"t1", "t2", "t3", "t4", "t5", "t6", "t7", "t8"}
}

func TestRoundRobinEveryTeamPlaysEveryOtherExactlyOnce(t *testing.T) {
	teams := eightTeamIDs()
	rounds := RoundRobin(teams)
	assert.Len(t, rounds, len(teams)-1)

	seen := make(map[string]bool)
	for _, round := range rounds {
		assert.Len(t, round, len(teams)/2)
		playedThisRound := make(map[string]bool)
		for _, p := range round {
			assert.False(t, playedThisRound[p.Home], "team double-booked within a round")
			assert.False(t, playedThisRound[p.Away], "team double-booked within a round")
			playedThisRound[p.Home] = true
			playedThisRound[p.Away] = true

			key := p.Home + "-" + p.Away
			reverseKey := p.Away + "-" + p.Home
			assert.False(t, seen[key] || seen[reverseKey], "pairing repeated: %s", key)
			seen[key] = true
		}
	}
	assert.Len(t, seen, len(teams)*(len(teams)-1)/2)
}

func TestRoundRobinRejectsOddOrTooSmallInput(t *testing.T) {
	assert.Nil(t, RoundRobin([]string{"a", "b", "c"}))
	assert.Nil(t, RoundRobin([]string{"a"}))
	assert.Nil(t, RoundRobin(nil))
}

func TestDoubleRoundRobinReversesHomeAwayOnSecondPass(t *testing.T) {
	teams := eightTeamIDs()
	rounds := DoubleRoundRobin(teams)
	assert.Len(t, rounds, 2*(len(teams)-1))

	firstHalf := rounds[:len(teams)-1]
	secondHalf := rounds[len(teams)-1:]
	for i, round := range firstHalf {
		for j, p := range round {
			reversed := secondHalf[i][j]
			assert.Equal(t, p.Home, reversed.Away)
			assert.Equal(t, p.Away, reversed.Home)
		}
	}
}

func TestDoubleRoundRobinGivesFourteenRoundsForEightTeams(t *testing.T) {
	assert.Len(t, DoubleRoundRobin(eightTeamIDs()), 14)
}

func TestAssignRoundsToDaysCompressesSurplusOntoEarliestDays(t *testing.T) {
	rounds := RoundRobin(append(eightTeamIDs(), "t9", "t10", "t11", "t12", "t13", "t14", "t15", "t16"))
	assert.Len(t, rounds, 15)

	byDay := AssignRoundsToDays(rounds, 1, 14)
	assert.Len(t, byDay, 14)
	// day 1 absorbs round 0 and round 14 (the one surplus round wraps back to the start).
	assert.Len(t, byDay[1], 16)
	for day := 2; day <= 14; day++ {
		assert.Len(t, byDay[day], 8)
	}
}

func TestAssignRoundsToDaysEmptyForNonPositiveWindow(t *testing.T) {
	rounds := DoubleRoundRobin(eightTeamIDs())
	assert.Empty(t, AssignRoundsToDays(rounds, 1, 0))
}

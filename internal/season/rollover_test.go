package season

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func subdivisionInputs(division int, sub string, points ...int) []relocationInput {
	teams := make([]relocationInput, len(points))
	for i, p := range points {
		teams[i] = relocationInput{ID: string(rune('0'+division)) + sub + string(rune('A'+i)), Division: division, Subdivision: sub, Points: p}
	}
	return teams
}

func byTeam(relocations []Relocation) map[string]Relocation {
	out := make(map[string]Relocation, len(relocations))
	for _, r := range relocations {
		out[r.TeamID] = r
	}
	return out
}

func TestComputeRelocationsPromotesTopAndRelegatesBottom(t *testing.T) {
	teams := subdivisionInputs(4, "A", 30, 25, 20, 15, 10, 5, 3, 1)
	relocations := byTeam(computeRelocations(teams))

	assert.Equal(t, 3, relocations[teams[0].ID].ToDivision)
	assert.Equal(t, 3, relocations[teams[1].ID].ToDivision)
	assert.Equal(t, 5, relocations[teams[6].ID].ToDivision)
	assert.Equal(t, 5, relocations[teams[7].ID].ToDivision)

	for _, t2 := range teams[2:6] {
		_, relocated := relocations[t2.ID]
		assert.False(t, relocated)
	}
}

func TestComputeRelocationsTopDivisionHasNoPromotion(t *testing.T) {
	teams := subdivisionInputs(minDivision, "A", 30, 25, 20, 15, 10, 5, 3, 1)
	relocations := byTeam(computeRelocations(teams))

	assert.NotContains(t, relocations, teams[0].ID)
	assert.Equal(t, minDivision+1, relocations[teams[7].ID].ToDivision)
}

func TestComputeRelocationsBottomDivisionHasNoRelegation(t *testing.T) {
	teams := subdivisionInputs(maxDivision, "A", 30, 25, 20, 15, 10, 5, 3, 1)
	relocations := byTeam(computeRelocations(teams))

	assert.NotContains(t, relocations, teams[7].ID)
	assert.Equal(t, maxDivision-1, relocations[teams[0].ID].ToDivision)
}

func TestComputeRelocationsPoolsAcrossSubdivisionsInTargetDivision(t *testing.T) {
	// Division 3 has two subdivisions relegating into division 4, which has
	// two existing subdivisions of its own: the pooled relegated teams
	// should spread across both rather than all landing on one letter.
	var teams []relocationInput
	teams = append(teams, subdivisionInputs(3, "A", 30, 25, 20, 15, 10, 5, 3, 1)...)
	teams = append(teams, subdivisionInputs(3, "B", 30, 25, 20, 15, 10, 5, 3, 1)...)
	teams = append(teams, subdivisionInputs(4, "A", 30, 25, 20, 15, 10, 5, 3, 1)...)
	teams = append(teams, subdivisionInputs(4, "B", 30, 25, 20, 15, 10, 5, 3, 1)...)

	relocations := byTeam(computeRelocations(teams))

	targets := make(map[string]bool)
	for _, id := range []string{"3AG", "3AH", "3BG", "3BH"} {
		r, ok := relocations[id]
		assert.True(t, ok)
		assert.Equal(t, 4, r.ToDivision)
		targets[r.ToSubdivision] = true
	}
	assert.Len(t, targets, 2, "relegated teams should spread across both division-4 subdivisions")
}

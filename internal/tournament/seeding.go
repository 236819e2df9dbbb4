package tournament

import (
	"sort"

	"github.com/domeball/core/internal/models"
)

// strengthWeights are the relative contributions of each "true strength"
// input (spec §4.5: the source names the inputs -- team power, division,
// win%, strength of schedule, camaraderie, recent form, health -- without
// pinning weights; §9 Open Question). Chosen so roster quality dominates
// while the softer signals can still flip a close seed.
const (
	weightRosterPower     = 0.45
	weightWinPercent      = 0.20
	weightStrengthOfSched = 0.10
	weightCamaraderie     = 0.10
	weightRecentForm      = 0.10
	weightHealth          = 0.05
)

// TeamStrengthInput bundles the signals true-strength seeding draws from.
type TeamStrengthInput struct {
	Team             models.Team
	Roster           []models.Player
	StrengthOfSched  float64 // opponents' average win% over the season so far, [0,1]
	RecentFormPoints float64 // points earned in the last 5 league games, [0,15]
}

// rosterPower averages CAR across fieldable, non-taxi-squad players --
// unfieldable players don't contribute to a bracket seed.
func rosterPower(roster []models.Player) float64 {
	total, n := 0.0, 0
	for _, p := range roster {
		if p.IsTaxiSquad || !p.Fieldable() {
			continue
		}
		total += p.Attributes.CAR()
		n++
	}
	if n == 0 {
		return 0
	}
	return total / float64(n)
}

func healthFraction(roster []models.Player) float64 {
	total, healthy := 0, 0
	for _, p := range roster {
		if p.IsTaxiSquad {
			continue
		}
		total++
		if p.Injury == models.InjuryHealthy {
			healthy++
		}
	}
	if total == 0 {
		return 1
	}
	return float64(healthy) / float64(total)
}

func winPercent(t models.Team) float64 {
	played := t.Wins + t.Losses + t.Draws
	if played == 0 {
		return 0.5
	}
	return (float64(t.Wins) + 0.5*float64(t.Draws)) / float64(played)
}

// TrueStrength computes the deterministic seeding scalar for one team. The
// CAR scale (roughly [1,40]) is normalized against 40 so every term lands
// in a comparable [0,1]-ish range before weighting.
func TrueStrength(in TeamStrengthInput) float64 {
	power := rosterPower(in.Roster) / 40
	camaraderie := float64(in.Team.Camaraderie) / 100
	form := in.RecentFormPoints / 15

	return power*weightRosterPower +
		winPercent(in.Team)*weightWinPercent +
		in.StrengthOfSched*weightStrengthOfSched +
		camaraderie*weightCamaraderie +
		form*weightRecentForm +
		healthFraction(in.Roster)*weightHealth
}

// SeededTeam pairs a team id with its computed strength for bracket seeding.
type SeededTeam struct {
	TeamID   string
	Strength float64
}

// SeedTeams orders teams from strongest (seed 1) to weakest, breaking ties
// by team id so seeding is fully deterministic given identical inputs.
func SeedTeams(inputs []TeamStrengthInput) []SeededTeam {
	out := make([]SeededTeam, len(inputs))
	for i, in := range inputs {
		out[i] = SeededTeam{TeamID: in.Team.ID, Strength: TrueStrength(in)}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Strength != out[j].Strength {
			return out[i].Strength > out[j].Strength
		}
		return out[i].TeamID < out[j].TeamID
	})
	return out
}

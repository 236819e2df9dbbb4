package tournament

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/domeball/core/internal/coreerr"
	"github.com/domeball/core/internal/models"
)

// seedOrder returns the standard single-elimination seed pairing for a
// bracket of the given size, e.g. for 8: [1,8,4,5,2,7,3,6] so the highest
// seed always meets the lowest remaining seed in round 1.
func seedOrder(size int) []int {
	order := []int{1, 2}
	for len(order) < size {
		next := make([]int, 0, len(order)*2)
		sum := len(order)*2 + 1
		for _, s := range order {
			next = append(next, s, sum-s)
		}
		order = next
	}
	return order
}

// BuildFirstRound creates round-1 bracket slots from a strength-ordered
// seed list (seed[0] = strongest). len(seeded) must equal the tournament's
// bracket size; the caller is responsible for AI-filling to that size first.
func BuildFirstRound(tournamentID string, seeded []SeededTeam) ([]models.BracketMatch, error) {
	size := len(seeded)
	if size < 2 || size&(size-1) != 0 {
		return nil, coreerr.Invariant(fmt.Sprintf("bracket size %d is not a power of two", size))
	}

	order := seedOrder(size)
	matches := make([]models.BracketMatch, 0, size/2)
	for slot := 0; slot < size/2; slot++ {
		seedA := order[slot*2] - 1
		seedB := order[slot*2+1] - 1
		teamA := seeded[seedA].TeamID
		teamB := seeded[seedB].TeamID
		matches = append(matches, models.BracketMatch{
			ID: uuid.NewString(), TournamentID: tournamentID, Round: 1, Slot: slot,
			Team1ID: &teamA, Team2ID: &teamB,
		})
	}
	return matches, nil
}

// BuildEmptyRound creates the slots for a later round, with team ids left
// nil until the feeder round's winners are known.
func BuildEmptyRound(tournamentID string, round, numMatches int) []models.BracketMatch {
	out := make([]models.BracketMatch, numMatches)
	for i := range out {
		out[i] = models.BracketMatch{ID: uuid.NewString(), TournamentID: tournamentID, Round: round, Slot: i}
	}
	return out
}

// FeederSlot returns which next-round match/team-slot a given round's match
// feeds into: match at slot `slot` in `round` feeds slot `slot/2` of
// `round+1`, into team1 if slot is even, team2 if odd.
func FeederSlot(slot int) (nextSlot int, isTeam1 bool) {
	return slot / 2, slot%2 == 0
}

// Package season is C8, the master scheduler: a single-leader 60-second
// tick loop that reconciles the database against the wall clock -- day
// advancement, the match simulation window, tournament scans, late signup,
// and season rollover -- dispatching to C3/C4/C5/C7 through the store
// gateway (spec §2, §4.8). It is the one component that owns the canonical
// "current day" counter.
package season

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/domeball/core/internal/models"
	"github.com/domeball/core/internal/simulation"
	"github.com/domeball/core/internal/store"
)

// BuildMatchInputForGame loads a game by ID and assembles its simulation
// snapshot, the exported form of buildMatchInput cmd/server wires as the
// closure livematch.Manager.RecoverAll needs to rebuild a crashed worker's
// input without either package importing the other.
func BuildMatchInputForGame(ctx context.Context, gateway *store.Gateway, gameID string) (simulation.MatchInput, error) {
	g, err := gateway.GetGame(ctx, gameID)
	if err != nil {
		return simulation.MatchInput{}, err
	}
	return buildMatchInput(ctx, gateway, *g)
}

// buildMatchInput assembles the immutable simulation snapshot for a
// scheduled game from its two teams' stored state -- the shape C3 and C4
// both consume but that neither package constructs itself; C4's
// RecoverAll takes it as an injected closure for exactly this reason.
func buildMatchInput(ctx context.Context, gateway *store.Gateway, g models.Game) (simulation.MatchInput, error) {
	home, err := teamSnapshot(ctx, gateway, g.HomeTeamID, true)
	if err != nil {
		return simulation.MatchInput{}, err
	}
	away, err := teamSnapshot(ctx, gateway, g.AwayTeamID, false)
	if err != nil {
		return simulation.MatchInput{}, err
	}
	return simulation.MatchInput{
		GameID:    g.ID,
		Home:      home,
		Away:      away,
		MatchType: g.MatchType,
		Seed:      g.Seed,
	}, nil
}

func teamSnapshot(ctx context.Context, gateway *store.Gateway, teamID string, isHome bool) (simulation.TeamSnapshot, error) {
	team, err := gateway.GetTeam(ctx, teamID)
	if err != nil {
		return simulation.TeamSnapshot{}, err
	}
	roster, err := gateway.ListRoster(ctx, teamID)
	if err != nil {
		return simulation.TeamSnapshot{}, err
	}
	return simulation.TeamSnapshot{
		TeamID:        team.ID,
		Players:       roster,
		TacticalFocus: team.TacticalFocus,
		HomeFieldSize: team.HomeFieldSize,
		Camaraderie:   team.Camaraderie,
		IsHome:        isHome,
	}, nil
}

// instantSeed derives a deterministic simulation seed for a catch-up
// INSTANT simulation from the game's own identity, mirroring
// livematch.deterministicSeed's identity-not-wall-clock approach (spec
// §4.3's determinism invariant) but with no boot nonce: a missed match is
// only ever instant-simulated once, by whichever leader's tick catches it.
func instantSeed(gameID string, seasonNumber int) int64 {
	h := uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("%s:%d:instant", gameID, seasonNumber)))
	var seed int64
	for i := 0; i < 8; i++ {
		seed = seed<<8 | int64(h[i])
	}
	if seed < 0 {
		seed = -seed
	}
	return seed
}

package season

import (
	"context"
	"database/sql"

	"github.com/domeball/core/internal/commentary"
	"github.com/domeball/core/internal/models"
	"github.com/domeball/core/internal/simulation"
	"github.com/domeball/core/internal/store"
)

// simulateInstant runs a still-SCHEDULED game to completion synchronously
// and persists every effect a normal live completion would (event log,
// final score, per-player minutes, standings, stadium revenue), without
// ever holding a C4 advisory lock -- the match was never started live,
// so there is no worker to hand it to (spec §4.8 step 1a catch-up
// simulation).
func simulateInstant(ctx context.Context, gateway *store.Gateway, selector *commentary.Selector, g models.Game, seasonNumber int) error {
	input, err := buildMatchInput(ctx, gateway, g)
	if err != nil {
		return err
	}
	input.Seed = instantSeed(g.ID, seasonNumber)

	result, err := simulation.Run(input, selector)
	if err != nil {
		return err
	}

	ref, err := gateway.WriteEventLog(ctx, g.ID, input.Seed, result.Events, &result.Final)
	if err != nil {
		return err
	}

	return gateway.WithTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := gateway.PersistMatchResultTx(ctx, tx, g.ID, result.Final.HomeScore, result.Final.AwayScore, ref); err != nil {
			return err
		}
		if err := gateway.ApplyFinalStatsTx(ctx, tx, result.Final, g.MatchType); err != nil {
			return err
		}
		if g.MatchType != models.MatchLeague {
			return nil
		}
		drawn := result.Final.HomeScore == result.Final.AwayScore
		if err := gateway.UpdateStandingsTx(ctx, tx, g.HomeTeamID, result.Final.HomeScore > result.Final.AwayScore, drawn); err != nil {
			return err
		}
		if err := gateway.UpdateStandingsTx(ctx, tx, g.AwayTeamID, result.Final.AwayScore > result.Final.HomeScore, drawn); err != nil {
			return err
		}
		home, err := gateway.GetTeam(ctx, g.HomeTeamID)
		if err != nil {
			return err
		}
		revenue := models.StadiumRevenue(home.FanLoyalty, home.HomeFieldSize)
		return gateway.CreditTeamTx(ctx, tx, home.ID, revenue, 0, models.LedgerStadiumRevenue, g.ID)
	})
}

package store

import (
	"context"
	"database/sql"

	"github.com/domeball/core/internal/models"
)

// ApplyFinalStatsTx persists each fielded player's minutes played from a
// completed match into their running seasonal totals, the figure spec
// §4.7's daily ActivityScore is computed from. Bucketed by match type:
// LEAGUE into league_minutes, TOURNAMENT/PLAYOFF into tournament_minutes,
// EXHIBITION into exhibition_minutes.
func (g *Gateway) ApplyFinalStatsTx(ctx context.Context, tx *sql.Tx, final models.FinalStats, matchType models.MatchType) error {
	col := minutesColumn(matchType)
	for playerID, stats := range final.PlayerStats {
		if stats == nil || stats.MinutesPlayed == 0 {
			continue
		}
		if _, err := tx.ExecContext(ctx, `UPDATE players SET `+col+` = `+col+` + ? WHERE id = ?`,
			stats.MinutesPlayed, playerID); err != nil {
			return err
		}
	}
	return nil
}

func minutesColumn(matchType models.MatchType) string {
	switch matchType {
	case models.MatchTournament, models.MatchPlayoff:
		return "tournament_minutes"
	case models.MatchExhibition:
		return "exhibition_minutes"
	default:
		return "league_minutes"
	}
}

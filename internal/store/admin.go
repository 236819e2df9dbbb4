package store

import (
	"context"
	"database/sql"

	"github.com/domeball/core/internal/models"
)

// ListAllTeams returns every team across every division/subdivision, used by
// season rollover's salary payment and AI purge sweeps.
func (g *Gateway) ListAllTeams(ctx context.Context) ([]models.Team, error) {
	rows, err := g.db.QueryContext(ctx, `
		SELECT id, owner_id, name, division, subdivision, tactical_focus, home_field_size,
		       camaraderie, fan_loyalty, wins, losses, draws, points, is_ai, stadium_investment
		FROM teams`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Team
	for rows.Next() {
		var t models.Team
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.Name, &t.Division, &t.Subdivision, &t.TacticalFocus,
			&t.HomeFieldSize, &t.Camaraderie, &t.FanLoyalty, &t.Wins, &t.Losses, &t.Draws, &t.Points,
			&t.IsAI, &t.StadiumInvestment); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ListDistinctSubdivisions returns every subdivision label currently
// occupied within a division, used by the late-signup and rollover scans
// instead of assuming a fixed A-H layout.
func (g *Gateway) ListDistinctSubdivisions(ctx context.Context, division int) ([]string, error) {
	rows, err := g.db.QueryContext(ctx, `
		SELECT DISTINCT subdivision FROM teams WHERE division = ? ORDER BY subdivision`, division)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// RelocateTeamTx moves a team to a new division/subdivision and resets its
// win/loss/draw/points record, used by promotion/relegation at rollover.
func (g *Gateway) RelocateTeamTx(ctx context.Context, tx *sql.Tx, teamID string, division int, subdivision string) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE teams SET division = ?, subdivision = ?, wins = 0, losses = 0, draws = 0, points = 0
		WHERE id = ?`, division, subdivision, teamID)
	return err
}

// ResetStandingsTx zeroes a team's win/loss/draw/points record without
// relocating it, used for teams that neither promote nor relegate.
func (g *Gateway) ResetStandingsTx(ctx context.Context, tx *sql.Tx, teamID string) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE teams SET wins = 0, losses = 0, draws = 0, points = 0 WHERE id = ?`, teamID)
	return err
}

// DeleteTeamCascadeTx removes a team and every row that references it
// (roster, finances, contracts), used to purge AI teams at season rollover
// (spec §4.8 step 5) so each new season regenerates its own AI fill.
func (g *Gateway) DeleteTeamCascadeTx(ctx context.Context, tx *sql.Tx, teamID string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM players WHERE team_id = ?`, teamID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM contracts WHERE team_id = ?`, teamID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM team_finances WHERE team_id = ?`, teamID); err != nil {
		return err
	}
	_, err := tx.ExecContext(ctx, `DELETE FROM teams WHERE id = ?`, teamID)
	return err
}

// UpdatePlayerSeasonalTx persists a full end-of-season roll: age, decline,
// retirement, and the seasonal-minutes reset, inside the caller's
// transaction. Distinct from UpdatePlayerAttributesTx, which only persists
// an in-season progression roll and never touches age or seasonal minutes.
func (g *Gateway) UpdatePlayerSeasonalTx(ctx context.Context, tx *sql.Tx, p models.Player) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE players SET speed=?, power=?, agility=?, throwing=?, catching=?, kicking=?, stamina=?,
		       leadership=?, age=?, retired=?, league_minutes=?, tournament_minutes=?, exhibition_minutes=?
		WHERE id = ?`,
		p.Attributes.Speed, p.Attributes.Power, p.Attributes.Agility, p.Attributes.Throwing,
		p.Attributes.Catching, p.Attributes.Kicking, p.Attributes.Stamina, p.Attributes.Leadership,
		p.Age, p.Retired, p.SeasonalMinutes.League, p.SeasonalMinutes.Tournament, p.SeasonalMinutes.Exhibition,
		p.ID)
	return err
}

// ArchiveSeasonTx flips a season row out of "current" at rollover, inside
// the caller's transaction. Seasons are never deleted (spec §3 Season
// lifecycle: "created atomically at rollover; never deleted (archived)").
func (g *Gateway) ArchiveSeasonTx(ctx context.Context, tx *sql.Tx, seasonID string) error {
	_, err := tx.ExecContext(ctx, `UPDATE seasons SET is_current = FALSE WHERE id = ?`, seasonID)
	return err
}

// CreateSeasonTx inserts the new current season row at rollover, inside the
// caller's transaction alongside ArchiveSeasonTx retiring the prior one.
// Distinct from AdvanceSeasonDay's compare-and-swap, which only ever
// increments an existing row's current_day; rollover starts a new season
// entirely.
func (g *Gateway) CreateSeasonTx(ctx context.Context, tx *sql.Tx, s models.Season) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO seasons (id, number, current_day, phase, started_at, is_current)
		VALUES (?, ?, ?, ?, ?, ?)`,
		s.ID, s.Number, s.CurrentDay, s.Phase, s.StartedAt, s.IsCurrent)
	return err
}

package store

import (
	"context"
	"database/sql"

	"github.com/domeball/core/internal/coreerr"
	"github.com/domeball/core/internal/models"
)

// GetTeam fetches a single team by id.
func (g *Gateway) GetTeam(ctx context.Context, teamID string) (*models.Team, error) {
	row := g.db.QueryRowContext(ctx, `
		SELECT id, owner_id, name, division, subdivision, tactical_focus, home_field_size,
		       camaraderie, fan_loyalty, wins, losses, draws, points, is_ai, stadium_investment
		FROM teams WHERE id = ?`, teamID)
	var t models.Team
	if err := row.Scan(&t.ID, &t.OwnerID, &t.Name, &t.Division, &t.Subdivision, &t.TacticalFocus,
		&t.HomeFieldSize, &t.Camaraderie, &t.FanLoyalty, &t.Wins, &t.Losses, &t.Draws, &t.Points,
		&t.IsAI, &t.StadiumInvestment); err != nil {
		if err == sql.ErrNoRows {
			return nil, coreerr.TeamNotFound(teamID)
		}
		return nil, err
	}
	return &t, nil
}

// ListSubdivisionTeams returns every team sharing a (division, subdivision).
func (g *Gateway) ListSubdivisionTeams(ctx context.Context, division int, subdivision string) ([]models.Team, error) {
	rows, err := g.db.QueryContext(ctx, `
		SELECT id, owner_id, name, division, subdivision, tactical_focus, home_field_size,
		       camaraderie, fan_loyalty, wins, losses, draws, points, is_ai, stadium_investment
		FROM teams WHERE division = ? AND subdivision = ?`, division, subdivision)
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

// CreateTeam inserts a new team row, used both for player-owned franchises
// and AI-generated fill teams (spec §4.5 AI fill policy).
func (g *Gateway) CreateTeam(ctx context.Context, t models.Team) error {
	_, err := g.db.ExecContext(ctx, `
		INSERT INTO teams (id, owner_id, name, division, subdivision, tactical_focus, home_field_size,
		       camaraderie, fan_loyalty, wins, losses, draws, points, is_ai, stadium_investment)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.OwnerID, t.Name, t.Division, t.Subdivision, t.TacticalFocus, t.HomeFieldSize,
		t.Camaraderie, t.FanLoyalty, t.Wins, t.Losses, t.Draws, t.Points, t.IsAI, t.StadiumInvestment)
	return err
}

// CreatePlayer inserts a new player row, used by AI roster generation.
func (g *Gateway) CreatePlayer(ctx context.Context, p models.Player) error {
	_, err := g.db.ExecContext(ctx, `
		INSERT INTO players (`+playerColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.TeamID, p.Name, p.Role, p.Race, p.Age,
		p.Attributes.Speed, p.Attributes.Power, p.Attributes.Agility, p.Attributes.Throwing,
		p.Attributes.Catching, p.Attributes.Kicking, p.Attributes.Stamina, p.Attributes.Leadership,
		p.Potential, p.DailyStamina, p.Injury, p.RecoveryPoints, p.CareerInjuries,
		p.SeasonalMinutes.League, p.SeasonalMinutes.Tournament, p.SeasonalMinutes.Exhibition,
		p.Retired, p.IsTaxiSquad)
	return err
}

// CreateFinancesRow seeds a new team's balance sheet.
func (g *Gateway) CreateFinancesRow(ctx context.Context, f models.TeamFinances) error {
	_, err := g.db.ExecContext(ctx, `
		INSERT INTO team_finances (team_id, credits, gems, escrow_credits, escrow_gems)
		VALUES (?, ?, ?, ?, ?)`, f.TeamID, f.Credits, f.Gems, f.EscrowCredits, f.EscrowGems)
	return err
}

// SetTeamTactics updates a team's chosen style of play and home field size
// (spec §6 setTactics/setHomeField), both owner-editable at any time.
func (g *Gateway) SetTeamTactics(ctx context.Context, teamID string, focus models.TacticalFocus, fieldSize models.FieldSize) error {
	_, err := g.db.ExecContext(ctx, `
		UPDATE teams SET tactical_focus = ?, home_field_size = ? WHERE id = ?`, focus, fieldSize, teamID)
	return err
}

// CountTaxiSquad returns how many of a team's players are currently
// flagged taxi-squad, enforcing the 2-player cap (spec §3 Team invariant).
func (g *Gateway) CountTaxiSquad(ctx context.Context, teamID string) (int, error) {
	var n int
	err := g.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM players WHERE team_id = ? AND is_taxi_squad = TRUE`, teamID).Scan(&n)
	return n, err
}

// SetPlayerTaxiSquad moves a player onto or off the taxi squad.
func (g *Gateway) SetPlayerTaxiSquad(ctx context.Context, playerID string, taxi bool) error {
	_, err := g.db.ExecContext(ctx, `UPDATE players SET is_taxi_squad = ? WHERE id = ?`, taxi, playerID)
	return err
}

// UpdateStandingsTx applies a league result's win/loss/draw/points delta
// inside the caller's transaction.
func (g *Gateway) UpdateStandingsTx(ctx context.Context, tx *sql.Tx, teamID string, won, drawn bool) error {
	lossDelta, drawDelta, winDelta := 0, 0, 0
	switch {
	case won:
		winDelta = 1
	case drawn:
		drawDelta = 1
	default:
		lossDelta = 1
	}
	points := models.PointsForResult(won, drawn)
	_, err := tx.ExecContext(ctx, `
		UPDATE teams SET wins = wins + ?, losses = losses + ?, draws = draws + ?, points = points + ?
		WHERE id = ?`, winDelta, lossDelta, drawDelta, points, teamID)
	return err
}

const playerColumns = `id, team_id, name, role, race, age,
		       speed, power, agility, throwing, catching, kicking, stamina, leadership,
		       potential, daily_stamina, injury, recovery_points, career_injuries,
		       league_minutes, tournament_minutes, exhibition_minutes, retired, is_taxi_squad`

func scanPlayer(scan func(dest ...interface{}) error) (models.Player, error) {
	var p models.Player
	err := scan(&p.ID, &p.TeamID, &p.Name, &p.Role, &p.Race, &p.Age,
		&p.Attributes.Speed, &p.Attributes.Power, &p.Attributes.Agility, &p.Attributes.Throwing,
		&p.Attributes.Catching, &p.Attributes.Kicking, &p.Attributes.Stamina, &p.Attributes.Leadership,
		&p.Potential, &p.DailyStamina, &p.Injury, &p.RecoveryPoints, &p.CareerInjuries,
		&p.SeasonalMinutes.League, &p.SeasonalMinutes.Tournament, &p.SeasonalMinutes.Exhibition,
		&p.Retired, &p.IsTaxiSquad)
	return p, err
}

// ListRoster returns every player on a team (including the taxi squad).
func (g *Gateway) ListRoster(ctx context.Context, teamID string) ([]models.Player, error) {
	rows, err := g.db.QueryContext(ctx, `SELECT `+playerColumns+` FROM players WHERE team_id = ?`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Player
	for rows.Next() {
		p, err := scanPlayer(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetPlayer fetches a single player by id.
func (g *Gateway) GetPlayer(ctx context.Context, playerID string) (*models.Player, error) {
	row := g.db.QueryRowContext(ctx, `SELECT `+playerColumns+` FROM players WHERE id = ?`, playerID)
	p, err := scanPlayer(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, coreerr.PlayerNotFound(playerID)
		}
		return nil, err
	}
	return &p, nil
}

// UpdatePlayerAttributesTx persists a progression/aging roll inside the
// caller's transaction.
func (g *Gateway) UpdatePlayerAttributesTx(ctx context.Context, tx *sql.Tx, p models.Player) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE players SET speed=?, power=?, agility=?, throwing=?, catching=?, kicking=?, stamina=?,
		       leadership=?, daily_stamina=?, injury=?, recovery_points=?, career_injuries=?, retired=?
		WHERE id = ?`,
		p.Attributes.Speed, p.Attributes.Power, p.Attributes.Agility, p.Attributes.Throwing,
		p.Attributes.Catching, p.Attributes.Kicking, p.Attributes.Stamina, p.Attributes.Leadership,
		p.DailyStamina, p.Injury, p.RecoveryPoints, p.CareerInjuries, p.Retired, p.ID)
	return err
}

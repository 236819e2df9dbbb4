package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/domeball/core/internal/coreerr"
	"github.com/domeball/core/internal/models"
)

const tournamentColumns = `id, type, division, status, size, round, season_number,
	       registration_opens_at, registration_closes_at, created_at`

func scanTournament(scan func(dest ...interface{}) error) (models.Tournament, error) {
	var t models.Tournament
	err := scan(&t.ID, &t.Type, &t.Division, &t.Status, &t.Size, &t.Round, &t.SeasonNumber,
		&t.RegistrationOpensAt, &t.RegistrationClosesAt, &t.CreatedAt)
	return t, err
}

// CreateTournament inserts a new tournament row with whatever status the
// caller set: a REGISTERING shell, or an already-SEEDED playoff bracket.
func (g *Gateway) CreateTournament(ctx context.Context, t models.Tournament) error {
	_, err := g.db.ExecContext(ctx, `
		INSERT INTO tournaments (`+tournamentColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Type, t.Division, t.Status, t.Size, t.Round, t.SeasonNumber,
		t.RegistrationOpensAt, t.RegistrationClosesAt, t.CreatedAt)
	return err
}

// GetTournament fetches a tournament by id.
func (g *Gateway) GetTournament(ctx context.Context, tournamentID string) (*models.Tournament, error) {
	row := g.db.QueryRowContext(ctx, `SELECT `+tournamentColumns+` FROM tournaments WHERE id = ?`, tournamentID)
	t, err := scanTournament(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, coreerr.TournamentNotFound(tournamentID)
		}
		return nil, err
	}
	return &t, nil
}

// ListTournamentsByStatus returns every tournament in a given status, of
// every type, for the scan loops in the season automation engine.
func (g *Gateway) ListTournamentsByStatus(ctx context.Context, status models.TournamentStatus) ([]models.Tournament, error) {
	rows, err := g.db.QueryContext(ctx, `SELECT `+tournamentColumns+` FROM tournaments WHERE status = ?`, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Tournament
	for rows.Next() {
		t, err := scanTournament(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// FindRegisteringTournament returns the currently open REGISTERING
// tournament for a type/division, the lookup registerForTournament needs
// before it can call Orchestrator.Register.
func (g *Gateway) FindRegisteringTournament(ctx context.Context, tType models.TournamentType, division int) (*models.Tournament, error) {
	row := g.db.QueryRowContext(ctx, `
		SELECT `+tournamentColumns+` FROM tournaments
		WHERE type = ? AND division = ? AND status = ?
		ORDER BY created_at DESC LIMIT 1`, tType, division, models.TournamentRegistering)
	t, err := scanTournament(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, coreerr.TournamentNotFound(fmt.Sprintf("%s/division-%d", tType, division))
		}
		return nil, err
	}
	return &t, nil
}

// CountRegisteringTournaments reports how many REGISTERING tournaments of a
// type/division exist (of any date). Nothing in this repository calls it;
// new tournament shells are opened without consulting this count.
func (g *Gateway) CountRegisteringTournaments(ctx context.Context, tType models.TournamentType, division int) (int, error) {
	var n int
	err := g.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM tournaments WHERE type = ? AND division = ? AND status = ?`,
		tType, division, models.TournamentRegistering).Scan(&n)
	return n, err
}

// SetTournamentStatusRoundTx advances a tournament's status and round
// counter inside the caller's transaction.
func (g *Gateway) SetTournamentStatusRoundTx(ctx context.Context, tx *sql.Tx, tournamentID string, status models.TournamentStatus, round int) error {
	_, err := tx.ExecContext(ctx, `UPDATE tournaments SET status = ?, round = ? WHERE id = ?`, status, round, tournamentID)
	return err
}

// RegisterTeamTx inserts a registrant row inside the caller's transaction.
func (g *Gateway) RegisterTeamTx(ctx context.Context, tx *sql.Tx, r models.TournamentRegistrant) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO tournament_registrants (tournament_id, team_id, registered_at, entry_fee_paid, is_ai)
		VALUES (?, ?, ?, ?, ?)`, r.TournamentID, r.TeamID, r.RegisteredAt, r.EntryFeePaid, r.IsAI)
	return err
}

// UnregisterTeamTx removes a registrant, used by Mid-Season Classic
// pre-close cancellation with entry-fee refund.
func (g *Gateway) UnregisterTeamTx(ctx context.Context, tx *sql.Tx, tournamentID, teamID string) error {
	_, err := tx.ExecContext(ctx, `
		DELETE FROM tournament_registrants WHERE tournament_id = ? AND team_id = ?`, tournamentID, teamID)
	return err
}

// ListRegistrants returns every team registered for a tournament.
func (g *Gateway) ListRegistrants(ctx context.Context, tournamentID string) ([]models.TournamentRegistrant, error) {
	rows, err := g.db.QueryContext(ctx, `
		SELECT tournament_id, team_id, registered_at, entry_fee_paid, is_ai
		FROM tournament_registrants WHERE tournament_id = ?`, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.TournamentRegistrant
	for rows.Next() {
		var r models.TournamentRegistrant
		if err := rows.Scan(&r.TournamentID, &r.TeamID, &r.RegisteredAt, &r.EntryFeePaid, &r.IsAI); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

const bracketColumns = `id, tournament_id, round, slot, team1_id, team2_id, game_id, winner_id`

func scanBracketMatch(scan func(dest ...interface{}) error) (models.BracketMatch, error) {
	var b models.BracketMatch
	err := scan(&b.ID, &b.TournamentID, &b.Round, &b.Slot, &b.Team1ID, &b.Team2ID, &b.GameID, &b.WinnerID)
	return b, err
}

// CreateBracketMatchesTx bulk-inserts a round's bracket slots.
func (g *Gateway) CreateBracketMatchesTx(ctx context.Context, tx *sql.Tx, matches []models.BracketMatch) error {
	for _, m := range matches {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO bracket_matches (`+bracketColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			m.ID, m.TournamentID, m.Round, m.Slot, m.Team1ID, m.Team2ID, m.GameID, m.WinnerID); err != nil {
			return err
		}
	}
	return nil
}

// ListBracketMatches returns every slot for a tournament's given round.
func (g *Gateway) ListBracketMatches(ctx context.Context, tournamentID string, round int) ([]models.BracketMatch, error) {
	rows, err := g.db.QueryContext(ctx, `
		SELECT `+bracketColumns+` FROM bracket_matches WHERE tournament_id = ? AND round = ? ORDER BY slot`,
		tournamentID, round)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.BracketMatch
	for rows.Next() {
		b, err := scanBracketMatch(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// ListAllBracketMatches returns every slot across every round of a
// tournament, the full-bracket view the getBracket operation exposes.
func (g *Gateway) ListAllBracketMatches(ctx context.Context, tournamentID string) ([]models.BracketMatch, error) {
	rows, err := g.db.QueryContext(ctx, `
		SELECT `+bracketColumns+` FROM bracket_matches WHERE tournament_id = ? ORDER BY round, slot`,
		tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.BracketMatch
	for rows.Next() {
		b, err := scanBracketMatch(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// SetBracketMatchResultTx records a completed match's game id and winner.
func (g *Gateway) SetBracketMatchResultTx(ctx context.Context, tx *sql.Tx, matchID, gameID, winnerID string) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE bracket_matches SET game_id = ?, winner_id = ? WHERE id = ?`, gameID, winnerID, matchID)
	return err
}

// SetBracketMatchSlotTeamTx fills in a later round's slot once its feeder
// matches resolve.
func (g *Gateway) SetBracketMatchSlotTeamTx(ctx context.Context, tx *sql.Tx, matchID string, slotIsTeam1 bool, teamID string) error {
	col := "team2_id"
	if slotIsTeam1 {
		col = "team1_id"
	}
	_, err := tx.ExecContext(ctx, `UPDATE bracket_matches SET `+col+` = ? WHERE id = ?`, teamID, matchID)
	return err
}

// LatestRoundCompletionTime returns the most recent completed_at among a
// round's games (games with no completed_at are skipped), used to schedule
// the next round's
// start (spec §4.5 "latest_completion + slack + buffer").
func (g *Gateway) LatestRoundCompletionTime(ctx context.Context, gameIDs []string) (time.Time, error) {
	var latest time.Time
	for _, id := range gameIDs {
		game, err := g.GetGame(ctx, id)
		if err != nil {
			return latest, err
		}
		if game.CompletedAt != nil && game.CompletedAt.After(latest) {
			latest = *game.CompletedAt
		}
	}
	return latest, nil
}

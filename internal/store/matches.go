package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/domeball/core/internal/coreerr"
	"github.com/domeball/core/internal/models"
)

// ListDueMatches returns SCHEDULED games whose scheduled_at falls inside
// [windowStart, windowEnd), grounds for C8's match-window scan and C3's
// batch simulation input.
func (g *Gateway) ListDueMatches(ctx context.Context, windowStart, windowEnd time.Time) ([]models.Game, error) {
	rows, err := g.db.QueryContext(ctx, `
		SELECT id, home_team_id, away_team_id, match_type, scheduled_at, status,
		       home_score, away_score, seed, event_log_ref, tournament_id, round,
		       is_forfeit, forfeit_team_id, completed_at
		FROM games
		WHERE status = ? AND scheduled_at >= ? AND scheduled_at < ?
		ORDER BY scheduled_at ASC`,
		models.GameScheduled, windowStart, windowEnd)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var games []models.Game
	for rows.Next() {
		var gm models.Game
		if err := rows.Scan(&gm.ID, &gm.HomeTeamID, &gm.AwayTeamID, &gm.MatchType, &gm.ScheduledAt,
			&gm.Status, &gm.HomeScore, &gm.AwayScore, &gm.Seed, &gm.EventLogRef, &gm.TournamentID,
			&gm.Round, &gm.IsForfeit, &gm.ForfeitTeamID, &gm.CompletedAt); err != nil {
			return nil, err
		}
		games = append(games, gm)
	}
	return games, rows.Err()
}

// ScheduleGame inserts a new SCHEDULED game, used both for regular-season
// fixtures and tournament bracket matches.
func (g *Gateway) ScheduleGame(ctx context.Context, gm models.Game) error {
	_, err := g.db.ExecContext(ctx, `
		INSERT INTO games (id, home_team_id, away_team_id, match_type, scheduled_at, status,
		       home_score, away_score, seed, event_log_ref, tournament_id, round,
		       is_forfeit, forfeit_team_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		gm.ID, gm.HomeTeamID, gm.AwayTeamID, gm.MatchType, gm.ScheduledAt, gm.Status,
		gm.HomeScore, gm.AwayScore, gm.Seed, gm.EventLogRef, gm.TournamentID, gm.Round,
		gm.IsForfeit, gm.ForfeitTeamID)
	return err
}

// ScheduleGameTx is ScheduleGame run inside the caller's transaction, so
// bracket-match creation and its backing game rows commit atomically.
func (g *Gateway) ScheduleGameTx(ctx context.Context, tx *sql.Tx, gm models.Game) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO games (id, home_team_id, away_team_id, match_type, scheduled_at, status,
		       home_score, away_score, seed, event_log_ref, tournament_id, round,
		       is_forfeit, forfeit_team_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		gm.ID, gm.HomeTeamID, gm.AwayTeamID, gm.MatchType, gm.ScheduledAt, gm.Status,
		gm.HomeScore, gm.AwayScore, gm.Seed, gm.EventLogRef, gm.TournamentID, gm.Round,
		gm.IsForfeit, gm.ForfeitTeamID)
	return err
}

// RecordForfeitTx marks a scheduled game as a forfeit and completes it
// immediately, crediting the non-forfeiting side the standard win score
// (spec §4.5 failure handling).
func (g *Gateway) RecordForfeitTx(ctx context.Context, tx *sql.Tx, gameID, forfeitingTeamID string, homeScore, awayScore int) error {
	now := time.Now().UTC()
	_, err := tx.ExecContext(ctx, `
		UPDATE games SET status = ?, is_forfeit = ?, forfeit_team_id = ?, home_score = ?, away_score = ?, completed_at = ?
		WHERE id = ?`,
		models.GameCompleted, true, forfeitingTeamID, homeScore, awayScore, now, gameID)
	return err
}

// MarkInProgress transitions a game to IN_PROGRESS and records the seed
// that will drive its deterministic simulation.
func (g *Gateway) MarkInProgress(ctx context.Context, gameID string, seed int64) error {
	return g.WithTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE games SET status = ?, seed = ? WHERE id = ? AND status = ?`,
			models.GameInProgress, seed, gameID, models.GameScheduled)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return coreerr.GameNotFound(gameID)
		}
		return nil
	})
}

// PersistMatchResult finalizes a completed game: status, final score, event
// log reference, and completion time. Forfeits are recorded by
// RecordForfeitTx instead.
func (g *Gateway) PersistMatchResult(ctx context.Context, gameID string, homeScore, awayScore int, eventLogRef string) error {
	return g.WithTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return g.PersistMatchResultTx(ctx, tx, gameID, homeScore, awayScore, eventLogRef)
	})
}

// PersistMatchResultTx is PersistMatchResult run inside the caller's
// transaction, so a match's final score, its per-player stat accumulation,
// and its standings update all commit atomically.
func (g *Gateway) PersistMatchResultTx(ctx context.Context, tx *sql.Tx, gameID string, homeScore, awayScore int, eventLogRef string) error {
	now := time.Now().UTC()
	res, err := tx.ExecContext(ctx, `
		UPDATE games SET status = ?, home_score = ?, away_score = ?, event_log_ref = ?, completed_at = ?
		WHERE id = ?`,
		models.GameCompleted, homeScore, awayScore, eventLogRef, now, gameID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return coreerr.GameNotFound(gameID)
	}
	return nil
}

// GetGame fetches a single game by id.
func (g *Gateway) GetGame(ctx context.Context, gameID string) (*models.Game, error) {
	row := g.db.QueryRowContext(ctx, `
		SELECT id, home_team_id, away_team_id, match_type, scheduled_at, status,
		       home_score, away_score, seed, event_log_ref, tournament_id, round,
		       is_forfeit, forfeit_team_id, completed_at
		FROM games WHERE id = ?`, gameID)
	var gm models.Game
	if err := row.Scan(&gm.ID, &gm.HomeTeamID, &gm.AwayTeamID, &gm.MatchType, &gm.ScheduledAt,
		&gm.Status, &gm.HomeScore, &gm.AwayScore, &gm.Seed, &gm.EventLogRef, &gm.TournamentID,
		&gm.Round, &gm.IsForfeit, &gm.ForfeitTeamID, &gm.CompletedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, coreerr.GameNotFound(gameID)
		}
		return nil, err
	}
	return &gm, nil
}

// ListInProgressGames supports C4's crash-recovery scan on process start.
func (g *Gateway) ListInProgressGames(ctx context.Context) ([]models.Game, error) {
	rows, err := g.db.QueryContext(ctx, `
		SELECT id, home_team_id, away_team_id, match_type, scheduled_at, status,
		       home_score, away_score, seed, event_log_ref, tournament_id, round,
		       is_forfeit, forfeit_team_id, completed_at
		FROM games WHERE status = ?`, models.GameInProgress)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var games []models.Game
	for rows.Next() {
		var gm models.Game
		if err := rows.Scan(&gm.ID, &gm.HomeTeamID, &gm.AwayTeamID, &gm.MatchType, &gm.ScheduledAt,
			&gm.Status, &gm.HomeScore, &gm.AwayScore, &gm.Seed, &gm.EventLogRef, &gm.TournamentID,
			&gm.Round, &gm.IsForfeit, &gm.ForfeitTeamID, &gm.CompletedAt); err != nil {
			return nil, err
		}
		games = append(games, gm)
	}
	return games, rows.Err()
}

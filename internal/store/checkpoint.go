package store

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/domeball/core/internal/coreerr"
	"github.com/domeball/core/internal/models"
)

// WriteCheckpoint upserts the latest checkpoint for a live match (spec
// §4.4: written every 15 simulated seconds).
func (g *Gateway) WriteCheckpoint(ctx context.Context, ck models.Checkpoint) error {
	snapshots, err := json.Marshal(ck.PlayerSnapshots)
	if err != nil {
		return err
	}
	_, err = g.db.ExecContext(ctx, `
		INSERT INTO checkpoints (game_id, tick, seed, half, possession_team_id, home_score, away_score, player_snapshots, written_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			tick = VALUES(tick), seed = VALUES(seed), half = VALUES(half),
			possession_team_id = VALUES(possession_team_id), home_score = VALUES(home_score),
			away_score = VALUES(away_score), player_snapshots = VALUES(player_snapshots),
			written_at = VALUES(written_at)`,
		ck.GameID, ck.Tick, ck.Seed, ck.Half, ck.PossessionTeamID, ck.HomeScore, ck.AwayScore,
		snapshots, ck.WrittenAt)
	return err
}

// LatestCheckpoint fetches a match's most recently written checkpoint, the
// input to C4's crash-recovery restore.
func (g *Gateway) LatestCheckpoint(ctx context.Context, gameID string) (*models.Checkpoint, error) {
	row := g.db.QueryRowContext(ctx, `
		SELECT game_id, tick, seed, half, possession_team_id, home_score, away_score, player_snapshots, written_at
		FROM checkpoints WHERE game_id = ?`, gameID)
	var ck models.Checkpoint
	var snapshots []byte
	if err := row.Scan(&ck.GameID, &ck.Tick, &ck.Seed, &ck.Half, &ck.PossessionTeamID, &ck.HomeScore,
		&ck.AwayScore, &snapshots, &ck.WrittenAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, coreerr.Invariant("no checkpoint found for game " + gameID)
		}
		return nil, err
	}
	if len(snapshots) > 0 {
		if err := json.Unmarshal(snapshots, &ck.PlayerSnapshots); err != nil {
			return nil, err
		}
	}
	return &ck, nil
}

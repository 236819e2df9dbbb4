package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/domeball/core/internal/coreerr"
	"github.com/domeball/core/internal/models"
)

// CurrentSeason returns the season row flagged is_current.
func (g *Gateway) CurrentSeason(ctx context.Context) (*models.Season, error) {
	row := g.db.QueryRowContext(ctx, `
		SELECT id, number, current_day, phase, started_at, is_current
		FROM seasons WHERE is_current = TRUE LIMIT 1`)
	var s models.Season
	if err := row.Scan(&s.ID, &s.Number, &s.CurrentDay, &s.Phase, &s.StartedAt, &s.IsCurrent); err != nil {
		if err == sql.ErrNoRows {
			return nil, coreerr.Invariant("no current season row")
		}
		return nil, err
	}
	return &s, nil
}

// AdvanceSeasonDay performs a compare-and-swap on current_day: it only
// succeeds if the stored value still equals expectedDay, guarding against a
// second leader having already advanced it (spec §4.2, §4.8).
func (g *Gateway) AdvanceSeasonDay(ctx context.Context, seasonID string, expectedDay, newDay int) error {
	return g.WithTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE seasons SET current_day = ?, phase = ?
			WHERE id = ? AND current_day = ?`,
			newDay, models.PhaseForDay(newDay), seasonID, expectedDay)
		if err != nil {
			return err
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return coreerr.StaleDay(expectedDay, -1)
		}
		return nil
	})
}

// StepDone reports whether a DayMarker already exists for (season, day,
// step) -- the idempotence guard required by spec §4.8.
func (g *Gateway) StepDone(ctx context.Context, seasonNumber, day int, step string) (bool, error) {
	var n int
	err := g.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM day_markers
		WHERE season_number = ? AND day_in_season = ? AND step_name = ?`,
		seasonNumber, day, step).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// MarkStepDone records a DayMarker within the same transaction as the
// step's effects (caller is expected to execute this inside tx via
// MarkStepDoneTx; this variant is for steps with no other writes).
func (g *Gateway) MarkStepDone(ctx context.Context, seasonNumber, day int, step string) error {
	return g.WithTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return g.MarkStepDoneTx(ctx, tx, seasonNumber, day, step)
	})
}

// MarkStepDoneTx is the transactional primitive: insert the DayMarker row
// inside the caller's transaction, alongside the step's other effects.
func (g *Gateway) MarkStepDoneTx(ctx context.Context, tx *sql.Tx, seasonNumber, day int, step string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO day_markers (season_number, day_in_season, step_name, completed_at)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE completed_at = completed_at`,
		seasonNumber, day, step, time.Now().UTC())
	return err
}

// AppendLedgerTx writes a ledger row in the same transaction as the balance
// mutation it describes (spec §4.2 auditability invariant).
func (g *Gateway) AppendLedgerTx(ctx context.Context, tx *sql.Tx, e models.LedgerEntry) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO ledger_entries (id, team_id, type, delta_credits, delta_gems, reference, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.TeamID, e.Type, e.DeltaCredits, e.DeltaGems, e.Reference, e.CreatedAt)
	return err
}

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/domeball/core/internal/coreerr"
	"github.com/domeball/core/internal/models"
)

// GetFinances returns a team's current balance sheet.
func (g *Gateway) GetFinances(ctx context.Context, teamID string) (*models.TeamFinances, error) {
	row := g.db.QueryRowContext(ctx, `
		SELECT team_id, credits, gems, escrow_credits, escrow_gems
		FROM team_finances WHERE team_id = ?`, teamID)
	var f models.TeamFinances
	if err := row.Scan(&f.TeamID, &f.Credits, &f.Gems, &f.EscrowCredits, &f.EscrowGems); err != nil {
		if err == sql.ErrNoRows {
			return nil, coreerr.TeamNotFound(teamID)
		}
		return nil, err
	}
	return &f, nil
}

// ReserveBid atomically moves `amount` credits from a team's free balance
// into escrow, recording the movement in the ledger in the same
// transaction. Fails with InsufficientCreditsError if free balance would go
// negative (spec §4.2, §4.6).
func (g *Gateway) ReserveBid(ctx context.Context, teamID string, amount int64, reference string) error {
	return g.WithTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		var credits, escrow int64
		row := tx.QueryRowContext(ctx, `SELECT credits, escrow_credits FROM team_finances WHERE team_id = ? FOR UPDATE`, teamID)
		if err := row.Scan(&credits, &escrow); err != nil {
			if err == sql.ErrNoRows {
				return coreerr.TeamNotFound(teamID)
			}
			return err
		}
		if credits-amount < 0 {
			return coreerr.InsufficientCredits(credits, amount)
		}
		if _, err := tx.ExecContext(ctx, `
			UPDATE team_finances SET credits = credits - ?, escrow_credits = escrow_credits + ?
			WHERE team_id = ?`, amount, amount, teamID); err != nil {
			return err
		}
		return g.AppendLedgerTx(ctx, tx, models.LedgerEntry{
			ID: uuid.NewString(), TeamID: teamID, Type: models.LedgerBidReserve,
			DeltaCredits: -amount, Reference: reference, CreatedAt: time.Now().UTC(),
		})
	})
}

// ReleaseBid reverses a prior ReserveBid -- used when a bidder is outbid or
// a listing is cancelled/expires unsold.
func (g *Gateway) ReleaseBid(ctx context.Context, teamID string, amount int64, reference string) error {
	return g.WithTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		var escrow int64
		row := tx.QueryRowContext(ctx, `SELECT escrow_credits FROM team_finances WHERE team_id = ? FOR UPDATE`, teamID)
		if err := row.Scan(&escrow); err != nil {
			if err == sql.ErrNoRows {
				return coreerr.TeamNotFound(teamID)
			}
			return err
		}
		if escrow-amount < 0 {
			return coreerr.Invariant("releaseBid would drive escrow_credits negative")
		}
		if _, err := tx.ExecContext(ctx, `
			UPDATE team_finances SET credits = credits + ?, escrow_credits = escrow_credits - ?
			WHERE team_id = ?`, amount, amount, teamID); err != nil {
			return err
		}
		return g.AppendLedgerTx(ctx, tx, models.LedgerEntry{
			ID: uuid.NewString(), TeamID: teamID, Type: models.LedgerBidRelease,
			DeltaCredits: amount, Reference: reference, CreatedAt: time.Now().UTC(),
		})
	})
}

// CreditTeamTx applies an arbitrary ledgered credit/gem delta to a team's
// free balance within the caller's transaction -- used for prize payouts,
// sale proceeds, stadium revenue, and salary/maintenance debits (which pass
// a negative delta and are permitted to drive credits negative, spec §8
// scenario 5).
func (g *Gateway) CreditTeamTx(ctx context.Context, tx *sql.Tx, teamID string, deltaCredits int64, deltaGems int32, entryType models.LedgerEntryType, reference string) error {
	if _, err := tx.ExecContext(ctx, `
		UPDATE team_finances SET credits = credits + ?, gems = gems + ? WHERE team_id = ?`,
		deltaCredits, deltaGems, teamID); err != nil {
		return err
	}
	return g.AppendLedgerTx(ctx, tx, models.LedgerEntry{
		ID: uuid.NewString(), TeamID: teamID, Type: entryType,
		DeltaCredits: deltaCredits, DeltaGems: deltaGems, Reference: reference, CreatedAt: time.Now().UTC(),
	})
}

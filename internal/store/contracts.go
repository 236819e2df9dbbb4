package store

import (
	"context"
	"database/sql"

	"github.com/domeball/core/internal/models"
)

// CreateContractTx inserts a new player/staff contract inside the caller's
// transaction, used by contracts.Service.ProposeContract when an offer is
// accepted.
func (g *Gateway) CreateContractTx(ctx context.Context, tx *sql.Tx, c models.Contract) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO contracts (id, team_id, counterparty_id, counterparty_kind, annual_salary, remaining_seasons, signing_bonus)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.TeamID, c.CounterpartyID, c.CounterpartyKind, c.AnnualSalary, c.RemainingSeasons, c.SigningBonus)
	return err
}

// ListContractsForTeam returns every active contract a team carries.
func (g *Gateway) ListContractsForTeam(ctx context.Context, teamID string) ([]models.Contract, error) {
	rows, err := g.db.QueryContext(ctx, `
		SELECT id, team_id, counterparty_id, counterparty_kind, annual_salary, remaining_seasons, signing_bonus
		FROM contracts WHERE team_id = ?`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Contract
	for rows.Next() {
		var c models.Contract
		if err := rows.Scan(&c.ID, &c.TeamID, &c.CounterpartyID, &c.CounterpartyKind,
			&c.AnnualSalary, &c.RemainingSeasons, &c.SigningBonus); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// DecrementContractSeasonTx ticks one contract's remaining-seasons counter
// down by one at season rollover, used by rollover's salary payout step.
func (g *Gateway) DecrementContractSeasonTx(ctx context.Context, tx *sql.Tx, contractID string) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE contracts SET remaining_seasons = remaining_seasons - 1 WHERE id = ? AND remaining_seasons > 0`,
		contractID)
	return err
}

// DeleteContractTx removes one contract, used by
// contracts.Service.CancelContract for early termination.
func (g *Gateway) DeleteContractTx(ctx context.Context, tx *sql.Tx, contractID string) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM contracts WHERE id = ?`, contractID)
	return err
}

// DeleteTeamContractsTx removes every contract belonging to a team. The AI
// team purge at season rollover does not call it; DeleteTeamCascadeTx
// deletes a purged team's contracts itself.
func (g *Gateway) DeleteTeamContractsTx(ctx context.Context, tx *sql.Tx, teamID string) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM contracts WHERE team_id = ?`, teamID)
	return err
}

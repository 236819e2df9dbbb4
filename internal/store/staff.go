package store

import (
	"context"

	"github.com/domeball/core/internal/models"
)

// ListStaff returns every staff member a team employs, used by daily
// progression's staffMod.
func (g *Gateway) ListStaff(ctx context.Context, teamID string) ([]models.Staff, error) {
	rows, err := g.db.QueryContext(ctx, `
		SELECT id, team_id, name, type, offense, defense, physical, scouting, recovery, motivation, tactics
		FROM staff WHERE team_id = ?`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Staff
	for rows.Next() {
		var s models.Staff
		if err := rows.Scan(&s.ID, &s.TeamID, &s.Name, &s.Type,
			&s.Attributes.Offense, &s.Attributes.Defense, &s.Attributes.Physical,
			&s.Attributes.Scouting, &s.Attributes.Recovery, &s.Attributes.Motivation, &s.Attributes.Tactics); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// CreateStaff inserts a new staff row. AI team generation does not call
// it: generated AI teams carry no staff.
func (g *Gateway) CreateStaff(ctx context.Context, s models.Staff) error {
	_, err := g.db.ExecContext(ctx, `
		INSERT INTO staff (id, team_id, name, type, offense, defense, physical, scouting, recovery, motivation, tactics)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.TeamID, s.Name, s.Type,
		s.Attributes.Offense, s.Attributes.Defense, s.Attributes.Physical,
		s.Attributes.Scouting, s.Attributes.Recovery, s.Attributes.Motivation, s.Attributes.Tactics)
	return err
}

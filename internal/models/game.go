package models

import "time"

// Game is a scheduled or completed match between two teams. League
// scheduling gives a team one LEAGUE game per day, except in 16-team
// subdivisions, where season.AssignRoundsToDays puts two rounds on the
// first day.
type Game struct {
	ID            string     `db:"id"`
	HomeTeamID    string     `db:"home_team_id"`
	AwayTeamID    string     `db:"away_team_id"`
	MatchType     MatchType  `db:"match_type"`
	ScheduledAt   time.Time  `db:"scheduled_at"`
	Status        GameStatus `db:"status"`
	HomeScore     int        `db:"home_score"`
	AwayScore     int        `db:"away_score"`
	Seed          int64      `db:"seed"`
	EventLogRef   string     `db:"event_log_ref"` // Mongo document id holding the full event stream
	TournamentID  *string    `db:"tournament_id"`
	Round         int        `db:"round"`
	IsForfeit     bool       `db:"is_forfeit"`
	ForfeitTeamID *string    `db:"forfeit_team_id"`
	CompletedAt   *time.Time `db:"completed_at"`
}

// Duration returns (regulationSeconds, overtimeEligible) per spec §4.3.
func (g Game) Duration() (regulation int, overtimeEligible bool) {
	switch g.MatchType {
	case MatchExhibition:
		return 30 * 60, false
	case MatchLeague:
		return 40 * 60, false
	case MatchTournament, MatchPlayoff:
		return 40 * 60, true
	default:
		return 40 * 60, false
	}
}

// HalfLength returns the length, in seconds, of one half of regulation play.
func (g Game) HalfLength() int {
	reg, _ := g.Duration()
	return reg / 2
}

const (
	OvertimeSeconds    = 10 * 60
	MaintenancePercent = 0.01 // 1% of stadium investment, charged daily
)

// Points awarded for a league result: win=3, draw=1, loss=0 (spec §4.4).
func PointsForResult(won, drawn bool) int {
	switch {
	case won:
		return 3
	case drawn:
		return 1
	default:
		return 0
	}
}

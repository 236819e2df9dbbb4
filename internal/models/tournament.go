package models

import "time"

// Tournament is a bracketed competition: Daily Divisional, Mid-Season
// Classic, or a Playoff bracket (spec §3, §4.5).
type Tournament struct {
	ID         string           `db:"id"`
	Type       TournamentType   `db:"type"`
	Division   int              `db:"division"`
	Status     TournamentStatus `db:"status"`
	Size       int              `db:"size"` // 8 or 16
	Round      int              `db:"round"`
	SeasonNumber int            `db:"season_number"`
	RegistrationOpensAt  time.Time  `db:"registration_opens_at"`
	RegistrationClosesAt time.Time  `db:"registration_closes_at"`
	CreatedAt  time.Time        `db:"created_at"`
}

// BracketMatch is one slot in a tournament's bracket. A nil participant id
// means the slot is not yet filled (winner of an earlier match TBD).
type BracketMatch struct {
	ID            string  `db:"id"`
	TournamentID  string  `db:"tournament_id"`
	Round         int     `db:"round"`
	Slot          int     `db:"slot"` // position within the round, 0-indexed
	Team1ID       *string `db:"team1_id"`
	Team2ID       *string `db:"team2_id"`
	GameID        *string `db:"game_id"`
	WinnerID      *string `db:"winner_id"`
}

// TournamentRegistrant tracks who has signed up for a REGISTERING tournament.
type TournamentRegistrant struct {
	TournamentID string    `db:"tournament_id"`
	TeamID       string    `db:"team_id"`
	RegisteredAt time.Time `db:"registered_at"`
	EntryFeePaid bool      `db:"entry_fee_paid"`
	IsAI         bool      `db:"is_ai"`
}

// RoundsForSize returns the number of elimination rounds for a bracket of
// the given size (8 -> 3 rounds QF/SF/F, 16 -> 4 rounds, 4 -> 2 rounds).
func RoundsForSize(size int) int {
	rounds := 0
	for n := size; n > 1; n /= 2 {
		rounds++
	}
	return rounds
}

// Prize amounts by tournament type and division; champion/runner-up only.
// Design decision (Open Question in spec §9: exact weights unspecified for
// several formulas, but prize distribution itself is unambiguous -
// "type+division-specific credits/gems"): scaled inversely with division
// number so lower divisions, which have smaller rosters and economies,
// still have a meaningful prize relative to their scale.
func PrizeCredits(t TournamentType, division int, champion bool) int64 {
	base := int64(0)
	switch t {
	case TournamentDailyDivisional:
		base = 5000
	case TournamentMidSeasonClassic:
		base = 20000
	case TournamentPlayoffBracket:
		base = 15000
	}
	scale := int64(9 - division) // division 1 -> x8, division 8 -> x1
	if scale < 1 {
		scale = 1
	}
	amount := base * scale
	if !champion {
		amount /= 2
	}
	return amount
}

func PrizeGems(t TournamentType, division int, champion bool) int32 {
	base := int32(0)
	switch t {
	case TournamentDailyDivisional:
		base = 10
	case TournamentMidSeasonClassic:
		base = 50
	case TournamentPlayoffBracket:
		base = 30
	}
	if !champion {
		base /= 2
	}
	return base
}

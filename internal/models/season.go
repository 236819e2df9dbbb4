package models

import "time"

// Season is the root temporal entity. Exactly one Season is "current" at
// any instant (enforced by store.Gateway, not here); CurrentDay is
// monotonic within a season and Phase is a pure function of CurrentDay.
type Season struct {
	ID          string    `db:"id"`
	Number      int       `db:"number"`
	CurrentDay  int       `db:"current_day"`
	Phase       Phase     `db:"phase"`
	StartedAt   time.Time `db:"started_at"`
	IsCurrent   bool      `db:"is_current"`
}

// PhaseForDay implements spec §2/§4.1: 1-14 REGULAR, 15 PLAYOFFS, 16-17 OFFSEASON.
func PhaseForDay(day int) Phase {
	switch {
	case day >= 1 && day <= 14:
		return PhaseRegular
	case day == 15:
		return PhasePlayoffs
	default:
		return PhaseOffseason
	}
}

// DayMarker guarantees C8 step idempotence: a (season, day, step) row that
// exists means that step's effects have already been applied.
type DayMarker struct {
	SeasonNumber int       `db:"season_number"`
	DayInSeason  int       `db:"day_in_season"`
	StepName     string    `db:"step_name"`
	CompletedAt  time.Time `db:"completed_at"`
}

// Recognized DayMarker step names, one per spec §4.8 sub-step plus the
// top-level per-day steps 2-5.
const (
	StepSimulateWindow      = "SIMULATE_PREVIOUS_WINDOW"
	StepDailyProgression    = "DAILY_PROGRESSION"
	StepAgingInjuryStamina  = "AGING_INJURY_STAMINA"
	StepStadiumMaintenance  = "STADIUM_MAINTENANCE"
	StepResetDailyLimits    = "RESET_DAILY_LIMITS"
	StepLateSignup          = "LATE_SIGNUP"
	StepRolloverRelocation  = "ROLLOVER_RELOCATION"
	StepRolloverSalaries    = "ROLLOVER_SALARIES"
	StepRolloverProgression = "ROLLOVER_PROGRESSION"
	StepSeasonRollover      = "SEASON_ROLLOVER"
)

// FinancialLedger is an append-only audit row. Every financial mutation is
// recorded here in the same transaction as the balance change it describes;
// the sum of a team's ledger deltas must equal its current balance.
type LedgerEntry struct {
	ID        string          `db:"id"`
	TeamID    string          `db:"team_id"`
	Type      LedgerEntryType `db:"type"`
	DeltaCredits int64        `db:"delta_credits"`
	DeltaGems int32           `db:"delta_gems"`
	Reference string          `db:"reference"` // listingId, gameId, contractId, ...
	CreatedAt time.Time       `db:"created_at"`
}

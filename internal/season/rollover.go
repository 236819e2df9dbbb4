package season

import (
	"context"
	"database/sql"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/domeball/core/internal/clock"
	"github.com/domeball/core/internal/models"
	"github.com/domeball/core/internal/progression"
	"github.com/domeball/core/internal/tournament"
)

// rollover retires the current season and starts the next one (spec §4.8
// step 5): settles final standings into promotion/relegation, purges AI
// teams, pays every remaining contract's salary, applies end-of-season
// player progression, and generates the new season's schedule.
func (s *Scheduler) rollover(ctx context.Context, current *models.Season, now time.Time) error {
	done, err := s.gateway.StepDone(ctx, current.Number, clock.SeasonLengthDays, models.StepSeasonRollover)
	if err != nil {
		return err
	}
	if done {
		return nil
	}

	teams, err := s.gateway.ListAllTeams(ctx)
	if err != nil {
		return err
	}

	relocationDone, err := s.gateway.StepDone(ctx, current.Number, clock.SeasonLengthDays, models.StepRolloverRelocation)
	if err != nil {
		return err
	}
	if !relocationDone {
		relocationInputs := make([]relocationInput, len(teams))
		for i, t := range teams {
			relocationInputs[i] = relocationInput{ID: t.ID, Division: t.Division, Subdivision: t.Subdivision, Points: t.Points}
		}
		relocationByTeam := make(map[string]Relocation)
		for _, r := range computeRelocations(relocationInputs) {
			relocationByTeam[r.TeamID] = r
		}

		if err := s.gateway.WithTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
			for _, t := range teams {
				if t.IsAI {
					continue
				}
				if r, ok := relocationByTeam[t.ID]; ok {
					if err := s.gateway.RelocateTeamTx(ctx, tx, t.ID, r.ToDivision, r.ToSubdivision); err != nil {
						return err
					}
					continue
				}
				if err := s.gateway.ResetStandingsTx(ctx, tx, t.ID); err != nil {
					return err
				}
			}
			for _, t := range teams {
				if t.IsAI {
					if err := s.gateway.DeleteTeamCascadeTx(ctx, tx, t.ID); err != nil {
						return err
					}
				}
			}
			return s.gateway.MarkStepDoneTx(ctx, tx, current.Number, clock.SeasonLengthDays, models.StepRolloverRelocation)
		}); err != nil {
			return err
		}
	}

	salariesDone, err := s.gateway.StepDone(ctx, current.Number, clock.SeasonLengthDays, models.StepRolloverSalaries)
	if err != nil {
		return err
	}
	if !salariesDone {
		if err := s.payoutSalaries(ctx, current.Number, teams); err != nil {
			return err
		}
	}

	progressionDone, err := s.gateway.StepDone(ctx, current.Number, clock.SeasonLengthDays, models.StepRolloverProgression)
	if err != nil {
		return err
	}
	if !progressionDone {
		if err := s.applyEndOfSeasonProgression(ctx, current.Number, teams); err != nil {
			return err
		}
	}

	next := models.Season{
		ID: uuid.NewString(), Number: current.Number + 1, CurrentDay: 1,
		Phase: models.PhaseRegular, StartedAt: now, IsCurrent: true,
	}
	if err := s.gateway.WithTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.gateway.ArchiveSeasonTx(ctx, tx, current.ID); err != nil {
			return err
		}
		if err := s.gateway.CreateSeasonTx(ctx, tx, next); err != nil {
			return err
		}
		return s.gateway.MarkStepDoneTx(ctx, tx, current.Number, clock.SeasonLengthDays, models.StepSeasonRollover)
	}); err != nil {
		return err
	}

	return s.regenerateSchedules(ctx, next.StartedAt)
}

// payoutSalaries pays every remaining human team's contracted staff and
// players one season's salary, decrementing each contract's remaining
// term. A team's credits balance is allowed to go negative here (spec §8
// scenario 5): rollover must be able to complete even for an insolvent
// owner, since the alternative -- blocking the whole league's rollover on
// one team's finances -- is worse.
func (s *Scheduler) payoutSalaries(ctx context.Context, seasonNumber int, teams []models.Team) error {
	return s.gateway.WithTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		for _, t := range teams {
			if t.IsAI {
				continue
			}
			contracts, err := s.gateway.ListContractsForTeam(ctx, t.ID)
			if err != nil {
				return err
			}
			for _, c := range contracts {
				if err := s.gateway.CreditTeamTx(ctx, tx, t.ID, -c.AnnualSalary, 0, models.LedgerSalary, c.ID); err != nil {
					return err
				}
				if err := s.gateway.DecrementContractSeasonTx(ctx, tx, c.ID); err != nil {
					return err
				}
			}
		}
		return s.gateway.MarkStepDoneTx(ctx, tx, seasonNumber, clock.SeasonLengthDays, models.StepRolloverSalaries)
	})
}

// applyEndOfSeasonProgression runs aging, decline, retirement, and the
// seasonal-minutes reset over every remaining human team's non-retired
// players (spec §4.7 end-of-season roll).
func (s *Scheduler) applyEndOfSeasonProgression(ctx context.Context, seasonNumber int, teams []models.Team) error {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return s.gateway.WithTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		for _, t := range teams {
			if t.IsAI {
				continue
			}
			roster, err := s.gateway.ListRoster(ctx, t.ID)
			if err != nil {
				return err
			}
			for i := range roster {
				p := &roster[i]
				if p.Retired {
					continue
				}
				progression.ApplyEndOfSeason(p, rng)
				if err := s.gateway.UpdatePlayerSeasonalTx(ctx, tx, *p); err != nil {
					return err
				}
			}
		}
		return s.gateway.MarkStepDoneTx(ctx, tx, seasonNumber, clock.SeasonLengthDays, models.StepRolloverProgression)
	})
}

// regenerateSchedules AI-fills every subdivision a human team still
// occupies back to capacity and writes its new-season league schedule
// across days 1-14 (spec §4.8 step 5): 14 matches per team in an 8-team
// subdivision, 15 in a 16-team one. Subdivisions no human team occupies are
// left empty rather than refilled -- division population tracks where
// owners actually are, the same rule late signup applies within division
// 8's season-long entry window.
func (s *Scheduler) regenerateSchedules(ctx context.Context, seasonStart time.Time) error {
	for division := minDivision; division <= maxDivision; division++ {
		subdivisions, err := s.gateway.ListDistinctSubdivisions(ctx, division)
		if err != nil {
			return err
		}
		for _, sub := range subdivisions {
			if err := s.regenerateSubdivisionSchedule(ctx, division, sub, seasonStart); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Scheduler) regenerateSubdivisionSchedule(ctx context.Context, division int, sub string, seasonStart time.Time) error {
	capacity := models.SubdivisionCapacity(division)
	teams, err := s.gateway.ListSubdivisionTeams(ctx, division, sub)
	if err != nil {
		return err
	}
	if len(teams) == 0 {
		return nil
	}

	teamIDs := make([]string, 0, capacity)
	for _, t := range teams {
		teamIDs = append(teamIDs, t.ID)
	}
	if err := s.aiFillDivisionSubdivision(ctx, division, sub, capacity, &teamIDs); err != nil {
		return err
	}

	rounds := scheduleForCapacity(teamIDs)
	byDay := AssignRoundsToDays(rounds, 1, leagueSeasonDays)

	return s.gateway.WithTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		for matchDay, pairings := range byDay {
			startAt := s.matchStartForDay(matchDay, seasonStart)
			for _, pairing := range pairings {
				if err := s.gateway.ScheduleGameTx(ctx, tx, models.Game{
					ID: uuid.NewString(), HomeTeamID: pairing.Home, AwayTeamID: pairing.Away,
					MatchType: models.MatchLeague, ScheduledAt: startAt, Status: models.GameScheduled,
				}); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// aiFillDivisionSubdivision mirrors aiFillSubdivision but for an arbitrary
// division rather than the fixed division-8 late-signup path.
func (s *Scheduler) aiFillDivisionSubdivision(ctx context.Context, division int, sub string, capacity int, teamIDs *[]string) error {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	needed := capacity - len(*teamIDs)
	for i := 0; i < needed; i++ {
		team, roster, finances := tournament.GenerateAITeam(rng, division, sub, i)
		if err := s.gateway.CreateTeam(ctx, team); err != nil {
			return err
		}
		if err := s.gateway.CreateFinancesRow(ctx, finances); err != nil {
			return err
		}
		for _, p := range roster {
			if err := s.gateway.CreatePlayer(ctx, p); err != nil {
				return err
			}
		}
		*teamIDs = append(*teamIDs, team.ID)
	}
	return nil
}

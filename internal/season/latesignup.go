package season

import (
	"context"
	"database/sql"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/domeball/core/internal/clock"
	"github.com/domeball/core/internal/models"
	"github.com/domeball/core/internal/tournament"
)

// lateSignupDivision is the only division late signup applies to (spec
// §4.8 step 4): divisions 1-7 fill their subdivisions at season start,
// division 8 is the open entry point new owners land in throughout the
// season's first nine days.
const lateSignupDivision = 8

// lateSignupDeadlineDay is the last day late signup still runs; after day
// 9 a subdivision under 8 teams plays out its season short-handed rather
// than have its schedule regenerated this late.
const lateSignupDeadlineDay = 9

// lateSignupHour is the local hour late signup's once-daily AI-fill sweep
// runs at.
const lateSignupHour = 15

// leagueSeasonDays is the number of match days a regular-season schedule is
// compressed into (days 1-14, spec §4.1/§4.8 step 5).
const leagueSeasonDays = 14

// processLateSignup AI-fills any division-8 subdivision still under
// capacity and generates its remaining-days schedule, once per day at
// 15:00 local across days 1-9 (spec §4.8 step 4).
func (s *Scheduler) processLateSignup(ctx context.Context, current *models.Season, now time.Time) error {
	day := current.CurrentDay
	if day < 1 || day > lateSignupDeadlineDay {
		return nil
	}
	if now.Before(s.clk.AtLocal(now, lateSignupHour, 0)) {
		return nil
	}
	done, err := s.gateway.StepDone(ctx, current.Number, day, models.StepLateSignup)
	if err != nil {
		return err
	}
	if done {
		return nil
	}

	subdivisions, err := s.gateway.ListDistinctSubdivisions(ctx, lateSignupDivision)
	if err != nil {
		return err
	}
	for _, sub := range subdivisions {
		if err := s.fillAndRescheduleSubdivision(ctx, sub, day, current.StartedAt); err != nil {
			return err
		}
	}
	return s.gateway.MarkStepDone(ctx, current.Number, day, models.StepLateSignup)
}

func (s *Scheduler) fillAndRescheduleSubdivision(ctx context.Context, sub string, day int, seasonStart time.Time) error {
	capacity := models.SubdivisionCapacity(lateSignupDivision)
	teams, err := s.gateway.ListSubdivisionTeams(ctx, lateSignupDivision, sub)
	if err != nil {
		return err
	}
	if len(teams) == 0 || len(teams) >= capacity {
		return nil
	}

	teamIDs := make([]string, 0, capacity)
	for _, t := range teams {
		teamIDs = append(teamIDs, t.ID)
	}
	if err := s.aiFillSubdivision(ctx, sub, capacity, &teamIDs); err != nil {
		return err
	}

	remainingDays := leagueSeasonDays - day
	if remainingDays <= 0 {
		return nil
	}
	byDay := AssignRoundsToDays(scheduleForCapacity(teamIDs), day+1, remainingDays)

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

// matchStartForDay returns the league kickoff instant for a day-in-season
// number, anchored off the season's own start boundary rather than wall-
// clock "now" -- late signup can run days behind the fixtures it generates.
func (s *Scheduler) matchStartForDay(day int, seasonStart time.Time) time.Time {
	dayDate := s.clk.SeasonStartBoundary(seasonStart).Add(time.Duration(day-1) * 24 * time.Hour)
	return s.clk.AtLocal(dayDate, clock.MatchWindowStartHour, 0)
}

// scheduleForCapacity builds the appropriate round-robin shape for a
// subdivision's size: 16 teams get a single RoundRobin (division 1-2
// capacity, included for completeness though late signup never applies to
// those divisions); 8 teams get DoubleRoundRobin.
func scheduleForCapacity(teamIDs []string) [][]Pairing {
	if len(teamIDs) == 16 {
		return RoundRobin(teamIDs)
	}
	return DoubleRoundRobin(teamIDs)
}

func (s *Scheduler) aiFillSubdivision(ctx context.Context, sub string, capacity int, teamIDs *[]string) error {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	needed := capacity - len(*teamIDs)
	for i := 0; i < needed; i++ {
		team, roster, finances := tournament.GenerateAITeam(rng, lateSignupDivision, sub, i)
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

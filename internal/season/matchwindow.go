package season

import (
	"context"
	"errors"
	"time"

	"github.com/domeball/core/internal/coreerr"
	"github.com/domeball/core/internal/models"
)

// matchWindowLookback bounds how far into the past the scan looks for a
// still-SCHEDULED match it missed starting on time -- anything older than
// this is left to the next day-advancement pass's instant catch-up
// simulation (simulatePreviousWindow) rather than started live this late.
const matchWindowLookback = 6 * time.Hour

// bootNonce is fixed rather than derived from wall-clock time: a game is
// only ever Start-ed once in its lifetime (recovery resumes the existing
// worker from its checkpoint instead), so there is nothing to disambiguate
// between repeated starts of the same gameId.
const bootNonce = int64(0)

// scanMatchWindow starts every still-SCHEDULED game whose scheduled time
// has arrived, on a 15-minute cadence (spec §4.8 step 2). Matches already
// IN_PROGRESS or COMPLETED are untouched; matches missed by more than
// matchWindowLookback are left for the day-advancement catch-up pass
// instead of being force-started mid-scan.
func (s *Scheduler) scanMatchWindow(ctx context.Context, current *models.Season, now time.Time) error {
	due, err := s.gateway.ListDueMatches(ctx, now.Add(-matchWindowLookback), now.Add(time.Nanosecond))
	if err != nil {
		return err
	}
	for _, g := range due {
		if err := s.startMatch(ctx, current.Number, g); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scheduler) startMatch(ctx context.Context, seasonNumber int, g models.Game) error {
	input, err := buildMatchInput(ctx, s.gateway, g)
	if err != nil {
		return err
	}
	_, err = s.matches.Start(ctx, g.ID, seasonNumber, bootNonce, input)
	if err != nil {
		var coreErr *coreerr.Error
		if errors.As(err, &coreErr) && coreErr.Code == "INSUFFICIENT_LINEUP" {
			// Neither side can field the minimum roster. The tournament
			// orchestrator's own CheckRosterAndForfeit is the authoritative
			// forfeit path for bracket matches; a plain league fixture is left
			// SCHEDULED for a human administrator to resolve rather than
			// auto-forfeited here.
			return nil
		}
		return err
	}
	return nil
}

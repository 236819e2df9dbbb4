// Package clock computes game-calendar values from wall-clock time.
//
// The platform runs on a single fixed civil time zone regardless of where a
// given server process happens to be deployed; every method here resolves
// instants in the Clock's own location, so that the 03:00 day-boundary rule
// is applied consistently and so tests can pin a location without touching
// the host's TZ.
package clock

import (
	"math"
	"time"

	"github.com/domeball/core/internal/models"
)

// DayStartHour is the local hour at which a new game day begins (spec §4.1).
const DayStartHour = 3

// SeasonLengthDays is the total number of days in a season, days 1-17
// (14 regular + 1 playoffs + 2 offseason), per spec §2.
const SeasonLengthDays = 17

// GameInfo is the result of resolving a wall-clock instant against a
// season's start time: its day-in-season and derived phase.
type GameInfo struct {
	DayInSeason int
	Phase       models.Phase
}

// Resolve combines DayInSeason and models.PhaseForDay into one GameInfo,
// matching the Contract's {seasonNumber, dayInSeason, phase} shape (the
// season number itself is carried by the caller's models.Season record).
func (c *Clock) Resolve(now, seasonStart time.Time) GameInfo {
	day := c.DayInSeason(now, seasonStart)
	return GameInfo{DayInSeason: day, Phase: models.PhaseForDay(day)}
}

// Clock produces civil "now" values in a single fixed location and derives
// game-day boundaries from it. The zero value is not usable; use New.
type Clock struct {
	loc *time.Location
}

// New returns a Clock pinned to the named IANA zone (e.g. "America/Chicago").
// An unresolvable zone name is a configuration error the caller must handle;
// this constructor never silently substitutes UTC.
func New(zoneName string) (*Clock, error) {
	loc, err := time.LoadLocation(zoneName)
	if err != nil {
		return nil, err
	}
	return &Clock{loc: loc}, nil
}

// Now returns the current instant expressed in the clock's civil zone.
func (c *Clock) Now() time.Time {
	return time.Now().In(c.loc)
}

// Location exposes the clock's civil zone so other components can construct
// zone-pinned instants (registration windows, fixed kickoff times) without
// duplicating a time.LoadLocation call.
func (c *Clock) Location() *time.Location {
	return c.loc
}

// AtLocal returns the instant on t's civil date at the given local
// hour:minute, in the clock's zone.
func (c *Clock) AtLocal(t time.Time, hour, minute int) time.Time {
	lt := t.In(c.loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), hour, minute, 0, 0, c.loc)
}

// DayStartOn returns the first 03:00 instant that exists on the civil date
// of t, in the clock's zone. On a DST "spring forward" day where 03:00 does
// not exist (clocks jump 02:00->03:00->... is fine, but a jump like
// 02:00->04:00 would skip 03:00), time.Date normalizes to the next valid
// instant, which is exactly "the first 03:00 that exists on the civil day"
// required by spec §4.1.
func (c *Clock) DayStartOn(t time.Time) time.Time {
	lt := t.In(c.loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), DayStartHour, 0, 0, 0, c.loc)
}

// SeasonStartBoundary returns the 03:00 instant that anchors day 1 of a
// season that nominally started at seasonStart.
func (c *Clock) SeasonStartBoundary(seasonStart time.Time) time.Time {
	return c.DayStartOn(seasonStart)
}

// DayInSeason computes dayInSeason = floor((t - seasonStart@03:00) / 24h) + 1,
// clamped to [1, SeasonLengthDays]. Instants before the season's first 03:00
// boundary map to day 1 (spec §4.1: "pre-roll").
func (c *Clock) DayInSeason(now, seasonStart time.Time) int {
	boundary := c.SeasonStartBoundary(seasonStart)
	nowLocal := now.In(c.loc)
	if nowLocal.Before(boundary) {
		return 1
	}
	elapsed := nowLocal.Sub(boundary)
	day := int(math.Floor(elapsed.Hours()/24)) + 1
	if day < 1 {
		day = 1
	}
	if day > SeasonLengthDays {
		day = SeasonLengthDays
	}
	return day
}

// MatchWindowStartHour and MatchWindowEndHour bound the daily league simulation
// window, 16:00-22:00 local on days 1-14 (spec §4.1).
const (
	MatchWindowStartHour = 16
	MatchWindowEndHour   = 22
)

// MatchWindow returns the simulation window [start, end) for the civil date
// containing t, in the clock's zone.
func (c *Clock) MatchWindow(t time.Time) (start, end time.Time) {
	lt := t.In(c.loc)
	start = time.Date(lt.Year(), lt.Month(), lt.Day(), MatchWindowStartHour, 0, 0, 0, c.loc)
	end = time.Date(lt.Year(), lt.Month(), lt.Day(), MatchWindowEndHour, 0, 0, 0, c.loc)
	return start, end
}

// InMatchWindow reports whether t falls within the day's 16:00-22:00 window.
func (c *Clock) InMatchWindow(t time.Time) bool {
	start, end := c.MatchWindow(t)
	lt := t.In(c.loc)
	return !lt.Before(start) && lt.Before(end)
}

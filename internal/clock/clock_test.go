package clock

import (
	"testing"
	"time"

	"github.com/domeball/core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustClock(t *testing.T) *Clock {
	t.Helper()
	c, err := New("America/Chicago")
	require.NoError(t, err)
	return c
}

func TestDayInSeason_PreRoll(t *testing.T) {
	c := mustClock(t)
	seasonStart := time.Date(2026, 1, 10, 3, 0, 0, 0, c.loc)
	before := time.Date(2026, 1, 9, 12, 0, 0, 0, c.loc)
	assert.Equal(t, 1, c.DayInSeason(before, seasonStart))
}

func TestDayInSeason_Boundaries(t *testing.T) {
	c := mustClock(t)
	seasonStart := c.DayStartOn(time.Date(2026, 1, 10, 3, 0, 0, 0, c.loc))

	assert.Equal(t, 1, c.DayInSeason(seasonStart, seasonStart))
	assert.Equal(t, 1, c.DayInSeason(seasonStart.Add(23*time.Hour+59*time.Minute), seasonStart))
	assert.Equal(t, 2, c.DayInSeason(seasonStart.Add(24*time.Hour), seasonStart))
	assert.Equal(t, 17, c.DayInSeason(seasonStart.Add(100*24*time.Hour), seasonStart))
}

func TestPhaseForDay(t *testing.T) {
	assert.Equal(t, models.PhaseRegular, models.PhaseForDay(1))
	assert.Equal(t, models.PhaseRegular, models.PhaseForDay(14))
	assert.Equal(t, models.PhasePlayoffs, models.PhaseForDay(15))
	assert.Equal(t, models.PhaseOffseason, models.PhaseForDay(16))
	assert.Equal(t, models.PhaseOffseason, models.PhaseForDay(17))
}

func TestDSTSpringForward(t *testing.T) {
	c := mustClock(t)
	// 2026-03-08 is a US DST spring-forward date; 02:00-03:00 does not exist
	// locally, but 03:00 itself is the first valid instant of that civil day.
	d := c.DayStartOn(time.Date(2026, 3, 8, 12, 0, 0, 0, c.loc))
	assert.Equal(t, 3, d.Hour())
	assert.Equal(t, 8, d.Day())
}

func TestMatchWindow(t *testing.T) {
	c := mustClock(t)
	noon := time.Date(2026, 6, 1, 18, 30, 0, 0, c.loc)
	assert.True(t, c.InMatchWindow(noon))

	early := time.Date(2026, 6, 1, 10, 0, 0, 0, c.loc)
	assert.False(t, c.InMatchWindow(early))
}

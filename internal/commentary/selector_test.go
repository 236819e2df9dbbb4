package commentary

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/domeball/core/internal/models"
)

func TestSelectIsDeterministicForSameSeed(t *testing.T) {
	sel := New()
	ctx := SelectionContext{
		Event:            models.MatchEvent{Type: models.EventRun},
		ActorRace:        models.RaceSylvan,
		SecondsRemaining: 1200,
	}

	a := sel.Select(ctx, rand.New(rand.NewSource(42)))
	b := sel.Select(ctx, rand.New(rand.NewSource(42)))
	assert.Equal(t, a, b)
}

func TestSelectUrgencyOverride(t *testing.T) {
	sel := New()
	ctx := SelectionContext{
		Event:            models.MatchEvent{Type: models.EventRun},
		SecondsRemaining: 60,
		ScoreDifferential: 0,
	}
	line := sel.Select(ctx, rand.New(rand.NewSource(1)))
	assert.NotEmpty(t, line)
}

func TestSelectNeverEmptyForKnownEventTypes(t *testing.T) {
	sel := New()
	rng := rand.New(rand.NewSource(7))
	for _, et := range []models.MatchEventType{
		models.EventPass, models.EventRun, models.EventTackle,
		models.EventScore, models.EventFumble, models.EventInjury,
	} {
		line := sel.Select(SelectionContext{Event: models.MatchEvent{Type: et}, SecondsRemaining: 1000}, rng)
		assert.NotEmpty(t, line)
	}
}

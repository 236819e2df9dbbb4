package eventbus

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/domeball/core/internal/models"
)

func TestPublishDeliversInOrder(t *testing.T) {
	bus := New(zerolog.Nop())
	sub := bus.Subscribe("game-1")

	for i := 0; i < 3; i++ {
		bus.Publish("game-1", models.LiveEventEnvelope{GameID: "game-1", Tick: i})
	}

	for i := 0; i < 3; i++ {
		evt := <-sub.Events()
		assert.Equal(t, i, evt.Tick)
	}
}

func TestPublishDropsSlowSubscriber(t *testing.T) {
	bus := New(zerolog.Nop())
	sub := bus.Subscribe("game-2")

	for i := 0; i < subscriberBufferSize+10; i++ {
		bus.Publish("game-2", models.LiveEventEnvelope{GameID: "game-2", Tick: i})
	}

	assert.Equal(t, 0, bus.SubscriberCount("game-2"))
	for i := 0; i < subscriberBufferSize; i++ {
		<-sub.Events()
	}
	_, open := <-sub.Events()
	assert.False(t, open)
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	bus := New(zerolog.Nop())
	sub := bus.Subscribe("game-3")
	bus.Unsubscribe(sub)
	_, open := <-sub.Events()
	assert.False(t, open)
}

func TestCloseMatchTearsDownAllSubscribers(t *testing.T) {
	bus := New(zerolog.Nop())
	s1 := bus.Subscribe("game-4")
	s2 := bus.Subscribe("game-4")
	bus.CloseMatch("game-4")

	_, open1 := <-s1.Events()
	_, open2 := <-s2.Events()
	assert.False(t, open1)
	assert.False(t, open2)
	assert.Equal(t, 0, bus.SubscriberCount("game-4"))
}

// Package eventbus is the in-process fan-out of live match events (C9).
// Subscribers register by gameId and receive every event in order through
// a bounded channel; a subscriber that falls behind is dropped rather than
// allowed to block the simulation, mirroring the "slow client" handling a
// websocket hub needs when a consumer stops draining its send channel.
package eventbus

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/domeball/core/internal/models"
)

// subscriberBufferSize bounds how many unconsumed events a subscriber may
// queue before it is dropped.
const subscriberBufferSize = 64

// Subscriber is a single consumer's view onto one match's event stream.
type Subscriber struct {
	ID     string
	gameID string
	send   chan models.LiveEventEnvelope
	bus    *Bus
}

// Events returns the channel to range over for delivered events. It is
// closed when the subscriber is dropped or the match completes.
func (s *Subscriber) Events() <-chan models.LiveEventEnvelope { return s.send }

// Bus fans out events for many concurrently live matches. The zero value is
// not usable; use New.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string]map[*Subscriber]bool // gameId -> subscriber set
	logger      zerolog.Logger
}

func New(logger zerolog.Logger) *Bus {
	return &Bus{
		subscribers: make(map[string]map[*Subscriber]bool),
		logger:      logger,
	}
}

// Subscribe registers a new consumer for a gameId's event stream.
func (b *Bus) Subscribe(gameID string) *Subscriber {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := &Subscriber{
		ID:     gameID + ":" + uuid.NewString(),
		gameID: gameID,
		send:   make(chan models.LiveEventEnvelope, subscriberBufferSize),
		bus:    b,
	}
	if b.subscribers[gameID] == nil {
		b.subscribers[gameID] = make(map[*Subscriber]bool)
	}
	b.subscribers[gameID][sub] = true
	return sub
}

// Unsubscribe removes a consumer and closes its channel.
func (b *Bus) Unsubscribe(sub *Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.removeLocked(sub)
}

func (b *Bus) removeLocked(sub *Subscriber) {
	set, ok := b.subscribers[sub.gameID]
	if !ok {
		return
	}
	if _, present := set[sub]; !present {
		return
	}
	delete(set, sub)
	close(sub.send)
	if len(set) == 0 {
		delete(b.subscribers, sub.gameID)
	}
}

// Publish delivers an event to every current subscriber of gameID. A
// subscriber whose buffer is full is dropped instead of blocking the
// caller -- the simulation worker calling Publish must never stall on a
// slow transport consumer.
func (b *Bus) Publish(gameID string, evt models.LiveEventEnvelope) {
	b.mu.Lock()
	defer b.mu.Unlock()

	set, ok := b.subscribers[gameID]
	if !ok {
		return
	}
	for sub := range set {
		select {
		case sub.send <- evt:
		default:
			b.logger.Warn().Str("gameId", gameID).Str("subscriber", sub.ID).Msg("dropping slow event bus subscriber")
			b.removeLocked(sub)
		}
	}
}

// CloseMatch tears down every subscriber for a completed or aborted match.
func (b *Bus) CloseMatch(gameID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	set, ok := b.subscribers[gameID]
	if !ok {
		return
	}
	for sub := range set {
		close(sub.send)
	}
	delete(b.subscribers, gameID)
}

// SubscriberCount reports how many consumers are attached to a gameId, used
// by metrics.
func (b *Bus) SubscriberCount(gameID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers[gameID])
}

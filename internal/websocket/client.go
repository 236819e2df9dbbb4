// Package websocket streams a live match's event records to subscribers
// over a websocket connection (spec §6 subscribeLiveEvents), pumping
// directly from the event bus's per-gameId subscriber channel instead of a
// multi-room hub: the event bus already tracks subscribers per gameId, so
// each connection here owns exactly one game's stream.
package websocket

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/domeball/core/internal/eventbus"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512 * 1024
)

// Client pumps one game's event stream to one connected viewer.
type Client struct {
	conn   *websocket.Conn
	sub    *eventbus.Subscriber
	logger zerolog.Logger
}

// NewClient wraps an already-upgraded connection and its bus subscription.
func NewClient(conn *websocket.Conn, sub *eventbus.Subscriber, logger zerolog.Logger) *Client {
	return &Client{conn: conn, sub: sub, logger: logger}
}

// Run pumps events to the connection until the match completes (the bus
// closes the subscriber channel) or the peer disconnects. Blocks until one
// of the pumps exits.
func (c *Client) Run() {
	done := make(chan struct{})
	go c.readPump(done)
	c.writePump(done)
}

// readPump only watches for the peer closing the connection; this stream is
// one-directional, there is nothing for the viewer to send.
func (c *Client) readPump(done chan struct{}) {
	defer close(done)
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump(done chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case evt, ok := <-c.sub.Events():
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(evt); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

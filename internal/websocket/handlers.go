package websocket

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/domeball/core/internal/eventbus"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// HandleSubscribeLiveEvents upgrades the request and streams one game's
// live event records until the match completes or the viewer disconnects.
func HandleSubscribeLiveEvents(bus *eventbus.Bus, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		gameID := c.Param("gameId")

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn().Err(err).Str("gameId", gameID).Msg("websocket upgrade failed")
			return
		}

		sub := bus.Subscribe(gameID)
		defer bus.Unsubscribe(sub)

		client := NewClient(conn, sub, logger.With().Str("gameId", gameID).Logger())
		client.Run()
	}
}

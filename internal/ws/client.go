// internal/ws/client.go
//
// Per-connection read/write pumps over a gorilla websocket.
// One reader goroutine and one writer goroutine per connection; the reader
// forwards frames into the hub loop, the writer drains the send channel and
// keeps the connection alive with pings.

package ws

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeWait      = 10 * time.Second    // deadline for a single write
	pongWait       = 60 * time.Second    // read deadline, refreshed by pongs
	pingPeriod     = (pongWait * 9) / 10 // must be < pongWait
	maxMessageSize = 1024                // inbound frames are tiny JSON events
)

// Client is one websocket connection attached to the hub.
type Client struct {
	id    string // stable connection identity (survives reconnect via token)
	token string // signed session token handed to the client on connect
	hub   *Hub
	ws    *websocket.Conn
	send  chan []byte
}

// readPump forwards inbound frames to the hub until the socket dies,
// then unregisters the connection.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.ws.Close()
	}()
	c.ws.SetReadLimit(maxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		_, message, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Str("conn", c.id).Msg("read error")
			}
			return
		}
		c.hub.inbound <- inboundFrame{client: c, raw: message}
	}
}

// writePump drains the send channel and pings on an interval.
// Exits when the hub closes the send channel or a write fails.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

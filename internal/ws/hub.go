// internal/ws/hub.go
//
// Connection hub for the multiplayer transport.
// Responsibilities:
//   - Track active connections keyed by connection id.
//   - Funnel register/unregister/inbound-frame events through one goroutine.
//   - Deliver encoded events to individual connections (Sender impl).
//
// Concurrency model: Run is the only goroutine that touches the clients map,
// the protocol handler, the registry, and the sessions. Each event (join,
// word, guess, vote, disconnect) is processed to completion, broadcasts
// included, before the next one is taken. Read/write pumps live on their own
// goroutines per connection and communicate with the loop via channels only.

package ws

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/wordduel/go-server/internal/history"
	"github.com/wordduel/go-server/internal/session"
)

// inboundFrame carries one raw frame from a connection's read pump.
type inboundFrame struct {
	client *Client
	raw    []byte
}

// Hub maintains the set of active connections and runs the protocol handler.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	inbound    chan inboundFrame

	clients map[string]*Client // keyed by connection id
	handler *Handler
}

// NewHub constructs a hub wired to a registry and optional match history.
func NewHub(reg *session.Registry, hist *history.Store) *Hub {
	h := &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		inbound:    make(chan inboundFrame, 256),
		clients:    make(map[string]*Client),
	}
	h.handler = NewHandler(reg, h, hist)
	return h
}

// Run processes hub events until the process exits. Start it once,
// before the HTTP server begins accepting connections.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			if old, ok := h.clients[c.id]; ok && old != c {
				// Reconnect with the same session token: the fresh socket
				// takes over the connection identity.
				close(old.send)
			}
			h.clients[c.id] = c
			log.Debug().Str("conn", c.id).Msg("connection registered")
			h.Send(c.id, connectedEvent{Type: evConnected, ID: c.id, Token: c.token})

		case c := <-h.unregister:
			cur, ok := h.clients[c.id]
			if !ok || cur != c {
				// Already replaced by a reconnect; nothing to clean up.
				continue
			}
			delete(h.clients, c.id)
			close(c.send)
			log.Debug().Str("conn", c.id).Msg("connection gone")
			h.handler.HandleDisconnect(c.id)

		case f := <-h.inbound:
			h.handler.Handle(f.client.id, f.raw)
		}
	}
}

// Send encodes v and queues it for connID. Unknown connections and stalled
// send buffers drop the frame; a stalled connection is reaped by its pumps.
func (h *Hub) Send(connID string, v any) {
	c, ok := h.clients[connID]
	if !ok {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("conn", connID).Msg("encode event")
		return
	}
	select {
	case c.send <- data:
	default:
		log.Warn().Str("conn", connID).Msg("send buffer full, dropping frame")
	}
}

// internal/ws/serve.go
//
// HTTP entry point for the multiplayer transport: upgrades the request,
// resolves the connection identity (fresh or resumed from a session token),
// and starts the connection's pumps.

package ws

import (
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		allowed := os.Getenv("CLIENT_ORIGIN")
		if allowed == "" {
			allowed = "http://localhost:5173"
		}
		return origin == allowed
	},
}

// ServeWS upgrades an HTTP request into a hub connection.
// An optional ?token= query parameter resumes a previous connection identity.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	id := verifyConnToken(r.URL.Query().Get("token"))
	if id == "" {
		id = uuid.NewString()
	}
	token, err := mintConnToken(id)
	if err != nil {
		log.Error().Err(err).Msg("mint session token")
		http.Error(w, `{"error":"token_failed"}`, http.StatusInternalServerError)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	c := &Client{id: id, token: token, hub: h, ws: conn, send: make(chan []byte, 256)}
	h.register <- c
	go c.writePump()
	go c.readPump()
}

// internal/ws/handler.go
//
// Protocol handler: translates inbound client events into session state
// machine operations and state machine results into outbound events.
//
// The handler holds no session reference across calls: every event
// re-fetches its session from the registry by code, so it never operates on a
// destroyed session. All errors surface as an error event to the originating
// connection only; broadcasts reach exactly the session's participants.
//
// The hub invokes Handle/HandleDisconnect from its single event loop, one
// event to completion at a time, so session mutation is free of interleaving
// without locks.

package ws

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/wordduel/go-server/internal/history"
	"github.com/wordduel/go-server/internal/session"
)

// Sender delivers an encoded event to one connection. The hub implements it;
// tests substitute a recorder.
type Sender interface {
	Send(connID string, v any)
}

// Handler owns the dispatch table from event type to transition logic.
type Handler struct {
	reg      *session.Registry
	sender   Sender
	hist     *history.Store // nil disables match recording
	dispatch map[string]func(connID string, ev clientEvent)
}

// NewHandler wires a protocol handler to a registry and a sender.
// hist may be nil when match history is disabled.
func NewHandler(reg *session.Registry, sender Sender, hist *history.Store) *Handler {
	h := &Handler{reg: reg, sender: sender, hist: hist}
	h.dispatch = map[string]func(string, clientEvent){
		evCreateGame: h.handleCreate,
		evJoinGame:   h.handleJoin,
		evSubmitWord: h.handleSubmitWord,
		evMakeGuess:  h.handleGuess,
		evPlayAgain:  h.handlePlayAgain,
	}
	return h
}

// Handle decodes and dispatches one inbound frame from connID.
// A malformed or unknown frame costs only the sender an error event.
func (h *Handler) Handle(connID string, raw []byte) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("conn", connID).Msg("event handler panicked")
			h.sendError(connID, "internal server error")
		}
	}()

	var ev clientEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		h.sendError(connID, "malformed event")
		return
	}
	fn, ok := h.dispatch[ev.Type]
	if !ok {
		h.sendError(connID, "unknown event type")
		return
	}
	fn(connID, ev)
}

// HandleDisconnect unseats a departed connection, destroys its session when
// emptied, and notifies the remaining participant otherwise.
func (h *Handler) HandleDisconnect(connID string) {
	s, destroyed := h.reg.Disconnect(connID)
	if s == nil {
		return
	}
	if destroyed {
		log.Info().Str("code", s.Code()).Msg("session destroyed, all players gone")
		return
	}
	h.broadcast(s, playerDisconnectedEvent{
		Type:    evPlayerDisconnected,
		Message: "Your opponent has disconnected",
	})
}

// ------------------------------ event handlers -----------------------------

func (h *Handler) handleCreate(connID string, _ clientEvent) {
	s, err := h.reg.Create(connID)
	if err != nil {
		h.sendError(connID, err.Error())
		return
	}
	log.Info().Str("code", s.Code()).Str("conn", connID).Msg("game created")
	h.sender.Send(connID, gameCreatedEvent{Type: evGameCreated, Code: s.Code(), PlayerNumber: 1})
}

func (h *Handler) handleJoin(connID string, ev clientEvent) {
	s, err := h.reg.Get(ev.Code)
	if err != nil {
		h.sendError(connID, err.Error())
		return
	}
	seat, err := s.Join(connID)
	if err != nil {
		h.sendError(connID, err.Error())
		return
	}
	h.reg.Bind(connID, ev.Code)

	log.Info().Str("code", ev.Code).Str("conn", connID).Int("seat", seat).Msg("player joined")
	h.sender.Send(connID, joinSuccessEvent{Type: evJoinSuccess, Code: ev.Code, PlayerNumber: seat})
	h.broadcast(s, simpleEvent{Type: evGameReady})
}

func (h *Handler) handleSubmitWord(connID string, ev clientEvent) {
	s, err := h.sessionFor(connID, ev.Code)
	if err != nil {
		h.sendError(connID, err.Error())
		return
	}
	started, err := s.SubmitWord(connID, ev.Word)
	if err != nil {
		h.sendError(connID, err.Error())
		return
	}
	h.sender.Send(connID, simpleEvent{Type: evWordAccepted})

	if started {
		log.Info().Str("code", s.Code()).Msg("both words in, game started")
		h.broadcast(s, gameStartedEvent{Type: evGameStarted, CurrentTurn: s.Turn()})
	}
}

func (h *Handler) handleGuess(connID string, ev clientEvent) {
	s, err := h.sessionFor(connID, ev.Code)
	if err != nil {
		h.sendError(connID, err.Error())
		return
	}
	out, err := s.MakeGuess(connID, ev.Guess)
	if err != nil {
		h.sendError(connID, err.Error())
		return
	}

	// The final guess result always goes out before any game-over frame.
	h.broadcast(s, guessResultEvent{Type: evGuessResult, Guesses: s.Guesses(), CurrentTurn: out.Turn})

	if !out.Win {
		return
	}
	log.Info().Str("code", s.Code()).Int("winner", out.Winner).Msg("game over")
	h.broadcast(s, gameOverEvent{
		Type:        evGameOver,
		Winner:      out.Winner,
		WinningWord: out.WinningWord,
		Code:        s.Code(),
		Guesses:     s.Guesses(),
	})
	h.recordMatch(s)
}

func (h *Handler) handlePlayAgain(connID string, ev clientEvent) {
	s, err := h.sessionFor(connID, ev.Code)
	if err != nil {
		h.sendError(connID, err.Error())
		return
	}
	votes, restarted, err := s.VoteRematch(connID)
	if err != nil {
		h.sendError(connID, err.Error())
		return
	}
	if restarted {
		log.Info().Str("code", s.Code()).Msg("rematch, resetting game")
		h.broadcast(s, simpleEvent{Type: evGameRestart})
		return
	}
	h.broadcast(s, playAgainVoteEvent{Type: evPlayAgainVote, Votes: votes})
}

// ------------------------------- plumbing ----------------------------------

// sessionFor resolves a session from the event's code, falling back to the
// registry's reverse index when the client did not include one.
func (h *Handler) sessionFor(connID, code string) (*session.Session, error) {
	if code == "" {
		var err error
		code, err = h.reg.FindByParticipant(connID)
		if err != nil {
			return nil, err
		}
	}
	return h.reg.Get(code)
}

// broadcast sends v to every participant of s. Delivery is room-scoped by
// construction: the participant list is read from the session itself.
func (h *Handler) broadcast(s *session.Session, v any) {
	for _, id := range s.Participants() {
		h.sender.Send(id, v)
	}
}

func (h *Handler) sendError(connID, msg string) {
	h.sender.Send(connID, errorEvent{Type: evError, Message: msg})
}

// recordMatch persists a finished game, best effort.
func (h *Handler) recordMatch(s *session.Session) {
	if h.hist == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	m := history.Match{
		Code:        s.Code(),
		WinnerSeat:  s.Winner(),
		WinningWord: s.WinningWord(),
		Guesses:     len(s.Guesses()),
	}
	if err := h.hist.RecordMatch(ctx, m); err != nil {
		log.Warn().Err(err).Str("code", s.Code()).Msg("record match")
	}
}

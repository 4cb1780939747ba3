// internal/httpserver/server.go
//
// HTTP server wiring for the word-duel backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/words", "/api/words".
//   - Single-player endpoints: POST /api/singleplayer/{validate,start,player-guess}.
//   - Multiplayer HTTP surface: GET /api/multiplayer/{active-games,recent}.
//   - Websocket mount: GET /ws (kept outside the timeout middleware, since the
//     connection outlives any request deadline).
//
// Notes:
//   - CORS is origin-aware and credentials-enabled.
//   - All multiplayer gameplay flows over the websocket; HTTP only observes it.

package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/wordduel/go-server/internal/game"
	"github.com/wordduel/go-server/internal/history"
	"github.com/wordduel/go-server/internal/session"
	"github.com/wordduel/go-server/internal/single"
	"github.com/wordduel/go-server/internal/words"
	"github.com/wordduel/go-server/internal/ws"
)

// Server bundles the router with the multiplayer hub, the session registry,
// the single-player store, and the match-history store.
type Server struct {
	r       *chi.Mux
	hub     *ws.Hub
	reg     *session.Registry
	singles single.Store
	hist    *history.Store // nil disables history endpoints' data
}

// New constructs a Server, installs middleware, and registers routes.
func New(hub *ws.Hub, reg *session.Registry, singles single.Store, hist *history.Store) *Server {
	s := &Server{r: chi.NewRouter(), hub: hub, reg: reg, singles: singles, hist: hist}

	// --- middleware ---
	s.r.Use(chimw.RequestID) // add X-Request-ID
	s.r.Use(chimw.RealIP)    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer) // recover from panics
	s.r.Use(corsFromEnv)     // credentials-friendly CORS

	// Websocket transport: no request timeout, no JSON content type.
	s.r.Get("/ws", hub.ServeWS)

	// Everything else is a short request/response exchange.
	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
		r.Use(jsonContentType)                 // default JSON responses

		// --- diagnostics ---
		r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"service":"wordduel-go","endpoints":["/health","/ws","POST /api/singleplayer/start","GET /api/multiplayer/active-games"]}`))
		})
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"ok":true}`))
		})
		r.Get("/debug/words", func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]int{"words": words.Count()})
		})

		// Raw dictionary, one word per line (the client keyboard uses it).
		r.Get("/api/words", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			_, _ = w.Write([]byte(strings.Join(words.All(), "\n")))
		})

		// Single player
		r.Post("/api/singleplayer/validate", s.handleValidate)
		r.Post("/api/singleplayer/start", s.handleStart)
		r.Post("/api/singleplayer/player-guess", s.handlePlayerGuess)

		// Multiplayer observation
		r.Get("/api/multiplayer/active-games", s.handleActiveGames)
		r.Get("/api/multiplayer/recent", s.handleRecentMatches)

		// JSON 404 for easier debugging
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
		})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// --------------------------- single player ---------------------------------

type validateReq struct {
	Word string `json:"word"`
}
type validateRes struct {
	Valid bool `json:"valid"`
}

// handleValidate reports whether a word is in the dictionary.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Word == "" {
		http.Error(w, `{"error":"no_word_provided"}`, http.StatusBadRequest)
		return
	}
	_ = json.NewEncoder(w).Encode(validateRes{Valid: words.IsWord(req.Word)})
}

type startReq struct {
	PlayerWord string `json:"playerWord"`
}
type startRes struct {
	GameID string `json:"gameId"`
}

// handleStart creates a single-player game around the player's secret word.
func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var req startReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	g, err := single.New(req.PlayerWord)
	if err != nil {
		http.Error(w, `{"error":"invalid_word"}`, http.StatusBadRequest)
		return
	}
	if err := s.singles.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save single-player game")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	log.Info().Str("gameId", g.ID).Msg("single-player game started")
	_ = json.NewEncoder(w).Encode(startRes{GameID: g.ID})
}

type playerGuessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}

// playerGuessRes mirrors the turn outcome back to the client. The computer's
// word is revealed only once the game is over; the player's own word is
// echoed back on a player win so it can be shared.
type playerGuessRes struct {
	PlayerGuessResult []game.Mark `json:"playerGuessResult"`
	ComputerGuess     *guessPair  `json:"computerGuessResult,omitempty"`
	GameOver          bool        `json:"gameOver"`
	Winner            string      `json:"winner,omitempty"`
	CurrentTurn       string      `json:"currentTurn,omitempty"`
	ComputerWord      string      `json:"computerWord,omitempty"`
	PlayerWord        string      `json:"playerWord,omitempty"`
	CanShareWord      bool        `json:"canShareWord,omitempty"`
	Message           string      `json:"message"`
}

// guessPair is one word/marks pair as the client expects it.
type guessPair struct {
	Guess  string      `json:"guess"`
	Result []game.Mark `json:"result"`
}

// handlePlayerGuess applies one full turn: the player's guess and, if the
// game continues, the computer's answering guess.
func (s *Server) handlePlayerGuess(w http.ResponseWriter, r *http.Request) {
	var req playerGuessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	g, err := s.singles.Get(r.Context(), req.GameID)
	if err != nil {
		http.Error(w, `{"error":"game_not_found"}`, http.StatusNotFound)
		return
	}

	res, err := g.PlayTurn(req.Guess)
	switch err {
	case nil:
	case single.ErrFinished:
		http.Error(w, `{"error":"game_already_over"}`, http.StatusBadRequest)
		return
	case single.ErrInvalidWord:
		http.Error(w, `{"error":"invalid_word"}`, http.StatusBadRequest)
		return
	default:
		http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
		return
	}

	if res.GameOver {
		// Finished games are cleaned up eagerly; record the outcome.
		_ = s.singles.Delete(r.Context(), g.ID)
		s.recordSingle(r.Context(), g)
	} else if err := s.singles.Save(r.Context(), g); err != nil {
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	out := playerGuessRes{
		PlayerGuessResult: res.PlayerMarks,
		GameOver:          res.GameOver,
		Winner:            res.Winner,
	}
	if res.ComputerGuess != nil {
		out.ComputerGuess = &guessPair{Guess: res.ComputerGuess.Word, Result: res.ComputerGuess.Marks}
	}
	switch res.Winner {
	case single.WinnerPlayer:
		out.ComputerWord = g.ComputerWord
		out.PlayerWord = g.PlayerWord
		out.CanShareWord = true
		out.Message = "Congratulations! You won! You correctly guessed the computer's word: " + g.ComputerWord +
			". The computer was trying to guess your word: " + g.PlayerWord
	case single.WinnerComputer:
		out.ComputerWord = g.ComputerWord
		out.Message = "Game Over! The computer won by guessing your word: " + g.PlayerWord +
			". The computer's word was: " + g.ComputerWord
	default:
		out.CurrentTurn = "player"
		out.Message = "Your turn! Make your next guess."
	}
	_ = json.NewEncoder(w).Encode(out)
}

// recordSingle persists a finished single-player game, best effort.
func (s *Server) recordSingle(ctx context.Context, g *single.Game) {
	if s.hist == nil {
		return
	}
	err := s.hist.RecordSingle(ctx, history.SingleResult{
		GameID:  g.ID,
		Winner:  g.Winner,
		Guesses: len(g.PlayerGuesses),
	})
	if err != nil {
		log.Warn().Err(err).Str("gameId", g.ID).Msg("record single result")
	}
}

// ---------------------------- multiplayer ----------------------------------

// handleActiveGames lists live sessions: code, seated players, phase.
func (s *Server) handleActiveGames(w http.ResponseWriter, _ *http.Request) {
	_ = json.NewEncoder(w).Encode(s.reg.Snapshot())
}

// handleRecentMatches returns the latest finished multiplayer games.
func (s *Server) handleRecentMatches(w http.ResponseWriter, r *http.Request) {
	if s.hist == nil {
		_ = json.NewEncoder(w).Encode([]history.Match{})
		return
	}
	matches, err := s.hist.RecentMatches(r.Context(), 50)
	if err != nil {
		log.Error().Err(err).Msg("recent matches")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(matches)
}

// internal/ws/protocol.go
//
// Wire contracts for the multiplayer protocol.
// Frames are JSON text messages with a "type" discriminator. Inbound frames
// decode into clientEvent and are validated before touching the state
// machine; outbound frames are typed DTOs, one per event.
//
// Ordering contract: on a winning guess the final guess-result frame is
// broadcast before the game-over frame. Client handlers for the two events
// differ, so the order is part of the protocol, not an accident.

package ws

import "github.com/wordduel/go-server/internal/session"

// Inbound event types.
const (
	evCreateGame = "create-game"
	evJoinGame   = "join-game"
	evSubmitWord = "submit-word"
	evMakeGuess  = "make-guess"
	evPlayAgain  = "play-again"
)

// Outbound event types.
const (
	evConnected          = "connected"
	evGameCreated        = "game-created"
	evJoinSuccess        = "join-success"
	evGameReady          = "game-ready"
	evWordAccepted       = "word-accepted"
	evGameStarted        = "game-started"
	evGuessResult        = "guess-result"
	evGameOver           = "game-over"
	evPlayAgainVote      = "play-again-vote"
	evGameRestart        = "game-restart"
	evPlayerDisconnected = "player-disconnected"
	evError              = "error"
)

// clientEvent is the decoded shape of any inbound frame.
// Fields not used by a given type are left empty.
type clientEvent struct {
	Type  string `json:"type"`
	Code  string `json:"gameCode,omitempty"`
	Word  string `json:"word,omitempty"`
	Guess string `json:"guess,omitempty"`
}

// ------------------------------ outbound DTOs ------------------------------

type connectedEvent struct {
	Type  string `json:"type"`
	ID    string `json:"id"`
	Token string `json:"token"`
}

type gameCreatedEvent struct {
	Type         string `json:"type"`
	Code         string `json:"gameCode"`
	PlayerNumber int    `json:"playerNumber"`
}

type joinSuccessEvent struct {
	Type         string `json:"type"`
	Code         string `json:"gameCode"`
	PlayerNumber int    `json:"playerNumber"`
}

// simpleEvent covers the payload-free notifications
// (game-ready, word-accepted, game-restart).
type simpleEvent struct {
	Type string `json:"type"`
}

type gameStartedEvent struct {
	Type        string `json:"type"`
	CurrentTurn int    `json:"currentTurn"`
}

type guessResultEvent struct {
	Type        string             `json:"type"`
	Guesses     []session.Feedback `json:"guesses"`
	CurrentTurn int                `json:"currentTurn"`
}

type gameOverEvent struct {
	Type        string             `json:"type"`
	Winner      int                `json:"winner"`
	WinningWord string             `json:"winningWord"`
	Code        string             `json:"gameCode"`
	Guesses     []session.Feedback `json:"guesses"`
}

type playAgainVoteEvent struct {
	Type  string `json:"type"`
	Votes int    `json:"votes"`
}

type playerDisconnectedEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type errorEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

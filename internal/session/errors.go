// internal/session/errors.go
//
// Error taxonomy for multiplayer sessions. Every failure a client can cause
// maps to one of these sentinels; the protocol layer turns them into error
// events for the originating connection only.

package session

import "errors"

var (
	ErrGameNotFound   = errors.New("game not found")
	ErrPlayerNotFound = errors.New("player not found in game")
	ErrInvalidWord    = errors.New("invalid word")
	ErrNotYourTurn    = errors.New("not your turn")
	ErrGameFull       = errors.New("game is full")
	ErrAlreadyStarted = errors.New("game has already started")
	ErrNotPlaying     = errors.New("game is not in playing phase")
	ErrCodeSpace      = errors.New("could not generate a unique game code")
)

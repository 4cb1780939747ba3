// internal/session/session.go
//
// State machine for one multiplayer game.
// Responsibilities:
//   - Track both participants (connection id → seat), their secret words,
//     the turn pointer, the guess log, and the lifecycle phase.
//   - Validate then commit: no method mutates state before every precondition
//     has passed, so a failed call leaves the session untouched.
//
// Lifecycle:
//   waiting → awaiting-words (second player joins)
//   awaiting-words → playing (both secret words submitted; turn = seat 1)
//   playing → gameover (winning guess)
//   gameover → awaiting-words (both participants vote for a rematch)
//
// A session is destroyed by the registry once its participant set empties;
// gameover itself is not terminal.

package session

import (
	"strings"

	"github.com/wordduel/go-server/internal/game"
	"github.com/wordduel/go-server/internal/words"
)

// Phase is a session's lifecycle phase.
type Phase string

const (
	PhaseWaiting       Phase = "waiting"        // one participant, waiting for an opponent
	PhaseAwaitingWords Phase = "awaiting-words" // two participants, collecting secret words
	PhasePlaying       Phase = "playing"
	PhaseGameOver      Phase = "gameover"
)

// Feedback is one guess-log entry: who guessed, what they guessed,
// and the per-letter marks against the opponent's secret word.
type Feedback struct {
	PlayerNumber int         `json:"playerNumber"`
	Word         string      `json:"word"`
	Marks        []game.Mark `json:"marks"`
}

// Session holds the authoritative state of one multiplayer game.
// All mutation goes through its methods; the hub's single event loop is the
// only caller, so no internal locking is needed.
type Session struct {
	code         string
	participants map[string]int // connection id → seat (1 or 2)
	secretWords  map[int]string // seat → secret word (lowercase)
	turn         int            // seat whose guess is expected (playing phase)
	guesses      []Feedback
	phase        Phase
	winner       int
	winningWord  string
	rematchVotes map[string]struct{}
}

// New creates a session in the waiting phase with the creator seated as player 1.
func New(code, creatorConn string) *Session {
	return &Session{
		code:         code,
		participants: map[string]int{creatorConn: 1},
		secretWords:  make(map[int]string),
		turn:         1,
		phase:        PhaseWaiting,
		rematchVotes: make(map[string]struct{}),
	}
}

// Join seats a second participant and moves the session to awaiting-words.
// Fails with ErrGameFull when two participants are already seated and
// ErrAlreadyStarted when the session has left the waiting phase.
func (s *Session) Join(connID string) (seat int, err error) {
	if len(s.participants) >= 2 {
		return 0, ErrGameFull
	}
	if s.phase != PhaseWaiting {
		return 0, ErrAlreadyStarted
	}
	s.participants[connID] = 2
	s.phase = PhaseAwaitingWords
	return 2, nil
}

// SubmitWord records a participant's secret word. The seat is resolved from
// the participant mapping, never trusted from the client. Returns started=true
// on the submission that completes the pair and flips the session to playing.
func (s *Session) SubmitWord(connID, word string) (started bool, err error) {
	seat, ok := s.participants[connID]
	if !ok {
		return false, ErrPlayerNotFound
	}
	if s.phase != PhaseWaiting && s.phase != PhaseAwaitingWords {
		return false, ErrAlreadyStarted
	}
	word = strings.ToLower(strings.TrimSpace(word))
	if len(word) != game.WordLength || !words.IsWord(word) {
		return false, ErrInvalidWord
	}

	s.secretWords[seat] = word

	if len(s.secretWords) == 2 {
		s.phase = PhasePlaying
		s.turn = 1
		s.guesses = nil
		return true, nil
	}
	return false, nil
}

// GuessOutcome reports the result of a valid guess.
type GuessOutcome struct {
	Feedback    Feedback
	Win         bool
	Turn        int // seat to move next (unchanged on a win)
	Winner      int
	WinningWord string
}

// MakeGuess evaluates a guess from connID against the opponent's secret word.
// On a win the session transitions to gameover with winner/winningWord set;
// otherwise the turn flips to the other seat.
func (s *Session) MakeGuess(connID, guess string) (*GuessOutcome, error) {
	seat, ok := s.participants[connID]
	if !ok {
		return nil, ErrPlayerNotFound
	}
	if s.phase != PhasePlaying {
		return nil, ErrNotPlaying
	}
	if s.turn != seat {
		return nil, ErrNotYourTurn
	}
	guess = strings.ToLower(strings.TrimSpace(guess))
	if len(guess) != game.WordLength || !words.IsWord(guess) {
		return nil, ErrInvalidWord
	}

	opponent := otherSeat(seat)
	target := s.secretWords[opponent]
	marks := game.Evaluate(guess, target)

	fb := Feedback{PlayerNumber: seat, Word: guess, Marks: marks}
	s.guesses = append(s.guesses, fb)

	out := &GuessOutcome{Feedback: fb, Turn: s.turn}

	if game.AllCorrect(marks) {
		s.phase = PhaseGameOver
		s.winner = seat
		s.winningWord = target
		out.Win = true
		out.Winner = seat
		out.WinningWord = target
		return out, nil
	}

	s.turn = opponent
	out.Turn = s.turn
	return out, nil
}

// VoteRematch records a rematch vote for connID. Votes are a set: re-voting
// from the same connection does not advance the count. When both participants
// have voted the session resets to awaiting-words and restarted=true.
func (s *Session) VoteRematch(connID string) (votes int, restarted bool, err error) {
	if _, ok := s.participants[connID]; !ok {
		return 0, false, ErrPlayerNotFound
	}
	s.rematchVotes[connID] = struct{}{}

	if len(s.rematchVotes) < 2 {
		return len(s.rematchVotes), false, nil
	}

	s.secretWords = make(map[int]string)
	s.turn = 1
	s.guesses = nil
	s.winner = 0
	s.winningWord = ""
	s.rematchVotes = make(map[string]struct{})
	s.phase = PhaseAwaitingWords
	return 2, true, nil
}

// RemoveParticipant unseats a connection. The session stays in its current
// phase; no forfeit is granted to the remaining player. Returns the number of
// participants left so the caller can destroy an emptied session.
func (s *Session) RemoveParticipant(connID string) (remaining int) {
	delete(s.participants, connID)
	delete(s.rematchVotes, connID)
	return len(s.participants)
}

// otherSeat flips between seats 1 and 2.
func otherSeat(seat int) int {
	if seat == 1 {
		return 2
	}
	return 1
}

// --------------------------- read-only accessors ---------------------------

func (s *Session) Code() string        { return s.code }
func (s *Session) Phase() Phase        { return s.phase }
func (s *Session) Turn() int           { return s.turn }
func (s *Session) Winner() int         { return s.winner }
func (s *Session) WinningWord() string { return s.winningWord }

// Seat returns the seat number for a connection, or 0 if not a participant.
func (s *Session) Seat(connID string) int { return s.participants[connID] }

// ParticipantCount returns the number of seated connections.
func (s *Session) ParticipantCount() int { return len(s.participants) }

// Participants returns the connection ids currently seated.
func (s *Session) Participants() []string {
	out := make([]string, 0, len(s.participants))
	for id := range s.participants {
		out = append(out, id)
	}
	return out
}

// Guesses returns the guess log in chronological order.
// Callers must not mutate the returned slice.
func (s *Session) Guesses() []Feedback { return s.guesses }

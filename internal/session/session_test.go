package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordduel/go-server/internal/game"
	"github.com/wordduel/go-server/internal/words"
)

func TestMain(m *testing.M) {
	if err := words.Init(); err != nil {
		panic(err)
	}
	m.Run()
}

// startedSession returns a session in the playing phase with seat 1 holding
// "crane" and seat 2 holding "tower", seat 1 to move.
func startedSession(t *testing.T) *Session {
	t.Helper()
	s := New("ABC123", "conn1")

	seat, err := s.Join("conn2")
	require.NoError(t, err)
	require.Equal(t, 2, seat)
	require.Equal(t, PhaseAwaitingWords, s.Phase())

	started, err := s.SubmitWord("conn1", "crane")
	require.NoError(t, err)
	require.False(t, started)

	started, err = s.SubmitWord("conn2", "tower")
	require.NoError(t, err)
	require.True(t, started)
	require.Equal(t, PhasePlaying, s.Phase())
	require.Equal(t, 1, s.Turn())
	return s
}

func TestNewSessionSeatsCreatorAsPlayerOne(t *testing.T) {
	s := New("ABC123", "conn1")
	assert.Equal(t, PhaseWaiting, s.Phase())
	assert.Equal(t, 1, s.Seat("conn1"))
	assert.Equal(t, 1, s.ParticipantCount())
}

func TestJoinFullGame(t *testing.T) {
	s := New("ABC123", "conn1")
	_, err := s.Join("conn2")
	require.NoError(t, err)

	_, err = s.Join("conn3")
	assert.ErrorIs(t, err, ErrGameFull)
}

func TestJoinAfterStart(t *testing.T) {
	s := New("ABC123", "conn1")
	s.RemoveParticipant("conn1")
	s.phase = PhasePlaying

	_, err := s.Join("conn2")
	assert.ErrorIs(t, err, ErrAlreadyStarted)
}

func TestSubmitWordValidation(t *testing.T) {
	s := New("ABC123", "conn1")
	_, err := s.Join("conn2")
	require.NoError(t, err)

	tests := []struct {
		name string
		word string
	}{
		{"too short", "cat"},
		{"too long", "cranes"},
		{"not in dictionary", "zzzzz"},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.SubmitWord("conn1", tt.word)
			assert.ErrorIs(t, err, ErrInvalidWord)
		})
	}

	_, err = s.SubmitWord("stranger", "crane")
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestBothWordsStartTheGame(t *testing.T) {
	s := startedSession(t)
	assert.Equal(t, PhasePlaying, s.Phase())
	assert.Empty(t, s.Guesses())
}

func TestGuessOutOfTurn(t *testing.T) {
	s := startedSession(t)

	// Seat 2 moves while it is seat 1's turn: rejected, nothing mutates.
	_, err := s.MakeGuess("conn2", "slate")
	assert.ErrorIs(t, err, ErrNotYourTurn)
	assert.Empty(t, s.Guesses())
	assert.Equal(t, 1, s.Turn())
}

func TestGuessInWrongPhase(t *testing.T) {
	s := New("ABC123", "conn1")
	_, err := s.MakeGuess("conn1", "slate")
	assert.ErrorIs(t, err, ErrNotPlaying)
}

func TestGuessFlipsTurn(t *testing.T) {
	s := startedSession(t)

	out, err := s.MakeGuess("conn1", "slate")
	require.NoError(t, err)
	assert.False(t, out.Win)
	assert.Equal(t, 2, out.Turn)
	assert.Equal(t, 2, s.Turn())
	require.Len(t, s.Guesses(), 1)
	assert.Equal(t, 1, s.Guesses()[0].PlayerNumber)
	assert.Equal(t, "slate", s.Guesses()[0].Word)

	out, err = s.MakeGuess("conn2", "light")
	require.NoError(t, err)
	assert.Equal(t, 1, out.Turn)
	assert.Len(t, s.Guesses(), 2)
}

func TestWinningGuessEndsGame(t *testing.T) {
	s := startedSession(t)

	// Seat 1 guesses seat 2's secret.
	out, err := s.MakeGuess("conn1", "tower")
	require.NoError(t, err)
	assert.True(t, out.Win)
	assert.Equal(t, 1, out.Winner)
	assert.Equal(t, "tower", out.WinningWord)
	assert.True(t, game.AllCorrect(out.Feedback.Marks))

	assert.Equal(t, PhaseGameOver, s.Phase())
	assert.Equal(t, 1, s.Winner())
	assert.Equal(t, "tower", s.WinningWord())

	// Turn is not flipped by a winning guess.
	assert.Equal(t, 1, out.Turn)

	_, err = s.MakeGuess("conn2", "crane")
	assert.ErrorIs(t, err, ErrNotPlaying)
}

func TestGuessEvaluatesAgainstOpponentWord(t *testing.T) {
	s := startedSession(t)

	// Seat 1 guessing their own word must not win.
	out, err := s.MakeGuess("conn1", "crane")
	require.NoError(t, err)
	assert.False(t, out.Win)
}

func TestRematchVotes(t *testing.T) {
	s := startedSession(t)
	_, err := s.MakeGuess("conn1", "tower")
	require.NoError(t, err)
	require.Equal(t, PhaseGameOver, s.Phase())

	votes, restarted, err := s.VoteRematch("conn1")
	require.NoError(t, err)
	assert.Equal(t, 1, votes)
	assert.False(t, restarted)

	// Re-voting from the same connection does not advance the count.
	votes, restarted, err = s.VoteRematch("conn1")
	require.NoError(t, err)
	assert.Equal(t, 1, votes)
	assert.False(t, restarted)

	votes, restarted, err = s.VoteRematch("conn2")
	require.NoError(t, err)
	assert.Equal(t, 2, votes)
	assert.True(t, restarted)

	// Full reset back to word collection.
	assert.Equal(t, PhaseAwaitingWords, s.Phase())
	assert.Equal(t, 1, s.Turn())
	assert.Empty(t, s.Guesses())
	assert.Zero(t, s.Winner())
	assert.Empty(t, s.WinningWord())

	// Votes were cleared: a second rematch needs two fresh votes.
	_, err = s.MakeGuess("conn1", "tower")
	assert.ErrorIs(t, err, ErrNotPlaying)
}

func TestVoteRematchFromStranger(t *testing.T) {
	s := startedSession(t)
	_, _, err := s.VoteRematch("stranger")
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestRemoveParticipantKeepsPhase(t *testing.T) {
	s := startedSession(t)
	remaining := s.RemoveParticipant("conn2")
	assert.Equal(t, 1, remaining)
	// No forfeit: the session stays where it was.
	assert.Equal(t, PhasePlaying, s.Phase())

	remaining = s.RemoveParticipant("conn1")
	assert.Zero(t, remaining)
}

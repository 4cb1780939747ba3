// internal/single/single.go
//
// Single-player game: one human seat against the computer strategist.
// The human tries to guess the computer's randomly chosen word while the
// computer works on the human's word using its clue history. Both sides share
// the same evaluator; the histories are kept separately because the
// evaluation target differs by side.

package single

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/wordduel/go-server/internal/game"
	"github.com/wordduel/go-server/internal/words"
)

var (
	ErrInvalidWord = errors.New("invalid word")
	ErrFinished    = errors.New("game is already over")
)

// Winner values.
const (
	WinnerPlayer   = "player"
	WinnerComputer = "computer"
)

// Game holds the state of one single-player game.
type Game struct {
	ID              string
	PlayerWord      string // the human's secret; the computer guesses this
	ComputerWord    string // the computer's secret; the human guesses this
	PlayerGuesses   []game.Guess
	ComputerGuesses []game.Guess
	Finished        bool
	Winner          string
}

// New starts a game around the player's secret word. The computer's secret is
// a random dictionary word. Fails with ErrInvalidWord if playerWord is not a
// valid dictionary word.
func New(playerWord string) (*Game, error) {
	playerWord = strings.ToLower(strings.TrimSpace(playerWord))
	if len(playerWord) != game.WordLength || !words.IsWord(playerWord) {
		return nil, ErrInvalidWord
	}
	return &Game{
		ID:           uuid.NewString(),
		PlayerWord:   playerWord,
		ComputerWord: words.Random(),
	}, nil
}

// TurnResult reports one full turn: the player's guess outcome and, unless
// the player just won, the computer's answering guess.
type TurnResult struct {
	PlayerMarks   []game.Mark
	ComputerGuess *game.Guess // nil when the player's guess ended the game
	GameOver      bool
	Winner        string
}

// PlayTurn applies the player's guess and, if the game continues, lets the
// computer take its turn. The game mutates only after the guess validates.
func (g *Game) PlayTurn(guess string) (*TurnResult, error) {
	if g.Finished {
		return nil, ErrFinished
	}
	guess = strings.ToLower(strings.TrimSpace(guess))
	if len(guess) != game.WordLength || !words.IsWord(guess) {
		return nil, ErrInvalidWord
	}

	playerMarks := game.Evaluate(guess, g.ComputerWord)
	g.PlayerGuesses = append(g.PlayerGuesses, game.Guess{Word: guess, Marks: playerMarks})

	res := &TurnResult{PlayerMarks: playerMarks}

	if game.AllCorrect(playerMarks) {
		g.Finished = true
		g.Winner = WinnerPlayer
		res.GameOver = true
		res.Winner = WinnerPlayer
		return res, nil
	}

	computerGuess := game.NextGuess(words.All(), g.ComputerGuesses)
	computerMarks := game.Evaluate(computerGuess, g.PlayerWord)
	cg := game.Guess{Word: computerGuess, Marks: computerMarks}
	g.ComputerGuesses = append(g.ComputerGuesses, cg)
	res.ComputerGuess = &cg

	if game.AllCorrect(computerMarks) {
		g.Finished = true
		g.Winner = WinnerComputer
		res.GameOver = true
		res.Winner = WinnerComputer
	}
	return res, nil
}

// internal/game/types.go
//
// Core type definitions for the guess-evaluation engine.
// Defines:
//   - Mark: per-letter result of a guess (correct/present/absent).
//   - Guess: a guessed word paired with the marks it produced.

package game

// Mark represents the evaluation result for a single letter in a guess.
// Possible values:
//   - "correct": letter is correct and in the correct position.
//   - "present": letter exists in the target but in a different position.
//   - "absent":  letter does not exist in the target at all.
type Mark string

const (
	MarkCorrect Mark = "correct"
	MarkPresent      = "present"
	MarkAbsent       = "absent"
)

// WordLength is the fixed word length the engine operates on.
const WordLength = 5

// Guess pairs a guessed word (lowercase) with the marks it produced
// against some target. The strategist consumes these as clue history.
type Guess struct {
	Word  string `json:"guess"`
	Marks []Mark `json:"result"`
}

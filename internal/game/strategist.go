// internal/game/strategist.go
//
// Computer opponent's guessing strategy.
// Responsibilities:
//   - Filter the dictionary down to the candidates consistent with every
//     previous (guess, marks) clue and pick one uniformly at random.
//   - On an empty history, pick a uniformly random dictionary word.
//
// A word w is consistent with a clue (g, marks) exactly when Evaluate(g, w)
// reproduces marks. This is elimination search, not an information-theoretic
// optimizer: any surviving candidate is as good as another here.

package game

import (
	"crypto/rand"
	"math/big"
)

// NextGuess returns the computer's next guess given the clue history so far.
//
// The candidate set can only end up empty if the history was not produced by
// this evaluator against a single fixed target; in that case the strategist
// falls back to a random dictionary word instead of failing.
func NextGuess(dict []string, history []Guess) string {
	if len(history) == 0 {
		return randomWord(dict)
	}

	candidates := Candidates(dict, history)
	if len(candidates) == 0 {
		return randomWord(dict)
	}
	return randomWord(candidates)
}

// Candidates returns the dictionary subset consistent with the clue history.
// Exposed for tests and diagnostics.
func Candidates(dict []string, history []Guess) []string {
	out := dict
	for _, clue := range history {
		var next []string
		for _, w := range out {
			if MarksEqual(Evaluate(clue.Word, w), clue.Marks) {
				next = append(next, w)
			}
		}
		out = next
	}
	return out
}

// randomWord picks a cryptographically random member of list.
func randomWord(list []string) string {
	if len(list) == 0 {
		return ""
	}
	nBig, _ := rand.Int(rand.Reader, big.NewInt(int64(len(list))))
	return list[nBig.Int64()]
}

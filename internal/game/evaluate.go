// internal/game/evaluate.go
//
// Guess evaluation for a single five-letter word.
// Responsibilities:
//   - Score a guess against a target with the classic two-pass algorithm.
//   - Handle repeated letters correctly: for a target with k occurrences of a
//     letter, at most k guess positions holding that letter are marked
//     correct/present combined.
//
// Notes:
//   - Inputs are case-insensitive; both words are lowercased before scoring.
//   - Length validation happens at the protocol/HTTP boundary, not here.

package game

import "strings"

// Evaluate scores guess against target and returns one Mark per letter.
//
// Pass 1:
//   - Mark exact matches as correct.
//   - Count remaining (non-matched) target letters by letter index.
//
// Pass 2:
//   - For each non-matched guess letter: if there is remaining count for that
//     letter, mark present and decrement the count; otherwise mark absent.
func Evaluate(guess, target string) []Mark {
	guess = strings.ToLower(guess)
	target = strings.ToLower(target)

	n := len(guess)
	res := make([]Mark, n)
	guessBytes := []byte(guess)
	targetBytes := []byte(target)

	// Letter frequency for the non-matched positions (a–z).
	var counts [26]int

	// First pass: mark exact matches and collect counts for remaining target letters.
	for i := 0; i < n; i++ {
		if guessBytes[i] == targetBytes[i] {
			res[i] = MarkCorrect
		} else {
			counts[idx(targetBytes[i])]++
		}
	}

	// Second pass: resolve presents/absents for non-matched positions.
	for i := 0; i < n; i++ {
		if res[i] == MarkCorrect {
			continue
		}
		j := idx(guessBytes[i])
		if j >= 0 && j < 26 && counts[j] > 0 {
			res[i] = MarkPresent
			counts[j]--
		} else {
			res[i] = MarkAbsent
		}
	}
	return res
}

// idx maps a lowercase ASCII letter byte to 0..25.
func idx(b byte) int { return int(b - 'a') }

// AllCorrect returns true if every mark is correct, i.e. the win condition.
func AllCorrect(marks []Mark) bool {
	for _, m := range marks {
		if m != MarkCorrect {
			return false
		}
	}
	return true
}

// MarksEqual compares two mark sequences position by position.
func MarksEqual(a, b []Mark) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// internal/words/words.go
//
// Word dictionary for the game engine.
//
// Responsibilities:
//   - Load the five-letter word list from an environment-provided file or fall
//     back to the embedded default.
//   - Maintain a lookup set plus an ordered slice for random selection.
//   - Supply utility functions like IsWord, Random, All, and Count.
//
// Initialization behavior (Init):
//   1. If WORDS_FILE is set, load the list from that file.
//   2. Otherwise, fall back to the embedded list in assets/words.txt.
//
// Constraints:
//   • Words must be 5 alphabetic letters (a–z).
//   • Lists are normalized to lowercase; anything else is silently skipped.
//   • Initialization is run once (sync.Once) before the server accepts traffic,
//     so lookups need no synchronization afterwards.

package words

import (
	"bufio"
	"crypto/rand"
	"errors"
	"math/big"
	"os"
	"strings"
	"sync"

	"github.com/wordduel/go-server/assets"
)

var (
	initOnce   sync.Once
	list       []string            // ordered dictionary, for random picks
	set        map[string]struct{} // lookup set
	initialErr error
)

// Init loads the word list exactly once.
// Returns an error if the list ends up empty.
func Init() error {
	initOnce.Do(func() {
		var words []string
		var err error

		if path := os.Getenv("WORDS_FILE"); path != "" {
			words, err = readWordFile(path)
		} else {
			words, err = assets.WordList()
			words = filterValid(words)
		}
		if err != nil {
			initialErr = err
			return
		}

		list = words
		set = toSet(words)

		if len(list) == 0 {
			initialErr = errors.New("words: dictionary is empty")
		}
	})
	return initialErr
}

// readWordFile loads one word per line from a file,
// lowercases, trims, and keeps only valid 5-letter alphabetic words.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		w := strings.TrimSpace(strings.ToLower(sc.Text()))
		if len(w) == 5 && isAlpha(w) {
			out = append(out, w)
		}
	}
	return out, sc.Err()
}

// filterValid keeps only valid lowercase 5-letter words from a list.
func filterValid(in []string) []string {
	var out []string
	for _, line := range in {
		w := strings.TrimSpace(strings.ToLower(line))
		if len(w) == 5 && isAlpha(w) {
			out = append(out, w)
		}
	}
	return out
}

// toSet converts a list of strings into a lookup set.
func toSet(words []string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// IsWord reports whether w is in the dictionary (case-insensitive).
func IsWord(w string) bool {
	_, ok := set[strings.ToLower(strings.TrimSpace(w))]
	return ok
}

// Random returns a cryptographically random dictionary word.
// If the dictionary is not loaded yet or empty, falls back to "crane".
func Random() string {
	if len(list) == 0 {
		return "crane"
	}
	nBig, _ := rand.Int(rand.Reader, big.NewInt(int64(len(list))))
	return list[nBig.Int64()]
}

// All returns the full dictionary in load order.
// Callers must not mutate the returned slice.
func All() []string {
	return list
}

// Count returns the number of loaded words.
func Count() int {
	return len(list)
}

package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name   string
		guess  string
		target string
		want   []Mark
	}{
		{"all correct", "crane", "crane", []Mark{MarkCorrect, MarkCorrect, MarkCorrect, MarkCorrect, MarkCorrect}},
		{"all absent", "crane", "light", []Mark{MarkAbsent, MarkAbsent, MarkAbsent, MarkAbsent, MarkAbsent}},
		{"presents only", "crane", "tower", []Mark{MarkAbsent, MarkPresent, MarkAbsent, MarkAbsent, MarkPresent}},
		{"case insensitive", "CRANE", "crane", []Mark{MarkCorrect, MarkCorrect, MarkCorrect, MarkCorrect, MarkCorrect}},
		{
			// Guess has three l/a instances, target only two of each kind;
			// surplus copies must come back absent.
			"repeated letters capped by target multiplicity",
			"llama", "alloy",
			[]Mark{MarkPresent, MarkCorrect, MarkPresent, MarkAbsent, MarkAbsent},
		},
		{
			"duplicate guess letter with single target occurrence",
			"geese", "crane",
			[]Mark{MarkAbsent, MarkAbsent, MarkAbsent, MarkAbsent, MarkCorrect},
		},
		{
			"exact match consumes the only occurrence",
			"eerie", "where",
			[]Mark{MarkPresent, MarkAbsent, MarkPresent, MarkAbsent, MarkCorrect},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.guess, tt.target))
		})
	}
}

func TestEvaluateCorrectCountMatchesAlignedLetters(t *testing.T) {
	pairs := [][2]string{
		{"crane", "crate"},
		{"tower", "toner"},
		{"llama", "alloy"},
		{"sweet", "tweed"},
		{"about", "about"},
	}
	for _, p := range pairs {
		guess, target := p[0], p[1]
		marks := Evaluate(guess, target)

		wantCorrect := 0
		for i := 0; i < len(guess); i++ {
			if guess[i] == target[i] {
				wantCorrect++
			}
		}
		gotCorrect := 0
		for _, m := range marks {
			if m == MarkCorrect {
				gotCorrect++
			}
		}
		assert.Equal(t, wantCorrect, gotCorrect, "guess %q target %q", guess, target)
	}
}

func TestEvaluateNeverExceedsTargetMultiplicity(t *testing.T) {
	// For every letter, correct+present marks must not exceed the letter's
	// count in the target, no matter how many copies the guess holds.
	pairs := [][2]string{
		{"llama", "alloy"},
		{"geese", "sweet"},
		{"mamma", "drama"},
		{"eerie", "where"},
	}
	for _, p := range pairs {
		guess, target := p[0], p[1]
		marks := Evaluate(guess, target)

		var targetCounts, markedCounts [26]int
		for i := 0; i < len(target); i++ {
			targetCounts[target[i]-'a']++
		}
		for i, m := range marks {
			if m == MarkCorrect || m == MarkPresent {
				markedCounts[guess[i]-'a']++
			}
		}
		for l := 0; l < 26; l++ {
			assert.LessOrEqual(t, markedCounts[l], targetCounts[l],
				"letter %c overmarked for guess %q target %q", 'a'+l, guess, target)
		}
	}
}

func TestSelfMatchIsAllCorrect(t *testing.T) {
	for _, w := range []string{"crane", "tower", "alloy", "geese", "mamma"} {
		assert.True(t, AllCorrect(Evaluate(w, w)), "self-match for %q", w)
	}
}

func TestAllCorrect(t *testing.T) {
	assert.True(t, AllCorrect([]Mark{MarkCorrect, MarkCorrect}))
	assert.False(t, AllCorrect([]Mark{MarkCorrect, MarkPresent}))
	assert.False(t, AllCorrect([]Mark{MarkAbsent}))
}

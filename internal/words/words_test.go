package words

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := Init(); err != nil {
		panic(err)
	}
	m.Run()
}

func TestDictionaryShape(t *testing.T) {
	require.Greater(t, Count(), 500, "embedded dictionary unexpectedly small")
	require.Len(t, All(), Count())
	for _, w := range All() {
		require.Len(t, w, 5, "word %q", w)
		require.True(t, isAlpha(w), "word %q", w)
	}
}

func TestIsWord(t *testing.T) {
	assert.True(t, IsWord("crane"))
	assert.True(t, IsWord("CRANE"))
	assert.True(t, IsWord("  slate  "))
	assert.False(t, IsWord("zzzzz"))
	assert.False(t, IsWord("cane"))
	assert.False(t, IsWord(""))
}

func TestRandomReturnsDictionaryWord(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		w := Random()
		assert.True(t, IsWord(w))
		seen[w] = struct{}{}
	}
	// 50 draws from a 1000+ word list collapsing to one value would mean the
	// selection is broken, not unlucky.
	assert.Greater(t, len(seen), 1)
}

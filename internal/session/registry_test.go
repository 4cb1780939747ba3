package session

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRegistersWaitingSession(t *testing.T) {
	r := NewRegistry()
	s, err := r.Create("conn1")
	require.NoError(t, err)

	assert.Equal(t, PhaseWaiting, s.Phase())
	assert.Equal(t, 1, s.Seat("conn1"))

	got, err := r.Get(s.Code())
	require.NoError(t, err)
	assert.Same(t, s, got)

	code, err := r.FindByParticipant("conn1")
	require.NoError(t, err)
	assert.Equal(t, s.Code(), code)
}

func TestCodesAreShortUppercaseAndUnique(t *testing.T) {
	r := NewRegistry()
	format := regexp.MustCompile(`^[A-Z0-9]{6}$`)
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		s, err := r.Create("conn")
		require.NoError(t, err)
		assert.Regexp(t, format, s.Code())
		assert.False(t, seen[s.Code()], "code %q issued twice", s.Code())
		seen[s.Code()] = true
	}
}

func TestGetUnknownCode(t *testing.T) {
	r := NewRegistry()
	_, err := r.Get("NOPE42")
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestFindByParticipantUnknownConn(t *testing.T) {
	r := NewRegistry()
	_, err := r.FindByParticipant("ghost")
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestDisconnectNotifiesAndDestroys(t *testing.T) {
	r := NewRegistry()
	s, err := r.Create("conn1")
	require.NoError(t, err)
	_, err = s.Join("conn2")
	require.NoError(t, err)
	r.Bind("conn2", s.Code())

	// First leaver: session survives with one participant.
	got, destroyed := r.Disconnect("conn1")
	require.Same(t, s, got)
	assert.False(t, destroyed)
	assert.Equal(t, 1, s.ParticipantCount())
	_, err = r.Get(s.Code())
	assert.NoError(t, err)

	// A departed connection is unbound.
	_, err = r.FindByParticipant("conn1")
	assert.ErrorIs(t, err, ErrGameNotFound)

	// Last leaver: session destroyed.
	got, destroyed = r.Disconnect("conn2")
	require.Same(t, s, got)
	assert.True(t, destroyed)
	_, err = r.Get(s.Code())
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestDisconnectUnknownConn(t *testing.T) {
	r := NewRegistry()
	s, destroyed := r.Disconnect("ghost")
	assert.Nil(t, s)
	assert.False(t, destroyed)
}

func TestSnapshot(t *testing.T) {
	r := NewRegistry()
	s1, err := r.Create("conn1")
	require.NoError(t, err)
	s2, err := r.Create("conn2")
	require.NoError(t, err)
	_, err = s2.Join("conn3")
	require.NoError(t, err)

	snap := r.Snapshot()
	require.Len(t, snap, 2)

	byCode := map[string]Summary{}
	for _, sum := range snap {
		byCode[sum.Code] = sum
	}
	assert.Equal(t, Summary{Code: s1.Code(), Players: 1, Phase: PhaseWaiting}, byCode[s1.Code()])
	assert.Equal(t, Summary{Code: s2.Code(), Players: 2, Phase: PhaseAwaitingWords}, byCode[s2.Code()])
}

package workout

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/balkashynov/wrokout/internal/audio"
	"github.com/balkashynov/wrokout/internal/timer"
)

func TestRestCoordinator_WarningThenExpired(t *testing.T) {
	cues := &cueRecorder{}
	r := NewRestCoordinator(cues)
	require.NoError(t, r.Begin(5))
	require.True(t, r.Resting())

	var ended []bool
	for i := 0; i < 5; i++ {
		ended = append(ended, r.Tick())
	}
	require.Equal(t, []bool{false, false, false, false, true}, ended)
	require.False(t, r.Resting())
	require.Equal(t, []audio.Cue{audio.CueWarning, audio.CueExpired}, cues.cues)

	require.False(t, r.Tick())
}

func TestRestCoordinator_InvalidDuration(t *testing.T) {
	r := NewRestCoordinator(nil)
	require.ErrorIs(t, r.Begin(0), timer.ErrInvalidConfig)
	require.False(t, r.Resting())
}

func TestRestCoordinator_SkipDropsPendingCues(t *testing.T) {
	cues := &cueRecorder{}
	r := NewRestCoordinator(cues)
	require.NoError(t, r.Begin(10))
	for i := 0; i < 6; i++ {
		r.Tick()
	}
	require.True(t, r.Skip())
	require.False(t, r.Skip())
	r.Tick()
	require.Empty(t, cues.cues)
}

func TestRestCoordinator_BeginReplacesRunningRest(t *testing.T) {
	r := NewRestCoordinator(nil)
	require.NoError(t, r.Begin(60))
	r.Tick()
	require.NoError(t, r.Begin(30))
	require.Equal(t, 30, r.State().Remaining)
}

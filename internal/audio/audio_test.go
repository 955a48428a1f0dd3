package audio

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type recordingBackend struct {
	mu     sync.Mutex
	played []Cue
	err    error
	panics bool
	block  chan struct{}
}

func (r *recordingBackend) Play(ctx context.Context, cue Cue) error {
	if r.block != nil {
		<-r.block
	}
	if r.panics {
		panic("speaker on fire")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.played = append(r.played, cue)
	return r.err
}

func (r *recordingBackend) cues() []Cue {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Cue(nil), r.played...)
}

func TestService_PlaysQueuedCues(t *testing.T) {
	backend := &recordingBackend{}
	svc := NewService(backend, true)
	defer svc.Close()

	svc.Play(CueWarning)
	svc.Play(CueExpired)

	require.Eventually(t, func() bool { return len(backend.cues()) == 2 }, time.Second, 5*time.Millisecond)
	require.Equal(t, []Cue{CueWarning, CueExpired}, backend.cues())
}

func TestService_DisabledPlaysNothing(t *testing.T) {
	backend := &recordingBackend{}
	svc := NewService(backend, false)

	svc.Play(CueWarning)
	svc.Close()
	require.Empty(t, backend.cues())

	require.False(t, svc.Enabled())
}

func TestService_PerCueToggle(t *testing.T) {
	backend := &recordingBackend{}
	svc := NewService(backend, true, WithEnabledCues(map[string]bool{"warning": false}))
	defer svc.Close()

	svc.Play(CueWarning)
	svc.Play(CueSetComplete)

	require.Eventually(t, func() bool { return len(backend.cues()) == 1 }, time.Second, 5*time.Millisecond)
	require.Equal(t, []Cue{CueSetComplete}, backend.cues())
}

func TestService_BackendErrorsAreSwallowed(t *testing.T) {
	backend := &recordingBackend{err: errors.New("autoplay blocked")}
	svc := NewService(backend, true)
	defer svc.Close()

	svc.Play(CueExpired)
	svc.Play(CueExpired)
	require.Eventually(t, func() bool { return len(backend.cues()) == 2 }, time.Second, 5*time.Millisecond)
}

func TestService_BackendPanicIsRecovered(t *testing.T) {
	backend := &recordingBackend{panics: true}
	svc := NewService(backend, true)

	svc.Play(CueWarning)
	svc.Play(CueWarning)
	// Close returns only if the worker survived both panics.
	svc.Close()
}

func TestService_PlayNeverBlocks(t *testing.T) {
	backend := &recordingBackend{block: make(chan struct{})}
	svc := NewService(backend, true, WithQueueSize(1))

	done := make(chan struct{})
	go func() {
		for i := 0; i < 50; i++ {
			svc.Play(CueRoundBoundary)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		require.Fail(t, "Play blocked while backend was busy")
	}

	close(backend.block)
	svc.Close()
}

func TestService_PlayAfterClose(t *testing.T) {
	svc := NewService(&recordingBackend{}, true)
	svc.Close()
	svc.Close()
	svc.Play(CueExpired)
}

func TestBellBackend_Patterns(t *testing.T) {
	var buf bytes.Buffer
	b := NewBellBackend(&buf)
	b.gap = time.Millisecond

	require.NoError(t, b.Play(context.Background(), CueWarning))
	require.Equal(t, "\a", buf.String())

	buf.Reset()
	require.NoError(t, b.Play(context.Background(), CueExerciseComplete))
	require.Equal(t, "\a\a\a", buf.String())

	require.Error(t, b.Play(context.Background(), Cue("unknown")))
}

func TestCommandBackend_MissingCueIsSilent(t *testing.T) {
	b := NewCommandBackend(map[string]string{"warning": "  "})
	require.NoError(t, b.Play(context.Background(), CueWarning))
}

func TestCommandBackend_RunsCommand(t *testing.T) {
	b := NewCommandBackend(map[string]string{"expired": "true", "warning": "exit 3"})
	require.NoError(t, b.Play(context.Background(), CueExpired))
	require.Error(t, b.Play(context.Background(), CueWarning))
}

package workout

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDriver_TicksAndActionsShareOneLoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := newHarness(ex("ex1", 2, 0))
	_, err := h.ctrl.Start(ctx, "plan-1", "alice")
	require.NoError(t, err)

	ticks := make(chan time.Time)
	actions := make(chan Action)
	var tickCount int

	d := NewDriver(h.ctrl, 0)
	d.OnTick = func(*Controller) { tickCount++ }

	done := make(chan struct{})
	go func() {
		d.RunWith(ctx, ticks, actions)
		close(done)
	}()

	for i := 0; i < 5; i++ {
		ticks <- time.Now()
	}
	actions <- func(ctx context.Context, c *Controller) { c.CompleteSet(ctx) }
	ticks <- time.Now()
	actions <- func(ctx context.Context, c *Controller) { c.CompleteSet(ctx) }

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("driver did not stop after the session finished")
	}

	require.Equal(t, 6, tickCount)
	require.Equal(t, PhaseFinished, h.ctrl.Phase())
	require.Equal(t, 6, h.ctrl.Session().TotalElapsedSeconds)
}

func TestDriver_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	h := newHarness(ex("ex1", 2, 0))
	_, err := h.ctrl.Start(ctx, "plan-1", "alice")
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		NewDriver(h.ctrl, time.Hour).Run(ctx, nil)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("driver ignored cancellation")
	}
	require.Equal(t, PhaseInProgress, h.ctrl.Phase())
}

package workout

import (
	"context"
	"time"
)

// Action is a user command applied to the controller from inside the loop.
type Action func(ctx context.Context, c *Controller)

// Driver is the single tick source for a session. Ticks and user actions are
// handled in one select loop, so the controller never sees two callers at once.
type Driver struct {
	ctrl     *Controller
	interval time.Duration

	// OnTick runs after every tick, still on the loop goroutine.
	OnTick func(c *Controller)
	// OnAction runs after every applied action.
	OnAction func(c *Controller)
}

// NewDriver creates a driver ticking every interval. Zero means one second.
func NewDriver(ctrl *Controller, interval time.Duration) *Driver {
	if interval <= 0 {
		interval = time.Second
	}
	return &Driver{ctrl: ctrl, interval: interval}
}

// Run ticks the controller until ctx is cancelled, the actions channel is
// closed, or the session reaches a terminal phase.
func (d *Driver) Run(ctx context.Context, actions <-chan Action) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()
	d.RunWith(ctx, ticker.C, actions)
}

// RunWith is Run with an injected tick channel.
func (d *Driver) RunWith(ctx context.Context, ticks <-chan time.Time, actions <-chan Action) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticks:
			d.ctrl.Tick()
			if d.OnTick != nil {
				d.OnTick(d.ctrl)
			}
		case act, ok := <-actions:
			if !ok {
				return
			}
			act(ctx, d.ctrl)
			if d.OnAction != nil {
				d.OnAction(d.ctrl)
			}
		}
		if d.ctrl.session != nil && !d.ctrl.session.Active() {
			return
		}
	}
}

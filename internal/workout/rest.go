package workout

import (
	"github.com/balkashynov/wrokout/internal/audio"
	"github.com/balkashynov/wrokout/internal/log"
	"github.com/balkashynov/wrokout/internal/timer"
)

// RestCoordinator runs the rest countdown between sets and exercises.
// While it is resting the controller's clocks stand still.
type RestCoordinator struct {
	surface *timer.Surface
	cues    audio.Player
}

// NewRestCoordinator creates an idle coordinator that plays cues through cues.
func NewRestCoordinator(cues audio.Player) *RestCoordinator {
	if cues == nil {
		cues = audio.NoopPlayer{}
	}
	return &RestCoordinator{
		surface: timer.NewSurface("rest"),
		cues:    cues,
	}
}

// Begin starts a fresh rest countdown, replacing any rest already running.
func (r *RestCoordinator) Begin(seconds int) error {
	if err := r.surface.Set(timer.Rest(seconds)); err != nil {
		return err
	}
	log.Debug(log.CatRest, "rest started", "seconds", seconds)
	return nil
}

// Resting reports whether a rest countdown is running.
func (r *RestCoordinator) Resting() bool {
	return r.surface.Active()
}

// State exposes the rest timer for display.
func (r *RestCoordinator) State() timer.State {
	return r.surface.State()
}

// Tick advances the rest countdown and reports whether the rest just ended.
func (r *RestCoordinator) Tick() bool {
	if !r.Resting() {
		return false
	}
	ended := false
	for _, e := range r.surface.Tick() {
		switch e.Kind {
		case timer.EventWarning:
			r.cues.Play(audio.CueWarning)
		case timer.EventExpired:
			r.cues.Play(audio.CueExpired)
			ended = true
		}
	}
	if ended {
		r.surface.Clear()
		log.Debug(log.CatRest, "rest expired")
	}
	return ended
}

// Skip ends the rest early. Cues the countdown had not reached yet never play.
func (r *RestCoordinator) Skip() bool {
	if !r.Resting() {
		return false
	}
	r.surface.Clear()
	log.Debug(log.CatRest, "rest skipped")
	return true
}

// Cancel drops any running rest without signalling its end.
func (r *RestCoordinator) Cancel() {
	r.surface.Clear()
}

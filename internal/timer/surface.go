package timer

import "github.com/balkashynov/wrokout/internal/log"

// Surface holds the one active timer shown in a given place: the rest timer,
// the utility timer. Setting a new config replaces the previous state
// entirely, and clearing it drops any transition that state would have raised.
type Surface struct {
	name   string
	state  State
	active bool
}

// NewSurface creates an empty surface.
func NewSurface(name string) *Surface {
	return &Surface{name: name}
}

// Set switches the surface to cfg, discarding elapsed, remaining and round
// counters from whatever ran before.
func (s *Surface) Set(cfg Config) error {
	st, err := New(cfg)
	if err != nil {
		return err
	}
	s.state = st
	s.active = true
	log.Debug(log.CatTimer, "surface set", "surface", s.name, "config", cfg.String())
	return nil
}

// Clear deactivates the surface.
func (s *Surface) Clear() {
	s.state = State{}
	s.active = false
}

// Active reports whether a timer is loaded.
func (s *Surface) Active() bool {
	return s.active
}

// State returns a copy of the current state.
func (s *Surface) State() State {
	return s.state
}

// Tick advances the loaded timer. An empty surface produces nothing.
func (s *Surface) Tick() []Event {
	if !s.active {
		return nil
	}
	var events []Event
	s.state, events = s.state.Advance()
	return events
}

// AddRep forwards a manual rep to an AMRAP timer.
func (s *Surface) AddRep() {
	if s.active {
		s.state = s.state.AddRep()
	}
}

// Reset restarts the loaded timer from its initial state.
func (s *Surface) Reset() {
	if s.active {
		s.state = s.state.Reset()
	}
}

package timer

// warningAt is the remaining value that, when decremented, raises the
// three-seconds-to-go warning.
const warningAt = 4

// Phase is the current half of a Tabata round.
type Phase string

const (
	PhaseWork Phase = "work"
	PhaseRest Phase = "rest"
)

// EventKind names a transition raised by Advance.
type EventKind string

const (
	EventWarning       EventKind = "warning"
	EventExpired       EventKind = "expired"
	EventRoundBoundary EventKind = "round_boundary"
	EventPhaseSwitch   EventKind = "phase_switch"
)

// Event is a transition produced by a single tick.
type Event struct {
	Kind  EventKind
	Round int
	Phase Phase
	// Final is set on the Expired event after which the timer stops advancing.
	Final bool
}

// State is the full state of one timer surface.
type State struct {
	Config    Config `json:"config"`
	Elapsed   int    `json:"elapsed"`
	Remaining int    `json:"remaining"`
	Round     int    `json:"round"`
	Phase     Phase  `json:"phase,omitempty"`
	Reps      int    `json:"reps,omitempty"`
	Warned    bool   `json:"warned"`
	Expired   bool   `json:"expired"`
}

// New validates cfg and returns a freshly initialized state.
func New(cfg Config) (State, error) {
	if err := cfg.Validate(); err != nil {
		return State{}, err
	}
	return initial(cfg), nil
}

func initial(cfg Config) State {
	s := State{Config: cfg, Round: 1}
	switch cfg.Mode {
	case ModeCountdown, ModeRest, ModeAMRAP:
		s.Remaining = cfg.DurationSeconds
	case ModeEMOM:
		s.Remaining = cfg.IntervalSeconds
	case ModeTabata:
		s.Phase = PhaseWork
		s.Remaining = cfg.WorkSeconds
	}
	return s
}

// Reset reinitializes the state for its current configuration.
func (s State) Reset() State {
	return initial(s.Config)
}

// Done reports whether the timer has reached its terminal state.
func (s State) Done() bool {
	return s.Expired
}

// AddRep increments the AMRAP rep counter. It never touches the clock and is
// ignored for other modes.
func (s State) AddRep() State {
	if s.Config.Mode == ModeAMRAP {
		s.Reps++
	}
	return s
}

// Advance moves the timer forward one tick. A timer that has already expired
// is returned unchanged with no events.
func (s State) Advance() (State, []Event) {
	if s.Expired {
		return s, nil
	}

	switch s.Config.Mode {
	case ModeStopwatch:
		s.Elapsed++
		return s, nil
	case ModeCountdown, ModeRest, ModeAMRAP:
		return s.advanceCountdown()
	case ModeEMOM:
		return s.advanceEMOM()
	case ModeTabata:
		return s.advanceTabata()
	}
	return s, nil
}

func (s State) advanceCountdown() (State, []Event) {
	var events []Event
	s.Elapsed++
	if w, ok := s.decrement(); ok {
		events = append(events, w)
	}
	if s.Remaining == 0 {
		s.Expired = true
		events = append(events, Event{Kind: EventExpired, Round: s.Round, Final: true})
	}
	return s, events
}

func (s State) advanceEMOM() (State, []Event) {
	var events []Event
	interval := s.Config.IntervalSeconds

	s.Elapsed++
	s.Remaining = interval - s.Elapsed%interval
	if s.Elapsed%interval != 0 {
		return s, nil
	}

	completed := s.Elapsed / interval
	events = append(events, Event{Kind: EventRoundBoundary, Round: completed})
	if completed+1 > s.Config.TotalRounds {
		s.Expired = true
		s.Remaining = 0
		events = append(events, Event{Kind: EventExpired, Round: completed, Final: true})
		return s, events
	}
	s.Round = completed + 1
	return s, events
}

func (s State) advanceTabata() (State, []Event) {
	var events []Event
	s.Elapsed++
	if w, ok := s.decrement(); ok {
		events = append(events, w)
	}
	if s.Remaining > 0 {
		return s, events
	}

	expired := Event{Kind: EventExpired, Round: s.Round, Phase: s.Phase}
	switch {
	case s.Phase == PhaseWork:
		events = append(events, expired)
		s.Phase = PhaseRest
		s.Remaining = s.Config.RestSeconds
		s.Warned = false
		events = append(events, Event{Kind: EventPhaseSwitch, Round: s.Round, Phase: PhaseRest})
	case s.Round+1 > s.Config.TotalRounds:
		expired.Final = true
		s.Expired = true
		events = append(events, expired)
	default:
		events = append(events, expired)
		s.Round++
		s.Phase = PhaseWork
		s.Remaining = s.Config.WorkSeconds
		s.Warned = false
		events = append(events, Event{Kind: EventPhaseSwitch, Round: s.Round, Phase: PhaseWork})
	}
	return s, events
}

// decrement counts Remaining down by one and reports the warning if this tick
// crossed it.
func (s *State) decrement() (Event, bool) {
	pre := s.Remaining
	s.Remaining--
	if s.Remaining < 0 {
		s.Remaining = 0
	}
	if pre == warningAt && !s.Warned {
		s.Warned = true
		return Event{Kind: EventWarning, Round: s.Round, Phase: s.Phase}, true
	}
	return Event{}, false
}

// Progress returns how far through the current countdown window the timer is,
// from 0 to 1. Stopwatches always report 0.
func (s State) Progress() float64 {
	var total int
	switch s.Config.Mode {
	case ModeCountdown, ModeRest, ModeAMRAP:
		total = s.Config.DurationSeconds
	case ModeEMOM:
		total = s.Config.IntervalSeconds
	case ModeTabata:
		total = s.Config.WorkSeconds
		if s.Phase == PhaseRest {
			total = s.Config.RestSeconds
		}
	}
	if total <= 0 {
		return 0
	}
	if s.Expired {
		return 1
	}
	return float64(total-s.Remaining) / float64(total)
}

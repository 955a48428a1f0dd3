// Package timer implements the interval timer modes used by a workout: stopwatch,
// countdown, rest, EMOM, AMRAP and Tabata. A timer is a plain value; Advance
// returns the next state and the transitions that tick produced, so any caller
// can drive it without a clock.
package timer

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned when a timer is configured with a zero or
// negative duration, interval or round count.
var ErrInvalidConfig = errors.New("invalid timer configuration")

// Mode selects the timer variant.
type Mode string

const (
	ModeStopwatch Mode = "stopwatch"
	ModeCountdown Mode = "countdown"
	ModeRest      Mode = "rest"
	ModeEMOM      Mode = "emom"
	ModeAMRAP     Mode = "amrap"
	ModeTabata    Mode = "tabata"
)

// Config parameterizes a timer. Only the fields relevant to Mode are read.
type Config struct {
	Mode            Mode `json:"mode"`
	DurationSeconds int  `json:"duration_seconds,omitempty"`
	IntervalSeconds int  `json:"interval_seconds,omitempty"`
	TotalRounds     int  `json:"total_rounds,omitempty"`
	WorkSeconds     int  `json:"work_seconds,omitempty"`
	RestSeconds     int  `json:"rest_seconds,omitempty"`
}

// Stopwatch counts up without limit.
func Stopwatch() Config {
	return Config{Mode: ModeStopwatch}
}

// Countdown counts down from seconds and stops at zero.
func Countdown(seconds int) Config {
	return Config{Mode: ModeCountdown, DurationSeconds: seconds}
}

// Rest is a countdown whose expiry ends a rest phase.
func Rest(seconds int) Config {
	return Config{Mode: ModeRest, DurationSeconds: seconds}
}

// EMOM raises a round boundary every interval for rounds rounds.
func EMOM(intervalSeconds, rounds int) Config {
	return Config{Mode: ModeEMOM, IntervalSeconds: intervalSeconds, TotalRounds: rounds}
}

// AMRAP is a single countdown window with a manual rep counter.
func AMRAP(seconds int) Config {
	return Config{Mode: ModeAMRAP, DurationSeconds: seconds}
}

// Tabata alternates work and rest countdowns for rounds rounds.
func Tabata(workSeconds, restSeconds, rounds int) Config {
	return Config{Mode: ModeTabata, WorkSeconds: workSeconds, RestSeconds: restSeconds, TotalRounds: rounds}
}

// Validate rejects configurations the engine cannot run.
func (c Config) Validate() error {
	switch c.Mode {
	case ModeStopwatch:
		return nil
	case ModeCountdown, ModeRest, ModeAMRAP:
		if c.DurationSeconds <= 0 {
			return fmt.Errorf("%w: %s duration must be positive, got %d", ErrInvalidConfig, c.Mode, c.DurationSeconds)
		}
	case ModeEMOM:
		if c.IntervalSeconds <= 0 {
			return fmt.Errorf("%w: emom interval must be positive, got %d", ErrInvalidConfig, c.IntervalSeconds)
		}
		if c.TotalRounds <= 0 {
			return fmt.Errorf("%w: emom rounds must be positive, got %d", ErrInvalidConfig, c.TotalRounds)
		}
	case ModeTabata:
		if c.WorkSeconds <= 0 || c.RestSeconds <= 0 {
			return fmt.Errorf("%w: tabata work and rest must be positive, got %d/%d", ErrInvalidConfig, c.WorkSeconds, c.RestSeconds)
		}
		if c.TotalRounds <= 0 {
			return fmt.Errorf("%w: tabata rounds must be positive, got %d", ErrInvalidConfig, c.TotalRounds)
		}
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, c.Mode)
	}
	return nil
}

// CountsDown reports whether the mode tracks a remaining value that warns and expires.
func (c Config) CountsDown() bool {
	switch c.Mode {
	case ModeCountdown, ModeRest, ModeAMRAP, ModeTabata:
		return true
	}
	return false
}

// String renders the config the way the timer command accepts it.
func (c Config) String() string {
	switch c.Mode {
	case ModeCountdown, ModeRest, ModeAMRAP:
		return fmt.Sprintf("%s %ds", c.Mode, c.DurationSeconds)
	case ModeEMOM:
		return fmt.Sprintf("emom %dx%d", c.IntervalSeconds, c.TotalRounds)
	case ModeTabata:
		return fmt.Sprintf("tabata %d/%dx%d", c.WorkSeconds, c.RestSeconds, c.TotalRounds)
	default:
		return string(c.Mode)
	}
}

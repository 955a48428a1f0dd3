package audio

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"
)

// NoopBackend plays nothing.
type NoopBackend struct{}

// Play implements Backend.
func (NoopBackend) Play(context.Context, Cue) error { return nil }

// bellPatterns is how many terminal bells each cue rings.
var bellPatterns = map[Cue]int{
	CueWarning:          1,
	CueRoundBoundary:    1,
	CueSetComplete:      1,
	CueExpired:          2,
	CueExerciseComplete: 3,
}

// BellBackend rings the terminal bell, repeating it to tell cues apart.
type BellBackend struct {
	w   io.Writer
	gap time.Duration
}

// NewBellBackend writes BEL characters to w.
func NewBellBackend(w io.Writer) *BellBackend {
	return &BellBackend{w: w, gap: 150 * time.Millisecond}
}

// Play implements Backend.
func (b *BellBackend) Play(ctx context.Context, cue Cue) error {
	n, ok := bellPatterns[cue]
	if !ok {
		return fmt.Errorf("no bell pattern for cue %q", cue)
	}
	for i := 0; i < n; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(b.gap):
			}
		}
		if _, err := b.w.Write([]byte("\a")); err != nil {
			return fmt.Errorf("failed to ring bell: %w", err)
		}
	}
	return nil
}

// CommandBackend runs a shell command per cue, e.g. "afplay /System/Library/Sounds/Ping.aiff".
type CommandBackend struct {
	commands map[Cue]string
}

// NewCommandBackend maps cue names to shell commands. Cues without a command are silent.
func NewCommandBackend(commands map[string]string) *CommandBackend {
	m := make(map[Cue]string, len(commands))
	for name, cmd := range commands {
		if strings.TrimSpace(cmd) != "" {
			m[Cue(name)] = cmd
		}
	}
	return &CommandBackend{commands: m}
}

// Play implements Backend.
func (c *CommandBackend) Play(ctx context.Context, cue Cue) error {
	command, ok := c.commands[cue]
	if !ok {
		return nil
	}
	out, err := exec.CommandContext(ctx, "sh", "-c", command).CombinedOutput()
	if err != nil {
		return fmt.Errorf("cue command %q failed: %w: %s", command, err, strings.TrimSpace(string(out)))
	}
	return nil
}

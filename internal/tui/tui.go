// Package tui holds the Bubble Tea screens: the live workout and the
// standalone interval timer.
package tui

import (
	"fmt"

	"github.com/balkashynov/wrokout/internal/workout"
)

// describeLoad formats reps and weight, e.g. "3×5 @ 80kg"
func describeLoad(e workout.Exercise) string {
	load := fmt.Sprintf("%d×%d", e.TotalSets, e.Reps)
	if e.WeightKg > 0 {
		load += fmt.Sprintf(" @ %gkg", e.WeightKg)
	}
	return load
}

func truncate(s string, n int) string {
	if len([]rune(s)) <= n {
		return s
	}
	return string([]rune(s)[:n-1]) + "…"
}

package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/wrokout/internal/parser"
	"github.com/balkashynov/wrokout/internal/tui"
)

var timerCmd = &cobra.Command{
	Use:   "timer <spec>",
	Short: "Run a standalone interval timer",
	Long: `Run a timer outside of any plan.

Formats:
  stopwatch             Counts up until stopped
  countdown 90s         Counts down once
  rest 2m               Same as countdown
  amrap 12m             Counts down; press + to count rounds or reps
  emom 60x10            Interval x rounds
  tabata 20/10x8        Work/rest x rounds (plain 'tabata' is 20/10x8)

Examples:
  wrokout timer emom 1m x 12
  wrokout timer tabata`,
	Args: cobra.MinimumNArgs(1),
	Run: withConfig(func(cmd *cobra.Command, args []string) {
		spec, err := parser.ParseTimerSpec(strings.Join(args, " "))
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		cues := newCuePlayer()
		defer cues.Close()

		if err := tui.RunTimerTUI(spec, cues, cfg.Session.Tick); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}),
}

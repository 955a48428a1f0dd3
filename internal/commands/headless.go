package commands

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/balkashynov/wrokout/internal/parser"
	"github.com/balkashynov/wrokout/internal/pubsub"
	"github.com/balkashynov/wrokout/internal/workout"
)

const headlessHelp = `Commands:
  set, s          Complete the current set
  done, e         Complete the current exercise
  skip, n         Skip the rest
  pause, p        Pause or resume the clocks
  select N        Switch to exercise N
  status          Show where you are
  finish, f       Finish the workout
  abandon [save]  End the workout (discard, or save progress)
  quit, q         Leave; the workout can be resumed later`

// runHeadless drives the session with line commands read from lines.
// Ticks and commands share the driver loop.
func runHeadless(ctx context.Context, ctrl *workout.Controller, notices *pubsub.Feed[workout.Notice], lines *bufio.Scanner, planName string) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	printed := make(chan struct{})
	sub := notices.Subscribe(runCtx)
	go func() {
		defer close(printed)
		for n := range sub {
			printNotice(n)
		}
	}()

	fmt.Println(titleStyle.Render("🏋️  " + planName))
	fmt.Println(dimStyle.Render("Type 'help' for commands."))
	printState(ctrl)

	actions := make(chan workout.Action)
	go readCommands(runCtx, lines, actions)

	d := workout.NewDriver(ctrl, cfg.Session.Tick)
	d.OnTick = printRestCountdown
	d.Run(runCtx, actions)

	cancel()
	<-printed
}

// readCommands turns input lines into actions until EOF, quit, or ctx is done
func readCommands(ctx context.Context, lines *bufio.Scanner, actions chan<- workout.Action) {
	defer close(actions)
	for lines.Scan() {
		act, quit, err := parseCommand(lines.Text())
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}
		if quit {
			return
		}
		if act == nil {
			continue
		}
		select {
		case actions <- act:
		case <-ctx.Done():
			return
		}
	}
}

// parseCommand maps one headless input line to a controller action
func parseCommand(line string) (workout.Action, bool, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return nil, false, nil
	}

	switch fields[0] {
	case "set", "s":
		return func(ctx context.Context, c *workout.Controller) { c.CompleteSet(ctx) }, false, nil
	case "done", "e":
		return func(ctx context.Context, c *workout.Controller) { c.CompleteExercise(ctx) }, false, nil
	case "skip", "n":
		return func(_ context.Context, c *workout.Controller) { c.SkipRest() }, false, nil
	case "pause", "p":
		return func(_ context.Context, c *workout.Controller) { c.TogglePause() }, false, nil
	case "finish", "f":
		return func(ctx context.Context, c *workout.Controller) { c.Finish(ctx) }, false, nil
	case "status":
		return func(_ context.Context, c *workout.Controller) { printState(c) }, false, nil
	case "help", "?":
		fmt.Println(headlessHelp)
		return nil, false, nil
	case "quit", "q", "exit":
		return nil, true, nil

	case "select", "sel":
		if len(fields) != 2 {
			return nil, false, fmt.Errorf("usage: select N")
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil || n < 1 {
			return nil, false, fmt.Errorf("invalid exercise number %q", fields[1])
		}
		return func(_ context.Context, c *workout.Controller) {
			seq := c.Sequence()
			if n > len(seq) {
				fmt.Printf("Error: the plan has %d exercises\n", len(seq))
				return
			}
			c.SelectExercise(seq[n-1].ID)
		}, false, nil

	case "abandon":
		save := len(fields) > 1 && fields[1] == "save"
		discard := len(fields) > 1 && fields[1] == "discard"
		return func(ctx context.Context, c *workout.Controller) {
			if !save && !discard && c.HasProgress() {
				fmt.Println("You have completed work. Type 'abandon save' to keep it or 'abandon discard' to throw it away.")
				return
			}
			c.Abandon(ctx, save)
		}, false, nil
	}

	return nil, false, fmt.Errorf("unknown command %q, type 'help'", fields[0])
}

// printState prints the current exercise, or the rest countdown
func printState(c *workout.Controller) {
	s := c.Session()
	if s == nil {
		return
	}
	if c.Rest().Resting() {
		fmt.Printf("Resting %s\n", parser.FormatSeconds(c.Rest().State().Remaining))
		return
	}

	ex, ok := c.Current()
	if !ok {
		fmt.Println("All exercises done. Type 'finish'.")
		return
	}
	p := s.ProgressFor(ex.ID)
	line := fmt.Sprintf("Now: %s · set %d/%d · %s (total %s)",
		ex.Name, p.CurrentSet, ex.TotalSets,
		parser.FormatSeconds(p.ElapsedSeconds),
		parser.FormatSeconds(s.TotalElapsedSeconds))
	if s.IsPaused {
		line += " · paused"
	}
	fmt.Println(line)
}

// printRestCountdown reports the rest every 15 seconds and for the last three
func printRestCountdown(c *workout.Controller) {
	if !c.Rest().Resting() {
		return
	}
	remaining := c.Rest().State().Remaining
	if remaining <= 3 || remaining%15 == 0 {
		fmt.Println(dimStyle.Render("  rest " + parser.FormatSeconds(remaining)))
	}
}

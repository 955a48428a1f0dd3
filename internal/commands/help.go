package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var helpCmd = &cobra.Command{
	Use:   "help",
	Short: "Show comprehensive help for wrokout",
	Long:  `Display detailed help for all wrokout commands and flags.`,
	Run: func(cmd *cobra.Command, args []string) {
		showCustomHelp()
	},
}

func showCustomHelp() {
	fmt.Print(`
██╗    ██╗██████╗  ██████╗ ██╗  ██╗ ██████╗ ██╗   ██╗████████╗
██║    ██║██╔══██╗██╔═══██╗██║ ██╔╝██╔═══██╗██║   ██║╚══██╔══╝
██║ █╗ ██║██████╔╝██║   ██║█████╔╝ ██║   ██║██║   ██║   ██║
██║███╗██║██╔══██╗██║   ██║██╔═██╗ ██║   ██║██║   ██║   ██║
╚███╔███╔╝██║  ██║╚██████╔╝██║  ██╗╚██████╔╝╚██████╔╝   ██║
 ╚══╝╚══╝ ╚═╝  ╚═╝ ╚═════╝ ╚═╝  ╚═╝ ╚═════╝  ╚═════╝    ╚═╝

wrokout - terminal workout runner

COMMANDS:

  plan add <name>         Create a plan
    --note                Additional notes
  plan ls                 List plans
  plan show <plan>        Show a plan's exercises
  plan rm <plan>          Delete a plan

  exercise add <plan> <exercise>
                          Append an exercise to a plan
    --sets, --reps        Sets and reps per set
    --weight              Working weight in kg
    --rest                Rest after each set (90, 90s, 1m30s, 1:30)
    --day                 Weekday: mon..sun

    Smart syntax:
      3x5           Sets x reps
      @80kg         Weight (kg or lb)
      rest:90s      Rest after each set
      day:mon       Only on Mondays

    Example:
      wrokout exercise add push "Bench press 3x5 @80kg rest:2m"

  exercise rm <plan> <#>  Remove an exercise by position

  start <plan>            Start or resume a workout
    --today               Only today's exercises
    --fresh               Discard an unfinished workout first
    -y, --yes             Resume without asking
    --no-ui               Typed commands instead of the session screen

    Session keys:
      ↑/↓ enter     Pick an exercise
      space/s       Complete set
      e             Complete exercise
      n             Skip rest
      p             Pause/resume
      f             Finish
      a             Abandon
      q/esc         Leave (resume later)

  status                  Show the unfinished workout
  abandon                 Discard the unfinished workout
    -f, --force           Even when sets were completed
  history                 List completed workouts
    -n, --limit           Number of workouts (0 for all)

  timer <spec>            Standalone timer
    stopwatch | countdown 90s | amrap 12m | emom 60x10 | tabata 20/10x8

  version                 Print version information
  help                    Show this help

GLOBAL FLAGS:
  --config                Config file (default ~/.config/wrokout/config.yaml)
  --debug                 Debug logging

`)
}

package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/wrokout/internal/db"
	"github.com/balkashynov/wrokout/internal/parser"
)

var exerciseCmd = &cobra.Command{
	Use:     "exercise",
	Aliases: []string{"ex"},
	Short:   "Manage the exercises of a plan",
}

var exerciseAddCmd = &cobra.Command{
	Use:   "add <plan> <exercise description>",
	Short: "Append an exercise to a plan",
	Long: `Append an exercise to the end of a plan.

Smart parsing syntax:
  3x5         - Sets x reps
  @80kg       - Working weight (kg or lb)
  rest:90s    - Rest after each set (90, 90s, 1m30s, 1:30; rest:0 for none)
  day:mon     - Only on this weekday (used by 'start --today')

Flags take precedence over parsed values.

Examples:
  wrokout exercise add "Push day" "Bench press 3x5 @80kg rest:2m"
  wrokout exercise add legs Squat --sets 5 --reps 5 --weight 100`,
	Args: cobra.MinimumNArgs(2),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		plan, err := db.FindPlan(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		parsed := parser.ParseExercise(strings.Join(args[1:], " "))
		if len(parsed.Errors) > 0 {
			fmt.Printf("Error: %s\n", strings.Join(parsed.Errors, ", "))
			return
		}

		req := db.AddExerciseRequest{
			PlanID:      plan.ID,
			Name:        parsed.Name,
			Sets:        parsed.Sets,
			Reps:        parsed.Reps,
			WeightKg:    parsed.WeightKg,
			RestSeconds: int(cfg.Session.DefaultRest.Seconds()),
			DayOfWeek:   parsed.DayOfWeek,
		}
		if parsed.RestSeconds != nil {
			req.RestSeconds = *parsed.RestSeconds
		}

		// Override with explicit flags (flags take precedence)
		if cmd.Flags().Changed("sets") {
			req.Sets, _ = cmd.Flags().GetInt("sets")
		}
		if cmd.Flags().Changed("reps") {
			req.Reps, _ = cmd.Flags().GetInt("reps")
		}
		if cmd.Flags().Changed("weight") {
			req.WeightKg, _ = cmd.Flags().GetFloat64("weight")
		}
		if flagRest, _ := cmd.Flags().GetString("rest"); flagRest != "" {
			seconds, err := parser.ParseSeconds(flagRest)
			if err != nil {
				fmt.Printf("Error parsing rest: %v\n", err)
				return
			}
			req.RestSeconds = seconds
		}
		if flagDay, _ := cmd.Flags().GetString("day"); flagDay != "" {
			day, err := parser.ParseWeekday(flagDay)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			req.DayOfWeek = day
		}
		if req.Sets == 0 {
			req.Sets = 1
		}

		exercise, err := db.AddExercise(req)
		if err != nil {
			fmt.Printf("Error adding exercise: %v\n", err)
			return
		}

		fmt.Printf("Added #%d to %s: %s\n", exercise.Position, plan.Name, exercise.Name)
		fmt.Printf("  Sets: %d × %d\n", exercise.TotalSets, exercise.Reps)
		if exercise.WeightKg > 0 {
			fmt.Printf("  Weight: %gkg\n", exercise.WeightKg)
		}
		if exercise.RestSeconds > 0 {
			fmt.Printf("  Rest: %s\n", parser.FormatSeconds(exercise.RestSeconds))
		} else {
			fmt.Println("  Rest: none")
		}
		if exercise.DayOfWeek > 0 {
			fmt.Printf("  Day: %s\n", parser.WeekdayName(exercise.DayOfWeek))
		}
	}),
}

var exerciseRemoveCmd = &cobra.Command{
	Use:   "rm <plan> <position|id>",
	Short: "Remove an exercise from a plan",
	Args:  cobra.ExactArgs(2),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		plan, err := db.FindPlan(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		removed, err := db.RemoveExercise(plan.ID, args[1])
		if err != nil {
			fmt.Printf("Error removing exercise: %v\n", err)
			return
		}
		fmt.Printf("Removed #%d from %s: %s\n", removed.Position, plan.Name, removed.Name)
	}),
}

func init() {
	exerciseAddCmd.Flags().Int("sets", 0, "Number of sets")
	exerciseAddCmd.Flags().Int("reps", 0, "Reps per set")
	exerciseAddCmd.Flags().Float64("weight", 0, "Working weight in kg")
	exerciseAddCmd.Flags().String("rest", "", "Rest after each set: 90, 90s, 1m30s, 1:30")
	exerciseAddCmd.Flags().String("day", "", "Weekday: mon..sun or 1..7")

	exerciseCmd.AddCommand(exerciseAddCmd)
	exerciseCmd.AddCommand(exerciseRemoveCmd)
}

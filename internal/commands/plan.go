package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/wrokout/internal/db"
	"github.com/balkashynov/wrokout/internal/models"
	"github.com/balkashynov/wrokout/internal/parser"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Manage workout plans",
}

var planAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a new plan",
	Long: `Create an empty plan. Add exercises with 'wrokout exercise add'.

Examples:
  wrokout plan add "Push day"
  wrokout plan add Legs --note "squat focus"`,
	Args: cobra.MinimumNArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		note, _ := cmd.Flags().GetString("note")
		plan, err := db.CreatePlan(db.CreatePlanRequest{
			Name: strings.Join(args, " "),
			Note: note,
		})
		if err != nil {
			fmt.Printf("Error creating plan: %v\n", err)
			return
		}
		fmt.Printf("Created plan %s: %s\n", shortID(plan.ID), plan.Name)
	}),
}

var planListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List plans",
	Run: withDB(func(cmd *cobra.Command, args []string) {
		plans, err := db.GetPlans()
		if err != nil {
			fmt.Printf("Error fetching plans: %v\n", err)
			return
		}
		if len(plans) == 0 {
			fmt.Println("No plans found. Use 'wrokout plan add \"Push day\"' to create your first plan.")
			return
		}

		fmt.Printf("%-10s %-30s %-10s %s\n", "ID", "NAME", "EXERCISES", "SETS")
		fmt.Println(strings.Repeat("-", 60))
		for _, p := range plans {
			sets := 0
			for _, e := range p.Exercises {
				sets += e.TotalSets
			}
			fmt.Printf("%-10s %-30s %-10d %d\n", shortID(p.ID), truncate(p.Name, 30), len(p.Exercises), sets)
		}
	}),
}

var planShowCmd = &cobra.Command{
	Use:   "show <plan>",
	Short: "Show a plan and its exercises",
	Args:  cobra.ExactArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		plan, err := db.FindPlan(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		printPlan(plan)
	}),
}

var planRemoveCmd = &cobra.Command{
	Use:     "rm <plan>",
	Aliases: []string{"delete"},
	Short:   "Delete a plan and its exercises",
	Args:    cobra.ExactArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		plan, err := db.FindPlan(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if err := db.DeletePlan(plan.ID); err != nil {
			fmt.Printf("Error deleting plan: %v\n", err)
			return
		}
		fmt.Printf("Deleted plan %s: %s\n", shortID(plan.ID), plan.Name)
	}),
}

func printPlan(plan *models.Plan) {
	fmt.Println(titleStyle.Render(plan.Name) + "  " + dimStyle.Render(shortID(plan.ID)))
	if plan.Note != "" {
		fmt.Println(dimStyle.Render(plan.Note))
	}
	fmt.Println()

	if len(plan.Exercises) == 0 {
		fmt.Println("No exercises yet. Use 'wrokout exercise add <plan> \"Bench 3x5 @80kg\"'.")
		return
	}

	fmt.Printf("%-3s %-28s %-6s %-6s %-8s %-6s %s\n", "#", "EXERCISE", "SETS", "REPS", "WEIGHT", "REST", "DAY")
	fmt.Println(strings.Repeat("-", 68))
	for _, e := range plan.Exercises {
		weight := "-"
		if e.WeightKg > 0 {
			weight = fmt.Sprintf("%gkg", e.WeightKg)
		}
		rest := "-"
		if e.RestSeconds > 0 {
			rest = parser.FormatSeconds(e.RestSeconds)
		}
		fmt.Printf("%-3d %-28s %-6d %-6d %-8s %-6s %s\n",
			e.Position,
			truncate(e.Name, 28),
			e.TotalSets,
			e.Reps,
			weight,
			rest,
			parser.WeekdayName(e.DayOfWeek))
	}
}

// shortID is the id prefix accepted by plan lookups
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, n int) string {
	if len([]rune(s)) <= n {
		return s
	}
	return string([]rune(s)[:n-3]) + "..."
}

func init() {
	planAddCmd.Flags().String("note", "", "Additional notes")

	planCmd.AddCommand(planAddCmd)
	planCmd.AddCommand(planListCmd)
	planCmd.AddCommand(planShowCmd)
	planCmd.AddCommand(planRemoveCmd)
}

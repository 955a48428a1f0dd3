package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/wrokout/internal/db"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the unfinished workout, if any",
	Run: withDB(func(cmd *cobra.Command, args []string) {
		rec, ok := newGuard().Peek()
		if !ok {
			fmt.Println("No unfinished workout")
			return
		}

		s := rec.Session
		planName := s.PlanID
		total := 0
		if plan, err := db.FindPlan(s.PlanID); err == nil {
			planName = plan.Name
			total = len(plan.Exercises)
		}

		fmt.Printf("⏸  Unfinished workout: %s\n", planName)
		fmt.Printf("Started at: %s\n", s.StartedAt.Format("15:04:05"))
		fmt.Printf("Last saved: %s ago\n", formatDuration(time.Since(rec.SavedAt)))
		fmt.Printf("Workout time: %s\n", formatDuration(time.Duration(s.TotalElapsedSeconds)*time.Second))
		if total > 0 {
			fmt.Printf("Exercises done: %d/%d\n", len(s.CompletedExerciseIDs), total)
		} else {
			fmt.Printf("Exercises done: %d\n", len(s.CompletedExerciseIDs))
		}
		fmt.Printf("Resume with 'wrokout start %s', discard with 'wrokout abandon'.\n", planName)
	}),
}

var abandonCmd = &cobra.Command{
	Use:   "abandon",
	Short: "Discard the unfinished workout",
	Run: withDB(func(cmd *cobra.Command, args []string) {
		guard := newGuard()
		rec, ok := guard.Peek()
		if !ok {
			fmt.Println("No unfinished workout")
			return
		}

		force, _ := cmd.Flags().GetBool("force")
		if rec.Session.HasProgress() && !force {
			fmt.Println("Error: the workout has completed sets. Use --force to discard it anyway.")
			return
		}

		guard.Clear()
		fmt.Println("Unfinished workout discarded")
	}),
}

func init() {
	abandonCmd.Flags().BoolP("force", "f", false, "Discard even when sets or exercises were completed")
}

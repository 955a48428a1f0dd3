package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/wrokout/internal/db"
	"github.com/balkashynov/wrokout/internal/parser"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List completed workouts",
	Run: withDB(func(cmd *cobra.Command, args []string) {
		limit, _ := cmd.Flags().GetInt("limit")
		logs, err := db.GetSessionHistory(cfg.Profile.OwnerID, limit)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if len(logs) == 0 {
			fmt.Println("No completed workouts yet")
			return
		}

		for _, l := range logs {
			duration := "-"
			if l.CompletedAt != nil {
				duration = formatDuration(l.CompletedAt.Sub(l.StartedAt))
			}
			fmt.Printf("%s  %-24s %s\n",
				titleStyle.Render(l.StartedAt.Format("Mon 02 Jan 15:04")),
				truncate(l.Plan.Name, 24),
				dimStyle.Render(duration))

			if len(l.Exercises) == 0 {
				fmt.Println(dimStyle.Render("    no exercises completed"))
				continue
			}
			for _, e := range l.Exercises {
				load := fmt.Sprintf("%d sets, %d reps", e.SetsCompleted, e.RepsCompleted)
				if e.WeightUsedKg > 0 {
					load += fmt.Sprintf(" @ %gkg", e.WeightUsedKg)
				}
				fmt.Printf("    ✓ %-24s %-26s %s\n",
					truncate(e.Exercise.Name, 24),
					load,
					parser.FormatSeconds(e.ElapsedSeconds))
			}
		}
		fmt.Println(strings.Repeat("-", 60))
		fmt.Printf("%d workouts\n", len(logs))
	}),
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 10, "Number of workouts to show (0 for all)")
}

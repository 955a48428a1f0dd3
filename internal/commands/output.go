package commands

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/wrokout/internal/parser"
	"github.com/balkashynov/wrokout/internal/tui"
	"github.com/balkashynov/wrokout/internal/workout"
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(tui.ColorAccentBright)).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(tui.ColorDisabledText))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(tui.ColorSuccess)).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(tui.ColorWarning))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(tui.ColorError))
)

// printSummary prints the end-of-workout report
func printSummary(planName string, s workout.Summary) {
	fmt.Println(successStyle.Render("🏁 Workout finished: " + planName))
	fmt.Printf("Total time: %s\n", parser.FormatSeconds(s.TotalElapsedSeconds))
	fmt.Printf("Sets completed: %d\n", s.SetsCompleted)
	if len(s.CompletedExercises) == 0 {
		fmt.Println("No exercises completed")
		return
	}
	fmt.Printf("Exercises completed (%d):\n", len(s.CompletedExercises))
	for _, e := range s.CompletedExercises {
		fmt.Printf("  ✓ %s %s\n", e.Name, dimStyle.Render(fmt.Sprintf("%d×%d", e.TotalSets, e.Reps)))
	}
}

// printNotice prints a status event on its own line
func printNotice(n workout.Notice) {
	switch n.Kind {
	case workout.NoticeViolation, workout.NoticeAlreadyCompletedToday:
		fmt.Println(errorStyle.Render("✗ " + n.Message))
	case workout.NoticeWarning:
		fmt.Println(warnStyle.Render("! " + n.Message))
	default:
		fmt.Println("• " + n.Message)
	}
}

// formatDuration formats a duration in a human-readable way
func formatDuration(d time.Duration) string {
	if d.Hours() >= 1 {
		return fmt.Sprintf("%.1fh", d.Hours())
	} else if d.Minutes() >= 1 {
		return fmt.Sprintf("%.0fm", d.Minutes())
	} else {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
}

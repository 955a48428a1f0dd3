package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/wrokout/internal/audio"
	"github.com/balkashynov/wrokout/internal/config"
	"github.com/balkashynov/wrokout/internal/db"
	"github.com/balkashynov/wrokout/internal/log"
	"github.com/balkashynov/wrokout/internal/models"
	"github.com/balkashynov/wrokout/internal/pubsub"
	"github.com/balkashynov/wrokout/internal/snapshot"
	"github.com/balkashynov/wrokout/internal/tui"
	"github.com/balkashynov/wrokout/internal/workout"
)

var startCmd = &cobra.Command{
	Use:   "start <plan>",
	Short: "Start or resume a workout",
	Long: `Start a workout for a plan. Opens the interactive session screen by default,
use --no-ui to drive the session with typed commands instead.

An unfinished workout from today is offered for recovery first.

Examples:
  wrokout start "Push day"        # Interactive session
  wrokout start push --today      # Only today's exercises
  wrokout start push --no-ui      # Line commands: set, done, skip, pause, ...`,
	Args: cobra.ExactArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		plans := db.NewPlanCatalog(db.DB, cfg.Cache.SequenceTTL)
		plan, err := plans.Find(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		noUI, _ := cmd.Flags().GetBool("no-ui")
		today, _ := cmd.Flags().GetBool("today")
		fresh, _ := cmd.Flags().GetBool("fresh")
		assumeYes, _ := cmd.Flags().GetBool("yes")

		cues := newCuePlayer()
		defer cues.Close()
		notices := pubsub.NewFeed[workout.Notice](32)
		defer notices.Close()

		guard := newGuard()
		ctrl := workout.NewController(workout.Deps{
			Plans:            sequenceSource(plans, today),
			Logs:             db.NewSessionLogStore(db.DB),
			Guard:            guard,
			Cues:             cues,
			Notices:          notices,
			KeepRestOnSelect: !cfg.Session.CancelRestOnSelect,
		})

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		lines := bufio.NewScanner(os.Stdin)
		if err := startOrResume(ctx, ctrl, guard, plans, plan, fresh, assumeYes, lines); err != nil {
			if errors.Is(err, workout.ErrAlreadyCompletedToday) {
				fmt.Printf("✓ %s was already completed today\n", plan.Name)
				return
			}
			fmt.Printf("Error: %v\n", err)
			return
		}

		if noUI {
			runHeadless(ctx, ctrl, notices, lines, plan.Name)
			reportEnd(ctx, ctrl, plan, false)
			return
		}

		result, err := tui.RunSessionTUI(ctx, ctrl, notices, plan.Name, cfg.Session.Tick)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		reportEnd(ctx, ctrl, plan, result.Detached)
	}),
}

// startOrResume offers an eligible snapshot for recovery, then starts fresh
func startOrResume(ctx context.Context, ctrl *workout.Controller, guard *snapshot.Guard, plans *db.PlanCatalog, plan *models.Plan, fresh, assumeYes bool, lines *bufio.Scanner) error {
	recovered, ok := guard.Recover()
	if ok && fresh {
		guard.Clear()
		ok = false
	}

	if ok && recovered.PlanID != plan.ID {
		other := recovered.PlanID
		if p, err := plans.Find(recovered.PlanID); err == nil {
			other = p.Name
		}
		return fmt.Errorf("an unfinished workout for %s is waiting. Resume it with 'wrokout start %s' or discard it with 'wrokout abandon'", other, other)
	}

	if ok {
		question := fmt.Sprintf("Resume the workout started at %s (%d exercises done, %s)?",
			recovered.StartedAt.Format("15:04"),
			len(recovered.CompletedExerciseIDs),
			formatDuration(time.Duration(recovered.TotalElapsedSeconds)*time.Second))
		if assumeYes || confirm(lines, question, true) {
			_, err := ctrl.Resume(ctx, recovered)
			return err
		}
		guard.Clear()
	}

	_, err := ctrl.Start(ctx, plan.ID, cfg.Profile.OwnerID)
	return err
}

// reportEnd prints how the session ended
func reportEnd(ctx context.Context, ctrl *workout.Controller, plan *models.Plan, detached bool) {
	switch ctrl.Phase() {
	case workout.PhaseFinished:
		fmt.Println()
		printSummary(plan.Name, ctrl.Finish(ctx))
	case workout.PhaseAbandoned:
		fmt.Println("Workout discarded")
	default:
		if detached || ctrl.Session().Active() {
			fmt.Printf("⏸  Workout saved. Run 'wrokout start %s' to pick it up again.\n", plan.Name)
		}
	}
}

// confirm asks a yes/no question on stdin; an empty answer picks def
func confirm(lines *bufio.Scanner, question string, def bool) bool {
	hint := "[y/N]"
	if def {
		hint = "[Y/n]"
	}
	fmt.Printf("%s %s ", question, hint)
	if !lines.Scan() {
		return def
	}
	switch strings.ToLower(strings.TrimSpace(lines.Text())) {
	case "":
		return def
	case "y", "yes":
		return true
	default:
		return false
	}
}

// sequenceSource serves exercise sequences from the catalog, optionally filtered to today
func sequenceSource(plans *db.PlanCatalog, today bool) workout.PlanStore {
	if today {
		return db.ForWeekday(plans, time.Now().Weekday())
	}
	return plans
}

// newGuard builds the persistence guard on the configured snapshot backend
func newGuard() *snapshot.Guard {
	var store snapshot.Store
	switch cfg.Snapshot.Backend {
	case config.SnapshotDB:
		store = snapshot.NewDBStore(db.DB)
	default:
		store = snapshot.NewFileStore(cfg.SnapshotDir())
	}
	return snapshot.NewGuard(store, cfg.Profile.OwnerID, snapshot.WithKey(cfg.Snapshot.Key))
}

// newCuePlayer builds the audio cue service on the configured backend
func newCuePlayer() *audio.Service {
	var backend audio.Backend
	switch cfg.Sound.Backend {
	case config.SoundCommand:
		backend = audio.NewCommandBackend(cfg.Sound.Commands)
	case config.SoundNone:
		backend = audio.NoopBackend{}
	default:
		backend = audio.NewBellBackend(os.Stderr)
	}
	log.Debug(log.CatAudio, "cue player ready", "backend", cfg.Sound.Backend, "enabled", cfg.Sound.Enabled)
	return audio.NewService(backend, cfg.Sound.Enabled && cfg.Sound.Backend != config.SoundNone,
		audio.WithEnabledCues(cfg.Sound.EnabledCues))
}

func init() {
	startCmd.Flags().Bool("no-ui", false, "Run without the interactive screen")
	startCmd.Flags().Bool("today", false, "Only exercises scheduled for today (or any day)")
	startCmd.Flags().Bool("fresh", false, "Discard any unfinished workout and start over")
	startCmd.Flags().BoolP("yes", "y", false, "Resume an unfinished workout without asking")
}

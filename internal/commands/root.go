package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/wrokout/internal/config"
	"github.com/balkashynov/wrokout/internal/db"
	"github.com/balkashynov/wrokout/internal/log"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	cfgFile string
	debug   bool

	// cfg is loaded by withConfig before a command runs
	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "wrokout",
	Short: "A terminal workout runner",
	Long: `wrokout runs your training plans from the terminal.
Build a plan, start it, and let the clock count your sets, rests and intervals.`,
}

// setup loads configuration and logging, and opens the database when needDB is set
func setup(needDB bool) (func(), error) {
	c, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if debug {
		c.Log.Debug = true
	}
	cfg = c

	closeLog := func() {}
	if cleanup, err := log.Init(cfg.Log.Path); err != nil {
		fmt.Printf("Warning: logging disabled: %v\n", err)
	} else {
		closeLog = cleanup
		if cfg.Log.Debug {
			log.SetMinLevel(log.LevelDebug)
		}
	}
	log.Debug(log.CatConfig, "config loaded", "data_dir", cfg.DataDir, "owner", cfg.Profile.OwnerID, "snapshot", cfg.Snapshot.Backend)

	if !needDB {
		return closeLog, nil
	}
	if err := db.Initialize(cfg.DataDir); err != nil {
		closeLog()
		return nil, err
	}
	return func() {
		if err := db.Close(); err != nil {
			log.ErrorErr(log.CatDB, "failed to close database", err)
		}
		closeLog()
	}, nil
}

// withConfig wraps a command function to load the configuration first
func withConfig(fn func(*cobra.Command, []string)) func(*cobra.Command, []string) {
	return wrap(false, fn)
}

// withDB wraps a command function to load the configuration and open the database first
func withDB(fn func(*cobra.Command, []string)) func(*cobra.Command, []string) {
	return wrap(true, fn)
}

func wrap(needDB bool, fn func(*cobra.Command, []string)) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		teardown, err := setup(needDB)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		defer teardown()
		fn(cmd, args)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("wrokout %s (commit %s, built %s)\n", version, commit, date)
	},
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default ~/.config/wrokout/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Write debug lines to the log file")

	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(exerciseCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(abandonCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(timerCmd)
	rootCmd.AddCommand(helpCmd)
	rootCmd.AddCommand(versionCmd)
}

// Package config loads wrokout settings from a YAML file and WROKOUT_*
// environment variables.
package config

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	DataDir  string         `mapstructure:"data_dir"`
	Profile  ProfileConfig  `mapstructure:"profile"`
	Session  SessionConfig  `mapstructure:"session"`
	Snapshot SnapshotConfig `mapstructure:"snapshot"`
	Sound    SoundConfig    `mapstructure:"sound"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Log      LogConfig      `mapstructure:"log"`
}

// ProfileConfig identifies the person training. OwnerID guards snapshot recovery.
type ProfileConfig struct {
	OwnerID string `mapstructure:"owner_id"`
}

type SessionConfig struct {
	Tick               time.Duration `mapstructure:"tick"`
	DefaultRest        time.Duration `mapstructure:"default_rest"`
	CancelRestOnSelect bool          `mapstructure:"cancel_rest_on_select"`
}

type SnapshotConfig struct {
	Backend string `mapstructure:"backend"` // file or db
	Key     string `mapstructure:"key"`
}

// SoundConfig controls audio cues.
type SoundConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Backend string `mapstructure:"backend"` // bell, command or none
	// EnabledCues toggles individual cues; missing cues are on.
	EnabledCues map[string]bool `mapstructure:"enabled_cues"`
	// Commands maps a cue name to a shell command for the command backend.
	Commands map[string]string `mapstructure:"commands"`
}

type CacheConfig struct {
	SequenceTTL time.Duration `mapstructure:"sequence_ttl"`
}

type LogConfig struct {
	Path  string `mapstructure:"path"` // defaults to <data_dir>/wrokout.log
	Debug bool   `mapstructure:"debug"`
}

const (
	SnapshotFile = "file"
	SnapshotDB   = "db"

	SoundBell    = "bell"
	SoundCommand = "command"
	SoundNone    = "none"
)

// Defaults returns the built-in configuration.
func Defaults() Config {
	home, _ := os.UserHomeDir()
	return Config{
		DataDir: filepath.Join(home, ".wrokout"),
		Profile: ProfileConfig{OwnerID: currentUser()},
		Session: SessionConfig{
			Tick:               time.Second,
			DefaultRest:        60 * time.Second,
			CancelRestOnSelect: true,
		},
		Snapshot: SnapshotConfig{Backend: SnapshotFile, Key: "wrokout.active_session"},
		Sound:    SoundConfig{Enabled: true, Backend: SoundBell},
		Cache:    CacheConfig{SequenceTTL: 10 * time.Minute},
	}
}

func currentUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "default"
}

// DefaultPath is where Load looks when no --config flag is given.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "wrokout", "config.yaml")
}

// Load reads configuration from path, then from WROKOUT_* environment
// variables. With an empty path the file at DefaultPath is used if it exists.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v, Defaults())

	v.SetEnvPrefix("wrokout")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = DefaultPath()
		if _, err := os.Stat(path); err != nil {
			path = ""
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.DataDir = expandHome(cfg.DataDir)
	cfg.Log.Path = expandHome(cfg.Log.Path)
	if cfg.Log.Path == "" {
		cfg.Log.Path = filepath.Join(cfg.DataDir, "wrokout.log")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("data_dir", d.DataDir)
	v.SetDefault("profile.owner_id", d.Profile.OwnerID)
	v.SetDefault("session.tick", d.Session.Tick)
	v.SetDefault("session.default_rest", d.Session.DefaultRest)
	v.SetDefault("session.cancel_rest_on_select", d.Session.CancelRestOnSelect)
	v.SetDefault("snapshot.backend", d.Snapshot.Backend)
	v.SetDefault("snapshot.key", d.Snapshot.Key)
	v.SetDefault("sound.enabled", d.Sound.Enabled)
	v.SetDefault("sound.backend", d.Sound.Backend)
	v.SetDefault("sound.enabled_cues", map[string]bool{})
	v.SetDefault("sound.commands", map[string]string{})
	v.SetDefault("cache.sequence_ttl", d.Cache.SequenceTTL)
	v.SetDefault("log.path", d.Log.Path)
	v.SetDefault("log.debug", d.Log.Debug)
}

// Validate rejects settings the engine cannot run with.
func (c Config) Validate() error {
	switch {
	case c.DataDir == "":
		return fmt.Errorf("data_dir must be set")
	case strings.TrimSpace(c.Profile.OwnerID) == "":
		return fmt.Errorf("profile.owner_id must be set")
	case c.Session.Tick <= 0:
		return fmt.Errorf("session.tick must be positive, got %s", c.Session.Tick)
	case c.Session.DefaultRest < 0:
		return fmt.Errorf("session.default_rest cannot be negative")
	case c.Cache.SequenceTTL < 0:
		return fmt.Errorf("cache.sequence_ttl cannot be negative")
	}

	switch c.Snapshot.Backend {
	case SnapshotFile, SnapshotDB:
	default:
		return fmt.Errorf("unknown snapshot.backend %q (want file or db)", c.Snapshot.Backend)
	}
	if c.Snapshot.Key == "" {
		return fmt.Errorf("snapshot.key must be set")
	}

	switch c.Sound.Backend {
	case SoundBell, SoundNone:
	case SoundCommand:
		if len(c.Sound.Commands) == 0 {
			return fmt.Errorf("sound.backend is command but sound.commands is empty")
		}
	default:
		return fmt.Errorf("unknown sound.backend %q (want bell, command or none)", c.Sound.Backend)
	}
	return nil
}

// SnapshotDir is where the file snapshot backend writes.
func (c Config) SnapshotDir() string {
	return filepath.Join(c.DataDir, "snapshots")
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

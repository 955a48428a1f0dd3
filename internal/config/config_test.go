package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, ".wrokout"), cfg.DataDir)
	require.Equal(t, time.Second, cfg.Session.Tick)
	require.Equal(t, 60*time.Second, cfg.Session.DefaultRest)
	require.True(t, cfg.Session.CancelRestOnSelect)
	require.Equal(t, SnapshotFile, cfg.Snapshot.Backend)
	require.Equal(t, "wrokout.active_session", cfg.Snapshot.Key)
	require.Equal(t, SoundBell, cfg.Sound.Backend)
	require.Equal(t, 10*time.Minute, cfg.Cache.SequenceTTL)
	require.Equal(t, filepath.Join(home, ".wrokout", "wrokout.log"), cfg.Log.Path)
	require.NotEmpty(t, cfg.Profile.OwnerID)
	require.Equal(t, filepath.Join(home, ".wrokout", "snapshots"), cfg.SnapshotDir())
}

func TestLoad_File(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeConfig(t, `
data_dir: /tmp/wrokout-test
profile:
  owner_id: alice
session:
  default_rest: 90s
  cancel_rest_on_select: false
snapshot:
  backend: db
sound:
  backend: command
  enabled_cues:
    warning: false
  commands:
    expired: "paplay done.oga"
cache:
  sequence_ttl: 1m
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "/tmp/wrokout-test", cfg.DataDir)
	require.Equal(t, "alice", cfg.Profile.OwnerID)
	require.Equal(t, 90*time.Second, cfg.Session.DefaultRest)
	require.False(t, cfg.Session.CancelRestOnSelect)
	require.Equal(t, SnapshotDB, cfg.Snapshot.Backend)
	require.Equal(t, SoundCommand, cfg.Sound.Backend)
	require.Equal(t, map[string]bool{"warning": false}, cfg.Sound.EnabledCues)
	require.Equal(t, "paplay done.oga", cfg.Sound.Commands["expired"])
	require.Equal(t, time.Minute, cfg.Cache.SequenceTTL)
	require.Equal(t, "/tmp/wrokout-test/wrokout.log", cfg.Log.Path)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeConfig(t, "profile:\n  owner_id: alice\n")
	t.Setenv("WROKOUT_PROFILE_OWNER_ID", "bob")
	t.Setenv("WROKOUT_SESSION_TICK", "500ms")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "bob", cfg.Profile.OwnerID)
	require.Equal(t, 500*time.Millisecond, cfg.Session.Tick)
}

func TestLoad_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := writeConfig(t, "data_dir: ~/gym\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, "gym"), cfg.DataDir)
}

func TestLoad_Errors(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = Load(writeConfig(t, "snapshot:\n  backend: redis\n"))
	require.ErrorContains(t, err, "snapshot.backend")

	_, err = Load(writeConfig(t, "session:\n  tick: 0s\n"))
	require.ErrorContains(t, err, "session.tick")
}

func TestValidate(t *testing.T) {
	base := Defaults()
	base.Profile.OwnerID = "alice"
	require.NoError(t, base.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty owner", func(c *Config) { c.Profile.OwnerID = " " }},
		{"negative rest", func(c *Config) { c.Session.DefaultRest = -time.Second }},
		{"unknown sound", func(c *Config) { c.Sound.Backend = "midi" }},
		{"command without commands", func(c *Config) { c.Sound.Backend = SoundCommand }},
		{"empty key", func(c *Config) { c.Snapshot.Key = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

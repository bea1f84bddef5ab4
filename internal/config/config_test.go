package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/taskdeck/internal/kv"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, CurrentVersion, cfg.Version)
	require.Equal(t, kv.TypeFile, cfg.Store.Type)
	require.Equal(t, filepath.Join(filepath.Dir(path), DefaultFileStore), cfg.StorePath())
	require.Equal(t, filepath.Join(filepath.Dir(path), ActivityFileName), cfg.ActivityPath())
	require.NoError(t, cfg.Validate())
}

func TestInitThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yml")
	cfg, err := Init(path)
	require.NoError(t, err)
	cfg.Store.Type = kv.TypeSQLite
	cfg.Defaults.Owner = "ana"
	require.NoError(t, cfg.Save())

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, kv.TypeSQLite, loaded.Store.Type)
	require.Equal(t, "ana", loaded.Defaults.Owner)
	require.Equal(t, filepath.Join(filepath.Dir(path), DefaultSQLiteStore), loaded.StorePath())

	_, err = Init(path)
	require.Error(t, err, "init must not overwrite an existing config")
}

func TestLoadFillsOmittedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("store:\n  type: memory\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, kv.TypeMemory, cfg.Store.Type)
	require.Equal(t, DefaultStoreKey, cfg.Store.Key)
	require.Equal(t, DefaultPriority, cfg.Defaults.Priority)
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]func(*Config){
		"store type": func(c *Config) { c.Store.Type = "etcd" },
		"priority":   func(c *Config) { c.Defaults.Priority = "urgent" },
		"color":      func(c *Config) { c.Defaults.Color = "teal" },
		"log level":  func(c *Config) { c.Log.Level = "chatty" },
		"log format": func(c *Config) { c.Log.Format = "xml" },
		"version":    func(c *Config) { c.Version = 7 },
		"threshold":  func(c *Config) { c.TUI.StaleThresholds = []StaleThreshold{{After: "soon", Color: "1"}} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := NewDefault(filepath.Join(t.TempDir(), "config.yml"))
			mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrInvalid))
		})
	}
}

func TestStoreOptions(t *testing.T) {
	cfg := NewDefault("/etc/taskdeck/config.yml")
	cfg.Store.Type = kv.TypeRedis
	opts := cfg.StoreOptions()
	require.Equal(t, DefaultRedisAddr, opts.Redis.Addr)

	cfg.Store.Type = kv.TypeSQLite
	cfg.Store.Path = ":memory:"
	require.Equal(t, ":memory:", cfg.StoreOptions().Path)

	cfg.Store.Path = "/var/lib/taskdeck.db"
	require.Equal(t, "/var/lib/taskdeck.db", cfg.StorePath())

	cfg.Activity.Disabled = true
	require.Empty(t, cfg.ActivityPath())
}

func TestStaleColor(t *testing.T) {
	cfg := NewDefault("/tmp/config.yml")
	require.Equal(t, "242", cfg.StaleColor(time.Minute))
	require.Equal(t, "226", cfg.StaleColor(100*time.Hour))
	require.Equal(t, "196", cfg.StaleColor(1000*time.Hour))

	cfg.TUI.StaleThresholds = []StaleThreshold{{After: "1h", Color: "9"}}
	require.Empty(t, cfg.StaleColor(time.Minute))
	require.Equal(t, "9", cfg.StaleColor(2*time.Hour))
}

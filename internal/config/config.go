package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/twiced-technology-gmbh/taskdeck/internal/kv"
	"github.com/twiced-technology-gmbh/taskdeck/internal/logging"
	"github.com/twiced-technology-gmbh/taskdeck/internal/project"
	"github.com/twiced-technology-gmbh/taskdeck/internal/task"
)

const (
	fileMode = 0o600
	dirMode  = 0o750
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config represents the taskdeck configuration file.
type Config struct {
	Version  int            `yaml:"version"`
	Store    StoreConfig    `yaml:"store"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Log      logging.Config `yaml:"log"`
	Activity ActivityConfig `yaml:"activity,omitempty"`
	TUI      TUIConfig      `yaml:"tui,omitempty"`

	// path is the absolute path of the config file (not serialized).
	path string `yaml:"-"`
}

// StoreConfig selects the key-value backend.
type StoreConfig struct {
	Type string `yaml:"type"`
	// Path is the store file for the file and sqlite backends. Relative
	// paths resolve against the config directory.
	Path  string      `yaml:"path,omitempty"`
	Key   string      `yaml:"key,omitempty"`
	Redis RedisConfig `yaml:"redis,omitempty"`
	// CheckNameConflicts rejects saving a project under a name already
	// held by a different project.
	CheckNameConflicts bool `yaml:"check_name_conflicts,omitempty"`
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string `yaml:"addr,omitempty"`
	DB       int    `yaml:"db,omitempty"`
	Password string `yaml:"password,omitempty"`
}

// DefaultsConfig holds default values for new tasks and projects.
type DefaultsConfig struct {
	Priority string `yaml:"priority"`
	Color    string `yaml:"color"`
	Owner    string `yaml:"owner,omitempty"`
}

// ActivityConfig controls the JSONL activity log.
type ActivityConfig struct {
	Disabled bool   `yaml:"disabled,omitempty"`
	Path     string `yaml:"path,omitempty"`
}

// StaleThreshold maps an idle duration to an ANSI color code. Tasks
// untouched for longer than After render in Color.
type StaleThreshold struct {
	After string `yaml:"after" json:"after"` // duration string, e.g. "24h"
	Color string `yaml:"color" json:"color"` // ANSI 256 color code, e.g. "226"
}

// TUIConfig holds display settings shared by the TUI and tables.
type TUIConfig struct {
	StaleThresholds []StaleThreshold `yaml:"stale_thresholds,omitempty"`
}

// NewDefault creates a Config with default values whose file lives at path.
func NewDefault(path string) *Config {
	return &Config{
		Version: CurrentVersion,
		Store: StoreConfig{
			Type: DefaultStoreType,
			Key:  DefaultStoreKey,
		},
		Defaults: DefaultsConfig{
			Priority: DefaultPriority,
			Color:    DefaultColor,
		},
		Log:  DefaultLog,
		path: path,
	}
}

// DefaultPath returns ~/.config/taskdeck/config.yml, or the platform
// equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config directory: %w", err)
	}
	return filepath.Join(dir, AppDir, ConfigFileName), nil
}

// Path returns the absolute path of the config file.
func (c *Config) Path() string { return c.path }

// Dir returns the directory holding the config file.
func (c *Config) Dir() string { return filepath.Dir(c.path) }

// StorePath returns the resolved store location for file and sqlite
// backends.
func (c *Config) StorePath() string {
	p := c.Store.Path
	if p == "" {
		switch c.Store.Type {
		case kv.TypeSQLite:
			p = DefaultSQLiteStore
		default:
			p = DefaultFileStore
		}
	}
	return c.resolve(p)
}

// StoreOptions returns the kv options for the configured backend.
func (c *Config) StoreOptions() kv.Options {
	addr := c.Store.Redis.Addr
	if addr == "" {
		addr = DefaultRedisAddr
	}
	return kv.Options{
		Type: c.Store.Type,
		Path: c.StorePath(),
		Redis: kv.RedisOptions{
			Addr:     addr,
			DB:       c.Store.Redis.DB,
			Password: c.Store.Redis.Password,
		},
	}
}

// ActivityPath returns where mutations are logged, or "" when disabled.
func (c *Config) ActivityPath() string {
	if c.Activity.Disabled {
		return ""
	}
	p := c.Activity.Path
	if p == "" {
		p = ActivityFileName
	}
	return c.resolve(p)
}

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) || p == kv.SQLiteMemory {
		return p
	}
	return filepath.Join(c.Dir(), p)
}

// Validate checks the config for errors.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("%w: unsupported version %d (expected %d)", ErrInvalid, c.Version, CurrentVersion)
	}
	if !contains(kv.Types, c.Store.Type) {
		return fmt.Errorf("%w: unknown store.type %q", ErrInvalid, c.Store.Type)
	}
	if c.Store.Redis.DB < 0 {
		return fmt.Errorf("%w: store.redis.db must be >= 0", ErrInvalid)
	}
	if c.Defaults.Priority != "" && !contains(task.Priorities, c.Defaults.Priority) {
		return fmt.Errorf("%w: default priority %q not in %v", ErrInvalid, c.Defaults.Priority, task.Priorities)
	}
	if c.Defaults.Color != "" && !contains(project.Colors, c.Defaults.Color) {
		return fmt.Errorf("%w: default color %q not in %v", ErrInvalid, c.Defaults.Color, project.Colors)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if f := c.Log.Format; f != "" && f != logging.FormatConsole && f != logging.FormatJSON {
		return fmt.Errorf("%w: log.format must be %q or %q", ErrInvalid, logging.FormatConsole, logging.FormatJSON)
	}
	return c.validateTUI()
}

func (c *Config) validateTUI() error {
	for i, st := range c.TUI.StaleThresholds {
		if _, err := time.ParseDuration(st.After); err != nil {
			return fmt.Errorf("%w: tui.stale_thresholds[%d].after %q: %w", ErrInvalid, i, st.After, err)
		}
		if st.Color == "" {
			return fmt.Errorf("%w: tui.stale_thresholds[%d].color is required", ErrInvalid, i)
		}
	}
	return nil
}

// Threshold is a parsed StaleThreshold.
type Threshold struct {
	After time.Duration
	Color string
}

// StaleThresholds returns the thresholds as parsed durations sorted
// ascending. DefaultStaleThresholds apply when none are configured.
func (c *Config) StaleThresholds() []Threshold {
	thresholds := c.TUI.StaleThresholds
	if len(thresholds) == 0 {
		thresholds = DefaultStaleThresholds
	}
	result := make([]Threshold, 0, len(thresholds))
	for _, st := range thresholds {
		d, err := time.ParseDuration(st.After)
		if err != nil {
			continue
		}
		result = append(result, Threshold{After: d, Color: st.Color})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].After < result[j].After })
	return result
}

// StaleColor returns the color for a task idle for d, or "" when no
// threshold matches.
func (c *Config) StaleColor(d time.Duration) string {
	color := ""
	for _, th := range c.StaleThresholds() {
		if d >= th.After {
			color = th.Color
		}
	}
	return color
}

// Init writes a default config to path, failing if one already exists.
func Init(path string) (*Config, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	if _, err := os.Stat(absPath); err == nil {
		return nil, fmt.Errorf("config already exists at %s", absPath)
	}

	cfg := NewDefault(absPath)
	if err := cfg.Save(); err != nil {
		return nil, fmt.Errorf("writing config: %w", err)
	}
	return cfg, nil
}

// Save writes the config to its file, creating the directory.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.Dir(), dirMode); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(c.path, data, fileMode)
}

// Load reads and validates the config at path, or at DefaultPath when
// path is empty. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg := NewDefault(absPath)
	data, err := os.ReadFile(absPath) //nolint:gosec // config path from trusted source
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.path = absPath
	cfg.fillDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// fillDefaults restores defaults for fields a hand-written file left empty.
func (c *Config) fillDefaults() {
	if c.Version == 0 {
		c.Version = CurrentVersion
	}
	if c.Store.Type == "" {
		c.Store.Type = DefaultStoreType
	}
	if c.Store.Key == "" {
		c.Store.Key = DefaultStoreKey
	}
	if c.Defaults.Priority == "" {
		c.Defaults.Priority = DefaultPriority
	}
	if c.Defaults.Color == "" {
		c.Defaults.Color = DefaultColor
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

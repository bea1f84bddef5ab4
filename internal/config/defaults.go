// Package config handles taskdeck configuration.
package config

import (
	"github.com/twiced-technology-gmbh/taskdeck/internal/kv"
	"github.com/twiced-technology-gmbh/taskdeck/internal/logging"
	"github.com/twiced-technology-gmbh/taskdeck/internal/project"
	"github.com/twiced-technology-gmbh/taskdeck/internal/storage"
	"github.com/twiced-technology-gmbh/taskdeck/internal/task"
)

const (
	// AppDir is the directory under the user config dir holding taskdeck files.
	AppDir = "taskdeck"
	// ConfigFileName is the name of the config file within AppDir.
	ConfigFileName = "config.yml"
	// ActivityFileName is the default activity log name within AppDir.
	ActivityFileName = "activity.jsonl"

	// DefaultStoreType is the backend used when none is configured.
	DefaultStoreType = kv.TypeFile
	// DefaultFileStore is the JSON store file name for the file backend.
	DefaultFileStore = "projects.json"
	// DefaultSQLiteStore is the database file name for the sqlite backend.
	DefaultSQLiteStore = "taskdeck.db"
	// DefaultRedisAddr is the Redis address used when none is configured.
	DefaultRedisAddr = "localhost:6379"

	// DefaultPriority is the priority given to new tasks by the CLI.
	DefaultPriority = task.PriorityMedium
	// DefaultColor is the color given to new projects by the CLI.
	DefaultColor = project.ColorBlue

	// DefaultLogLevel keeps diagnostics quiet unless asked for.
	DefaultLogLevel = "warn"

	// CurrentVersion is the current config schema version.
	CurrentVersion = 1
)

// DefaultStaleThresholds color tasks by how long they have gone untouched.
var DefaultStaleThresholds = []StaleThreshold{
	{After: "0s", Color: "242"},   // dim gray (fresh)
	{After: "24h", Color: "34"},   // green
	{After: "72h", Color: "226"},  // yellow
	{After: "168h", Color: "208"}, // orange (1 week)
	{After: "720h", Color: "196"}, // red (30 days)
}

// DefaultStoreKey is the key ProjectStorage writes under.
const DefaultStoreKey = storage.DefaultKey

// DefaultLog is the logging configuration of a fresh install.
var DefaultLog = logging.Config{
	Level:  DefaultLogLevel,
	Format: logging.FormatConsole,
	Output: "stderr",
}

// Package activity keeps an append-only JSONL log of mutations made
// through the CLI and TUI.
package activity

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/twiced-technology-gmbh/taskdeck/internal/logging"
)

const (
	logFileMode   = 0o600
	logDirMode    = 0o750
	maxLogEntries = 10000 // truncate oldest entries when log exceeds this size
)

// Actions recorded in the log.
const (
	ActionProjectCreate = "project.create"
	ActionProjectUpdate = "project.update"
	ActionProjectDelete = "project.delete"
	ActionTaskAdd       = "task.add"
	ActionTaskUpdate    = "task.update"
	ActionTaskRemove    = "task.remove"
	ActionTaskMove      = "task.move"
	ActionImport        = "project.import"
)

// Entry is a single activity log entry.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Project   string    `json:"project"`
	TaskID    string    `json:"task_id,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}

// Append appends entry to the log at path. If the log exceeds
// maxLogEntries, the oldest entries are truncated.
func Append(path string, entry Entry) error {
	if err := os.MkdirAll(filepath.Dir(path), logDirMode); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, logFileMode) //nolint:gosec // log path from config
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshaling log entry: %w", err)
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing log entry: %w", err)
	}

	// Truncate if needed (best-effort; errors are non-fatal).
	_ = truncateIfNeeded(path)
	return nil
}

// Record appends an entry stamped with the current time. Failures are
// logged and otherwise ignored so the log never fails a command. An
// empty path disables recording.
func Record(path, action, projectName, taskID, detail string) {
	if path == "" {
		return
	}
	entry := Entry{
		Timestamp: time.Now().UTC(),
		Action:    action,
		Project:   projectName,
		TaskID:    taskID,
		Detail:    detail,
	}
	if err := Append(path, entry); err != nil {
		logging.L().Warn("activity log write failed", zap.String("path", path), zap.Error(err))
	}
}

// Read returns the most recent entries, oldest first. limit <= 0 returns
// everything. A missing log yields no entries; malformed lines are skipped.
func Read(path string, limit int) ([]Entry, error) {
	f, err := os.Open(path) //nolint:gosec // log path from config
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e Entry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading log file: %w", err)
	}

	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	return entries, nil
}

// truncateIfNeeded rewrites the log keeping only the most recent
// maxLogEntries lines.
func truncateIfNeeded(path string) error {
	f, err := os.Open(path) //nolint:gosec // trusted path
	if err != nil {
		return err
	}

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	_ = f.Close()

	if err := scanner.Err(); err != nil {
		return err
	}
	if len(lines) <= maxLogEntries {
		return nil
	}

	lines = lines[len(lines)-maxLogEntries:]
	var buf strings.Builder
	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(buf.String()), logFileMode)
}

package task

import (
	"fmt"
	"os"
	"path/filepath"
)

const dirMode = 0o750

// WriteDir exports every task in l into dir, one markdown file per task.
// It returns the paths written in list order.
func WriteDir(dir string, l *List) ([]string, error) {
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return nil, fmt.Errorf("creating export directory: %w", err)
	}

	paths := make([]string, 0, l.Len())
	for _, t := range l.All() {
		path := filepath.Join(dir, Filename(t))
		if err := WriteFile(path, t); err != nil {
			return paths, fmt.Errorf("writing %s: %w", filepath.Base(path), err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// ReadWarning describes a file that could not be parsed during lenient reading.
type ReadWarning struct {
	File string // base filename
	Err  error
}

// ReadDirLenient reads all task files in dir, skipping malformed files
// instead of aborting. A missing directory yields no tasks.
func ReadDirLenient(dir string) ([]*Task, []ReadWarning, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("reading task directory: %w", err)
	}

	var tasks []*Task
	var warnings []ReadWarning
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".md" {
			continue
		}

		t, readErr := ReadFile(filepath.Join(dir, entry.Name()))
		if readErr != nil {
			warnings = append(warnings, ReadWarning{File: entry.Name(), Err: readErr})
			continue
		}
		tasks = append(tasks, t)
	}

	return tasks, warnings, nil
}

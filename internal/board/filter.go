// Package board provides filtering, sorting, grouping and summaries over
// task collections for listings.
package board

import (
	"strings"
	"time"

	"github.com/twiced-technology-gmbh/taskdeck/internal/task"
)

// FilterOptions defines which tasks to include.
type FilterOptions struct {
	Statuses        []string
	ExcludeStatuses []string // statuses to exclude from results
	Priorities      []string
	Tag             string
	Search          string     // case-insensitive substring match across title, description, and tags
	Overdue         *bool      // nil=no filter, true=only overdue, false=only not overdue
	DueBefore       *time.Time // only tasks due strictly before this time
	Now             time.Time  // reference time for Overdue; zero means time.Now()
}

// Filter returns tasks matching all specified criteria (AND logic).
func Filter(tasks []*task.Task, opts FilterOptions) []*task.Task {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	var result []*task.Task
	for _, t := range tasks {
		if matchesFilter(t, opts, now) {
			result = append(result, t)
		}
	}
	return result
}

func matchesFilter(t *task.Task, opts FilterOptions, now time.Time) bool {
	if !matchesStatus(t.Status(), opts.Statuses, opts.ExcludeStatuses) {
		return false
	}
	if len(opts.Priorities) > 0 && !containsStr(opts.Priorities, t.Priority()) {
		return false
	}
	if opts.Tag != "" && !containsStr(t.Tags(), strings.ToLower(strings.TrimSpace(opts.Tag))) {
		return false
	}
	if opts.Search != "" && !MatchesSearch(t, opts.Search) {
		return false
	}
	if opts.Overdue != nil && t.IsOverdueAt(now) != *opts.Overdue {
		return false
	}
	if opts.DueBefore != nil {
		due := t.DueDate()
		if due == nil || !due.Before(*opts.DueBefore) {
			return false
		}
	}
	return true
}

func matchesStatus(status string, include, exclude []string) bool {
	if len(include) > 0 && !containsStr(include, status) {
		return false
	}
	if len(exclude) > 0 && containsStr(exclude, status) {
		return false
	}
	return true
}

// MatchesSearch performs case-insensitive substring matching across
// title, description, and tags.
func MatchesSearch(t *task.Task, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(t.Title()), q) {
		return true
	}
	if strings.Contains(strings.ToLower(t.Description()), q) {
		return true
	}
	for _, tag := range t.Tags() {
		if strings.Contains(tag, q) {
			return true
		}
	}
	return false
}

func containsStr(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

func indexOf(slice []string, item string) int {
	for i, s := range slice {
		if s == item {
			return i
		}
	}
	return len(slice)
}

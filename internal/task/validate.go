package task

import (
	"strings"
	"unicode/utf8"

	"github.com/twiced-technology-gmbh/taskdeck/internal/clierr"
)

// Length bounds for titles, shared with project names.
const (
	MinTitleLength = 1
	MaxTitleLength = 100
)

// Task statuses.
const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

// Task priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Allowed values in display order.
var (
	Statuses   = []string{StatusPending, StatusInProgress, StatusCompleted}
	Priorities = []string{PriorityLow, PriorityMedium, PriorityHigh}
)

// ValidateTitle trims the title and checks its length.
func ValidateTitle(value string) (string, error) {
	if value == "" {
		return "", clierr.New(clierr.InvalidTitle, "Title must be a non-empty string")
	}
	trimmed := strings.TrimSpace(value)
	if n := utf8.RuneCountInString(trimmed); n < MinTitleLength || n > MaxTitleLength {
		return "", clierr.Newf(clierr.InvalidTitle,
			"Title must be between %d and %d characters", MinTitleLength, MaxTitleLength).
			WithDetails(map[string]any{"length": n})
	}
	return trimmed, nil
}

// ValidateStatus checks that a status is one of Statuses.
func ValidateStatus(status string) error {
	if contains(Statuses, status) {
		return nil
	}
	return clierr.Newf(clierr.InvalidStatus, "Status must be one of: %s", strings.Join(Statuses, ", ")).
		WithDetails(map[string]any{
			"status":  status,
			"allowed": Statuses,
		})
}

// ValidatePriority checks that a priority is one of Priorities.
func ValidatePriority(priority string) error {
	if contains(Priorities, priority) {
		return nil
	}
	return clierr.Newf(clierr.InvalidPriority, "Priority must be one of: %s", strings.Join(Priorities, ", ")).
		WithDetails(map[string]any{
			"priority": priority,
			"allowed":  Priorities,
		})
}

// NormalizeTag trims and lowercases a tag, rejecting blank input.
func NormalizeTag(tag string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(tag))
	if normalized == "" {
		return "", clierr.Newf(clierr.InvalidTag, "Tag must be a non-empty string").
			WithDetails(map[string]any{"input": tag})
	}
	return normalized, nil
}

// InvalidDate returns the error raised for unparseable dates.
func InvalidDate(field, input string, err error) *clierr.Error {
	return clierr.Newf(clierr.InvalidDate, "Invalid %s date: %v", field, err).
		WithDetails(map[string]any{
			"field": field,
			"input": input,
		})
}

// RequiredID returns the error raised when an id argument is empty.
func RequiredID() *clierr.Error {
	return clierr.New(clierr.Required, "Task ID is required")
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

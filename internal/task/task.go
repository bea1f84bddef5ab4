// Package task holds the Task entity and the TaskList collection.
package task

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/twiced-technology-gmbh/taskdeck/internal/date"
)

// Data is the plain field bag a Task is built from. Zero values are
// treated as absent and leave the default in place.
type Data struct {
	Title       string
	Description string
	Status      string
	Priority    string
	DueDate     string // any layout accepted by date.Parse
	ProjectID   string
	Tags        []string
}

// Task is a single trackable work item. Fields are only reachable through
// validating setters, so a Task never holds an out-of-range value.
type Task struct {
	id           string
	title        string
	description  string
	status       string
	priority     string
	dueDate      *time.Time
	tags         []string
	projectID    string
	createdAt    time.Time
	lastModified time.Time
}

func blank() *Task {
	now := time.Now()
	return &Task{
		id:           uuid.NewString(),
		status:       StatusPending,
		priority:     PriorityMedium,
		tags:         []string{},
		createdAt:    now,
		lastModified: now,
	}
}

// New builds a Task from d. The title is required; every other field is
// applied only when non-zero.
func New(d Data) (*Task, error) {
	t := blank()
	if err := t.SetTitle(d.Title); err != nil {
		return nil, err
	}
	if err := t.apply(d); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Task) apply(d Data) error {
	if d.Description != "" {
		t.SetDescription(d.Description)
	}
	if d.Status != "" {
		if err := t.SetStatus(d.Status); err != nil {
			return err
		}
	}
	if d.DueDate != "" {
		if err := t.SetDueDateString(d.DueDate); err != nil {
			return err
		}
	}
	if d.ProjectID != "" {
		t.SetProjectID(d.ProjectID)
	}
	if d.Priority != "" {
		if err := t.SetPriority(d.Priority); err != nil {
			return err
		}
	}
	if len(d.Tags) > 0 {
		if err := t.SetTags(d.Tags); err != nil {
			return err
		}
	}
	return nil
}

// ID returns the task's immutable identifier.
func (t *Task) ID() string { return t.id }

// Title returns the trimmed title.
func (t *Task) Title() string { return t.title }

// Description returns the trimmed description, "" when unset.
func (t *Task) Description() string { return t.description }

// Status returns one of Statuses.
func (t *Task) Status() string { return t.status }

// Priority returns one of Priorities.
func (t *Task) Priority() string { return t.priority }

// ProjectID returns the optional owning project reference.
func (t *Task) ProjectID() string { return t.projectID }

// CreatedAt returns the construction time.
func (t *Task) CreatedAt() time.Time { return t.createdAt }

// LastModified returns the time of the most recent mutation.
func (t *Task) LastModified() time.Time { return t.lastModified }

// DueDate returns a copy of the due date, or nil.
func (t *Task) DueDate() *time.Time {
	if t.dueDate == nil {
		return nil
	}
	d := *t.dueDate
	return &d
}

// Tags returns a copy of the normalized tags.
func (t *Task) Tags() []string {
	return append([]string{}, t.tags...)
}

// SetTitle validates and stores a trimmed title of 1-100 characters.
func (t *Task) SetTitle(value string) error {
	title, err := ValidateTitle(value)
	if err != nil {
		return err
	}
	t.title = title
	t.touch()
	return nil
}

// SetDescription stores the trimmed description.
func (t *Task) SetDescription(value string) {
	t.description = strings.TrimSpace(value)
	t.touch()
}

// SetStatus sets one of Statuses.
func (t *Task) SetStatus(value string) error {
	if err := ValidateStatus(value); err != nil {
		return err
	}
	t.status = value
	t.touch()
	return nil
}

// SetPriority sets one of Priorities.
func (t *Task) SetPriority(value string) error {
	if err := ValidatePriority(value); err != nil {
		return err
	}
	t.priority = value
	t.touch()
	return nil
}

// SetDueDate sets or, with nil, clears the due date.
func (t *Task) SetDueDate(value *time.Time) {
	if value == nil {
		t.dueDate = nil
	} else {
		d := *value
		t.dueDate = &d
	}
	t.touch()
}

// SetDueDateString parses value with date.Parse. An empty string clears
// the due date.
func (t *Task) SetDueDateString(value string) error {
	if strings.TrimSpace(value) == "" {
		t.SetDueDate(nil)
		return nil
	}
	d, err := date.Parse(value)
	if err != nil {
		return InvalidDate("due", value, err)
	}
	t.SetDueDate(&d)
	return nil
}

// SetProjectID sets the back-reference to a project. It does not move the
// task between projects.
func (t *Task) SetProjectID(value string) {
	t.projectID = value
	t.touch()
}

// SetTags replaces all tags. Each tag is trimmed and lowercased and
// duplicates are dropped, keeping first occurrence order.
func (t *Task) SetTags(values []string) error {
	tags := make([]string, 0, len(values))
	for _, v := range values {
		tag, err := NormalizeTag(v)
		if err != nil {
			return err
		}
		if !contains(tags, tag) {
			tags = append(tags, tag)
		}
	}
	t.tags = tags
	t.touch()
	return nil
}

// AddTag appends a normalized tag unless it is already present.
func (t *Task) AddTag(tag string) error {
	normalized, err := NormalizeTag(tag)
	if err != nil {
		return err
	}
	if contains(t.tags, normalized) {
		return nil
	}
	t.tags = append(t.tags, normalized)
	t.touch()
	return nil
}

// RemoveTag removes a normalized tag if present.
func (t *Task) RemoveTag(tag string) error {
	normalized, err := NormalizeTag(tag)
	if err != nil {
		return err
	}
	for i, existing := range t.tags {
		if existing == normalized {
			t.tags = append(t.tags[:i:i], t.tags[i+1:]...)
			t.touch()
			return nil
		}
	}
	return nil
}

// ToggleStatus flips completed to pending and anything else to completed.
// An in-progress task therefore becomes completed, and toggling it back
// yields pending.
func (t *Task) ToggleStatus() {
	next := StatusCompleted
	if t.IsCompleted() {
		next = StatusPending
	}
	_ = t.SetStatus(next)
}

// IsCompleted reports whether the status is completed.
func (t *Task) IsCompleted() bool {
	return t.status == StatusCompleted
}

// IsOverdue reports whether the task is past due right now.
func (t *Task) IsOverdue() bool {
	return t.IsOverdueAt(time.Now())
}

// IsOverdueAt reports whether the task has a due date strictly before now
// and is not completed.
func (t *Task) IsOverdueAt(now time.Time) bool {
	if t.dueDate == nil || t.IsCompleted() {
		return false
	}
	return now.After(*t.dueDate)
}

// TimeRemaining is TimeRemainingAt(time.Now()).
func (t *Task) TimeRemaining() (string, bool) {
	return t.TimeRemainingAt(time.Now())
}

// TimeRemainingAt describes the time left until the due date. ok is false
// when there is no due date or the task is completed.
func (t *Task) TimeRemainingAt(now time.Time) (remaining string, ok bool) {
	if t.dueDate == nil || t.IsCompleted() {
		return "", false
	}
	diff := t.dueDate.Sub(now)
	if diff < 0 {
		return "Overdue", true
	}
	return date.Remaining(diff), true
}

// FormattedDueDate renders the due date for display.
func (t *Task) FormattedDueDate() string {
	if t.dueDate == nil {
		return "No due date"
	}
	return date.Long(*t.dueDate)
}

func (t *Task) touch() {
	t.lastModified = date.Tick(t.lastModified)
}

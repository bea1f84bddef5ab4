// Package project holds the Project aggregate, which owns a task list, and
// the in-memory List used to manage several projects at once.
package project

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/twiced-technology-gmbh/taskdeck/internal/clierr"
	"github.com/twiced-technology-gmbh/taskdeck/internal/date"
	"github.com/twiced-technology-gmbh/taskdeck/internal/task"
)

// Project statuses.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusArchived  = "archived"
)

// Project colors.
const (
	ColorBlue   = "blue"
	ColorGreen  = "green"
	ColorRed    = "red"
	ColorYellow = "yellow"
	ColorPurple = "purple"
	ColorGray   = "gray"
)

// Allowed values in display order.
var (
	Statuses = []string{StatusActive, StatusCompleted, StatusArchived}
	Colors   = []string{ColorBlue, ColorGreen, ColorRed, ColorYellow, ColorPurple, ColorGray}
)

// Data is the field bag a Project is built from. Zero values are skipped.
type Data struct {
	Name        string
	Description string
	Status      string
	Color       string
	Owner       string
}

// Project is a named collection of tasks.
type Project struct {
	id           string
	name         string
	description  string
	status       string
	color        string
	owner        string
	createdAt    time.Time
	lastModified time.Time
	tasks        *task.List
}

func blank() *Project {
	now := time.Now()
	return &Project{
		id:           uuid.NewString(),
		status:       StatusActive,
		color:        ColorBlue,
		createdAt:    now,
		lastModified: now,
		tasks:        task.NewList(),
	}
}

// New builds a Project from d. The name is required.
func New(d Data) (*Project, error) {
	p := blank()
	if err := p.SetName(d.Name); err != nil {
		return nil, err
	}
	if err := p.apply(d); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Project) apply(d Data) error {
	if d.Description != "" {
		p.SetDescription(d.Description)
	}
	if d.Status != "" {
		if err := p.SetStatus(d.Status); err != nil {
			return err
		}
	}
	if d.Color != "" {
		if err := p.SetColor(d.Color); err != nil {
			return err
		}
	}
	if d.Owner != "" {
		p.SetOwner(d.Owner)
	}
	return nil
}

func (p *Project) ID() string              { return p.id }
func (p *Project) Name() string            { return p.name }
func (p *Project) Description() string     { return p.description }
func (p *Project) Status() string          { return p.status }
func (p *Project) Color() string           { return p.color }
func (p *Project) Owner() string           { return p.owner }
func (p *Project) CreatedAt() time.Time    { return p.createdAt }
func (p *Project) LastModified() time.Time { return p.lastModified }

// SetName validates and stores a trimmed name of 1-100 characters.
func (p *Project) SetName(value string) error {
	name, err := ValidateName(value)
	if err != nil {
		return err
	}
	p.name = name
	p.touch()
	return nil
}

// SetDescription stores the trimmed description.
func (p *Project) SetDescription(value string) {
	p.description = strings.TrimSpace(value)
	p.touch()
}

// SetStatus sets one of Statuses.
func (p *Project) SetStatus(value string) error {
	if !contains(Statuses, value) {
		return clierr.Newf(clierr.InvalidStatus, "Status must be one of: %s", strings.Join(Statuses, ", ")).
			WithDetails(map[string]any{"status": value, "allowed": Statuses})
	}
	p.status = value
	p.touch()
	return nil
}

// SetColor sets one of Colors.
func (p *Project) SetColor(value string) error {
	if err := ValidateColor(value); err != nil {
		return err
	}
	p.color = value
	p.touch()
	return nil
}

// SetOwner sets the free-form owner.
func (p *Project) SetOwner(value string) {
	p.owner = value
	p.touch()
}

// AddTask appends t to the project's task list.
func (p *Project) AddTask(t *task.Task) error {
	if t == nil {
		return clierr.New(clierr.InvalidInput, "Only Task objects can be added to Project")
	}
	if err := p.tasks.Add(t); err != nil {
		return err
	}
	p.touch()
	return nil
}

// RemoveTask removes the task with the given id. lastModified only moves
// when something was removed.
func (p *Project) RemoveTask(id string) (bool, error) {
	removed, err := p.tasks.Remove(id)
	if err != nil || !removed {
		return removed, err
	}
	p.touch()
	return true, nil
}

// HasTask reports whether the project holds a task with the given id.
func (p *Project) HasTask(id string) bool { return p.tasks.Has(id) }

// GetTask returns the task with the given id, or nil.
func (p *Project) GetTask(id string) (*task.Task, error) { return p.tasks.Get(id) }

// Tasks returns the tasks in insertion order. The slice is a copy.
func (p *Project) Tasks() []*task.Task { return p.tasks.All() }

// TaskCount returns the number of tasks.
func (p *Project) TaskCount() int { return p.tasks.Len() }

func (p *Project) IsActive() bool    { return p.status == StatusActive }
func (p *Project) IsCompleted() bool { return p.status == StatusCompleted }
func (p *Project) IsArchived() bool  { return p.status == StatusArchived }

// Archive, Activate and Complete are shorthands for SetStatus.
func (p *Project) Archive()  { _ = p.SetStatus(StatusArchived) }
func (p *Project) Activate() { _ = p.SetStatus(StatusActive) }
func (p *Project) Complete() { _ = p.SetStatus(StatusCompleted) }

func (p *Project) touch() {
	p.lastModified = date.Tick(p.lastModified)
}

// ValidateName trims a project name and checks its length.
func ValidateName(value string) (string, error) {
	if value == "" {
		return "", clierr.New(clierr.InvalidName, "Project name must be a non-empty string")
	}
	trimmed := strings.TrimSpace(value)
	if n := utf8.RuneCountInString(trimmed); n < task.MinTitleLength || n > task.MaxTitleLength {
		return "", clierr.Newf(clierr.InvalidName,
			"Project name must be between %d and %d characters", task.MinTitleLength, task.MaxTitleLength).
			WithDetails(map[string]any{"length": n})
	}
	return trimmed, nil
}

// ValidateColor checks that a color is one of Colors.
func ValidateColor(color string) error {
	if contains(Colors, color) {
		return nil
	}
	return clierr.Newf(clierr.InvalidColor, "Color must be one of: %s", strings.Join(Colors, ", ")).
		WithDetails(map[string]any{"color": color, "allowed": Colors})
}

// RequiredID returns the error raised when a project id argument is empty.
func RequiredID() *clierr.Error {
	return clierr.New(clierr.Required, "Project ID is required")
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

// Package form turns the five task form fields into a Task and files it
// under a project. Any input surface (CLI flags, the TUI editor, tests)
// can act as the form by implementing Values.
package form

import (
	"github.com/spf13/pflag"

	"github.com/twiced-technology-gmbh/taskdeck/internal/project"
	"github.com/twiced-technology-gmbh/taskdeck/internal/task"
)

// Field names shared by every form surface.
const (
	FieldTitle       = "task-title"
	FieldDescription = "task-description"
	FieldDueDate     = "task-due-date"
	FieldPriority    = "task-priority"
	FieldStatus      = "task-status"
)

// Fields lists the field names in display order.
var Fields = []string{FieldTitle, FieldDescription, FieldDueDate, FieldPriority, FieldStatus}

// Values reads a named field. Missing fields read as "".
type Values interface {
	Value(name string) string
}

// Map is a Values backed by a plain map.
type Map map[string]string

// Value implements Values.
func (m Map) Value(name string) string { return m[name] }

// FlagValues exposes a flag set as form values, so a command defining
// flags named after Fields is itself a form.
type FlagValues struct {
	Flags *pflag.FlagSet
}

// Value implements Values.
func (f FlagValues) Value(name string) string {
	if f.Flags == nil {
		return ""
	}
	flag := f.Flags.Lookup(name)
	if flag == nil {
		return ""
	}
	return flag.Value.String()
}

// Data collects the field values into a task.Data. Empty fields keep the
// task defaults.
func Data(v Values) task.Data {
	return task.Data{
		Title:       v.Value(FieldTitle),
		Description: v.Value(FieldDescription),
		DueDate:     v.Value(FieldDueDate),
		Priority:    v.Value(FieldPriority),
		Status:      v.Value(FieldStatus),
	}
}

// Handler files submitted tasks under Project. OnSubmit, when set, runs
// after the task was added, typically to persist the project or reset
// the form.
type Handler struct {
	Project  *project.Project
	OnSubmit func(*task.Task) error
}

// Submit builds a task from v and adds it to the project. Validation
// errors leave the project untouched.
func (h Handler) Submit(v Values) (*task.Task, error) {
	d := Data(v)
	d.ProjectID = h.Project.ID()

	t, err := task.New(d)
	if err != nil {
		return nil, err
	}
	if err := h.Project.AddTask(t); err != nil {
		return nil, err
	}
	if h.OnSubmit != nil {
		if err := h.OnSubmit(t); err != nil {
			return t, err
		}
	}
	return t, nil
}

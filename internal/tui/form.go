package tui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/twiced-technology-gmbh/taskdeck/internal/form"
	"github.com/twiced-technology-gmbh/taskdeck/internal/task"
)

// formLabels are shown next to each input, in form.Fields order.
var formLabels = map[string]string{
	form.FieldTitle:       "Title",
	form.FieldDescription: "Description",
	form.FieldDueDate:     "Due date",
	form.FieldPriority:    "Priority",
	form.FieldStatus:      "Status",
}

var formPlaceholders = map[string]string{
	form.FieldTitle:       "What needs doing?",
	form.FieldDescription: "optional",
	form.FieldDueDate:     "YYYY-MM-DD or YYYY-MM-DDTHH:MM",
	form.FieldPriority:    strings.Join(task.Priorities, " | "),
	form.FieldStatus:      strings.Join(task.Statuses, " | "),
}

var formCharLimits = map[string]int{
	form.FieldTitle:    task.MaxTitleLength,
	form.FieldDueDate:  32,
	form.FieldPriority: 16,
	form.FieldStatus:   16,
}

// taskForm is the add-task editor: one text input per form field. It
// implements form.Values.
type taskForm struct {
	inputs []textinput.Model
	active int
	err    error
}

func newTaskForm() *taskForm {
	f := &taskForm{inputs: make([]textinput.Model, len(form.Fields))}
	for i, field := range form.Fields {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = formPlaceholders[field]
		in.CharLimit = formCharLimits[field]
		f.inputs[i] = in
	}
	f.inputs[0].Focus()
	return f
}

// Value implements form.Values.
func (f *taskForm) Value(name string) string {
	i := slices.Index(form.Fields, name)
	if i < 0 {
		return ""
	}
	return strings.TrimSpace(f.inputs[i].Value())
}

// focus moves focus by delta fields, wrapping around.
func (f *taskForm) focus(delta int) tea.Cmd {
	n := len(f.inputs)
	f.inputs[f.active].Blur()
	f.active = ((f.active+delta)%n + n) % n
	return f.inputs[f.active].Focus()
}

// handleKey moves between fields on tab and arrows; every other key goes
// to the focused input.
func (f *taskForm) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyTab, tea.KeyDown:
		return f.focus(1)
	case tea.KeyShiftTab, tea.KeyUp:
		return f.focus(-1)
	}
	return f.update(msg)
}

func (f *taskForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.active], cmd = f.inputs[f.active].Update(msg)
	return cmd
}

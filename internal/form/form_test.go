package form

import (
	"errors"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/taskdeck/internal/clierr"
	"github.com/twiced-technology-gmbh/taskdeck/internal/project"
	"github.com/twiced-technology-gmbh/taskdeck/internal/task"
)

func newProject(t *testing.T) *project.Project {
	t.Helper()
	p, err := project.New(project.Data{Name: "Inbox"})
	require.NoError(t, err)
	return p
}

func TestSubmitAddsTask(t *testing.T) {
	p := newProject(t)
	var submitted *task.Task
	h := Handler{Project: p, OnSubmit: func(tk *task.Task) error {
		submitted = tk
		return nil
	}}

	tk, err := h.Submit(Map{
		FieldTitle:       "Book venue",
		FieldDescription: "  for the offsite ",
		FieldDueDate:     "2026-09-01",
		FieldPriority:    task.PriorityHigh,
		FieldStatus:      "",
	})
	require.NoError(t, err)
	require.Same(t, tk, submitted)
	require.Equal(t, "for the offsite", tk.Description())
	require.Equal(t, task.StatusPending, tk.Status())
	require.Equal(t, p.ID(), tk.ProjectID())
	require.True(t, p.HasTask(tk.ID()))
}

func TestSubmitValidationLeavesProjectUntouched(t *testing.T) {
	p := newProject(t)
	called := false
	h := Handler{Project: p, OnSubmit: func(*task.Task) error {
		called = true
		return nil
	}}

	_, err := h.Submit(Map{FieldTitle: "ok", FieldPriority: "asap"})
	require.Equal(t, clierr.InvalidPriority, clierr.CodeOf(err))
	require.Zero(t, p.TaskCount())
	require.False(t, called)
}

func TestSubmitPropagatesCallbackError(t *testing.T) {
	p := newProject(t)
	boom := errors.New("disk full")
	h := Handler{Project: p, OnSubmit: func(*task.Task) error { return boom }}

	tk, err := h.Submit(Map{FieldTitle: "x"})
	require.ErrorIs(t, err, boom)
	require.NotNil(t, tk)
}

func TestFlagValues(t *testing.T) {
	fs := pflag.NewFlagSet("add", pflag.ContinueOnError)
	fs.String(FieldTitle, "", "")
	fs.String(FieldPriority, task.PriorityMedium, "")
	require.NoError(t, fs.Parse([]string{"--task-title", "From flags"}))

	v := FlagValues{Flags: fs}
	d := Data(v)
	require.Equal(t, "From flags", d.Title)
	require.Equal(t, task.PriorityMedium, d.Priority)
	require.Empty(t, d.Status, "undefined flags read as empty")
	require.Empty(t, FlagValues{}.Value(FieldTitle))
}

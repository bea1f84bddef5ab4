package project

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/taskdeck/internal/clierr"
)

func TestListAddRemove(t *testing.T) {
	l := NewList()
	p := mustProject(t, Data{Name: "a"})

	require.Equal(t, clierr.InvalidInput, clierr.CodeOf(l.Add(nil)))
	require.NoError(t, l.Add(p))
	require.Equal(t, clierr.DuplicateProject, clierr.CodeOf(l.Add(p)))

	got, err := l.Get(p.ID())
	require.NoError(t, err)
	require.Same(t, p, got)

	_, err = l.Get("")
	require.Equal(t, clierr.Required, clierr.CodeOf(err))

	removed, err := l.Remove(p.ID())
	require.NoError(t, err)
	require.True(t, removed)
	require.False(t, l.Has(p.ID()))
	require.Zero(t, l.Len())

	removed, err = l.Remove(p.ID())
	require.NoError(t, err)
	require.False(t, removed)
}

func TestListFilters(t *testing.T) {
	var l List
	active := mustProject(t, Data{Name: "active", Owner: "ana"})
	done := mustProject(t, Data{Name: "done", Status: StatusCompleted, Owner: "ben"})
	old := mustProject(t, Data{Name: "old", Status: StatusArchived, Owner: "ana"})
	for _, p := range []*Project{active, done, old} {
		require.NoError(t, l.Add(p))
	}

	require.Equal(t, []*Project{active}, l.Active())
	require.Equal(t, []*Project{done}, l.Completed())
	require.Equal(t, []*Project{old}, l.Archived())
	require.Equal(t, []*Project{active, done, old}, l.All())

	owned, err := l.ByOwner("ana")
	require.NoError(t, err)
	require.Equal(t, []*Project{active, old}, owned)

	_, err = l.ByOwner("")
	require.Equal(t, clierr.Required, clierr.CodeOf(err))

	require.Len(t, l.Records(), 3)
}

func TestProjectForTask(t *testing.T) {
	l := NewList()
	a := mustProject(t, Data{Name: "a"})
	b := mustProject(t, Data{Name: "b"})
	tk := mustTask(t, "t")
	require.NoError(t, b.AddTask(tk))
	require.NoError(t, l.Add(a))
	require.NoError(t, l.Add(b))

	got, err := l.ProjectForTask(tk.ID())
	require.NoError(t, err)
	require.Same(t, b, got)

	got, err = l.ProjectForTask("unknown")
	require.NoError(t, err)
	require.Nil(t, got)

	_, err = l.ProjectForTask("")
	require.Equal(t, clierr.Required, clierr.CodeOf(err))
}

func TestMoveTask(t *testing.T) {
	l := NewList()
	from := mustProject(t, Data{Name: "from"})
	to := mustProject(t, Data{Name: "to"})
	tk := mustTask(t, "t")
	require.NoError(t, from.AddTask(tk))
	require.NoError(t, l.Add(from))
	require.NoError(t, l.Add(to))

	require.NoError(t, l.MoveTask(tk.ID(), from.ID(), to.ID()))
	require.False(t, from.HasTask(tk.ID()))
	moved, err := to.GetTask(tk.ID())
	require.NoError(t, err)
	require.Same(t, tk, moved)
	require.Equal(t, to.ID(), tk.ProjectID())
}

func TestMoveTaskFailures(t *testing.T) {
	l := NewList()
	from := mustProject(t, Data{Name: "from"})
	to := mustProject(t, Data{Name: "to"})
	shared := mustTask(t, "shared")
	require.NoError(t, from.AddTask(shared))
	require.NoError(t, to.AddTask(shared))
	require.NoError(t, l.Add(from))
	require.NoError(t, l.Add(to))

	err := l.MoveTask(shared.ID(), from.ID(), "ghost")
	require.Equal(t, clierr.ProjectNotFound, clierr.CodeOf(err))

	err = l.MoveTask("absent", from.ID(), to.ID())
	require.Equal(t, clierr.TaskNotFound, clierr.CodeOf(err))

	err = l.MoveTask(shared.ID(), from.ID(), to.ID())
	require.Equal(t, clierr.DuplicateTask, clierr.CodeOf(err))
	require.True(t, from.HasTask(shared.ID()), "failed move must leave the source untouched")
}

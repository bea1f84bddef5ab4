package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/taskdeck/internal/clierr"
	"github.com/twiced-technology-gmbh/taskdeck/internal/kv"
	"github.com/twiced-technology-gmbh/taskdeck/internal/project"
	"github.com/twiced-technology-gmbh/taskdeck/internal/task"
)

func newStorage(t *testing.T, opts ...Option) (*ProjectStorage, *kv.Memory) {
	t.Helper()
	mem := kv.NewMemory()
	s, err := New(context.Background(), mem, opts...)
	require.NoError(t, err)
	return s, mem
}

func newProject(t *testing.T, d project.Data, tasks ...task.Data) *project.Project {
	t.Helper()
	p, err := project.New(d)
	require.NoError(t, err)
	for _, td := range tasks {
		tk, err := task.New(td)
		require.NoError(t, err)
		require.NoError(t, p.AddTask(tk))
	}
	return p
}

func TestNewInitializesKeyOnce(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()

	_, err := New(ctx, mem)
	require.NoError(t, err)
	v, ok, err := mem.GetItem(ctx, DefaultKey)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "{}", v)

	require.NoError(t, mem.SetItem(ctx, DefaultKey, `{"kept":{"name":"kept"}}`))
	_, err = New(ctx, mem)
	require.NoError(t, err)
	v, _, _ = mem.GetItem(ctx, DefaultKey)
	require.Equal(t, `{"kept":{"name":"kept"}}`, v)
}

func TestWithKey(t *testing.T) {
	s, mem := newStorage(t, WithKey("work"))
	require.Equal(t, "work", s.Key())
	_, ok, err := mem.GetItem(context.Background(), "work")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestSaveAndGetProject(t *testing.T) {
	ctx := context.Background()
	s, _ := newStorage(t)
	p := newProject(t,
		project.Data{Name: "Website", Description: "marketing site", Owner: "ana", Status: project.StatusArchived, Color: project.ColorGreen},
		task.Data{Title: "Design Homepage", Tags: []string{"design"}, Priority: task.PriorityHigh},
		task.Data{Title: "Write copy", Description: "hero text", Status: task.StatusInProgress},
	)

	ok, err := s.SaveProject(ctx, p)
	require.NoError(t, err)
	require.True(t, ok)

	got, err := s.GetProject(ctx, "Website")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, p.ID(), got.ID())
	require.Equal(t, p.Name(), got.Name())
	require.Equal(t, p.Description(), got.Description())
	require.Equal(t, p.Owner(), got.Owner())
	require.Equal(t, p.Status(), got.Status())
	require.Equal(t, p.Color(), got.Color())

	want, have := p.Tasks(), got.Tasks()
	require.Len(t, have, 2)
	for i := range want {
		require.Equal(t, want[i].ID(), have[i].ID())
		require.Equal(t, want[i].Title(), have[i].Title())
		require.Equal(t, want[i].Description(), have[i].Description())
		require.Equal(t, want[i].Status(), have[i].Status())
		require.Equal(t, want[i].Priority(), have[i].Priority())
		require.Equal(t, want[i].Tags(), have[i].Tags())
	}
}

func TestSaveProjectRejectsNil(t *testing.T) {
	s, _ := newStorage(t)
	_, err := s.SaveProject(context.Background(), nil)
	require.Equal(t, clierr.InvalidInput, clierr.CodeOf(err))
}

func TestGetProjectMissingAndEmpty(t *testing.T) {
	s, _ := newStorage(t)

	p, err := s.GetProject(context.Background(), "missing")
	require.NoError(t, err)
	require.Nil(t, p)

	_, err = s.GetProject(context.Background(), "")
	require.Equal(t, clierr.Required, clierr.CodeOf(err))
}

func TestSaveDeleteGet(t *testing.T) {
	ctx := context.Background()
	s, _ := newStorage(t)
	p := newProject(t, project.Data{Name: "Scratch"})

	_, err := s.SaveProject(ctx, p)
	require.NoError(t, err)

	deleted, err := s.DeleteProject(ctx, p.Name())
	require.NoError(t, err)
	require.True(t, deleted)

	got, err := s.GetProject(ctx, p.Name())
	require.NoError(t, err)
	require.Nil(t, got)

	deleted, err = s.DeleteProject(ctx, p.Name())
	require.NoError(t, err)
	require.False(t, deleted)
}

func TestSameNameLastWriteWins(t *testing.T) {
	ctx := context.Background()
	s, _ := newStorage(t)
	first := newProject(t, project.Data{Name: "Shared", Owner: "ana"})
	second := newProject(t, project.Data{Name: "Shared", Owner: "ben"})

	_, err := s.SaveProject(ctx, first)
	require.NoError(t, err)
	_, err = s.SaveProject(ctx, second)
	require.NoError(t, err)

	got, err := s.GetProject(ctx, "Shared")
	require.NoError(t, err)
	require.Equal(t, second.ID(), got.ID())
	require.Equal(t, "ben", got.Owner())
}

func TestNameConflictCheck(t *testing.T) {
	ctx := context.Background()
	s, _ := newStorage(t, WithNameConflictCheck())
	first := newProject(t, project.Data{Name: "Shared"})
	second := newProject(t, project.Data{Name: "Shared"})

	_, err := s.SaveProject(ctx, first)
	require.NoError(t, err)
	_, err = s.SaveProject(ctx, first)
	require.NoError(t, err, "re-saving the same project is not a conflict")

	ok, err := s.SaveProject(ctx, second)
	require.False(t, ok)
	require.Equal(t, clierr.NameConflict, clierr.CodeOf(err))
}

func TestRenameDropsOldEntry(t *testing.T) {
	ctx := context.Background()
	s, _ := newStorage(t)
	p := newProject(t, project.Data{Name: "Old"})

	_, err := s.SaveProject(ctx, p)
	require.NoError(t, err)
	require.NoError(t, p.SetName("New"))
	_, err = s.SaveProject(ctx, p)
	require.NoError(t, err)

	names, err := s.Names(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"New"}, names)
}

func TestSaveIgnoresUndecodableSibling(t *testing.T) {
	ctx := context.Background()
	s, mem := newStorage(t)
	legacy := `{"Legacy":{"id":"l-1","name":"Legacy","status":"active","color":"blue",` +
		`"tasks":{"0":{"id":"t-1","title":"old"}}}}`
	require.NoError(t, mem.SetItem(ctx, DefaultKey, legacy))

	ok, err := s.SaveProject(ctx, newProject(t, project.Data{Name: "Fresh"}))
	require.NoError(t, err)
	require.True(t, ok)

	got, err := s.GetProject(ctx, "Fresh")
	require.NoError(t, err)
	require.NotNil(t, got)

	names, err := s.Names(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"Fresh", "Legacy"}, names)

	byID, err := s.ProjectByID(ctx, got.ID())
	require.NoError(t, err)
	require.Equal(t, "Fresh", byID.Name())
}

func TestGetAllProjectsSortedByName(t *testing.T) {
	ctx := context.Background()
	s, _ := newStorage(t)
	for _, name := range []string{"gamma", "alpha", "beta"} {
		_, err := s.SaveProject(ctx, newProject(t, project.Data{Name: name}))
		require.NoError(t, err)
	}

	all, err := s.GetAllProjects(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "alpha", all[0].Name())
	require.Equal(t, "beta", all[1].Name())
	require.Equal(t, "gamma", all[2].Name())
}

func TestSearchTasks(t *testing.T) {
	ctx := context.Background()
	s, _ := newStorage(t)
	web := newProject(t, project.Data{Name: "Website"},
		task.Data{Title: "Design Homepage"},
		task.Data{Title: "Fix footer"},
	)
	app := newProject(t, project.Data{Name: "App"},
		task.Data{Title: "Onboarding", Tags: []string{"design"}},
		task.Data{Title: "Crash report", Description: "needs a DESIGN review"},
	)
	for _, p := range []*project.Project{web, app} {
		_, err := s.SaveProject(ctx, p)
		require.NoError(t, err)
	}

	results, err := s.SearchTasks(ctx, "design")
	require.NoError(t, err)
	require.Len(t, results, 3)
	require.Equal(t, "App", results[0].ProjectName)
	require.Equal(t, "Onboarding", results[0].Task.Title())
	require.Equal(t, "App", results[1].ProjectName)
	require.Equal(t, "Crash report", results[1].Task.Title())
	require.Equal(t, "Website", results[2].ProjectName)
	require.Equal(t, "Design Homepage", results[2].Task.Title())

	results, err = s.SearchTasks(ctx, "")
	require.NoError(t, err)
	require.NotNil(t, results)
	require.Empty(t, results)
}

func TestProjectByIDAndLoadList(t *testing.T) {
	ctx := context.Background()
	s, _ := newStorage(t)
	a := newProject(t, project.Data{Name: "a"}, task.Data{Title: "t1"})
	b := newProject(t, project.Data{Name: "b"})
	for _, p := range []*project.Project{a, b} {
		_, err := s.SaveProject(ctx, p)
		require.NoError(t, err)
	}

	got, err := s.ProjectByID(ctx, b.ID())
	require.NoError(t, err)
	require.Equal(t, "b", got.Name())

	got, err = s.ProjectByID(ctx, "nope")
	require.NoError(t, err)
	require.Nil(t, got)

	_, err = s.ProjectByID(ctx, "")
	require.Equal(t, clierr.Required, clierr.CodeOf(err))

	l, err := s.LoadList(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, l.Len())
	owner, err := l.ProjectForTask(a.Tasks()[0].ID())
	require.NoError(t, err)
	require.Equal(t, a.ID(), owner.ID())
}

func TestCorruptedBlob(t *testing.T) {
	ctx := context.Background()
	s, mem := newStorage(t)
	require.NoError(t, mem.SetItem(ctx, DefaultKey, "{not json"))

	_, err := s.GetProject(ctx, "x")
	require.Error(t, err)
	_, err = s.GetAllProjects(ctx)
	require.Error(t, err)
}

func TestInvalidRecordFailsReconstruction(t *testing.T) {
	ctx := context.Background()
	s, mem := newStorage(t)
	require.NoError(t, mem.SetItem(ctx, DefaultKey,
		`{"Bad":{"name":"Bad","status":"active","color":"blue","tasks":[{"title":"","status":"pending","priority":"medium","tags":[]}]}}`))

	_, err := s.GetProject(ctx, "Bad")
	require.Error(t, err)
	require.True(t, clierr.IsValidation(err))
	require.Equal(t, clierr.InvalidTitle, clierr.CodeOf(err))
}

func TestPersistsAcrossBackends(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	backends := map[string]kv.Options{
		"file":   {Type: kv.TypeFile, Path: filepath.Join(dir, "store.json")},
		"sqlite": {Type: kv.TypeSQLite, Path: filepath.Join(dir, "store.db")},
	}
	for name, opts := range backends {
		t.Run(name, func(t *testing.T) {
			b, err := kv.Open(ctx, opts)
			require.NoError(t, err)
			s, err := New(ctx, b)
			require.NoError(t, err)
			p := newProject(t, project.Data{Name: "Durable"}, task.Data{Title: "survive restart"})
			_, err = s.SaveProject(ctx, p)
			require.NoError(t, err)
			require.NoError(t, b.Close())

			b, err = kv.Open(ctx, opts)
			require.NoError(t, err)
			t.Cleanup(func() { _ = b.Close() })
			s, err = New(ctx, b)
			require.NoError(t, err)
			got, err := s.GetProject(ctx, "Durable")
			require.NoError(t, err)
			require.Equal(t, p.ID(), got.ID())
			require.Equal(t, 1, got.TaskCount())
		})
	}
}

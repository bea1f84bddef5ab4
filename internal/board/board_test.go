package board

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/taskdeck/internal/clierr"
	"github.com/twiced-technology-gmbh/taskdeck/internal/project"
	"github.com/twiced-technology-gmbh/taskdeck/internal/task"
)

var now = time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

func mk(t *testing.T, d task.Data) *task.Task {
	t.Helper()
	tk, err := task.New(d)
	require.NoError(t, err)
	return tk
}

func fixture(t *testing.T) []*task.Task {
	t.Helper()
	return []*task.Task{
		mk(t, task.Data{Title: "Beta", Priority: task.PriorityLow, Tags: []string{"ops"}, DueDate: "2026-03-01T00:00:00Z"}),
		mk(t, task.Data{Title: "alpha", Priority: task.PriorityHigh, Status: task.StatusInProgress, Tags: []string{"design", "ops"}}),
		mk(t, task.Data{Title: "Gamma", Description: "Design review", Status: task.StatusCompleted, DueDate: "2026-02-01T00:00:00Z"}),
	}
}

func titles(tasks []*task.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Title())
	}
	return out
}

func TestFilter(t *testing.T) {
	tasks := fixture(t)
	yes := true

	require.Equal(t, []string{"Beta"}, titles(Filter(tasks, FilterOptions{Overdue: &yes, Now: now})))
	require.Equal(t, []string{"alpha", "Gamma"}, titles(Filter(tasks, FilterOptions{Search: "DESIGN"})))
	require.Equal(t, []string{"Beta", "alpha"}, titles(Filter(tasks, FilterOptions{Tag: "Ops"})))
	require.Equal(t, []string{"Beta", "alpha"}, titles(Filter(tasks, FilterOptions{ExcludeStatuses: []string{task.StatusCompleted}})))
	require.Equal(t, []string{"alpha"}, titles(Filter(tasks, FilterOptions{Priorities: []string{task.PriorityHigh}})))

	cutoff := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)
	require.Equal(t, []string{"Gamma"}, titles(Filter(tasks, FilterOptions{DueBefore: &cutoff})))
}

func TestSort(t *testing.T) {
	tasks := fixture(t)

	Sort(tasks, SortTitle, false)
	require.Equal(t, []string{"alpha", "Beta", "Gamma"}, titles(tasks))

	Sort(tasks, SortPriority, false)
	require.Equal(t, "alpha", tasks[0].Title(), "high priority first")
	require.Equal(t, "Beta", tasks[2].Title())

	Sort(tasks, SortDue, false)
	require.Equal(t, []string{"Gamma", "Beta", "alpha"}, titles(tasks), "no due date sorts last")

	Sort(tasks, SortStatus, true)
	require.Equal(t, "Gamma", tasks[0].Title())
}

func TestListLimit(t *testing.T) {
	tasks := fixture(t)
	got := List(tasks, ListOptions{SortBy: SortTitle, Limit: 2})
	require.Equal(t, []string{"alpha", "Beta"}, titles(got))
	require.Equal(t, "Beta", tasks[0].Title(), "List must not reorder its input")
}

func TestGroupByTag(t *testing.T) {
	grouped := GroupBy(fixture(t), GroupTag)
	keys := make([]string, 0, len(grouped.Groups))
	for _, g := range grouped.Groups {
		keys = append(keys, g.Key)
	}
	require.Equal(t, []string{"(untagged)", "design", "ops"}, keys)
	require.Equal(t, 2, grouped.Groups[2].Total)
}

func TestSummary(t *testing.T) {
	p, err := project.New(project.Data{Name: "Site"})
	require.NoError(t, err)
	for _, tk := range fixture(t) {
		require.NoError(t, p.AddTask(tk))
	}
	empty, err := project.New(project.Data{Name: "Empty"})
	require.NoError(t, err)

	ov := Summary([]*project.Project{p, empty}, now)
	require.Equal(t, 2, ov.TotalProjects)
	require.Equal(t, 3, ov.TotalTasks)
	require.Equal(t, StatusSummary{Status: task.StatusPending, Count: 1, Overdue: 1}, ov.Statuses[0])
	require.Equal(t, 1, ov.Projects[0].Completed)
	require.Equal(t, 33, ov.Projects[0].Percent())
	require.Equal(t, 0, ov.Projects[1].Percent())
}

func TestParseIDs(t *testing.T) {
	ids, err := ParseIDs(" a, b ,a,,c")
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, ids)

	_, err = ParseIDs(" , ")
	require.Equal(t, clierr.Required, clierr.CodeOf(err))
}

func TestResolveTask(t *testing.T) {
	p, err := project.New(project.Data{Name: "Site"})
	require.NoError(t, err)
	tk := mk(t, task.Data{Title: "x"})
	require.NoError(t, p.AddTask(tk))

	got, err := ResolveTask(p, tk.ID())
	require.NoError(t, err)
	require.Same(t, tk, got)

	got, err = ResolveTask(p, tk.ID()[:8])
	require.NoError(t, err)
	require.Same(t, tk, got)

	_, err = ResolveTask(p, "zzzzzzzz")
	require.Equal(t, clierr.TaskNotFound, clierr.CodeOf(err))

	_, err = ResolveTask(p, "")
	require.Equal(t, clierr.Required, clierr.CodeOf(err))
}

package board

import (
	"strings"
	"time"

	"github.com/twiced-technology-gmbh/taskdeck/internal/clierr"
	"github.com/twiced-technology-gmbh/taskdeck/internal/project"
	"github.com/twiced-technology-gmbh/taskdeck/internal/task"
)

// ListOptions controls how tasks are listed.
type ListOptions struct {
	Filter  FilterOptions
	SortBy  string
	Reverse bool
	Limit   int
}

// List applies filters, sorting and the limit to tasks. The input slice is
// left untouched.
func List(tasks []*task.Task, opts ListOptions) []*task.Task {
	result := Filter(tasks, opts.Filter)
	Sort(result, opts.SortBy, opts.Reverse)
	if opts.Limit > 0 && len(result) > opts.Limit {
		result = result[:opts.Limit]
	}
	return result
}

// StatusSummary holds metrics for a single task status.
type StatusSummary struct {
	Status  string `json:"status"`
	Count   int    `json:"count"`
	Overdue int    `json:"overdue"`
}

// PriorityCount holds a count for a priority level.
type PriorityCount struct {
	Priority string `json:"priority"`
	Count    int    `json:"count"`
}

// ProjectSummary holds per-project progress.
type ProjectSummary struct {
	Name      string `json:"name"`
	Status    string `json:"status"`
	Color     string `json:"color"`
	Total     int    `json:"total"`
	Completed int    `json:"completed"`
	Overdue   int    `json:"overdue"`
}

// Percent returns the share of completed tasks, 0 for an empty project.
func (p ProjectSummary) Percent() int {
	if p.Total == 0 {
		return 0
	}
	return p.Completed * 100 / p.Total //nolint:mnd // percentage
}

// Overview is the aggregate summary across projects.
type Overview struct {
	TotalProjects int              `json:"total_projects"`
	TotalTasks    int              `json:"total_tasks"`
	Statuses      []StatusSummary  `json:"statuses"`
	Priorities    []PriorityCount  `json:"priorities"`
	Projects      []ProjectSummary `json:"projects"`
}

// Summary computes an overview of projects at now. Projects keep the
// given order.
func Summary(projects []*project.Project, now time.Time) Overview {
	statusMap := make(map[string]*StatusSummary, len(task.Statuses))
	for _, s := range task.Statuses {
		statusMap[s] = &StatusSummary{Status: s}
	}
	prioMap := make(map[string]int, len(task.Priorities))

	ov := Overview{
		TotalProjects: len(projects),
		Projects:      make([]ProjectSummary, 0, len(projects)),
	}
	for _, p := range projects {
		ps := ProjectSummary{Name: p.Name(), Status: p.Status(), Color: p.Color()}
		for _, t := range p.Tasks() {
			ps.Total++
			overdue := t.IsOverdueAt(now)
			if t.IsCompleted() {
				ps.Completed++
			}
			if overdue {
				ps.Overdue++
			}
			if ss, ok := statusMap[t.Status()]; ok {
				ss.Count++
				if overdue {
					ss.Overdue++
				}
			}
			prioMap[t.Priority()]++
		}
		ov.TotalTasks += ps.Total
		ov.Projects = append(ov.Projects, ps)
	}

	ov.Statuses = make([]StatusSummary, 0, len(task.Statuses))
	for _, s := range task.Statuses {
		ov.Statuses = append(ov.Statuses, *statusMap[s])
	}
	ov.Priorities = make([]PriorityCount, 0, len(task.Priorities))
	for _, p := range task.Priorities {
		ov.Priorities = append(ov.Priorities, PriorityCount{Priority: p, Count: prioMap[p]})
	}
	return ov
}

// ParseIDs splits a comma-separated ID string into deduplicated IDs.
func ParseIDs(arg string) ([]string, error) {
	parts := strings.Split(arg, ",")
	seen := make(map[string]bool, len(parts))
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || seen[p] {
			continue
		}
		ids = append(ids, p)
		seen[p] = true
	}
	if len(ids) == 0 {
		return nil, task.RequiredID()
	}
	return ids, nil
}

// ResolveTask finds the task in p whose id equals ref or, when ref is at
// least four characters, starts with it. An ambiguous prefix fails.
func ResolveTask(p *project.Project, ref string) (*task.Task, error) {
	const minPrefix = 4
	if ref == "" {
		return nil, task.RequiredID()
	}
	if t, err := p.GetTask(ref); err != nil || t != nil {
		return t, err
	}

	var match *task.Task
	if len(ref) >= minPrefix {
		for _, t := range p.Tasks() {
			if !strings.HasPrefix(t.ID(), ref) {
				continue
			}
			if match != nil {
				return nil, clierr.Newf(clierr.InvalidInput, "task id prefix %q is ambiguous", ref).
					WithDetails(map[string]any{"id": ref, "project": p.Name()})
			}
			match = t
		}
	}
	if match == nil {
		return nil, clierr.Newf(clierr.TaskNotFound, "task not found: %s", ref).
			WithDetails(map[string]any{"id": ref, "project": p.Name()})
	}
	return match, nil
}

// CountByStatus returns the number of tasks in each status.
func CountByStatus(tasks []*task.Task) map[string]int {
	counts := make(map[string]int)
	for _, t := range tasks {
		counts[t.Status()]++
	}
	return counts
}

package project

import (
	"github.com/twiced-technology-gmbh/taskdeck/internal/clierr"
	"github.com/twiced-technology-gmbh/taskdeck/internal/task"
)

// List maps project ids to projects, remembering insertion order so
// listings are deterministic.
type List struct {
	byID  map[string]*Project
	order []string
}

// NewList returns an empty List.
func NewList() *List {
	return &List{byID: make(map[string]*Project)}
}

// Add inserts p. It fails for nil or an id already present.
func (l *List) Add(p *Project) error {
	if p == nil {
		return clierr.New(clierr.InvalidInput, "Only Project objects can be added to ProjectList")
	}
	if l.byID == nil {
		l.byID = make(map[string]*Project)
	}
	if _, ok := l.byID[p.ID()]; ok {
		return clierr.New(clierr.DuplicateProject, "Project with this ID already exists").
			WithDetails(map[string]any{"id": p.ID()})
	}
	l.byID[p.ID()] = p
	l.order = append(l.order, p.ID())
	return nil
}

// Remove deletes the project with the given id and reports whether one
// was removed.
func (l *List) Remove(id string) (bool, error) {
	if id == "" {
		return false, RequiredID()
	}
	if _, ok := l.byID[id]; !ok {
		return false, nil
	}
	delete(l.byID, id)
	for i, existing := range l.order {
		if existing == id {
			l.order = append(l.order[:i:i], l.order[i+1:]...)
			break
		}
	}
	return true, nil
}

// Get returns the project with the given id, or nil.
func (l *List) Get(id string) (*Project, error) {
	if id == "" {
		return nil, RequiredID()
	}
	return l.byID[id], nil
}

// Has reports whether a project with the given id is present.
func (l *List) Has(id string) bool {
	_, ok := l.byID[id]
	return ok
}

// Len returns the number of projects.
func (l *List) Len() int { return len(l.order) }

// All returns the projects in insertion order.
func (l *List) All() []*Project {
	return l.filter(func(*Project) bool { return true })
}

func (l *List) Active() []*Project    { return l.filter((*Project).IsActive) }
func (l *List) Completed() []*Project { return l.filter((*Project).IsCompleted) }
func (l *List) Archived() []*Project  { return l.filter((*Project).IsArchived) }

// ByOwner returns projects whose owner equals owner exactly.
func (l *List) ByOwner(owner string) ([]*Project, error) {
	if owner == "" {
		return nil, clierr.New(clierr.Required, "Owner is required")
	}
	return l.filter(func(p *Project) bool { return p.Owner() == owner }), nil
}

// ProjectForTask returns the first project, in insertion order, holding
// the given task, or nil.
func (l *List) ProjectForTask(taskID string) (*Project, error) {
	if taskID == "" {
		return nil, task.RequiredID()
	}
	for _, id := range l.order {
		if p := l.byID[id]; p.HasTask(taskID) {
			return p, nil
		}
	}
	return nil, nil
}

// MoveTask moves a task between two projects of the list and points the
// task's projectId at its new owner.
func (l *List) MoveTask(taskID, fromID, toID string) error {
	from, to := l.byID[fromID], l.byID[toID]
	if from == nil || to == nil {
		return clierr.New(clierr.ProjectNotFound, "Both source and destination projects must exist").
			WithDetails(map[string]any{"from": fromID, "to": toID})
	}
	if taskID == "" {
		return task.RequiredID()
	}
	t, err := from.GetTask(taskID)
	if err != nil {
		return err
	}
	if t == nil {
		return clierr.New(clierr.TaskNotFound, "Task does not exist in source project").
			WithDetails(map[string]any{"id": taskID, "project": fromID})
	}
	if to.HasTask(taskID) {
		return clierr.New(clierr.DuplicateTask, "Task already exists in destination project").
			WithDetails(map[string]any{"id": taskID, "project": toID})
	}

	if _, err := from.RemoveTask(taskID); err != nil {
		return err
	}
	if err := to.AddTask(t); err != nil {
		return err
	}
	t.SetProjectID(to.ID())
	return nil
}

// Records returns the persisted form of every project in insertion order.
func (l *List) Records() []Record {
	records := make([]Record, 0, len(l.order))
	for _, id := range l.order {
		records = append(records, l.byID[id].Record())
	}
	return records
}

func (l *List) filter(keep func(*Project) bool) []*Project {
	out := make([]*Project, 0, len(l.order))
	for _, id := range l.order {
		if p := l.byID[id]; keep(p) {
			out = append(out, p)
		}
	}
	return out
}

package task

import (
	"github.com/twiced-technology-gmbh/taskdeck/internal/clierr"
)

// List is an insertion-ordered collection of tasks with unique ids.
// The zero value is ready to use.
type List struct {
	tasks []*Task
}

// NewList returns an empty List.
func NewList() *List {
	return &List{}
}

// Add appends t. It fails for a nil task or when a task with the same id
// is already present.
func (l *List) Add(t *Task) error {
	if t == nil {
		return clierr.New(clierr.InvalidInput, "Only Task objects can be added to TaskList")
	}
	if l.Has(t.ID()) {
		return clierr.Newf(clierr.DuplicateTask, "Task with this ID already exists").
			WithDetails(map[string]any{"id": t.ID()})
	}
	l.tasks = append(l.tasks, t)
	return nil
}

// Remove deletes the task with the given id and reports whether one was
// removed.
func (l *List) Remove(id string) (bool, error) {
	if id == "" {
		return false, RequiredID()
	}
	for i, t := range l.tasks {
		if t.ID() == id {
			l.tasks = append(l.tasks[:i:i], l.tasks[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// Get returns the task with the given id, or nil.
func (l *List) Get(id string) (*Task, error) {
	if id == "" {
		return nil, RequiredID()
	}
	for _, t := range l.tasks {
		if t.ID() == id {
			return t, nil
		}
	}
	return nil, nil
}

// Has reports whether a task with the given id is present.
func (l *List) Has(id string) bool {
	for _, t := range l.tasks {
		if t.ID() == id {
			return true
		}
	}
	return false
}

// All returns the tasks in insertion order. The slice is a copy.
func (l *List) All() []*Task {
	return append([]*Task{}, l.tasks...)
}

// Len returns the number of tasks.
func (l *List) Len() int {
	return len(l.tasks)
}

// Records returns the persisted form of every task in insertion order.
func (l *List) Records() []Record {
	records := make([]Record, 0, len(l.tasks))
	for _, t := range l.tasks {
		records = append(records, t.Record())
	}
	return records
}

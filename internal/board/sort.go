package board

import (
	"sort"
	"strings"

	"github.com/twiced-technology-gmbh/taskdeck/internal/task"
)

// Sort fields accepted by Sort.
const (
	SortInsertion = ""
	SortTitle     = "title"
	SortStatus    = "status"
	SortPriority  = "priority"
	SortCreated   = "created"
	SortUpdated   = "updated"
	SortDue       = "due"
)

// SortFields lists the valid --sort values.
var SortFields = []string{SortTitle, SortStatus, SortPriority, SortCreated, SortUpdated, SortDue}

// Sort sorts tasks in place by field. Status and priority follow their
// declared order; high priority sorts first. An unknown or empty field
// keeps insertion order.
func Sort(tasks []*task.Task, field string, reverse bool) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if reverse {
			a, b = b, a
		}
		return compareTasks(a, b, field)
	})
}

func compareTasks(a, b *task.Task, field string) bool {
	switch field {
	case SortTitle:
		return strings.ToLower(a.Title()) < strings.ToLower(b.Title())
	case SortStatus:
		return indexOf(task.Statuses, a.Status()) < indexOf(task.Statuses, b.Status())
	case SortPriority:
		return indexOf(task.Priorities, a.Priority()) > indexOf(task.Priorities, b.Priority())
	case SortCreated:
		return a.CreatedAt().Before(b.CreatedAt())
	case SortUpdated:
		return a.LastModified().Before(b.LastModified())
	case SortDue:
		return compareDue(a, b)
	default:
		return false
	}
}

func compareDue(a, b *task.Task) bool {
	ad, bd := a.DueDate(), b.DueDate()
	if ad == nil {
		return false // nil sorts last
	}
	if bd == nil {
		return true
	}
	return ad.Before(*bd)
}

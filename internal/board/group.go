package board

import (
	"sort"

	"github.com/twiced-technology-gmbh/taskdeck/internal/task"
)

// Group-by fields.
const (
	GroupTag      = "tag"
	GroupPriority = "priority"
	GroupStatus   = "status"
)

// GroupedSummary holds tasks grouped by a field.
type GroupedSummary struct {
	Groups []GroupSummary `json:"groups"`
}

// GroupSummary is one group within a grouped view.
type GroupSummary struct {
	Key      string          `json:"key"`
	Statuses []StatusSummary `json:"statuses"`
	Total    int             `json:"total"`
}

// GroupBy groups tasks by field. A task with several tags counts once in
// each tag group.
func GroupBy(tasks []*task.Task, field string) GroupedSummary {
	groups := make(map[string][]*task.Task)
	for _, t := range tasks {
		for _, key := range extractGroupKeys(t, field) {
			groups[key] = append(groups[key], t)
		}
	}

	keys := sortGroupKeys(groups, field)
	result := GroupedSummary{Groups: make([]GroupSummary, 0, len(keys))}
	for _, key := range keys {
		groupTasks := groups[key]
		result.Groups = append(result.Groups, GroupSummary{
			Key:      key,
			Statuses: groupStatusSummary(groupTasks),
			Total:    len(groupTasks),
		})
	}
	return result
}

func extractGroupKeys(t *task.Task, field string) []string {
	switch field {
	case GroupTag:
		tags := t.Tags()
		if len(tags) == 0 {
			return []string{"(untagged)"}
		}
		return tags
	case GroupPriority:
		return []string{t.Priority()}
	case GroupStatus:
		return []string{t.Status()}
	default:
		return []string{"(all)"}
	}
}

func sortGroupKeys(groups map[string][]*task.Task, field string) []string {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}

	switch field {
	case GroupStatus:
		sort.SliceStable(keys, func(i, j int) bool {
			return indexOf(task.Statuses, keys[i]) < indexOf(task.Statuses, keys[j])
		})
	case GroupPriority:
		sort.SliceStable(keys, func(i, j int) bool {
			return indexOf(task.Priorities, keys[i]) > indexOf(task.Priorities, keys[j])
		})
	default:
		sort.Strings(keys)
	}
	return keys
}

func groupStatusSummary(tasks []*task.Task) []StatusSummary {
	counts := CountByStatus(tasks)
	statuses := make([]StatusSummary, 0, len(task.Statuses))
	for _, s := range task.Statuses {
		statuses = append(statuses, StatusSummary{Status: s, Count: counts[s]})
	}
	return statuses
}

// ValidGroupByFields returns the list of valid --group-by field names.
func ValidGroupByFields() []string {
	return []string{GroupTag, GroupPriority, GroupStatus}
}

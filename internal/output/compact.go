package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/twiced-technology-gmbh/taskdeck/internal/activity"
	"github.com/twiced-technology-gmbh/taskdeck/internal/board"
	"github.com/twiced-technology-gmbh/taskdeck/internal/project"
	"github.com/twiced-technology-gmbh/taskdeck/internal/storage"
	"github.com/twiced-technology-gmbh/taskdeck/internal/task"
)

const shortID = 8

// TaskCompact renders a list of tasks in one-line-per-record compact format.
func TaskCompact(w io.Writer, tasks []*task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}
	for _, t := range tasks {
		fmt.Fprintln(w, formatTaskLine(t))
	}
}

// TaskDetailCompact renders a single task with detail in compact format.
func TaskDetailCompact(w io.Writer, t *task.Task) {
	fmt.Fprintln(w, formatTaskLine(t))
	fmt.Fprintln(w, "  created:"+t.CreatedAt().Format("2006-01-02")+
		" updated:"+t.LastModified().Format("2006-01-02"))
	if t.Description() != "" {
		for _, line := range strings.Split(t.Description(), "\n") {
			fmt.Fprintln(w, "  "+line)
		}
	}
}

// ProjectCompact renders projects one per line.
func ProjectCompact(w io.Writer, projects []*project.Project) {
	if len(projects) == 0 {
		fmt.Fprintln(os.Stderr, "No projects found.")
		return
	}
	for _, p := range projects {
		line := p.Name() + " [" + p.Status() + "/" + p.Color() + "] " + strconv.Itoa(p.TaskCount()) + " tasks"
		if p.Owner() != "" {
			line += " @" + p.Owner()
		}
		fmt.Fprintln(w, line)
	}
}

// SearchCompact renders search hits one per line, prefixed by project.
func SearchCompact(w io.Writer, results []storage.SearchResult) {
	if len(results) == 0 {
		fmt.Fprintln(os.Stderr, "No matching tasks.")
		return
	}
	for _, r := range results {
		fmt.Fprintln(w, r.ProjectName+": "+formatTaskLine(r.Task))
	}
}

// OverviewCompact renders a summary in compact format.
func OverviewCompact(w io.Writer, s board.Overview) {
	fmt.Fprintf(w, "%d projects (%d tasks)\n", s.TotalProjects, s.TotalTasks)

	for _, ss := range s.Statuses {
		line := "  " + ss.Status + ": " + strconv.Itoa(ss.Count)
		if ss.Overdue > 0 {
			line += " (" + strconv.Itoa(ss.Overdue) + " overdue)"
		}
		fmt.Fprintln(w, line)
	}

	if len(s.Priorities) > 0 {
		parts := make([]string, 0, len(s.Priorities))
		for _, pc := range s.Priorities {
			parts = append(parts, pc.Priority+"="+strconv.Itoa(pc.Count))
		}
		fmt.Fprintln(w, "Priority: "+strings.Join(parts, " "))
	}
	for _, ps := range s.Projects {
		fmt.Fprintf(w, "%s: %d/%d done\n", ps.Name, ps.Completed, ps.Total)
	}
}

// ActivityCompact renders activity entries one per line.
func ActivityCompact(w io.Writer, entries []activity.Entry) {
	for _, e := range entries {
		line := e.Timestamp.Local().Format("2006-01-02 15:04") + " " + e.Action + " " + e.Project
		if e.TaskID != "" {
			line += " " + short(e.TaskID)
		}
		if e.Detail != "" {
			line += " " + e.Detail
		}
		fmt.Fprintln(w, line)
	}
}

// formatTaskLine builds the one-line representation of a task.
func formatTaskLine(t *task.Task) string {
	line := short(t.ID()) + " [" + t.Status() + "/" + t.Priority() + "] " + t.Title()
	if tags := t.Tags(); len(tags) > 0 {
		line += " (" + strings.Join(tags, ", ") + ")"
	}
	if due := t.DueDate(); due != nil {
		line += " due:" + due.Local().Format("2006-01-02")
	}
	return line
}

func short(id string) string {
	if len(id) > shortID {
		return id[:shortID]
	}
	return id
}

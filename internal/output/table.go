package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/twiced-technology-gmbh/taskdeck/internal/activity"
	"github.com/twiced-technology-gmbh/taskdeck/internal/board"
	"github.com/twiced-technology-gmbh/taskdeck/internal/project"
	"github.com/twiced-technology-gmbh/taskdeck/internal/storage"
	"github.com/twiced-technology-gmbh/taskdeck/internal/task"
)

var (
	colorEnabled = true

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boldStyle   = lipgloss.NewStyle().Bold(true)

	// Status colors aligned with TUI palette.
	statusStyles = map[string]lipgloss.Style{
		task.StatusPending:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		task.StatusInProgress:  lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		task.StatusCompleted:   lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		project.StatusActive:   lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		project.StatusArchived: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}

	// Priority colors matching TUI priority palette.
	priorityStyles = map[string]lipgloss.Style{
		task.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
		task.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		task.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
	}

	// Project colors map to ANSI 256 codes.
	projectColorStyles = map[string]lipgloss.Style{
		project.ColorBlue:   lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		project.ColorGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		project.ColorRed:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		project.ColorYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		project.ColorPurple: lipgloss.NewStyle().Foreground(lipgloss.Color("135")),
		project.ColorGray:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}

	tagStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
	overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// DisableColor strips all styling from table output.
func DisableColor() {
	colorEnabled = false
	headerStyle = lipgloss.NewStyle()
	dimStyle = lipgloss.NewStyle()
	boldStyle = lipgloss.NewStyle()
	statusStyles = map[string]lipgloss.Style{}
	priorityStyles = map[string]lipgloss.Style{}
	projectColorStyles = map[string]lipgloss.Style{}
	tagStyle = lipgloss.NewStyle()
	overdueStyle = lipgloss.NewStyle()
}

// StaleColorFunc picks an ANSI color for a task idle for the given
// duration; "" means no color.
type StaleColorFunc func(idle time.Duration) string

// TaskTable renders a list of tasks as a formatted table. stale may be nil.
func TaskTable(w io.Writer, tasks []*task.Task, stale StaleColorFunc) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}

	now := time.Now()
	const pad = 2
	idW, statusW, prioW, titleW, tagsW := shortID+pad, 8, 10, 5, 6
	for _, t := range tasks {
		statusW = max(statusW, len(t.Status())+pad)
		prioW = max(prioW, len(t.Priority())+pad)
		titleW = max(titleW, min(lipgloss.Width(t.Title())+pad, 50))       //nolint:mnd // max title column width
		tagsW = max(tagsW, min(len(strings.Join(t.Tags(), ","))+pad, 30)) //nolint:mnd // max tags column width
	}

	header := fmt.Sprintf("%-*s %-*s %-*s %-*s %-*s %s",
		idW, "ID", statusW, "STATUS", prioW, "PRIORITY",
		titleW, "TITLE", tagsW, "TAGS", "DUE")
	fmt.Fprintln(w, headerStyle.Render(header))

	for _, t := range tasks {
		title := truncate(t.Title(), 48) //nolint:mnd // leaves room for padding
		if stale != nil {
			if c := stale(now.Sub(t.LastModified())); c != "" && colorEnabled {
				title = lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render(title)
			}
		}
		tags := strings.Join(t.Tags(), ",")
		if tags == "" {
			tags = dimStyle.Render("--")
		} else {
			tags = tagStyle.Render(tags)
		}

		row := fmt.Sprintf("%-*s %s %s %s %s %s",
			idW, short(t.ID()),
			padRight(styledValue(t.Status(), statusStyles), statusW),
			padRight(styledValue(t.Priority(), priorityStyles), prioW),
			padRight(title, titleW),
			padRight(tags, tagsW),
			dueDisplay(t, now))
		fmt.Fprintln(w, strings.TrimRight(row, " "))
	}
}

// TaskDetail renders a single task with full detail.
func TaskDetail(w io.Writer, t *task.Task, projectName string) {
	titleLine := "Task " + short(t.ID()) + ": " + t.Title()
	fmt.Fprintln(w, boldStyle.Render(titleLine))
	fmt.Fprintln(w, strings.Repeat("─", lipgloss.Width(titleLine)))

	printField(w, "ID", t.ID())
	if projectName != "" {
		printField(w, "Project", projectName)
	}
	printField(w, "Status", styledValue(t.Status(), statusStyles))
	printField(w, "Priority", styledValue(t.Priority(), priorityStyles))
	if tags := t.Tags(); len(tags) > 0 {
		printField(w, "Tags", tagStyle.Render(strings.Join(tags, ", ")))
	} else {
		printField(w, "Tags", dimStyle.Render("--"))
	}
	printField(w, "Due", t.FormattedDueDate())
	if remaining, ok := t.TimeRemaining(); ok {
		if t.IsOverdue() {
			remaining = overdueStyle.Render(remaining)
		}
		printField(w, "Remaining", remaining)
	}
	printField(w, "Created", t.CreatedAt().Local().Format("2006-01-02 15:04"))
	printField(w, "Updated", t.LastModified().Local().Format("2006-01-02 15:04"))

	if t.Description() != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, renderMarkdown(t.Description()))
	}
}

// ProjectTable renders projects with their progress.
func ProjectTable(w io.Writer, projects []*project.Project) {
	if len(projects) == 0 {
		fmt.Fprintln(os.Stderr, "No projects found.")
		return
	}

	const pad = 2
	nameW, ownerW := 6, 7
	for _, p := range projects {
		nameW = max(nameW, min(lipgloss.Width(p.Name())+pad, 40)) //nolint:mnd // max name column width
		ownerW = max(ownerW, len(p.Owner())+pad)
	}

	header := fmt.Sprintf("%-*s %-11s %-8s %-*s %s", nameW, "NAME", "STATUS", "COLOR", ownerW, "OWNER", "TASKS")
	fmt.Fprintln(w, headerStyle.Render(header))

	for _, p := range projects {
		done := 0
		for _, t := range p.Tasks() {
			if t.IsCompleted() {
				done++
			}
		}
		row := fmt.Sprintf("%s %s %s %s %d/%d",
			padRight(colored(truncate(p.Name(), 38), p.Color()), nameW), //nolint:mnd // leaves room for padding
			padRight(styledValue(p.Status(), statusStyles), 11),         //nolint:mnd // status column width
			padRight(styledValue(p.Color(), projectColorStyles), 8),     //nolint:mnd // color column width
			padRight(stringOrDash(p.Owner()), ownerW),
			done, p.TaskCount())
		fmt.Fprintln(w, strings.TrimRight(row, " "))
	}
}

// ProjectDetail renders a project header followed by its tasks.
func ProjectDetail(w io.Writer, p *project.Project, tasks []*task.Task, stale StaleColorFunc) {
	fmt.Fprintln(w, boldStyle.Render(colored(p.Name(), p.Color())))
	printField(w, "ID", p.ID())
	printField(w, "Status", styledValue(p.Status(), statusStyles))
	printField(w, "Owner", stringOrDash(p.Owner()))
	printField(w, "Tasks", strconv.Itoa(p.TaskCount()))
	printField(w, "Created", p.CreatedAt().Local().Format("2006-01-02 15:04"))
	printField(w, "Updated", p.LastModified().Local().Format("2006-01-02 15:04"))
	if p.Description() != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, renderMarkdown(p.Description()))
	}
	fmt.Fprintln(w)
	TaskTable(w, tasks, stale)
}

// SearchTable renders search hits grouped under their project name.
func SearchTable(w io.Writer, results []storage.SearchResult) {
	if len(results) == 0 {
		fmt.Fprintln(os.Stderr, "No matching tasks.")
		return
	}
	var current string
	var group []*task.Task
	flush := func() {
		if len(group) == 0 {
			return
		}
		fmt.Fprintln(w, boldStyle.Render(current))
		TaskTable(w, group, nil)
		fmt.Fprintln(w)
		group = nil
	}
	for _, r := range results {
		if r.ProjectName != current {
			flush()
			current = r.ProjectName
		}
		group = append(group, r.Task)
	}
	flush()
}

// OverviewTable renders a summary as a formatted dashboard.
func OverviewTable(w io.Writer, s board.Overview) {
	fmt.Fprintf(w, "Total: %d projects, %d tasks\n\n", s.TotalProjects, s.TotalTasks)

	header := fmt.Sprintf("%-16s %6s %8s", "STATUS", "COUNT", "OVERDUE")
	fmt.Fprintln(w, headerStyle.Render(header))
	for _, ss := range s.Statuses {
		const statusColW = 16
		fmt.Fprintf(w, "%s %6d %8d\n",
			padRight(styledValue(ss.Status, statusStyles), statusColW), ss.Count, ss.Overdue)
	}

	fmt.Fprintln(w)
	prioHeader := fmt.Sprintf("%-16s %6s", "PRIORITY", "COUNT")
	fmt.Fprintln(w, headerStyle.Render(prioHeader))
	for _, pc := range s.Priorities {
		const prioColW = 16
		fmt.Fprintf(w, "%s %6d\n",
			padRight(styledValue(pc.Priority, priorityStyles), prioColW), pc.Count)
	}

	if len(s.Projects) > 0 {
		fmt.Fprintln(w)
		projHeader := fmt.Sprintf("%-24s %-11s %6s %8s %8s", "PROJECT", "STATUS", "DONE", "OVERDUE", "PROGRESS")
		fmt.Fprintln(w, headerStyle.Render(projHeader))
		for _, ps := range s.Projects {
			const nameColW, statusColW = 24, 11
			fmt.Fprintf(w, "%s %s %6s %8d %7d%%\n",
				padRight(colored(truncate(ps.Name, nameColW-1), ps.Color), nameColW),
				padRight(styledValue(ps.Status, statusStyles), statusColW),
				strconv.Itoa(ps.Completed)+"/"+strconv.Itoa(ps.Total),
				ps.Overdue, ps.Percent())
		}
	}
}

// GroupedTable renders a grouped view with per-group status breakdowns.
func GroupedTable(w io.Writer, gs board.GroupedSummary) {
	if len(gs.Groups) == 0 {
		fmt.Fprintln(os.Stderr, "No groups found.")
		return
	}

	for i, g := range gs.Groups {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, boldStyle.Render(fmt.Sprintf("%s (%d tasks)", g.Key, g.Total)))
		for _, ss := range g.Statuses {
			if ss.Count == 0 {
				continue
			}
			const groupStatusW = 16
			fmt.Fprintf(w, "  %s %d\n",
				padRight(styledValue(ss.Status, statusStyles), groupStatusW), ss.Count)
		}
	}
}

// ActivityTable renders activity log entries.
func ActivityTable(w io.Writer, entries []activity.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "No activity recorded.")
		return
	}
	header := fmt.Sprintf("%-17s %-15s %-20s %-9s %s", "WHEN", "ACTION", "PROJECT", "TASK", "DETAIL")
	fmt.Fprintln(w, headerStyle.Render(header))
	for _, e := range entries {
		taskID := e.TaskID
		if taskID == "" {
			taskID = "--"
		}
		row := fmt.Sprintf("%-17s %-15s %-20s %-9s %s",
			e.Timestamp.Local().Format("2006-01-02 15:04"),
			e.Action, truncate(e.Project, 20), short(taskID), e.Detail) //nolint:mnd // project column width
		fmt.Fprintln(w, strings.TrimRight(row, " "))
	}
}

// Messagef prints a simple formatted message line.
func Messagef(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format+"\n", args...)
}

func printField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %-12s %s\n", label+":", value)
}

func dueDisplay(t *task.Task, now time.Time) string {
	due := t.DueDate()
	if due == nil {
		return dimStyle.Render("--")
	}
	s := due.Local().Format("2006-01-02")
	if t.IsOverdueAt(now) {
		return overdueStyle.Render(s + " overdue")
	}
	return s
}

// truncate shortens s to at most n visible characters.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// padRight pads s with spaces to the given visible width, accounting for ANSI
// escape codes that are invisible but consume bytes.
func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

func stringOrDash(s string) string {
	if s == "" {
		return dimStyle.Render("--")
	}
	return s
}

// colored renders s in the given project color.
func colored(s, color string) string {
	if st, ok := projectColorStyles[color]; ok {
		return st.Render(s)
	}
	return s
}

// styledValue renders s using a matching style from the map, or returns s unchanged.
func styledValue(s string, styles map[string]lipgloss.Style) string {
	if st, ok := styles[s]; ok {
		return st.Render(s)
	}
	return s
}

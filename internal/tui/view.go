package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/twiced-technology-gmbh/taskdeck/internal/form"
	"github.com/twiced-technology-gmbh/taskdeck/internal/project"
	"github.com/twiced-technology-gmbh/taskdeck/internal/task"
)

var (
	paneHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236")).
			Padding(0, 1)

	activePaneHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("230")).
				Background(lipgloss.Color("62")).
				Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("226"))

	completedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Strikethrough(true)

	overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)

	// projectColors maps project.Colors to ANSI 256 codes.
	projectColors = map[string]lipgloss.Color{
		project.ColorBlue:   "33",
		project.ColorGreen:  "34",
		project.ColorRed:    "196",
		project.ColorYellow: "226",
		project.ColorPurple: "135",
		project.ColorGray:   "245",
	}

	statusMarks = map[string]string{
		task.StatusPending:    "[ ]",
		task.StatusInProgress: "[~]",
		task.StatusCompleted:  "[x]",
	}
)

func (b *Board) viewBoard() string {
	const projectFraction = 3
	leftW := max(b.width/projectFraction, 20) //nolint:mnd // minimum project pane width
	rightW := max(b.width-leftW-1, 20)        //nolint:mnd // minimum task pane width

	left := b.renderProjects(leftW)
	right := b.renderTasks(rightW)
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)

	targetHeight := b.height - b.chromeHeight()
	if targetHeight > 0 {
		actual := strings.Count(body, "\n") + 1
		if actual > targetHeight {
			lines := strings.SplitN(body, "\n", targetHeight+1)
			body = strings.Join(lines[:targetHeight], "\n")
		} else if actual < targetHeight {
			body += strings.Repeat("\n", targetHeight-actual)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, "", b.renderStatusBar())
}

func (b *Board) chromeHeight() int {
	h := boardChrome
	if b.err != nil {
		h += errorChrome
	}
	return h
}

func (b *Board) header(text string, width int, focused bool) string {
	const headerPad = 2
	text = truncate(text, width-headerPad)
	if focused {
		return activePaneHeaderStyle.Width(width).Render(text)
	}
	return paneHeaderStyle.Width(width).Render(text)
}

func (b *Board) renderProjects(width int) string {
	lines := []string{b.header(fmt.Sprintf("Projects (%d)", len(b.projects)), width, b.focus == paneProjects)}
	if len(b.projects) == 0 {
		lines = append(lines, dimStyle.Render("  (none)"))
	}
	for i, p := range b.projects {
		done := 0
		for _, t := range p.Tasks() {
			if t.IsCompleted() {
				done++
			}
		}
		marker := lipgloss.NewStyle().Foreground(projectColors[p.Color()]).Render("●")
		line := fmt.Sprintf("%s %s", marker, truncate(p.Name(), width-12)) //nolint:mnd // room for marker and counts
		counts := dimStyle.Render(fmt.Sprintf(" %d/%d", done, p.TaskCount()))
		if p.IsArchived() {
			line = dimStyle.Render(line)
		}
		if i == b.activeProject {
			line = selectedStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		lines = append(lines, line+counts)
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n"))
}

func (b *Board) renderTasks(width int) string {
	title := "Tasks"
	if p := b.selectedProject(); p != nil {
		title = fmt.Sprintf("%s (%d)", p.Name(), len(b.tasks))
	}
	lines := []string{b.header(title, width, b.focus == paneTasks)}
	if len(b.tasks) == 0 {
		lines = append(lines, dimStyle.Render("  (empty)"))
	}

	now := b.now()
	for i, t := range b.tasks {
		lines = append(lines, b.renderTaskLine(t, i == b.activeRow && b.focus == paneTasks, width, now))
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n"))
}

func (b *Board) renderTaskLine(t *task.Task, active bool, width int, now time.Time) string {
	const fixed = 22 // cursor, mark, priority and idle columns
	prio := fmt.Sprintf("%-6s", t.Priority())
	idle := humanDuration(now.Sub(t.LastModified()))

	title := truncate(t.Title(), max(width-fixed, 4)) //nolint:mnd // minimum title width
	switch {
	case t.IsCompleted():
		title = completedStyle.Render(title)
	case t.IsOverdueAt(now):
		title = overdueStyle.Render(title)
	}

	idleStyle := dimStyle
	if b.opts.StaleColor != nil && !t.IsCompleted() {
		if c := b.opts.StaleColor(now.Sub(t.LastModified())); c != "" {
			idleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(c))
		}
	}

	cursor := "  "
	if active {
		cursor = selectedStyle.Render("> ")
	}
	return fmt.Sprintf("%s%s %s %s %s", cursor, statusMarks[t.Status()], prio, title, idleStyle.Render(idle))
}

func (b *Board) renderStatusBar() string {
	status := fmt.Sprintf(" %d projects | tab:pane space:toggle s:status p:priority a:add d:del r:reload q:quit",
		len(b.projects))
	status = truncate(status, b.width)

	if b.err != nil {
		errStr := errorStyle.Render(truncate("Error: "+b.err.Error(), b.width))
		return errStr + "\n" + statusBarStyle.Render(status)
	}
	return statusBarStyle.Render(status)
}

func (b *Board) viewDeleteConfirm() string {
	heading := "Delete task?"
	if b.deleteTaskID == "" {
		heading = "Delete project and all its tasks?"
	}
	content := errorStyle.Render(heading) + "\n\n" +
		"  " + b.deleteTitle + "\n\n" +
		dimStyle.Render("y:yes  n:no")

	return dialogStyle.Render(content)
}

func (b *Board) viewAddTask() string {
	name := ""
	if p := b.selectedProject(); p != nil {
		name = p.Name()
	}
	lines := []string{selectedStyle.Render("New task in " + name), ""}
	for i, field := range form.Fields {
		label := fmt.Sprintf("%-12s", formLabels[field])
		input := b.form.inputs[i].View()
		if i == b.form.active {
			lines = append(lines, selectedStyle.Render("> "+label)+" "+input)
		} else {
			lines = append(lines, "  "+label+" "+input)
		}
	}
	if b.form.err != nil {
		lines = append(lines, "", errorStyle.Render(b.form.err.Error()))
	}
	lines = append(lines, "", dimStyle.Render("tab:next  enter:save  esc:cancel"))
	return dialogStyle.Render(strings.Join(lines, "\n"))
}

func truncate(s string, maxLen int) string {
	if maxLen < 4 { //nolint:mnd // minimum length for truncation
		maxLen = 4
	}
	if lipgloss.Width(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	target := min(maxLen-3, len(runes)) //nolint:mnd // room for "..."
	for target > 0 && lipgloss.Width(string(runes[:target])) > maxLen-3 {
		target--
	}
	return string(runes[:target]) + "..."
}

// humanDuration formats a duration as a compact human-readable string.
// Examples: "<1m", "5m", "2h", "3d", "2w", "3mo", "1y".
func humanDuration(d time.Duration) string {
	const (
		day   = 24 * time.Hour
		week  = 7 * day
		month = 30 * day
		year  = 365 * day
	)

	switch {
	case d < time.Minute:
		return "<1m"
	case d < time.Hour:
		return strconv.Itoa(int(d.Minutes())) + "m"
	case d < day:
		return strconv.Itoa(int(d.Hours())) + "h"
	case d < week:
		return strconv.Itoa(int(d/day)) + "d"
	case d < month:
		return strconv.Itoa(int(d/week)) + "w"
	case d < year:
		return strconv.Itoa(int(d/month)) + "mo"
	default:
		return strconv.Itoa(int(d/year)) + "y"
	}
}

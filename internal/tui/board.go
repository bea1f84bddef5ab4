// Package tui implements the interactive taskdeck browser: a project pane
// and a task pane over the configured project store.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/twiced-technology-gmbh/taskdeck/internal/activity"
	"github.com/twiced-technology-gmbh/taskdeck/internal/board"
	"github.com/twiced-technology-gmbh/taskdeck/internal/form"
	"github.com/twiced-technology-gmbh/taskdeck/internal/project"
	"github.com/twiced-technology-gmbh/taskdeck/internal/storage"
	"github.com/twiced-technology-gmbh/taskdeck/internal/task"
)

// view represents the current screen state.
type view int

const (
	viewBoard view = iota
	viewConfirmDelete
	viewAddTask
)

// pane is the focused list on the board screen.
type pane int

const (
	paneProjects pane = iota
	paneTasks
)

// Key and layout constants.
const (
	keyEsc = "esc"

	boardChrome  = 2 // blank line + status bar below the panes
	errorChrome  = 1 // extra line when an error is displayed
	tickInterval = 30 * time.Second
)

// Options configures a Board.
type Options struct {
	Store *storage.ProjectStorage
	// ActivityPath receives a log entry per mutation; "" disables it.
	ActivityPath string
	// StaleColor colors tasks by idle time. Optional.
	StaleColor func(idle time.Duration) string
	// SortBy orders the task pane, one of board.SortFields. Defaults to
	// priority.
	SortBy string
}

// Board is the top-level bubbletea model.
type Board struct {
	ctx  context.Context
	opts Options

	projects      []*project.Project
	tasks         []*task.Task // tasks of the selected project, display order
	activeProject int
	activeRow     int
	focus         pane
	view          view
	width         int
	height        int
	err           error
	now           func() time.Time

	// Delete confirmation. An empty deleteTaskID deletes the project.
	deleteTaskID string
	deleteTitle  string

	form *taskForm
}

// NewBoard creates a Board and loads every project from opts.Store.
func NewBoard(ctx context.Context, opts Options) *Board {
	if opts.SortBy == "" {
		opts.SortBy = board.SortPriority
	}
	b := &Board{ctx: ctx, opts: opts, now: time.Now}
	b.loadProjects()
	return b
}

// SetNow overrides the clock used for idle display (for testing).
func (b *Board) SetNow(fn func() time.Time) {
	b.now = fn
}

// Init implements tea.Model.
func (b *Board) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (b *Board) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return b.handleKey(msg)
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		return b, nil
	case ReloadMsg:
		b.loadProjects()
		return b, nil
	case TickMsg:
		return b, tickCmd()
	case ErrMsg:
		b.err = msg.Err
		return b, nil
	}
	// Cursor blinks and pastes belong to the focused form input.
	if b.view == viewAddTask && b.form != nil {
		return b, b.form.update(msg)
	}
	return b, nil
}

// View implements tea.Model.
func (b *Board) View() string {
	if b.width == 0 {
		return "Loading..."
	}

	switch b.view {
	case viewConfirmDelete:
		return b.viewDeleteConfirm()
	case viewAddTask:
		return b.viewAddTask()
	default:
		return b.viewBoard()
	}
}

func (b *Board) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+c"))) {
		return b, tea.Quit
	}

	switch b.view {
	case viewBoard:
		return b.handleBoardKey(msg)
	case viewConfirmDelete:
		return b.handleDeleteKey(msg)
	case viewAddTask:
		return b.handleFormKey(msg)
	}
	return b, nil
}

func (b *Board) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", keyEsc:
		return b, tea.Quit
	case "tab":
		if b.focus == paneProjects {
			b.focus = paneTasks
		} else {
			b.focus = paneProjects
		}
	case "h", "left":
		b.focus = paneProjects
	case "l", "right", "enter":
		b.focus = paneTasks
	case "j", "down":
		b.moveCursor(1)
	case "k", "up":
		b.moveCursor(-1)
	case " ", "t":
		b.mutateSelected("toggle", (*task.Task).ToggleStatus)
	case "s":
		b.mutateSelected("status", func(t *task.Task) {
			_ = t.SetStatus(next(task.Statuses, t.Status()))
		})
	case "p":
		b.mutateSelected("priority", func(t *task.Task) {
			_ = t.SetPriority(next(task.Priorities, t.Priority()))
		})
	case "a":
		if b.selectedProject() != nil {
			b.form = newTaskForm()
			b.view = viewAddTask
		}
	case "d", "D":
		b.handleDeleteStart()
	case "r":
		b.loadProjects()
	}
	return b, nil
}

func (b *Board) moveCursor(delta int) {
	if b.focus == paneProjects {
		n := b.activeProject + delta
		if n >= 0 && n < len(b.projects) {
			b.activeProject = n
			b.activeRow = 0
			b.refreshTasks()
		}
		return
	}
	n := b.activeRow + delta
	if n >= 0 && n < len(b.tasks) {
		b.activeRow = n
	}
}

// mutateSelected applies fn to the selected task and saves its project.
func (b *Board) mutateSelected(what string, fn func(*task.Task)) {
	p, t := b.selectedProject(), b.selectedTask()
	if p == nil || t == nil || b.focus != paneTasks {
		return
	}
	fn(t)
	b.persist(p, activity.ActionTaskUpdate, t.ID(), fmt.Sprintf("%s: %s/%s", what, t.Status(), t.Priority()))
}

func (b *Board) handleDeleteStart() {
	p := b.selectedProject()
	if p == nil {
		return
	}
	if b.focus == paneTasks {
		t := b.selectedTask()
		if t == nil {
			return
		}
		b.deleteTaskID = t.ID()
		b.deleteTitle = t.Title()
	} else {
		b.deleteTaskID = ""
		b.deleteTitle = p.Name()
	}
	b.view = viewConfirmDelete
}

func (b *Board) handleDeleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		b.executeDelete()
	case "n", "N", keyEsc, "q":
		b.view = viewBoard
	}
	return b, nil
}

func (b *Board) executeDelete() {
	b.view = viewBoard
	p := b.selectedProject()
	if p == nil {
		return
	}

	if b.deleteTaskID == "" {
		if _, err := b.opts.Store.DeleteProject(b.ctx, p.Name()); err != nil {
			b.err = fmt.Errorf("deleting project %s: %w", p.Name(), err)
			return
		}
		activity.Record(b.opts.ActivityPath, activity.ActionProjectDelete, p.Name(), "", "")
		b.loadProjects()
		return
	}

	removed, err := p.RemoveTask(b.deleteTaskID)
	if err != nil {
		b.err = err
		return
	}
	if removed {
		b.persist(p, activity.ActionTaskRemove, b.deleteTaskID, b.deleteTitle)
	}
}

func (b *Board) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		b.form = nil
		b.view = viewBoard
	case tea.KeyEnter:
		b.submitForm()
	default:
		return b, b.form.handleKey(msg)
	}
	return b, nil
}

func (b *Board) submitForm() {
	p := b.selectedProject()
	if p == nil {
		b.view = viewBoard
		return
	}
	h := form.Handler{
		Project: p,
		OnSubmit: func(t *task.Task) error {
			return b.persist(p, activity.ActionTaskAdd, t.ID(), t.Title())
		},
	}
	if _, err := h.Submit(b.form); err != nil {
		// Validation errors keep the form open so the input can be fixed.
		b.form.err = err
		return
	}
	b.form = nil
	b.view = viewBoard
}

// persist saves p, records the mutation and reloads from the store.
func (b *Board) persist(p *project.Project, action, taskID, detail string) error {
	if _, err := b.opts.Store.SaveProject(b.ctx, p); err != nil {
		b.err = fmt.Errorf("saving project %s: %w", p.Name(), err)
		b.loadProjects()
		return b.err
	}
	b.err = nil
	activity.Record(b.opts.ActivityPath, action, p.Name(), taskID, detail)
	b.loadProjects()
	return nil
}

func (b *Board) loadProjects() {
	var selectedID, taskID string
	if p := b.selectedProject(); p != nil {
		selectedID = p.ID()
	}
	if t := b.selectedTask(); t != nil {
		taskID = t.ID()
	}

	projects, err := b.opts.Store.GetAllProjects(b.ctx)
	if err != nil {
		b.err = err
		return
	}
	b.projects = projects

	b.activeProject = 0
	for i, p := range projects {
		if p.ID() == selectedID {
			b.activeProject = i
			break
		}
	}
	b.refreshTasks()

	for i, t := range b.tasks {
		if t.ID() == taskID {
			b.activeRow = i
			break
		}
	}
}

func (b *Board) refreshTasks() {
	b.tasks = nil
	if p := b.selectedProject(); p != nil {
		b.tasks = board.List(p.Tasks(), board.ListOptions{SortBy: b.opts.SortBy})
	}
	if b.activeRow >= len(b.tasks) {
		b.activeRow = max(len(b.tasks)-1, 0)
	}
}

func (b *Board) selectedProject() *project.Project {
	if b.activeProject >= 0 && b.activeProject < len(b.projects) {
		return b.projects[b.activeProject]
	}
	return nil
}

func (b *Board) selectedTask() *task.Task {
	if b.activeRow >= 0 && b.activeRow < len(b.tasks) {
		return b.tasks[b.activeRow]
	}
	return nil
}

// next returns the value after cur in values, wrapping around.
func next(values []string, cur string) string {
	for i, v := range values {
		if v == cur {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}

// ReloadMsg asks the board to re-read the store, typically sent by the
// store watcher.
type ReloadMsg struct{}

// ErrMsg surfaces a background error, such as a failing store watcher,
// in the status bar.
type ErrMsg struct{ Err error }

// TickMsg refreshes idle durations.
type TickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg { return TickMsg{} })
}

package cmd

import (
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/taskdeck/internal/board"
	"github.com/twiced-technology-gmbh/taskdeck/internal/clierr"
	"github.com/twiced-technology-gmbh/taskdeck/internal/date"
	"github.com/twiced-technology-gmbh/taskdeck/internal/output"
	"github.com/twiced-technology-gmbh/taskdeck/internal/project"
	"github.com/twiced-technology-gmbh/taskdeck/internal/task"
)

var taskListCmd = &cobra.Command{
	Use:     "list [PROJECT]",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long: `Lists the tasks of PROJECT, or of every project when omitted, with
optional filtering, sorting, and output format control.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTaskList,
}

func init() {
	f := taskListCmd.Flags()
	f.StringSlice("status", nil, "filter by status (comma-separated)")
	f.StringSlice("priority", nil, "filter by priority (comma-separated)")
	f.String("tag", "", "filter by tag")
	f.StringP("search", "s", "", "search tasks by title, description, or tags (case-insensitive)")
	f.Bool("overdue", false, "show only overdue tasks")
	f.Bool("hide-completed", false, "exclude completed tasks")
	f.String("due-before", "", "show only tasks due before this date")
	f.String("sort", "", "sort field ("+strings.Join(board.SortFields, ", ")+"; default insertion order)")
	f.BoolP("reverse", "r", false, "reverse sort order")
	f.IntP("limit", "n", 0, "limit number of results")
	f.String("group-by", "", "group results by field ("+strings.Join(board.ValidGroupByFields(), ", ")+")")
	taskCmd.AddCommand(taskListCmd)
}

func runTaskList(cmd *cobra.Command, args []string) error {
	opts, groupBy, err := taskListOptions(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	var projects []*project.Project
	if len(args) == 1 {
		p, err := s.project(ctx, args[0])
		if err != nil {
			return err
		}
		projects = []*project.Project{p}
	} else {
		if projects, err = s.store.GetAllProjects(ctx); err != nil {
			return err
		}
	}

	var all []*task.Task
	for _, p := range projects {
		all = append(all, p.Tasks()...)
	}
	tasks := board.List(all, opts)

	if groupBy != "" {
		return outputGroupedList(tasks, groupBy)
	}
	return outputTaskList(tasks, s.staleColor())
}

func taskListOptions(cmd *cobra.Command) (board.ListOptions, string, error) {
	statuses, _ := cmd.Flags().GetStringSlice("status")
	priorities, _ := cmd.Flags().GetStringSlice("priority")
	tag, _ := cmd.Flags().GetString("tag")
	search, _ := cmd.Flags().GetString("search")
	overdue, _ := cmd.Flags().GetBool("overdue")
	hideCompleted, _ := cmd.Flags().GetBool("hide-completed")
	dueBefore, _ := cmd.Flags().GetString("due-before")
	sortBy, _ := cmd.Flags().GetString("sort")
	reverse, _ := cmd.Flags().GetBool("reverse")
	limit, _ := cmd.Flags().GetInt("limit")
	groupBy, _ := cmd.Flags().GetString("group-by")

	if groupBy != "" && !slices.Contains(board.ValidGroupByFields(), groupBy) {
		return board.ListOptions{}, "", clierr.Newf(clierr.InvalidInput, "invalid --group-by field %q; valid: %s",
			groupBy, strings.Join(board.ValidGroupByFields(), ", "))
	}
	if sortBy != "" && !slices.Contains(board.SortFields, sortBy) {
		return board.ListOptions{}, "", clierr.Newf(clierr.InvalidInput, "invalid --sort field %q; valid: %s",
			sortBy, strings.Join(board.SortFields, ", "))
	}
	for _, st := range statuses {
		if err := task.ValidateStatus(st); err != nil {
			return board.ListOptions{}, "", err
		}
	}
	for _, pr := range priorities {
		if err := task.ValidatePriority(pr); err != nil {
			return board.ListOptions{}, "", err
		}
	}

	filter := board.FilterOptions{
		Statuses:   statuses,
		Priorities: priorities,
		Tag:        tag,
		Search:     search,
		Now:        time.Now(),
	}
	if hideCompleted {
		filter.ExcludeStatuses = []string{task.StatusCompleted}
	}
	if overdue {
		v := true
		filter.Overdue = &v
	}
	if dueBefore != "" {
		d, err := date.Parse(dueBefore)
		if err != nil {
			return board.ListOptions{}, "", task.InvalidDate("due-before", dueBefore, err)
		}
		filter.DueBefore = &d
	}

	return board.ListOptions{
		Filter:  filter,
		SortBy:  sortBy,
		Reverse: reverse,
		Limit:   limit,
	}, groupBy, nil
}

func outputGroupedList(tasks []*task.Task, groupBy string) error {
	grouped := board.GroupBy(tasks, groupBy)
	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, grouped)
	}
	output.GroupedTable(os.Stdout, grouped)
	return nil
}

func outputTaskList(tasks []*task.Task, stale output.StaleColorFunc) error {
	format := outputFormat()
	if format == output.FormatJSON {
		if tasks == nil {
			tasks = []*task.Task{}
		}
		return output.JSON(os.Stdout, tasks)
	}
	if format == output.FormatCompact {
		output.TaskCompact(os.Stdout, tasks)
		return nil
	}

	output.TaskTable(os.Stdout, tasks, stale)
	return nil
}

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/taskdeck/internal/activity"
	"github.com/twiced-technology-gmbh/taskdeck/internal/board"
	"github.com/twiced-technology-gmbh/taskdeck/internal/clierr"
	"github.com/twiced-technology-gmbh/taskdeck/internal/output"
	"github.com/twiced-technology-gmbh/taskdeck/internal/task"
)

var taskEditCmd = &cobra.Command{
	Use:   "edit PROJECT ID[,ID,...]",
	Short: "Edit tasks",
	Long: `Modifies fields of existing tasks. Only specified fields are changed.
Multiple IDs can be provided as a comma-separated list.`,
	Args: cobra.ExactArgs(2), //nolint:mnd // project and ids
	RunE: runTaskEdit,
}

var taskToggleCmd = &cobra.Command{
	Use:   "toggle PROJECT ID[,ID,...]",
	Short: "Toggle tasks between completed and pending",
	Args:  cobra.ExactArgs(2), //nolint:mnd // project and ids
	RunE:  runTaskToggle,
}

var taskTagCmd = &cobra.Command{
	Use:   "tag PROJECT ID TAG...",
	Short: "Add tags to a task",
	Args:  cobra.MinimumNArgs(3), //nolint:mnd // project, id and at least one tag
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTaskTags(cmd, args, (*task.Task).AddTag)
	},
}

var taskUntagCmd = &cobra.Command{
	Use:   "untag PROJECT ID TAG...",
	Short: "Remove tags from a task",
	Args:  cobra.MinimumNArgs(3), //nolint:mnd // project, id and at least one tag
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTaskTags(cmd, args, (*task.Task).RemoveTag)
	},
}

func init() {
	f := taskEditCmd.Flags()
	f.String("title", "", "new title")
	f.StringP("description", "d", "", "new description (replaces the whole text)")
	f.String("status", "", "new status")
	f.String("priority", "", "new priority")
	f.String("due", "", "new due date (YYYY-MM-DD)")
	f.Bool("clear-due", false, "clear due date")
	f.StringSlice("tags", nil, "replace all tags")
	f.StringSlice("add-tag", nil, "add tags")
	f.StringSlice("remove-tag", nil, "remove tags")
	taskCmd.AddCommand(taskEditCmd, taskToggleCmd, taskTagCmd, taskUntagCmd)
}

func runTaskEdit(cmd *cobra.Command, args []string) error {
	return forEachTask(cmd, args, func(t *task.Task) (string, error) {
		changed, err := applyEditFlags(cmd, t)
		if err != nil {
			return "", err
		}
		if !changed {
			return "", clierr.New(clierr.NoChanges, "no changes specified")
		}
		return "Updated", nil
	})
}

func runTaskToggle(cmd *cobra.Command, args []string) error {
	return forEachTask(cmd, args, func(t *task.Task) (string, error) {
		t.ToggleStatus()
		return "Marked " + t.Status(), nil
	})
}

func runTaskTags(cmd *cobra.Command, args []string, apply func(*task.Task, string) error) error {
	tags := args[2:]
	return forEachTask(cmd, args[:2], func(t *task.Task) (string, error) {
		for _, tag := range tags {
			if err := apply(t, tag); err != nil {
				return "", err
			}
		}
		return "Tags now " + strings.Join(t.Tags(), ", "), nil
	})
}

// forEachTask resolves args[0] as a project and args[1] as comma-separated
// task references, applies fn to each task and saves the project after
// every successful change. A single id prints the task; several run as a
// batch.
func forEachTask(cmd *cobra.Command, args []string, fn func(*task.Task) (string, error)) error {
	ids, err := board.ParseIDs(args[1])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	p, err := s.project(ctx, args[0])
	if err != nil {
		return err
	}

	apply := func(id string) (*task.Task, string, error) {
		t, err := board.ResolveTask(p, id)
		if err != nil {
			return nil, "", err
		}
		msg, err := fn(t)
		if err != nil {
			return nil, "", err
		}
		detail := fmt.Sprintf("%s (%s/%s)", t.Title(), t.Status(), t.Priority())
		if err := s.save(ctx, p, activity.ActionTaskUpdate, t.ID(), detail); err != nil {
			return nil, "", err
		}
		return t, msg, nil
	}

	if len(ids) == 1 {
		t, msg, err := apply(ids[0])
		if err != nil {
			return err
		}
		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, t)
		}
		output.Messagef(os.Stdout, "%s task %s: %s", msg, short(t.ID()), t.Title())
		return nil
	}

	return runBatch(ids, func(id string) error {
		_, _, err := apply(id)
		return err
	})
}

func applyEditFlags(cmd *cobra.Command, t *task.Task) (bool, error) {
	changed := false

	if cmd.Flags().Changed("title") {
		v, _ := cmd.Flags().GetString("title")
		if err := t.SetTitle(v); err != nil {
			return false, err
		}
		changed = true
	}
	if cmd.Flags().Changed("description") {
		v, _ := cmd.Flags().GetString("description")
		t.SetDescription(v)
		changed = true
	}
	if cmd.Flags().Changed("status") {
		v, _ := cmd.Flags().GetString("status")
		if err := t.SetStatus(v); err != nil {
			return false, err
		}
		changed = true
	}
	if cmd.Flags().Changed("priority") {
		v, _ := cmd.Flags().GetString("priority")
		if err := t.SetPriority(v); err != nil {
			return false, err
		}
		changed = true
	}

	clearDue, _ := cmd.Flags().GetBool("clear-due")
	if clearDue && cmd.Flags().Changed("due") {
		return false, clierr.New(clierr.InvalidInput, "cannot use --due and --clear-due together")
	}
	if clearDue {
		t.SetDueDate(nil)
		changed = true
	}
	if cmd.Flags().Changed("due") {
		v, _ := cmd.Flags().GetString("due")
		if err := t.SetDueDateString(v); err != nil {
			return false, err
		}
		changed = true
	}

	c, err := applyTagFlags(cmd, t)
	if err != nil {
		return false, err
	}
	return changed || c, nil
}

func applyTagFlags(cmd *cobra.Command, t *task.Task) (bool, error) {
	changed := false
	if cmd.Flags().Changed("tags") {
		v, _ := cmd.Flags().GetStringSlice("tags")
		if err := t.SetTags(v); err != nil {
			return false, err
		}
		changed = true
	}
	if v, _ := cmd.Flags().GetStringSlice("add-tag"); len(v) > 0 {
		for _, tag := range v {
			if err := t.AddTag(tag); err != nil {
				return false, err
			}
		}
		changed = true
	}
	if v, _ := cmd.Flags().GetStringSlice("remove-tag"); len(v) > 0 {
		for _, tag := range v {
			if err := t.RemoveTag(tag); err != nil {
				return false, err
			}
		}
		changed = true
	}
	return changed, nil
}

package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/taskdeck/internal/activity"
	"github.com/twiced-technology-gmbh/taskdeck/internal/clierr"
	"github.com/twiced-technology-gmbh/taskdeck/internal/form"
	"github.com/twiced-technology-gmbh/taskdeck/internal/output"
	"github.com/twiced-technology-gmbh/taskdeck/internal/task"
)

var taskCmd = &cobra.Command{
	Use:     "task",
	Aliases: []string{"t"},
	Short:   "Manage tasks within projects",
}

var taskAddCmd = &cobra.Command{
	Use:     "add PROJECT [TITLE]",
	Aliases: []string{"create", "new"},
	Short:   "Add a task to a project",
	Long: `Creates a task in PROJECT from the task form fields.

The title can be given as a positional argument or via --task-title.`,
	Args: cobra.RangeArgs(1, 2), //nolint:mnd // project and optional title
	RunE: runTaskAdd,
}

func init() {
	f := taskAddCmd.Flags()
	f.String(form.FieldTitle, "", "task title (alternative to positional argument)")
	f.String(form.FieldDescription, "", "task description (markdown)")
	f.String(form.FieldDueDate, "", "due date (YYYY-MM-DD, YYYY-MM-DDTHH:MM or RFC 3339)")
	f.String(form.FieldPriority, "", "priority ("+strings.Join(task.Priorities, ", ")+"; default from config)")
	f.String(form.FieldStatus, "", "status ("+strings.Join(task.Statuses, ", ")+")")
	f.StringSlice("tags", nil, "comma-separated tags")
	taskCmd.AddCommand(taskAddCmd)
	rootCmd.AddCommand(taskCmd)
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	if err := resolveAddTitle(cmd, args); err != nil {
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

	if !cmd.Flags().Changed(form.FieldPriority) {
		_ = cmd.Flags().Set(form.FieldPriority, s.cfg.Defaults.Priority)
	}
	tags, _ := cmd.Flags().GetStringSlice("tags")

	h := form.Handler{
		Project: p,
		OnSubmit: func(t *task.Task) error {
			if len(tags) > 0 {
				if err := t.SetTags(tags); err != nil {
					return err
				}
			}
			return s.save(ctx, p, activity.ActionTaskAdd, t.ID(), t.Title())
		},
	}
	t, err := h.Submit(form.FlagValues{Flags: cmd.Flags()})
	if err != nil {
		return err
	}

	return outputAddResult(t, p.Name())
}

func outputAddResult(t *task.Task, projectName string) error {
	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, t)
	}

	output.Messagef(os.Stdout, "Added task %s to %s: %s", short(t.ID()), projectName, t.Title())
	output.Messagef(os.Stdout, "  Status: %s | Priority: %s", t.Status(), t.Priority())
	if t.DueDate() != nil {
		output.Messagef(os.Stdout, "  Due: %s", t.FormattedDueDate())
	}
	if tags := t.Tags(); len(tags) > 0 {
		output.Messagef(os.Stdout, "  Tags: %s", strings.Join(tags, ", "))
	}
	return nil
}

// resolveAddTitle copies a positional title into the title field.
func resolveAddTitle(cmd *cobra.Command, args []string) error {
	hasPositional := len(args) > 1
	hasFlag := cmd.Flags().Changed(form.FieldTitle)

	switch {
	case hasPositional && hasFlag:
		return clierr.New(clierr.InvalidInput,
			"title provided both as argument and --task-title flag; use one or the other")
	case hasPositional:
		return cmd.Flags().Set(form.FieldTitle, args[1])
	case hasFlag:
		return nil
	default:
		return clierr.New(clierr.Required, "title is required: provide it as an argument or with --task-title")
	}
}

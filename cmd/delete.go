package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/taskdeck/internal/activity"
	"github.com/twiced-technology-gmbh/taskdeck/internal/board"
	"github.com/twiced-technology-gmbh/taskdeck/internal/clierr"
	"github.com/twiced-technology-gmbh/taskdeck/internal/output"
)

var projectDeleteCmd = &cobra.Command{
	Use:     "delete NAME",
	Aliases: []string{"rm"},
	Short:   "Delete a project and all its tasks",
	Long:    `Removes the project from the store. Prompts for confirmation in interactive mode.`,
	Args:    cobra.ExactArgs(1),
	RunE:    runProjectDelete,
}

var taskRemoveCmd = &cobra.Command{
	Use:     "remove PROJECT ID[,ID,...]",
	Aliases: []string{"rm", "delete"},
	Short:   "Remove tasks from a project",
	Long: `Removes tasks from a project. IDs may be full ids or unique prefixes of
at least four characters. Prompts for confirmation in interactive mode.
Multiple IDs can be provided as a comma-separated list (requires --yes).`,
	Args: cobra.ExactArgs(2), //nolint:mnd // project and ids
	RunE: runTaskRemove,
}

func init() {
	projectDeleteCmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")
	taskRemoveCmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")
	projectCmd.AddCommand(projectDeleteCmd)
	taskCmd.AddCommand(taskRemoveCmd)
}

func runProjectDelete(cmd *cobra.Command, args []string) error {
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

	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		ok, err := confirm(fmt.Sprintf("Delete project %q and its %d tasks?", p.Name(), p.TaskCount()))
		if err != nil || !ok {
			return err
		}
	}

	if _, err := s.store.DeleteProject(ctx, p.Name()); err != nil {
		return err
	}
	s.logActivity(activity.ActionProjectDelete, p.Name(), "", fmt.Sprintf("%d tasks", p.TaskCount()))

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{
			"status": "deleted",
			"id":     p.ID(),
			"name":   p.Name(),
		})
	}
	output.Messagef(os.Stdout, "Deleted project %s", p.Name())
	return nil
}

func runTaskRemove(cmd *cobra.Command, args []string) error {
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

	yes, _ := cmd.Flags().GetBool("yes")
	if len(ids) > 1 && !yes {
		return clierr.New(clierr.ConfirmationReq, "batch remove requires --yes")
	}

	if len(ids) == 1 {
		t, err := board.ResolveTask(p, ids[0])
		if err != nil {
			return err
		}
		if !yes {
			ok, err := confirm(fmt.Sprintf("Remove task %q from %s?", t.Title(), p.Name()))
			if err != nil || !ok {
				return err
			}
		}
		if _, err := p.RemoveTask(t.ID()); err != nil {
			return err
		}
		if err := s.save(ctx, p, activity.ActionTaskRemove, t.ID(), t.Title()); err != nil {
			return err
		}
		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, map[string]any{
				"status": "removed",
				"id":     t.ID(),
				"title":  t.Title(),
			})
		}
		output.Messagef(os.Stdout, "Removed task %s: %s", short(t.ID()), t.Title())
		return nil
	}

	return runBatch(ids, func(id string) error {
		t, err := board.ResolveTask(p, id)
		if err != nil {
			return err
		}
		if _, err := p.RemoveTask(t.ID()); err != nil {
			return err
		}
		return s.save(ctx, p, activity.ActionTaskRemove, t.ID(), t.Title())
	})
}

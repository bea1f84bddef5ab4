package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/taskdeck/internal/activity"
	"github.com/twiced-technology-gmbh/taskdeck/internal/board"
	"github.com/twiced-technology-gmbh/taskdeck/internal/clierr"
	"github.com/twiced-technology-gmbh/taskdeck/internal/output"
	"github.com/twiced-technology-gmbh/taskdeck/internal/project"
)

var taskMoveCmd = &cobra.Command{
	Use:     "move FROM ID[,ID,...] TO",
	Aliases: []string{"mv"},
	Short:   "Move tasks to another project",
	Long: `Moves tasks from project FROM to project TO. The task keeps its id,
timestamps and fields; its project reference is updated.`,
	Args: cobra.ExactArgs(3), //nolint:mnd // from, ids, to
	RunE: runTaskMove,
}

func init() {
	taskCmd.AddCommand(taskMoveCmd)
}

func runTaskMove(cmd *cobra.Command, args []string) error {
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

	from, err := s.project(ctx, args[0])
	if err != nil {
		return err
	}
	to, err := s.project(ctx, args[2])
	if err != nil {
		return err
	}

	if from.ID() == to.ID() {
		return clierr.Newf(clierr.InvalidInput, "source and destination are the same project: %s", from.Name())
	}
	list := project.NewList()
	if err := list.Add(from); err != nil {
		return err
	}
	if err := list.Add(to); err != nil {
		return err
	}

	move := func(ref string) (string, string, error) {
		t, err := board.ResolveTask(from, ref)
		if err != nil {
			return "", "", err
		}
		if err := list.MoveTask(t.ID(), from.ID(), to.ID()); err != nil {
			return "", "", err
		}
		// Save the destination first so a failure never loses the task.
		if _, err := s.store.SaveProject(ctx, to); err != nil {
			return "", "", err
		}
		if _, err := s.store.SaveProject(ctx, from); err != nil {
			return "", "", err
		}
		s.logActivity(activity.ActionTaskMove, from.Name(), t.ID(), fmt.Sprintf("%s -> %s", from.Name(), to.Name()))
		return t.ID(), t.Title(), nil
	}

	if len(ids) == 1 {
		id, title, err := move(ids[0])
		if err != nil {
			return err
		}
		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, map[string]string{
				"status": "moved",
				"id":     id,
				"from":   from.Name(),
				"to":     to.Name(),
			})
		}
		output.Messagef(os.Stdout, "Moved task %s (%s): %s -> %s", short(id), title, from.Name(), to.Name())
		return nil
	}

	return runBatch(ids, func(ref string) error {
		_, _, err := move(ref)
		return err
	})
}

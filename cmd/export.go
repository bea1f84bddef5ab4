package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/twiced-technology-gmbh/taskdeck/internal/activity"
	"github.com/twiced-technology-gmbh/taskdeck/internal/clierr"
	"github.com/twiced-technology-gmbh/taskdeck/internal/logging"
	"github.com/twiced-technology-gmbh/taskdeck/internal/output"
	"github.com/twiced-technology-gmbh/taskdeck/internal/project"
	"github.com/twiced-technology-gmbh/taskdeck/internal/task"
)

var projectExportCmd = &cobra.Command{
	Use:   "export NAME DIR",
	Short: "Write a project's tasks as markdown files",
	Long: `Writes one markdown file per task into DIR. Each file holds the task
fields as YAML frontmatter and the description as the body.`,
	Args: cobra.ExactArgs(2), //nolint:mnd // name and dir
	RunE: runProjectExport,
}

var projectImportCmd = &cobra.Command{
	Use:   "import NAME DIR",
	Short: "Add tasks from markdown files to a project",
	Long: `Reads every markdown task file in DIR and adds the tasks to project NAME,
creating the project when it does not exist. Tasks whose id is already held
by any stored project are skipped, so a task never lives in two projects.
Malformed files are reported and skipped.`,
	Args: cobra.ExactArgs(2), //nolint:mnd // name and dir
	RunE: runProjectImport,
}

func init() {
	projectCmd.AddCommand(projectExportCmd, projectImportCmd)
}

func runProjectExport(cmd *cobra.Command, args []string) error {
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

	list := task.NewList()
	for _, t := range p.Tasks() {
		if err := list.Add(t); err != nil {
			return err
		}
	}
	files, err := task.WriteDir(args[1], list)
	if err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{
			"project": p.Name(),
			"dir":     args[1],
			"files":   files,
		})
	}
	output.Messagef(os.Stdout, "Exported %d tasks from %s to %s", len(files), p.Name(), args[1])
	return nil
}

func runProjectImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	tasks, warnings, err := task.ReadDirLenient(args[1])
	if err != nil {
		return err
	}
	printWarnings(warnings)

	p, err := s.store.GetProject(ctx, args[0])
	if err != nil {
		return err
	}
	if p == nil {
		p, err = project.New(project.Data{
			Name:  args[0],
			Color: s.cfg.Defaults.Color,
			Owner: s.cfg.Defaults.Owner,
		})
		if err != nil {
			return err
		}
	}

	stored, err := s.store.LoadList(ctx)
	if err != nil {
		return err
	}
	added, skipped, err := importTasks(p, tasks, stored)
	if err != nil {
		return err
	}

	detail := fmt.Sprintf("%d added, %d skipped from %s", added, skipped, args[1])
	if err := s.save(ctx, p, activity.ActionImport, "", detail); err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{
			"project":  p.Name(),
			"added":    added,
			"skipped":  skipped,
			"warnings": len(warnings),
		})
	}
	output.Messagef(os.Stdout, "Imported %d tasks into %s (%d skipped)", added, p.Name(), skipped)
	return nil
}

// importTasks adds tasks to p, skipping ids already owned by a project in
// stored or repeated within tasks.
func importTasks(p *project.Project, tasks []*task.Task, stored *project.List) (int, int, error) {
	added, skipped := 0, 0
	for _, t := range tasks {
		owner, err := stored.ProjectForTask(t.ID())
		if err != nil {
			return added, skipped, err
		}
		if owner != nil {
			logging.L().Debug("import skips task owned elsewhere",
				zap.String("task", t.ID()), zap.String("owner", owner.Name()))
			skipped++
			continue
		}
		if err := p.AddTask(t); err != nil {
			if clierr.HasCode(err, clierr.DuplicateTask) {
				skipped++
				continue
			}
			return added, skipped, err
		}
		t.SetProjectID(p.ID())
		added++
	}
	return added, skipped, nil
}

package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/taskdeck/internal/activity"
	"github.com/twiced-technology-gmbh/taskdeck/internal/board"
	"github.com/twiced-technology-gmbh/taskdeck/internal/clierr"
	"github.com/twiced-technology-gmbh/taskdeck/internal/output"
	"github.com/twiced-technology-gmbh/taskdeck/internal/project"
)

var projectCmd = &cobra.Command{
	Use:     "project",
	Aliases: []string{"p"},
	Short:   "Manage projects",
	Long: `Create, inspect and change projects. Wherever a command takes a
project NAME, the project's id is accepted as well.`,
}

var projectCreateCmd = &cobra.Command{
	Use:     "create NAME",
	Aliases: []string{"new"},
	Short:   "Create a project",
	Args:    cobra.ExactArgs(1),
	RunE:    runProjectCreate,
}

var projectListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List projects",
	RunE:    runProjectList,
}

var projectShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Show a project and its tasks",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectShow,
}

var projectEditCmd = &cobra.Command{
	Use:   "edit NAME",
	Short: "Edit or rename a project",
	Long: `Modifies fields of an existing project. Only specified fields are changed.
Renaming with --name moves the stored entry to the new name.`,
	Args: cobra.ExactArgs(1),
	RunE: runProjectEdit,
}

func init() {
	projectCreateCmd.Flags().StringP("description", "d", "", "project description")
	projectCreateCmd.Flags().String("color", "", "project color ("+strings.Join(project.Colors, ", ")+")")
	projectCreateCmd.Flags().String("owner", "", "project owner")
	projectCreateCmd.Flags().String("status", "", "initial status ("+strings.Join(project.Statuses, ", ")+")")

	projectListCmd.Flags().String("status", "", "filter by status ("+strings.Join(project.Statuses, ", ")+")")
	projectListCmd.Flags().String("owner", "", "filter by owner")

	projectEditCmd.Flags().String("name", "", "new name")
	projectEditCmd.Flags().StringP("description", "d", "", "new description")
	projectEditCmd.Flags().String("color", "", "new color")
	projectEditCmd.Flags().String("owner", "", "new owner")
	projectEditCmd.Flags().String("status", "", "new status")

	projectCmd.AddCommand(projectCreateCmd, projectListCmd, projectShowCmd, projectEditCmd)
	for _, c := range statusCommands() {
		projectCmd.AddCommand(c)
	}
	rootCmd.AddCommand(projectCmd)
}

func runProjectCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	name := strings.TrimSpace(args[0])
	existing, err := s.store.GetProject(ctx, name)
	if err != nil {
		return err
	}
	if existing != nil {
		return clierr.Newf(clierr.DuplicateProject, "project already exists: %s", name).
			WithDetails(map[string]any{"name": name})
	}

	d := project.Data{
		Name:  name,
		Color: s.cfg.Defaults.Color,
		Owner: s.cfg.Defaults.Owner,
	}
	d.Description, _ = cmd.Flags().GetString("description")
	if v, _ := cmd.Flags().GetString("color"); v != "" {
		d.Color = v
	}
	if v, _ := cmd.Flags().GetString("owner"); v != "" {
		d.Owner = v
	}
	d.Status, _ = cmd.Flags().GetString("status")

	p, err := project.New(d)
	if err != nil {
		return err
	}
	if err := s.save(ctx, p, activity.ActionProjectCreate, "", p.Name()); err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, p)
	}
	output.Messagef(os.Stdout, "Created project %s", p.Name())
	output.Messagef(os.Stdout, "  Status: %s | Color: %s", p.Status(), p.Color())
	return nil
}

func runProjectList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	list, err := s.store.LoadList(ctx)
	if err != nil {
		return err
	}

	projects := list.All()
	if v, _ := cmd.Flags().GetString("status"); v != "" {
		switch v {
		case project.StatusActive:
			projects = list.Active()
		case project.StatusCompleted:
			projects = list.Completed()
		case project.StatusArchived:
			projects = list.Archived()
		default:
			return clierr.Newf(clierr.InvalidStatus, "Status must be one of: %s", strings.Join(project.Statuses, ", ")).
				WithDetails(map[string]any{"status": v, "allowed": project.Statuses})
		}
	}
	if v, _ := cmd.Flags().GetString("owner"); v != "" {
		owned, err := list.ByOwner(v)
		if err != nil {
			return err
		}
		projects = intersect(projects, owned)
	}

	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, projects)
	case output.FormatCompact:
		output.ProjectCompact(os.Stdout, projects)
	default:
		output.ProjectTable(os.Stdout, projects)
	}
	return nil
}

func intersect(a, b []*project.Project) []*project.Project {
	keep := make(map[string]bool, len(b))
	for _, p := range b {
		keep[p.ID()] = true
	}
	result := make([]*project.Project, 0, len(a))
	for _, p := range a {
		if keep[p.ID()] {
			result = append(result, p)
		}
	}
	return result
}

func runProjectShow(cmd *cobra.Command, args []string) error {
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

	tasks := board.List(p.Tasks(), board.ListOptions{SortBy: board.SortPriority})
	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, p)
	case output.FormatCompact:
		output.ProjectCompact(os.Stdout, []*project.Project{p})
		output.TaskCompact(os.Stdout, tasks)
	default:
		output.ProjectDetail(os.Stdout, p, tasks, s.staleColor())
	}
	return nil
}

func runProjectEdit(cmd *cobra.Command, args []string) error {
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
	oldName := p.Name()

	changed, err := applyProjectEdits(cmd, p)
	if err != nil {
		return err
	}
	if !changed {
		return clierr.New(clierr.NoChanges, "no changes specified")
	}

	if p.Name() != oldName {
		existing, err := s.store.GetProject(ctx, p.Name())
		if err != nil {
			return err
		}
		if existing != nil && existing.ID() != p.ID() {
			return clierr.Newf(clierr.NameConflict, "another project is already named %s", p.Name()).
				WithDetails(map[string]any{"name": p.Name()})
		}
	}

	detail := ""
	if p.Name() != oldName {
		detail = "renamed from " + oldName
	}
	if err := s.save(ctx, p, activity.ActionProjectUpdate, "", detail); err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, p)
	}
	output.Messagef(os.Stdout, "Updated project %s", p.Name())
	return nil
}

func applyProjectEdits(cmd *cobra.Command, p *project.Project) (bool, error) {
	changed := false
	if cmd.Flags().Changed("name") {
		v, _ := cmd.Flags().GetString("name")
		if err := p.SetName(v); err != nil {
			return false, err
		}
		changed = true
	}
	if cmd.Flags().Changed("description") {
		v, _ := cmd.Flags().GetString("description")
		p.SetDescription(v)
		changed = true
	}
	if cmd.Flags().Changed("color") {
		v, _ := cmd.Flags().GetString("color")
		if err := p.SetColor(v); err != nil {
			return false, err
		}
		changed = true
	}
	if cmd.Flags().Changed("owner") {
		v, _ := cmd.Flags().GetString("owner")
		p.SetOwner(v)
		changed = true
	}
	if cmd.Flags().Changed("status") {
		v, _ := cmd.Flags().GetString("status")
		if err := p.SetStatus(v); err != nil {
			return false, err
		}
		changed = true
	}
	return changed, nil
}

// statusCommands builds archive, activate and complete.
func statusCommands() []*cobra.Command {
	transitions := []struct {
		use, short string
		apply      func(*project.Project)
	}{
		{"archive", "Archive projects", (*project.Project).Archive},
		{"activate", "Mark projects active", (*project.Project).Activate},
		{"complete", "Mark projects completed", (*project.Project).Complete},
	}

	cmds := make([]*cobra.Command, 0, len(transitions))
	for _, tr := range transitions {
		cmds = append(cmds, &cobra.Command{
			Use:   tr.use + " NAME...",
			Short: tr.short,
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runProjectTransition(cmd, args, tr.apply)
			},
		})
	}
	return cmds
}

func runProjectTransition(cmd *cobra.Command, names []string, apply func(*project.Project)) error {
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	return runBatch(names, func(name string) error {
		p, err := s.project(ctx, name)
		if err != nil {
			return err
		}
		apply(p)
		return s.save(ctx, p, activity.ActionProjectUpdate, "", "status "+p.Status())
	})
}

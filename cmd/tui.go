package cmd

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/twiced-technology-gmbh/taskdeck/internal/board"
	"github.com/twiced-technology-gmbh/taskdeck/internal/logging"
	"github.com/twiced-technology-gmbh/taskdeck/internal/tui"
	"github.com/twiced-technology-gmbh/taskdeck/internal/watcher"
)

var tuiCmd = &cobra.Command{
	Use:     "tui",
	Aliases: []string{"ui"},
	Short:   "Browse projects and tasks interactively",
	Long: `Opens a two-pane terminal browser: projects on the left, the selected
project's tasks on the right. Changes saved by other taskdeck processes
appear automatically with the file and sqlite stores.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().String("sort", board.SortPriority, "task order in the task pane")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	sortBy, _ := cmd.Flags().GetString("sort")
	model := tui.NewBoard(ctx, tui.Options{
		Store:        s.store,
		ActivityPath: s.cfg.ActivityPath(),
		StaleColor:   s.cfg.StaleColor,
		SortBy:       sortBy,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if paths, err := watchPaths(s.cfg); err == nil {
		go startTUIWatcher(ctx, paths, p)
	}

	_, err = p.Run()
	return err
}

func startTUIWatcher(ctx context.Context, paths []string, p *tea.Program) {
	w, err := watcher.New(paths, func() {
		p.Send(tui.ReloadMsg{})
	})
	if err != nil {
		logging.L().Warn("live reload disabled", zap.Error(err))
		return
	}
	defer w.Close()
	w.Run(ctx, func(err error) {
		p.Send(tui.ErrMsg{Err: err})
	})
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/taskdeck/internal/board"
	"github.com/twiced-technology-gmbh/taskdeck/internal/clierr"
	"github.com/twiced-technology-gmbh/taskdeck/internal/config"
	"github.com/twiced-technology-gmbh/taskdeck/internal/kv"
	"github.com/twiced-technology-gmbh/taskdeck/internal/output"
	"github.com/twiced-technology-gmbh/taskdeck/internal/watcher"
)

var flagWatch bool

var summaryCmd = &cobra.Command{
	Use:     "summary",
	Aliases: []string{"board", "overview"},
	Short:   "Show progress across all projects",
	Long: `Displays task counts per status and priority, overdue counts, and
per-project completion.

Use --watch to keep the display live-updating. The summary re-renders
whenever the store file changes on disk (file and sqlite stores only).
Press Ctrl+C to stop.`,
	RunE: runSummary,
}

func init() {
	summaryCmd.Flags().BoolVarP(&flagWatch, "watch", "w", false, "live-update the summary on store changes")
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := renderSummary(ctx, s); err != nil {
		return err
	}

	if !flagWatch {
		return nil
	}
	return watchSummary(ctx, s)
}

func renderSummary(ctx context.Context, s *session) error {
	projects, err := s.store.GetAllProjects(ctx)
	if err != nil {
		return err
	}
	summary := board.Summary(projects, time.Now())

	format := outputFormat()
	if format == output.FormatJSON {
		return output.JSON(os.Stdout, summary)
	}
	if format == output.FormatCompact {
		output.OverviewCompact(os.Stdout, summary)
		return nil
	}

	output.OverviewTable(os.Stdout, summary)
	return nil
}

func watchSummary(ctx context.Context, s *session) error {
	paths, err := watchPaths(s.cfg)
	if err != nil {
		return err
	}

	w, err := watcher.New(paths, func() {
		clearScreen()
		if renderErr := renderSummary(ctx, s); renderErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: rendering summary: %v\n", renderErr)
		}
	})
	if err != nil {
		return fmt.Errorf("starting file watcher: %w", err)
	}
	defer w.Close()

	fmt.Fprintln(os.Stderr, "Watching for changes... (Ctrl+C to stop)")

	w.Run(ctx, func(watchErr error) {
		fmt.Fprintf(os.Stderr, "Warning: file watcher: %v\n", watchErr)
	})

	return nil
}

// watchPaths returns the files that change when the configured store is
// written. Only on-disk backends can be watched.
func watchPaths(cfg *config.Config) ([]string, error) {
	path := cfg.StorePath()
	switch {
	case cfg.Store.Type == kv.TypeFile:
		return []string{path}, nil
	case cfg.Store.Type == kv.TypeSQLite && path != kv.SQLiteMemory:
		return []string{path, path + "-wal"}, nil
	default:
		return nil, clierr.Newf(clierr.InvalidInput, "cannot watch a %s store; use the file or sqlite backend", cfg.Store.Type)
	}
}

// clearScreen sends ANSI escape codes to clear the terminal and move the
// cursor to the top-left corner.
func clearScreen() {
	fmt.Fprint(os.Stdout, "\033[2J\033[H")
}

// Package cmd implements the taskdeck CLI commands.
package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/twiced-technology-gmbh/taskdeck/internal/activity"
	"github.com/twiced-technology-gmbh/taskdeck/internal/clierr"
	"github.com/twiced-technology-gmbh/taskdeck/internal/config"
	"github.com/twiced-technology-gmbh/taskdeck/internal/kv"
	"github.com/twiced-technology-gmbh/taskdeck/internal/logging"
	"github.com/twiced-technology-gmbh/taskdeck/internal/output"
	"github.com/twiced-technology-gmbh/taskdeck/internal/project"
	"github.com/twiced-technology-gmbh/taskdeck/internal/storage"
	"github.com/twiced-technology-gmbh/taskdeck/internal/task"
)

// version is set at build time via ldflags.
var version = "dev"

// Global flags.
var (
	flagJSON    bool
	flagTable   bool
	flagCompact bool
	flagConfig  string
	flagNoColor bool
)

var rootCmd = &cobra.Command{
	Use:   "taskdeck",
	Short: "Track projects and their tasks from the terminal",
	Long: `taskdeck keeps projects and their tasks in a local key-value store
(a JSON file by default, or SQLite or Redis).

Run taskdeck tui for the interactive browser.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagNoColor || !output.ColorSupported(os.Stdout) {
			output.DisableColor()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagTable, "table", false, "output as table")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "compact", false, "compact one-line-per-record output")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "oneline", false, "alias for --compact")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file (default ~/.config/taskdeck/config.yml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable color output")
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	_, err := rootCmd.ExecuteContextC(ctx)
	stop()
	_ = logging.L().Sync()
	if err == nil {
		return
	}

	var silent *clierr.SilentError
	if errors.As(err, &silent) {
		os.Exit(silent.Code)
	}

	if outputFormat() == output.FormatJSON {
		os.Exit(output.JSONError(os.Stdout, err))
	}

	fmt.Fprintln(os.Stderr, err)
	var cliErr *clierr.Error
	if errors.As(err, &cliErr) {
		os.Exit(cliErr.ExitCode())
	}
	os.Exit(1)
}

// loadConfig loads the config named by --config, TASKDECK_CONFIG or the
// default location, and installs the configured logger.
func loadConfig() (*config.Config, error) {
	path := flagConfig
	if path == "" {
		path = os.Getenv("TASKDECK_CONFIG")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("configuring logger: %w", err)
	}
	logging.SetGlobal(logger)
	return cfg, nil
}

// session bundles what a store-backed command needs.
type session struct {
	cfg     *config.Config
	backend kv.Backend
	store   *storage.ProjectStorage
}

// openSession loads the config and opens the configured project store.
// Callers must Close the session.
func openSession(ctx context.Context) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	backend, err := kv.Open(ctx, cfg.StoreOptions())
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", cfg.Store.Type, err)
	}

	opts := []storage.Option{
		storage.WithKey(cfg.Store.Key),
		storage.WithLogger(logging.L()),
	}
	if cfg.Store.CheckNameConflicts {
		opts = append(opts, storage.WithNameConflictCheck())
	}
	store, err := storage.New(ctx, backend, opts...)
	if err != nil {
		_ = backend.Close()
		return nil, err
	}
	logging.L().Debug("store opened",
		zap.String("type", cfg.Store.Type),
		zap.String("key", cfg.Store.Key))

	return &session{cfg: cfg, backend: backend, store: store}, nil
}

// Close releases the store backend.
func (s *session) Close() {
	if err := s.backend.Close(); err != nil {
		logging.L().Warn("closing store", zap.Error(err))
	}
}

// project resolves ref as a project name, then as a project id. A miss
// returns PROJECT_NOT_FOUND listing the stored names.
func (s *session) project(ctx context.Context, ref string) (*project.Project, error) {
	p, err := s.store.GetProject(ctx, ref)
	if err != nil || p != nil {
		return p, err
	}
	if p, err = s.store.ProjectByID(ctx, ref); err != nil || p != nil {
		return p, err
	}

	names, err := s.store.Names(ctx)
	if err != nil {
		return nil, err
	}
	return nil, clierr.Newf(clierr.ProjectNotFound, "project not found: %s", ref).
		WithDetails(map[string]any{"name": ref, "available": names})
}

// save persists p and records action in the activity log.
func (s *session) save(ctx context.Context, p *project.Project, action, taskID, detail string) error {
	if _, err := s.store.SaveProject(ctx, p); err != nil {
		return err
	}
	s.logActivity(action, p.Name(), taskID, detail)
	return nil
}

// logActivity appends an entry to the activity log. Failures never fail
// a command.
func (s *session) logActivity(action, projectName, taskID, detail string) {
	activity.Record(s.cfg.ActivityPath(), action, projectName, taskID, detail)
}

// staleColor returns the table colorizer for idle tasks.
func (s *session) staleColor() output.StaleColorFunc {
	return s.cfg.StaleColor
}

// outputFormat returns the detected output format from flags/env.
func outputFormat() output.Format {
	return output.Detect(flagJSON, flagTable, flagCompact)
}

// confirm asks a yes/no question on stderr. It fails when stdin is not a
// terminal so scripts must pass --yes.
func confirm(prompt string) (bool, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, clierr.New(clierr.ConfirmationReq,
			"cannot prompt for confirmation (not a terminal); use --yes")
	}
	fmt.Fprintf(os.Stderr, "%s [y/N] ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, _ := reader.ReadString('\n')
	answer = strings.TrimSpace(strings.ToLower(answer))
	if answer != "y" && answer != "yes" {
		fmt.Fprintln(os.Stderr, "Canceled.")
		return false, nil
	}
	return true, nil
}

// printWarnings writes markdown read warnings to stderr.
func printWarnings(warnings []task.ReadWarning) {
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "Warning: skipping malformed file %s: %v\n", w.File, w.Err)
	}
}

// runBatch executes fn for each ID and collects results. Returns a SilentError
// with exit code 1 if any operation failed (after outputting results).
func runBatch(ids []string, fn func(string) error) error {
	results := make([]output.BatchResult, 0, len(ids))
	anyFailed := false

	for _, id := range ids {
		r := output.NewBatchResult(id, fn(id))
		anyFailed = anyFailed || !r.OK
		results = append(results, r)
	}

	if outputFormat() == output.FormatJSON {
		if err := output.JSON(os.Stdout, results); err != nil {
			return err
		}
	} else {
		var succeeded int
		for _, r := range results {
			if r.OK {
				succeeded++
			} else {
				fmt.Fprintf(os.Stderr, "Error: %s: %s\n", r.ID, r.Error)
			}
		}
		output.Messagef(os.Stdout, "Completed %d/%d operations", succeeded, len(ids))
	}

	if anyFailed {
		return &clierr.SilentError{Code: 1}
	}
	return nil
}

// short abbreviates an id for messages.
func short(id string) string {
	const n = 8
	if len(id) > n {
		return id[:n]
	}
	return id
}

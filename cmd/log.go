package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/taskdeck/internal/activity"
	"github.com/twiced-technology-gmbh/taskdeck/internal/clierr"
	"github.com/twiced-technology-gmbh/taskdeck/internal/output"
)

var logCmd = &cobra.Command{
	Use:     "log",
	Aliases: []string{"activity"},
	Short:   "Show recent changes",
	Long:    `Displays the most recent entries of the activity log, oldest first.`,
	Args:    cobra.NoArgs,
	RunE:    runLog,
}

func init() {
	logCmd.Flags().IntP("limit", "n", 20, "number of entries to show (0 for all)") //nolint:mnd // default page
	logCmd.Flags().String("project", "", "only show entries for this project")
	rootCmd.AddCommand(logCmd)
}

func runLog(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path := cfg.ActivityPath()
	if path == "" {
		return clierr.New(clierr.InvalidInput, "activity log is disabled in the config")
	}

	limit, _ := cmd.Flags().GetInt("limit")
	projectName, _ := cmd.Flags().GetString("project")
	readLimit := limit
	if projectName != "" {
		readLimit = 0
	}

	entries, err := activity.Read(path, readLimit)
	if err != nil {
		return err
	}
	if projectName != "" {
		entries = filterEntries(entries, projectName, limit)
	}

	switch outputFormat() {
	case output.FormatJSON:
		if entries == nil {
			entries = []activity.Entry{}
		}
		return output.JSON(os.Stdout, entries)
	case output.FormatCompact:
		output.ActivityCompact(os.Stdout, entries)
	default:
		output.ActivityTable(os.Stdout, entries)
	}
	return nil
}

// filterEntries keeps the last limit entries for projectName.
func filterEntries(entries []activity.Entry, projectName string, limit int) []activity.Entry {
	var kept []activity.Entry
	for _, e := range entries {
		if e.Project == projectName {
			kept = append(kept, e)
		}
	}
	if limit > 0 && len(kept) > limit {
		kept = kept[len(kept)-limit:]
	}
	return kept
}

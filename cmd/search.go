package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/taskdeck/internal/output"
	"github.com/twiced-technology-gmbh/taskdeck/internal/storage"
)

var searchCmd = &cobra.Command{
	Use:     "search QUERY",
	Aliases: []string{"find"},
	Short:   "Search tasks across all projects",
	Long: `Finds tasks whose title, description or tags contain QUERY,
case-insensitively, across every stored project.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	results, err := s.store.SearchTasks(ctx, args[0])
	if err != nil {
		return err
	}

	switch outputFormat() {
	case output.FormatJSON:
		if results == nil {
			results = []storage.SearchResult{}
		}
		return output.JSON(os.Stdout, results)
	case output.FormatCompact:
		output.SearchCompact(os.Stdout, results)
	default:
		output.SearchTable(os.Stdout, results)
	}
	return nil
}

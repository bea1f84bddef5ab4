package cmd

import (
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/taskdeck/internal/clierr"
	"github.com/twiced-technology-gmbh/taskdeck/internal/config"
	"github.com/twiced-technology-gmbh/taskdeck/internal/kv"
	"github.com/twiced-technology-gmbh/taskdeck/internal/output"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration",
	Long: `Creates the config file (default ~/.config/taskdeck/config.yml) and
initializes the project store it points at.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().String("store", config.DefaultStoreType, "store backend ("+strings.Join(kv.Types, ", ")+")")
	initCmd.Flags().String("store-path", "", "store file for the file and sqlite backends")
	initCmd.Flags().String("redis-addr", "", "Redis address for the redis backend")
	initCmd.Flags().String("owner", "", "default owner for new projects")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	path := flagConfig
	if path == "" {
		path = os.Getenv("TASKDECK_CONFIG")
	}
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return err
		}
	}

	storeType, _ := cmd.Flags().GetString("store")
	if !slices.Contains(kv.Types, storeType) {
		return clierr.Newf(clierr.InvalidInput, "invalid --store %q; valid: %s", storeType, strings.Join(kv.Types, ", "))
	}

	cfg, err := config.Init(path)
	if err != nil {
		return clierr.New(clierr.InvalidInput, err.Error()).
			WithDetails(map[string]any{"path": path})
	}

	cfg.Store.Type = storeType
	cfg.Store.Path, _ = cmd.Flags().GetString("store-path")
	cfg.Store.Redis.Addr, _ = cmd.Flags().GetString("redis-addr")
	cfg.Defaults.Owner, _ = cmd.Flags().GetString("owner")
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cfg.Save(); err != nil {
		return err
	}

	// Opening the store creates it and writes the empty project map.
	flagConfig = cfg.Path()
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	s.Close()

	location := cfg.StorePath()
	if storeType == kv.TypeRedis {
		location = cfg.StoreOptions().Redis.Addr
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]string{
			"status": "initialized",
			"config": cfg.Path(),
			"store":  storeType,
			"path":   location,
		})
	}

	output.Messagef(os.Stdout, "Initialized taskdeck in %s", cfg.Dir())
	output.Messagef(os.Stdout, "  Config: %s", cfg.Path())
	output.Messagef(os.Stdout, "  Store:  %s (%s)", storeType, location)
	output.Messagef(os.Stdout, "  Hint:   create a project with: taskdeck project create NAME")
	return nil
}

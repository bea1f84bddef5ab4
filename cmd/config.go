package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/taskdeck/internal/clierr"
	"github.com/twiced-technology-gmbh/taskdeck/internal/config"
	"github.com/twiced-technology-gmbh/taskdeck/internal/output"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify configuration",
	Long:  `View the full configuration, get a specific key, or set a writable value.`,
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2), //nolint:mnd // key and value
	RunE:  runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configGetCmd, configSetCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}

// configAccessor describes how to get and set a config key.
type configAccessor struct {
	get func(*config.Config) any
	set func(*config.Config, string) error
}

func stringAccessor(field func(*config.Config) *string) configAccessor {
	return configAccessor{
		get: func(c *config.Config) any { return *field(c) },
		set: func(c *config.Config, v string) error { *field(c) = v; return nil },
	}
}

func boolAccessor(field func(*config.Config) *bool) configAccessor {
	return configAccessor{
		get: func(c *config.Config) any { return *field(c) },
		set: func(c *config.Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return clierr.Newf(clierr.InvalidInput, "invalid boolean %q", v)
			}
			*field(c) = b
			return nil
		},
	}
}

func configAccessors() map[string]configAccessor {
	return map[string]configAccessor{
		"version": {
			get: func(c *config.Config) any { return c.Version },
		},
		"store.type":                 stringAccessor(func(c *config.Config) *string { return &c.Store.Type }),
		"store.path":                 stringAccessor(func(c *config.Config) *string { return &c.Store.Path }),
		"store.key":                  stringAccessor(func(c *config.Config) *string { return &c.Store.Key }),
		"store.check_name_conflicts": boolAccessor(func(c *config.Config) *bool { return &c.Store.CheckNameConflicts }),
		"store.redis.addr":           stringAccessor(func(c *config.Config) *string { return &c.Store.Redis.Addr }),
		"store.redis.db": {
			get: func(c *config.Config) any { return c.Store.Redis.DB },
			set: func(c *config.Config, v string) error {
				n, err := strconv.Atoi(v)
				if err != nil {
					return clierr.Newf(clierr.InvalidInput, "invalid store.redis.db %q: must be an integer", v)
				}
				c.Store.Redis.DB = n
				return nil
			},
		},
		"defaults.priority": stringAccessor(func(c *config.Config) *string { return &c.Defaults.Priority }),
		"defaults.color":    stringAccessor(func(c *config.Config) *string { return &c.Defaults.Color }),
		"defaults.owner":    stringAccessor(func(c *config.Config) *string { return &c.Defaults.Owner }),
		"log.level":         stringAccessor(func(c *config.Config) *string { return &c.Log.Level }),
		"log.format":        stringAccessor(func(c *config.Config) *string { return &c.Log.Format }),
		"log.output":        stringAccessor(func(c *config.Config) *string { return &c.Log.Output }),
		"activity.disabled": boolAccessor(func(c *config.Config) *bool { return &c.Activity.Disabled }),
		"activity.path":     stringAccessor(func(c *config.Config) *string { return &c.Activity.Path }),
		"tui.stale_thresholds": {
			get: func(c *config.Config) any {
				parts := make([]string, 0, len(c.StaleThresholds()))
				for _, th := range c.StaleThresholds() {
					parts = append(parts, fmt.Sprintf("%s=%s", th.After, th.Color))
				}
				return parts
			},
		},
	}
}

// allConfigKeys returns config keys in display order.
func allConfigKeys() []string {
	return []string{
		"version",
		"store.type",
		"store.path",
		"store.key",
		"store.check_name_conflicts",
		"store.redis.addr",
		"store.redis.db",
		"defaults.priority",
		"defaults.color",
		"defaults.owner",
		"log.level",
		"log.format",
		"log.output",
		"activity.disabled",
		"activity.path",
		"tui.stale_thresholds",
	}
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	accessors := configAccessors()

	if outputFormat() == output.FormatJSON {
		m := make(map[string]any, len(accessors))
		for _, key := range allConfigKeys() {
			m[key] = accessors[key].get(cfg)
		}
		return output.JSON(os.Stdout, m)
	}

	for _, key := range allConfigKeys() {
		val := accessors[key].get(cfg)
		fmt.Fprintf(os.Stdout, "%-28s %v\n", key, formatConfigValue(val))
	}
	return nil
}

func runConfigGet(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	acc, ok := configAccessors()[args[0]]
	if !ok {
		return clierr.Newf(clierr.InvalidInput, "unknown config key %q", args[0])
	}

	val := acc.get(cfg)
	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, val)
	}
	fmt.Fprintln(os.Stdout, formatConfigValue(val))
	return nil
}

func runConfigSet(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	key, value := args[0], args[1]
	acc, ok := configAccessors()[key]
	if !ok {
		return clierr.Newf(clierr.InvalidInput, "unknown config key %q", key)
	}
	if acc.set == nil {
		return clierr.Newf(clierr.InvalidInput, "config key %q is read-only", key)
	}

	if err := acc.set(cfg, value); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return clierr.New(clierr.InvalidInput, err.Error())
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{"key": key, "value": acc.get(cfg)})
	}

	output.Messagef(os.Stdout, "Set %s = %v", key, formatConfigValue(acc.get(cfg)))
	return nil
}

func runConfigPath(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]string{"path": cfg.Path()})
	}
	fmt.Fprintln(os.Stdout, cfg.Path())
	return nil
}

func formatConfigValue(val any) string {
	switch v := val.(type) {
	case []string:
		if len(v) == 0 {
			return "--"
		}
		return strings.Join(v, ", ")
	case string:
		if v == "" {
			return "--"
		}
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

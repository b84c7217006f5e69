package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Norgate-AV/alreadyedge/internal/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "View and change saved settings",
	Long:  `View and change the settings the monitor reads on every scan.`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current settings",
	Example: `  # Show settings as YAML (default)
  alreadyedge settings show

  # Show settings as JSON
  alreadyedge settings show --format json`,
	Args: cobra.NoArgs,
	RunE: runSettingsShow,
}

var settingsGetCmd = &cobra.Command{
	Use:       "get KEY",
	Short:     "Get a single setting",
	Args:      cobra.ExactArgs(1),
	ValidArgs: settings.Keys(),
	RunE:      runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Change a single setting",
	Example: `  # Use Mica instead of Acrylic
  alreadyedge settings set backdrop mica

  # Stop applying effects automatically
  alreadyedge settings set auto_apply false`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the settings file path",
	Args:  cobra.NoArgs,
	RunE:  runSettingsPath,
}

func init() {
	RootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsPathCmd)

	settingsShowCmd.Flags().StringP("format", "f", "yaml", "output format (yaml or json)")
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	ctx, done, err := newExecutionContext(cmd, os.Exit)
	if done || err != nil {
		return err
	}
	defer ctx.Close()

	current, err := ctx.store.Load()
	if err != nil {
		ctx.log.Warn("Showing default settings", slog.Any("error", err))
	}

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "json":
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(current)
	case "yaml":
		encoder := yaml.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent(2)
		defer encoder.Close()
		return encoder.Encode(current)
	default:
		return fmt.Errorf("unsupported format: %s (use 'yaml' or 'json')", format)
	}
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	ctx, done, err := newExecutionContext(cmd, os.Exit)
	if done || err != nil {
		return err
	}
	defer ctx.Close()

	value, err := ctx.store.Current().Get(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), value)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	ctx, done, err := newExecutionContext(cmd, os.Exit)
	if done || err != nil {
		return err
	}
	defer ctx.Close()

	key, value := args[0], args[1]

	before := ctx.store.Current()
	updated, err := ctx.store.Update(func(s *settings.Settings) error {
		return s.Set(key, value)
	})
	if err != nil {
		return err
	}

	newValue, _ := updated.Get(key)
	ctx.log.Info("Setting updated", slog.String("key", key), slog.String("value", newValue))

	if updated.StartWithWindows != before.StartWithWindows {
		if err := syncStartup(ctx, updated.StartWithWindows); err != nil {
			ctx.log.Warn("Start with Windows not updated", slog.Any("error", err))
		}
	}

	return nil
}

func runSettingsPath(cmd *cobra.Command, _ []string) error {
	cfg := NewConfigFromFlags(cmd)
	fmt.Fprintln(cmd.OutOrStdout(), cfg.SettingsPath)
	return nil
}

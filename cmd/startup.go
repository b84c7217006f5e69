package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/alreadyedge/internal/settings"
	"github.com/Norgate-AV/alreadyedge/internal/startup"
)

var startupCmd = &cobra.Command{
	Use:   "startup",
	Short: "Control whether alreadyedge starts with Windows",
}

var startupEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Start monitoring when you sign in",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return setStartWithWindows(cmd, true)
	},
}

var startupDisableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Stop starting with Windows",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return setStartWithWindows(cmd, false)
	},
}

var startupStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether alreadyedge starts with Windows",
	Args:  cobra.NoArgs,
	RunE:  runStartupStatus,
}

func init() {
	RootCmd.AddCommand(startupCmd)
	startupCmd.AddCommand(startupEnableCmd)
	startupCmd.AddCommand(startupDisableCmd)
	startupCmd.AddCommand(startupStatusCmd)
}

// syncStartup makes the registered startup entry match enabled
func syncStartup(ctx *ExecutionContext, enabled bool) error {
	d, err := newDesktop(ctx.log)
	if err != nil {
		return err
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to locate executable: %w", err)
	}

	return startup.Sync(ctx.log, d.Startup, enabled, exe)
}

func setStartWithWindows(cmd *cobra.Command, enabled bool) error {
	ctx, done, err := newExecutionContext(cmd, os.Exit)
	if done || err != nil {
		return err
	}
	defer ctx.Close()

	if err := syncStartup(ctx, enabled); err != nil {
		ctx.log.Error("Failed to update startup entry", slog.Any("error", err))
		return err
	}

	if _, err := ctx.store.Update(func(s *settings.Settings) error {
		s.StartWithWindows = enabled
		return nil
	}); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), startupStatus(enabled))
	return nil
}

func runStartupStatus(cmd *cobra.Command, _ []string) error {
	ctx, done, err := newExecutionContext(cmd, os.Exit)
	if done || err != nil {
		return err
	}
	defer ctx.Close()

	d, err := newDesktop(ctx.log)
	if err != nil {
		return err
	}

	enabled, err := d.Startup.Enabled()
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), startupStatus(enabled))

	if saved := ctx.store.Current().StartWithWindows; saved != enabled {
		ctx.log.Warn("Settings file disagrees with the startup entry",
			slog.Bool("settings", saved),
			slog.Bool("registered", enabled),
		)
	}

	return nil
}

func startupStatus(enabled bool) string {
	if enabled {
		return "Start with Windows: enabled"
	}

	return "Start with Windows: disabled"
}

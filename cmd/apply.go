package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/alreadyedge/internal/effect"
	"github.com/Norgate-AV/alreadyedge/internal/monitor"
	"github.com/Norgate-AV/alreadyedge/internal/settings"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply an effect to every open Edge window",
	Long: `Apply a backdrop and dark mode setting to every Edge window that is open
now, including windows that already have an effect. Flags override the saved
settings for this run; --save stores them.`,
	Example: `  # Re-apply the saved effect
  alreadyedge apply

  # Try Mica in light mode without saving
  alreadyedge apply --backdrop mica --light

  # Switch to Mica Alt and remember it
  alreadyedge apply --backdrop mica-alt --save`,
	Args: cobra.NoArgs,
	RunE: runApply,
}

func init() {
	RootCmd.AddCommand(applyCmd)

	applyCmd.Flags().StringP("backdrop", "b", "", "backdrop to apply (auto, none, mica, acrylic, mica-alt)")
	applyCmd.Flags().Bool("dark", false, "use dark mode")
	applyCmd.Flags().Bool("light", false, "use light mode")
	applyCmd.Flags().Bool("save", false, "store the applied effect in the settings file")
	applyCmd.MarkFlagsMutuallyExclusive("dark", "light")
}

// effectFromFlags overlays the apply flags on base
func effectFromFlags(cmd *cobra.Command, base effect.Config) (effect.Config, error) {
	cfg := base

	if name, _ := cmd.Flags().GetString("backdrop"); name != "" {
		b, err := effect.ParseBackdrop(name)
		if err != nil {
			return cfg, err
		}

		cfg.Backdrop = b
	}

	if dark, _ := cmd.Flags().GetBool("dark"); dark {
		cfg.DarkMode = true
	}

	if light, _ := cmd.Flags().GetBool("light"); light {
		cfg.DarkMode = false
	}

	return cfg, nil
}

func runApply(cmd *cobra.Command, _ []string) error {
	ctx, done, err := newExecutionContext(cmd, os.Exit)
	if done || err != nil {
		return err
	}
	defer ctx.Close()
	defer ctx.recoverPanic()

	cfg, err := effectFromFlags(cmd, ctx.store.Current().Effect)
	if err != nil {
		return err
	}

	d, err := newDesktop(ctx.log)
	if err != nil {
		ctx.log.Error("Desktop unavailable", slog.Any("error", err))
		return err
	}

	m := d.newMonitor(ctx.log, ctx.store, monitor.Options{Interval: ctx.cfg.Interval, Events: monitorEvents(ctx.log)})
	defer m.Close()

	count := m.ApplyToAll(cfg)
	fmt.Fprintf(cmd.OutOrStdout(), "Applied %s to %d window(s)\n", cfg, count)

	if save, _ := cmd.Flags().GetBool("save"); save {
		if _, err := ctx.store.Update(func(s *settings.Settings) error {
			s.Effect = cfg
			return nil
		}); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}

		ctx.log.Debug("Saved effect", slog.String("effect", cfg.String()))
	}

	return nil
}

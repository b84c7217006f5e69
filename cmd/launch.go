package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/alreadyedge/internal/edge"
)

var launchCmd = &cobra.Command{
	Use:   "launch [URL...]",
	Short: "Start Edge with the switches transparency needs",
	Long: `Start Microsoft Edge with the command-line switches selected in the
launch section of the settings file. Extra arguments are passed to Edge.
Set EDGE_PATH to use a non-default installation.`,
	Example: `  # Start Edge
  alreadyedge launch

  # Open a page
  alreadyedge launch https://example.com`,
	RunE: runLaunch,
}

func init() {
	RootCmd.AddCommand(launchCmd)
}

func runLaunch(cmd *cobra.Command, args []string) error {
	ctx, done, err := newExecutionContext(cmd, os.Exit)
	if done || err != nil {
		return err
	}
	defer ctx.Close()

	if err := edge.ValidateEdgeInstallation(); err != nil {
		ctx.log.Error("Edge installation check failed", slog.Any("error", err))
		return err
	}

	d, err := newDesktop(ctx.log)
	if err != nil {
		return err
	}

	path := edge.GetEdgePath()
	edgeArgs := append(edge.LaunchArgs(ctx.store.Current().Launch), args...)

	ctx.log.Debug("Launching Edge", slog.String("path", path), slog.Any("args", edgeArgs))
	if err := d.Open(path, edgeArgs); err != nil {
		ctx.log.Error("ShellExecute failed", slog.Any("error", err))
		return fmt.Errorf("error launching Edge: %w", err)
	}

	ctx.log.Info("Edge launched")
	return nil
}

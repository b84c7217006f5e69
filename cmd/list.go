package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the Edge windows that would receive the effect",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	RootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolP("all", "a", false, "list every top-level window, marking Edge ones")
}

func runList(cmd *cobra.Command, _ []string) error {
	ctx, done, err := newExecutionContext(cmd, os.Exit)
	if done || err != nil {
		return err
	}
	defer ctx.Close()

	d, err := newDesktop(ctx.log)
	if err != nil {
		ctx.log.Error("Desktop unavailable", slog.Any("error", err))
		return err
	}

	all, _ := cmd.Flags().GetBool("all")
	classifier := d.classifier(ctx.log)

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "EDGE\tHWND\tCLASS\tPID\tPROCESS")

	found := 0
	for hwnd := range d.Windows.Windows() {
		target := classifier.IsTarget(hwnd)
		if target {
			found++
		}

		if !target && !all {
			continue
		}

		mark := ""
		if target {
			mark = "*"
		}

		fmt.Fprintf(tw, "%s\t%s\n", mark, d.Describe(hwnd))
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	ctx.log.Debug("Listed windows", slog.Int("edge", found))
	return nil
}

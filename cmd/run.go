package cmd

import "github.com/spf13/cobra"

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Watch for Edge windows and apply the saved effect",
	Long: `Scan for Microsoft Edge windows every --interval and apply the saved
backdrop and dark mode setting to each new one. Runs until interrupted.`,
	Example: `  # Watch with the default 2s interval
  alreadyedge run

  # Apply once to the windows open right now and exit
  alreadyedge run --once`,
	Args: cobra.NoArgs,
	RunE: Execute,
}

func init() {
	RootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("once", false, "apply to the current Edge windows and exit")
}

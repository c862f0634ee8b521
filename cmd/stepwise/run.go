package main

import (
	"github.com/aretw0/stepwise/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Run every scenario of a file and print the traces",
	Long:  `Runs each scenario of a YAML or JSON scenario file and prints one line per snapshot, followed by the final state.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		debug, _ := cmd.Flags().GetBool("debug")
		jsonMode, _ := cmd.Flags().GetBool("json")
		name, _ := cmd.Flags().GetString("scenario")

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		return cli.Run(sigCtx, cli.RunOptions{
			Path:     args[0],
			Scenario: name,
			JSON:     jsonMode,
			Debug:    debug,
		}, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("json", false, "Print NDJSON, one record per scenario")
	runCmd.Flags().StringP("scenario", "s", "", "Only run the named scenario")
}

package main

import (
	"github.com/aretw0/stepwise/internal/cli"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <file>",
	Short: "Export a snapshot as a Mermaid diagram",
	Long: `Runs a scenario and outputs a Mermaid diagram of the structure at one step:
the union-find forest, the trie, or the character dependency graph.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("scenario")
		step, _ := cmd.Flags().GetInt("step")

		return cli.Graph(cli.GraphOptions{
			Path:     args[0],
			Scenario: name,
			Step:     step,
		}, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().StringP("scenario", "s", "", "Scenario to draw (default: the first one)")
	graphCmd.Flags().Int("step", -1, "Zero-based snapshot index (default: the last one)")
}

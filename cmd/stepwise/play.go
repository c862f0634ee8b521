package main

import (
	"os"

	"github.com/aretw0/stepwise/internal/cli"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// playCmd represents the play command
var playCmd = &cobra.Command{
	Use:   "play <file>",
	Short: "Replay a scenario one snapshot at a time",
	Long: `Replays a scenario through a stepper. Press Enter to advance, r to go back
to the start and q to quit. When stdin is not a terminal the whole trace
is printed without pausing.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		debug, _ := cmd.Flags().GetBool("debug")
		name, _ := cmd.Flags().GetString("scenario")
		noPause, _ := cmd.Flags().GetBool("no-pause")

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		return cli.Play(sigCtx, cli.PlayOptions{
			Path:        args[0],
			Scenario:    name,
			Debug:       debug,
			Interactive: !noPause && term.IsTerminal(int(os.Stdin.Fd())),
		}, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().StringP("scenario", "s", "", "Scenario to play (default: the first one)")
	playCmd.Flags().Bool("no-pause", false, "Print the whole trace without waiting for keys")
}

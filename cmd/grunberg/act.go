package main

import (
	"github.com/aretw0/grunberg/internal/cli"
	"github.com/spf13/cobra"
)

var actCmd = &cobra.Command{
	Use:   "act <ACTION_TYPE> [payload]",
	Short: "Dispatch one action against the saved game",
	Long: `Loads the save, dispatches a single action and saves the result.
The payload is JSON; a bare word is taken as a string.

Examples:
  grunberg act UPDATE_CURRENCY '{"type":"gold","amount":50}'
  grunberg act COMPLETE_QUEST rats
  grunberg act RESET_STATE`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		payload := ""
		if len(args) == 2 {
			payload = args[1]
		}
		return withRuntime(cmd, oneShot, func(rt *cli.Runtime) error {
			return cli.Act(cmd.Context(), rt, cmd.OutOrStdout(), args[0], payload)
		})
	},
}

func init() {
	rootCmd.AddCommand(actCmd)
}

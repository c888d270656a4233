package main

import (
	"github.com/aretw0/grunberg/internal/cli"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the saved character sheet",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		return withRuntime(cmd, oneShot, func(rt *cli.Runtime) error {
			return cli.Status(rt, cmd.OutOrStdout(), format)
		})
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().StringP("format", "o", cli.FormatSheet, "Output format: sheet, plain or json")
}

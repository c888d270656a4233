package main

import (
	"github.com/aretw0/grunberg/internal/cli"
	"github.com/spf13/cobra"
)

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Manage the save slot",
	Long:  `Inspect, export, import and remove the save stored in the configured backend.`,
}

var saveInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show when the slot was last saved",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuntime(cmd, oneShot, func(rt *cli.Runtime) error {
			return cli.SaveInfo(cmd.Context(), rt, cmd.OutOrStdout())
		})
	},
}

var saveExportCmd = &cobra.Command{
	Use:   "export [dir]",
	Short: "Write the save as a portable JSON document",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		return withRuntime(cmd, oneShot, func(rt *cli.Runtime) error {
			return cli.SaveExport(rt, cmd.OutOrStdout(), dir)
		})
	},
}

var saveImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Validate an exported save and write it to the slot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuntime(cmd, cli.RuntimeOptions{OneShot: true}, func(rt *cli.Runtime) error {
			return cli.SaveImport(cmd.Context(), rt, cmd.OutOrStdout(), args[0])
		})
	},
}

var saveRmCmd = &cobra.Command{
	Use:   "rm",
	Short: "Delete the save slot",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuntime(cmd, cli.RuntimeOptions{OneShot: true}, func(rt *cli.Runtime) error {
			return cli.SaveRemove(cmd.Context(), rt, cmd.OutOrStdout())
		})
	},
}

func init() {
	rootCmd.AddCommand(saveCmd)
	saveCmd.AddCommand(saveInfoCmd)
	saveCmd.AddCommand(saveExportCmd)
	saveCmd.AddCommand(saveImportCmd)
	saveCmd.AddCommand(saveRmCmd)
}

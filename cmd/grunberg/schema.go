package main

import (
	"github.com/aretw0/grunberg/internal/cli"
	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of the save document",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Schema(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}

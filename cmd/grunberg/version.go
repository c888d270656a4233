package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/grunberg"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of grunberg",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "grunberg version %s\n", strings.TrimSpace(grunberg.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

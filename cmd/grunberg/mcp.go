package main

import (
	"github.com/aretw0/grunberg/internal/cli"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the game as an MCP server so AI agents can read state and dispatch actions as tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		addr, _ := cmd.Flags().GetString("addr")

		sc := cli.NewSignalContext(cmd.Context())
		defer sc.Cancel()

		return withRuntime(cmd, cli.RuntimeOptions{Resume: true}, func(rt *cli.Runtime) error {
			return cli.ServeMCP(sc, rt, transport, addr)
		})
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().StringP("transport", "t", cli.TransportStdio, "Transport type (stdio, sse)")
	mcpCmd.Flags().String("addr", ":8081", "Address for the SSE transport")
}

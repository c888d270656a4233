package main

import (
	"github.com/aretw0/grunberg/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Loads the save and exposes the game as a JSON API over HTTP, with a websocket
event stream on /events and Prometheus metrics on /metrics.
Autosave follows the configuration; the game is flushed on shutdown.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")

		sc := cli.NewSignalContext(cmd.Context())
		defer sc.Cancel()

		return withRuntime(cmd, cli.RuntimeOptions{Resume: true, Metrics: true}, func(rt *cli.Runtime) error {
			if addr == "" {
				addr = rt.Config.HTTP.Addr
			}
			if !rt.Config.HTTP.Metrics {
				rt.Registry = nil
			}
			return cli.Serve(sc, rt, cmd.OutOrStdout(), addr)
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", "", "Address to listen on (defaults to the configured http.addr)")
}

package main

import (
	"fmt"
	"os"

	"github.com/aretw0/grunberg"
	"github.com/aretw0/grunberg/internal/cli"
	"github.com/aretw0/grunberg/internal/config"
	"github.com/aretw0/grunberg/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "grunberg",
	Short: "Grunberg is a save-game engine for a dungeon crawler",
	Long: `Grunberg holds the state of a dungeon crawler session: character, inventory,
quests and flags. State changes only through actions, every change is announced
as an event, and the session is persisted to a pluggable save store.`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		tui.PrintBanner(cmd.OutOrStdout(), grunberg.Version)
		_ = cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to a YAML or JSON config file")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("slot", "", "Save slot name (overrides the configured save key)")
}

// openRuntime loads configuration from the persistent flags and opens the game.
func openRuntime(cmd *cobra.Command, ro cli.RuntimeOptions) (*cli.Runtime, error) {
	path, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")
	slot, _ := cmd.Flags().GetString("slot")

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if slot != "" {
		cfg.SaveKey = slot
	}

	logger := cli.NewLogger(cfg.LogLevel, debug)
	return cli.Open(cfg, logger, ro)
}

// withRuntime opens the game, runs fn and closes the game, keeping the first error.
func withRuntime(cmd *cobra.Command, ro cli.RuntimeOptions, fn func(rt *cli.Runtime) error) (err error) {
	rt, err := openRuntime(cmd, ro)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := rt.Close(); err == nil {
			err = cerr
		}
	}()
	return fn(rt)
}

// oneShot is the mode of commands that read or change the save and exit.
var oneShot = cli.RuntimeOptions{OneShot: true, Resume: true}

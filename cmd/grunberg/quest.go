package main

import (
	"github.com/aretw0/grunberg/internal/cli"
	"github.com/spf13/cobra"
)

var questCmd = &cobra.Command{
	Use:   "quest",
	Short: "Browse and start quests from the quest catalog",
	Long:  `Quest definitions are read from the directory configured as quests_dir (GRUNBERG_QUESTS_DIR).`,
}

var questListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List catalog quests and their progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuntime(cmd, oneShot, func(rt *cli.Runtime) error {
			return cli.QuestList(cmd.Context(), rt, cmd.OutOrStdout())
		})
	},
}

var questStartCmd = &cobra.Command{
	Use:   "start <quest-id>",
	Short: "Start a catalog quest",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuntime(cmd, oneShot, func(rt *cli.Runtime) error {
			return cli.QuestStart(cmd.Context(), rt, cmd.OutOrStdout(), args[0])
		})
	},
}

var questGraphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Print the quest chain as a Mermaid flowchart",
	RunE: func(cmd *cobra.Command, args []string) error {
		progress, _ := cmd.Flags().GetBool("progress")
		return withRuntime(cmd, oneShot, func(rt *cli.Runtime) error {
			return cli.QuestGraph(cmd.Context(), rt, cmd.OutOrStdout(), progress)
		})
	},
}

func init() {
	rootCmd.AddCommand(questCmd)
	questCmd.AddCommand(questListCmd)
	questCmd.AddCommand(questStartCmd)
	questCmd.AddCommand(questGraphCmd)
	questGraphCmd.Flags().Bool("progress", false, "Color quests by the saved progress")
}

package main

import (
	"github.com/aretw0/grunberg/internal/cli"
	"github.com/aretw0/grunberg/pkg/domain"
	"github.com/spf13/cobra"
)

var newCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Create a character and start a new game",
	Long: `Creates a character and writes a fresh save.

Stats default to the race's starting distribution. When any of --str, --agi
or --int is given, all three are used and must spend exactly 15 points.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := cli.CharacterInput{Name: args[0]}
		in.Race, _ = cmd.Flags().GetString("race")
		in.Class, _ = cmd.Flags().GetString("class")
		in.Male, _ = cmd.Flags().GetBool("male")
		in.Force, _ = cmd.Flags().GetBool("force")

		if cmd.Flags().Changed("str") || cmd.Flags().Changed("agi") || cmd.Flags().Changed("int") {
			var stats domain.CharacterStats
			stats.Strength, _ = cmd.Flags().GetInt("str")
			stats.Agility, _ = cmd.Flags().GetInt("agi")
			stats.Intelligence, _ = cmd.Flags().GetInt("int")
			in.Stats = &stats
		}

		return withRuntime(cmd, cli.RuntimeOptions{OneShot: true}, func(rt *cli.Runtime) error {
			return cli.NewCharacter(cmd.Context(), rt, cmd.OutOrStdout(), in)
		})
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().String("race", string(domain.RaceHuman), "Human, Elf, Dwarf or Orc")
	newCmd.Flags().String("class", string(domain.ClassWarrior), "Warrior, Rogue or Mage")
	newCmd.Flags().Bool("male", true, "Character gender")
	newCmd.Flags().Int("str", 5, "Strength")
	newCmd.Flags().Int("agi", 5, "Agility")
	newCmd.Flags().Int("int", 5, "Intelligence")
	newCmd.Flags().BoolP("force", "f", false, "Overwrite an existing save")
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/mathquest/internal/problemgen"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the game",
	Long: `Start the game, continuing saved progress.

Picking a difficulty starts a new game at that level, the same as choosing
one from the home screen. --new starts over at the saved difficulty.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := playOptions{}
		opts.newGame, _ = cmd.Flags().GetBool("new")

		if cmd.Flags().Changed("difficulty") {
			val, _ := cmd.Flags().GetString("difficulty")
			d, err := problemgen.ParseDifficulty(val)
			if err != nil {
				return err
			}
			opts.difficulty = d
			opts.newGame = true
		}
		return runApp(cmd, opts)
	},
}

func init() {
	playCmd.Flags().StringP("difficulty", "d", "", "Start a new game at easy, medium or hard")
	playCmd.Flags().Bool("new", false, "Reset score and badges before playing")
}

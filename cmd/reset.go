package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathquest/internal/problemgen"
	"github.com/abhisek/mathquest/internal/session"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Start over: clear score, counts and badges",
	Long: `Start over: clear score, counts and badges.

Recorded answers, hints and LLM calls are kept for stats and llm commands.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		kv := e.store.KV()
		st, err := session.LoadState(ctx, kv)
		if err != nil {
			return err
		}
		d := st.Difficulty
		if cmd.Flags().Changed("difficulty") {
			val, _ := cmd.Flags().GetString("difficulty")
			if d, err = problemgen.ParseDifficulty(val); err != nil {
				return err
			}
		}

		if err := session.SaveState(ctx, kv, session.ResetState(d)); err != nil {
			return err
		}
		e.log.WithField("difficulty", d).Info("progress reset")
		fmt.Fprintf(cmd.OutOrStdout(), "Progress reset. New game at %s.\n", d)
		return nil
	},
}

func init() {
	resetCmd.Flags().StringP("difficulty", "d", "", "Difficulty for the new game (default: keep current)")
}

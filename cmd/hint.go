package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathquest/internal/problemgen"
)

var hintCmd = &cobra.Command{
	Use:   "hint <question>",
	Short: "Ask Math Buddy for a hint on any question",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, true)
		if err != nil {
			return err
		}
		defer e.Close()

		svc := e.tutor()
		if svc == nil {
			return errors.New("hints need an LLM API key (set GEMINI_API_KEY)")
		}

		q := problemgen.Question{Text: args[0]}
		fmt.Fprintln(cmd.OutOrStdout(), svc.Hint(cmd.Context(), q))
		return nil
	},
}

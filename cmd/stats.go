package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathquest/internal/badges"
	"github.com/abhisek/mathquest/internal/session"
	"github.com/abhisek/mathquest/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show score, badges and answers by question type",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		st, err := session.LoadState(ctx, e.store.KV())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Difficulty:  %s\n", st.Difficulty)
		fmt.Fprintf(out, "Score:       %d\n", st.Score)
		fmt.Fprintf(out, "Correct:     %d\n", st.Correct)
		fmt.Fprintf(out, "Try again:   %d\n", st.Incorrect)

		var earned []string
		for _, b := range st.Badges {
			earned = append(earned, b.Label())
		}
		if len(earned) == 0 {
			earned = []string{"(none yet)"}
		}
		fmt.Fprintf(out, "Badges:      %s\n", strings.Join(earned, ", "))
		if next, ok := badges.Next(st.Correct); ok {
			fmt.Fprintf(out, "Next badge:  %s at %d correct (%d to go)\n",
				next.Label(), next.Milestone, next.Milestone-st.Correct)
		} else {
			fmt.Fprintln(out, "Next badge:  every badge earned!")
		}

		repo := e.store.EventRepo()
		hints, err := repo.CountHints(ctx, store.QueryOpts{})
		if err != nil {
			return fmt.Errorf("count hints: %w", err)
		}
		fmt.Fprintf(out, "Hints used:  %d\n", hints)

		byType, err := repo.AnswerStats(ctx)
		if err != nil {
			return fmt.Errorf("query answers: %w", err)
		}
		if len(byType) == 0 {
			return nil
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, "Answers by Question Type")
		fmt.Fprintln(out, strings.Repeat("─", 48))
		fmt.Fprintf(out, "%-26s  %8s  %8s\n", "Type", "Tries", "Correct")
		fmt.Fprintln(out, strings.Repeat("─", 48))
		for _, s := range byType {
			fmt.Fprintf(out, "%-26s  %8d  %8d\n", s.QuestionType, s.Attempts, s.Correct)
		}
		return nil
	},
}

package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathquest/internal/problemgen"
)

var questionCmd = &cobra.Command{
	Use:   "question",
	Short: "Print sample questions with their answers",
	Long: `Generate questions the way the game does and print them with answers.

Local questions need no database or API key. --story asks the LLM for
story problems instead; failed calls print the local fallback question.`,
	RunE: runQuestion,
}

func init() {
	questionCmd.Flags().StringP("difficulty", "d", "easy", "Difficulty: easy, medium or hard")
	questionCmd.Flags().IntP("count", "n", 5, "Number of questions to generate")
	questionCmd.Flags().Bool("story", false, "Generate story problems with the LLM")
}

func runQuestion(cmd *cobra.Command, args []string) error {
	diffVal, _ := cmd.Flags().GetString("difficulty")
	count, _ := cmd.Flags().GetInt("count")
	story, _ := cmd.Flags().GetBool("story")

	d, err := problemgen.ParseDifficulty(diffVal)
	if err != nil {
		return err
	}
	if count < 1 {
		return fmt.Errorf("invalid count %d: must be at least 1", count)
	}

	var next func() problemgen.Question
	if story {
		e, err := openEnv(cmd, true)
		if err != nil {
			return err
		}
		defer e.Close()

		svc := e.tutor()
		if svc == nil {
			return errors.New("story problems need an LLM API key (set GEMINI_API_KEY)")
		}
		next = func() problemgen.Question { return svc.StoryProblem(cmd.Context(), d) }
	} else {
		gen := problemgen.New(nil)
		last := problemgen.TypeNone
		next = func() problemgen.Question {
			q := gen.Generate(d, last)
			last = q.Type
			return q
		}
	}

	out := cmd.OutOrStdout()
	for i := 1; i <= count; i++ {
		printQuestion(out, i, count, next())
	}
	return nil
}

func printQuestion(w io.Writer, i, count int, q problemgen.Question) {
	fmt.Fprintf(w, "── Question %d/%d (%s) ──\n", i, count, q.Type)
	fmt.Fprintln(w, q.Text)
	for j, opt := range q.Options {
		fmt.Fprintf(w, "  %c) %s\n", 'A'+j, opt)
	}
	fmt.Fprintf(w, "Answer: %s\n\n", q.Answer)
}

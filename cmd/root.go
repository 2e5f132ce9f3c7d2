package cmd

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhisek/mathquest/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "mathquest",
	Short: "Math practice game for kids",
	Long: `Math Quest is a terminal math game for young children.

Answer addition, subtraction, comparison, ordering and pattern questions,
earn badges, and (with an LLM API key) get story problems and hints from
Math Buddy.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadDotEnv()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, playOptions{})
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MATHQUEST_DB env var)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(questionCmd)
	rootCmd.AddCommand(hintCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadDotEnv reads .env from the working directory when present. Variables
// already set in the environment win.
func loadDotEnv() error {
	err := godotenv.Load()
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then MATHQUEST_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

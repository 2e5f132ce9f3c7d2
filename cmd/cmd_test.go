package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathquest/internal/session"
	"github.com/abhisek/mathquest/internal/store"
)

// resetFlags restores every flag to its default so commands can run more
// than once in a test binary.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// run executes the CLI with a private data dir and database.
func run(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("MATHQUEST_DB", "")
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--db", dbPath))
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, filepath.Join(t.TempDir(), "m.db"), "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "mathquest "))
}

func TestQuestion_Local(t *testing.T) {
	out, err := run(t, filepath.Join(t.TempDir(), "m.db"), "question", "--difficulty", "hard", "--count", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Question 1/3")
	assert.Contains(t, out, "Question 3/3")
	assert.Equal(t, 3, strings.Count(out, "Answer: "))
}

func TestQuestion_BadFlags(t *testing.T) {
	db := filepath.Join(t.TempDir(), "m.db")

	_, err := run(t, db, "question", "--difficulty", "extreme")
	assert.ErrorContains(t, err, "unknown difficulty")

	_, err = run(t, db, "question", "--count", "0")
	assert.ErrorContains(t, err, "invalid count")
}

func TestPlay_RejectsUnknownDifficulty(t *testing.T) {
	_, err := run(t, filepath.Join(t.TempDir(), "m.db"), "play", "--difficulty", "extreme")
	assert.ErrorContains(t, err, "unknown difficulty")
}

func TestResetAndStats(t *testing.T) {
	db := filepath.Join(t.TempDir(), "m.db")

	// Seed some progress.
	st, err := store.Open(db)
	require.NoError(t, err)
	ctx := context.Background()
	s, err := session.New(ctx, session.Deps{
		KV:     st.KV(),
		Events: st.EventRepo(),
		Source: func() float64 { return 0 },
	})
	require.NoError(t, err)
	s.NextQuestion(ctx)
	_, err = s.Submit(ctx, "2")
	require.NoError(t, err)
	require.NoError(t, st.Close())

	out, err := run(t, db, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Score:       10")
	assert.Contains(t, out, "First Step")
	assert.Contains(t, out, "(4 to go)")
	assert.Contains(t, out, "addition")

	out, err = run(t, db, "reset", "--difficulty", "medium")
	require.NoError(t, err)
	assert.Contains(t, out, "New game at medium")

	out, err = run(t, db, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Difficulty:  medium")
	assert.Contains(t, out, "Score:       0")
	assert.Contains(t, out, "(none yet)")
}

func TestLLMList_Empty(t *testing.T) {
	out, err := run(t, filepath.Join(t.TempDir(), "m.db"), "llm", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No LLM requests found.")
}

func TestLLMStats(t *testing.T) {
	db := filepath.Join(t.TempDir(), "m.db")
	st, err := store.Open(db)
	require.NoError(t, err)
	repo := st.EventRepo()
	ctx := context.Background()
	require.NoError(t, repo.AppendLLMRequest(ctx, store.LLMRequestEventData{
		Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "hint",
		InputTokens: 1000, OutputTokens: 100, LatencyMs: 200, Success: true,
	}))
	require.NoError(t, repo.AppendLLMRequest(ctx, store.LLMRequestEventData{
		Provider: "gemini", Model: "mystery-model", Purpose: "story-problem",
		InputTokens: 10, OutputTokens: 0, LatencyMs: 50, ErrorMessage: "boom",
	}))
	require.NoError(t, st.Close())

	out, err := run(t, db, "llm", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Usage by Purpose")
	assert.Contains(t, out, "hint")
	assert.Contains(t, out, "story-problem")
	assert.Contains(t, out, "TOTAL (partial)")
	assert.Contains(t, out, "Pricing unavailable for: mystery-model")

	out, err = run(t, db, "llm", "view", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Model:     gemini-2.5-flash")
	assert.Contains(t, out, "(not captured)")

	_, err = run(t, db, "llm", "view", "99")
	assert.ErrorContains(t, err, "not found")
}

func TestFormatCost(t *testing.T) {
	assert.Equal(t, "$0.0050", formatCost(0.005))
	assert.Equal(t, "$1.25", formatCost(1.25))
}

package session

import (
	"context"
	"fmt"

	"github.com/abhisek/mathquest/internal/badges"
	"github.com/abhisek/mathquest/internal/problemgen"
	"github.com/abhisek/mathquest/internal/store"
)

// Persisted keys for the player's progress.
const (
	KeyDifficulty = "math_difficulty"
	KeyScore      = "math_score"
	KeyCorrect    = "math_correct"
	KeyIncorrect  = "math_incorrect"
	KeyBadges     = "math_badges"
)

// PointsPerCorrect is added to the score for every correct answer.
const PointsPerCorrect = 10

// State is the single local player's progress.
type State struct {
	Difficulty problemgen.Difficulty
	Score      int
	Correct    int
	Incorrect  int
	Badges     []badges.Badge
}

// LoadState reads the player's progress, filling in defaults for missing
// or unreadable values. An unknown stored difficulty falls back to easy.
func LoadState(ctx context.Context, kv store.KV) (State, error) {
	var st State
	diff, err := store.Load(ctx, kv, KeyDifficulty, string(problemgen.Easy))
	if err != nil {
		return st, fmt.Errorf("load state: %w", err)
	}
	if st.Difficulty, err = problemgen.ParseDifficulty(diff); err != nil {
		st.Difficulty = problemgen.Easy
	}
	if st.Score, err = store.Load(ctx, kv, KeyScore, 0); err != nil {
		return st, fmt.Errorf("load state: %w", err)
	}
	if st.Correct, err = store.Load(ctx, kv, KeyCorrect, 0); err != nil {
		return st, fmt.Errorf("load state: %w", err)
	}
	if st.Incorrect, err = store.Load(ctx, kv, KeyIncorrect, 0); err != nil {
		return st, fmt.Errorf("load state: %w", err)
	}
	if st.Badges, err = store.Load(ctx, kv, KeyBadges, []badges.Badge{}); err != nil {
		return st, fmt.Errorf("load state: %w", err)
	}
	return st, nil
}

// SaveState writes every field of st.
func SaveState(ctx context.Context, kv store.KV, st State) error {
	owned := st.Badges
	if owned == nil {
		owned = []badges.Badge{}
	}
	values := []struct {
		key string
		v   any
	}{
		{KeyDifficulty, string(st.Difficulty)},
		{KeyScore, st.Score},
		{KeyCorrect, st.Correct},
		{KeyIncorrect, st.Incorrect},
		{KeyBadges, owned},
	}
	for _, e := range values {
		if err := store.Save(ctx, kv, e.key, e.v); err != nil {
			return fmt.Errorf("save state: %w", err)
		}
	}
	return nil
}

// ResetState clears progress and sets the difficulty for a new game.
func ResetState(d problemgen.Difficulty) State {
	return State{Difficulty: d, Badges: []badges.Badge{}}
}

package session

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathquest/internal/badges"
	"github.com/abhisek/mathquest/internal/problemgen"
	"github.com/abhisek/mathquest/internal/store"
	"github.com/abhisek/mathquest/internal/tutor"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := store.Open(fmt.Sprintf("file:session_%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func constSource(v float64) problemgen.Source {
	return func() float64 { return v }
}

type fakeTutor struct {
	stories int
	hints   int
	hint    string
}

func (f *fakeTutor) StoryProblem(_ context.Context, d problemgen.Difficulty) problemgen.Question {
	f.stories++
	return problemgen.Question{
		Type:   problemgen.TypeAIStory,
		Text:   fmt.Sprintf("Nora has 3 kites and buys %d more. How many kites now?", d.Range()),
		Answer: problemgen.NumberAnswer(3 + d.Range()),
	}
}

func (f *fakeTutor) Hint(_ context.Context, _ problemgen.Question) string {
	f.hints++
	return f.hint
}

func newSession(t *testing.T, st *store.Store, deps Deps) *Session {
	t.Helper()
	deps.KV = st.KV()
	if deps.Events == nil {
		deps.Events = st.EventRepo()
	}
	s, err := New(context.Background(), deps)
	require.NoError(t, err)
	return s
}

func TestNew_RequiresKV(t *testing.T) {
	_, err := New(context.Background(), Deps{})
	require.Error(t, err)
}

func TestNew_Defaults(t *testing.T) {
	s := newSession(t, openStore(t), Deps{})

	st := s.State()
	assert.Equal(t, problemgen.Easy, st.Difficulty)
	assert.Zero(t, st.Score)
	assert.Zero(t, st.Correct)
	assert.Zero(t, st.Incorrect)
	assert.Empty(t, st.Badges)
	assert.NotEmpty(t, s.ID())
	assert.False(t, s.AIEnabled())

	_, ok := s.Current()
	assert.False(t, ok)
}

func TestLoadState_UnknownDifficulty(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, st.KV(), KeyDifficulty, "expert"))

	loaded, err := LoadState(ctx, st.KV())
	require.NoError(t, err)
	assert.Equal(t, problemgen.Easy, loaded.Difficulty)
}

func TestNewGame_ResetsAndPersists(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()
	require.NoError(t, SaveState(ctx, st.KV(), State{
		Difficulty: problemgen.Medium,
		Score:      50,
		Correct:    5,
		Incorrect:  2,
		Badges:     badges.All()[:2],
	}))

	s := newSession(t, st, Deps{})
	assert.Equal(t, 50, s.State().Score)
	assert.Len(t, s.State().Badges, 2)

	require.NoError(t, s.NewGame(ctx, problemgen.Hard))
	assert.Equal(t, ResetState(problemgen.Hard), s.State())

	reloaded, err := LoadState(ctx, st.KV())
	require.NoError(t, err)
	assert.Equal(t, problemgen.Hard, reloaded.Difficulty)
	assert.Zero(t, reloaded.Score)
	assert.Empty(t, reloaded.Badges)
}

func TestNextQuestion_LocalWithoutTutor(t *testing.T) {
	s := newSession(t, openStore(t), Deps{Source: constSource(0.01)})
	require.NoError(t, s.NewGame(context.Background(), problemgen.Hard))

	for range 20 {
		q := s.NextQuestion(context.Background())
		assert.NotEqual(t, problemgen.TypeAIStory, q.Type)
		assert.Nil(t, problemgen.Validate(q))
		cur, ok := s.Current()
		require.True(t, ok)
		assert.Equal(t, q, cur)
	}
}

func TestNextQuestion_AvoidsImmediateRepeat(t *testing.T) {
	s := newSession(t, openStore(t), Deps{})
	repeats := 0
	prev := s.NextQuestion(context.Background())
	for range 500 {
		q := s.NextQuestion(context.Background())
		if q.Type == prev.Type {
			repeats++
		}
		prev = q
	}
	// A repeat needs five colliding draws: (1/8)^5 per question.
	assert.LessOrEqual(t, repeats, 2)
}

func TestNextQuestion_StoryPolicy(t *testing.T) {
	tests := []struct {
		name       string
		difficulty problemgen.Difficulty
		u          float64
		wantStory  bool
	}{
		{"hard always asks", problemgen.Hard, 0.99, true},
		{"easy below chance", problemgen.Easy, 0.1, true},
		{"medium below chance", problemgen.Medium, 0.29, true},
		{"easy above chance", problemgen.Easy, 0.3, false},
		{"medium above chance", problemgen.Medium, 0.9, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ft := &fakeTutor{}
			s := newSession(t, openStore(t), Deps{Tutor: ft, Source: constSource(tt.u)})
			require.NoError(t, s.NewGame(context.Background(), tt.difficulty))

			q := s.NextQuestion(context.Background())
			if tt.wantStory {
				assert.Equal(t, 1, ft.stories)
				assert.Equal(t, problemgen.TypeAIStory, q.Type)
			} else {
				assert.Zero(t, ft.stories)
				assert.NotEqual(t, problemgen.TypeAIStory, q.Type)
			}
		})
	}
}

func TestSubmit_CorrectAwardsFirstBadge(t *testing.T) {
	st := openStore(t)
	s := newSession(t, st, Deps{})
	ctx := context.Background()

	q := s.NextQuestion(ctx)
	res, err := s.Submit(ctx, "  "+q.Answer.String()+" ")
	require.NoError(t, err)

	assert.True(t, res.Correct)
	require.NotNil(t, res.Badge)
	assert.Equal(t, "First Step", res.Badge.Name)
	assert.Equal(t, "Awesome! You earned a new badge: First Step!", res.Message)
	assert.Equal(t, q.Answer.String(), res.Expected)
	assert.True(t, s.Answered())

	state := s.State()
	assert.Equal(t, PointsPerCorrect, state.Score)
	assert.Equal(t, 1, state.Correct)
	assert.Len(t, state.Badges, 1)

	persisted, err := LoadState(ctx, st.KV())
	require.NoError(t, err)
	assert.Equal(t, state, persisted)

	events, err := st.EventRepo().ListAnswers(ctx, store.QueryOpts{SessionID: s.ID()})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.True(t, events[0].Correct)
	assert.Equal(t, q.Type.String(), events[0].QuestionType)
	assert.Equal(t, q.Answer.String(), events[0].LearnerAnswer)
	assert.Equal(t, "easy", events[0].Difficulty)
}

func TestSubmit_Incorrect(t *testing.T) {
	st := openStore(t)
	s := newSession(t, st, Deps{Source: constSource(0)})
	ctx := context.Background()

	s.NextQuestion(ctx)
	res, err := s.Submit(ctx, "banana")
	require.NoError(t, err)

	assert.False(t, res.Correct)
	assert.Nil(t, res.Badge)
	assert.Equal(t, incorrectMessages[0], res.Message)
	assert.Equal(t, 1, s.State().Incorrect)
	assert.Zero(t, s.State().Score)
}

func TestSubmit_Errors(t *testing.T) {
	s := newSession(t, openStore(t), Deps{})
	ctx := context.Background()

	_, err := s.Submit(ctx, "3")
	assert.ErrorIs(t, err, ErrNoQuestion)

	q := s.NextQuestion(ctx)
	_, err = s.Submit(ctx, "   ")
	assert.ErrorIs(t, err, ErrEmptyAnswer)

	_, err = s.Submit(ctx, q.Answer.String())
	require.NoError(t, err)
	_, err = s.Submit(ctx, q.Answer.String())
	assert.ErrorIs(t, err, ErrAlreadyAnswered)
	assert.Equal(t, 1, s.State().Correct)
}

func TestSubmit_BadgeMilestones(t *testing.T) {
	s := newSession(t, openStore(t), Deps{})
	ctx := context.Background()

	var earned []string
	for range 10 {
		q := s.NextQuestion(ctx)
		res, err := s.Submit(ctx, q.Answer.String())
		require.NoError(t, err)
		if res.Badge != nil {
			earned = append(earned, res.Badge.Name)
		}
	}
	assert.Equal(t, []string{"First Step", "Quick Learner", "Math Explorer"}, earned)
	assert.Equal(t, 100, s.State().Score)
}

func TestHint(t *testing.T) {
	ctx := context.Background()

	t.Run("no tutor", func(t *testing.T) {
		s := newSession(t, openStore(t), Deps{})
		s.NextQuestion(ctx)
		assert.Equal(t, HintUnavailable, s.Hint(ctx))
	})

	t.Run("no question", func(t *testing.T) {
		s := newSession(t, openStore(t), Deps{Tutor: &fakeTutor{hint: "x"}})
		assert.Equal(t, HintUnavailable, s.Hint(ctx))
	})

	t.Run("tutor hint recorded", func(t *testing.T) {
		st := openStore(t)
		ft := &fakeTutor{hint: "Count up from the bigger number."}
		s := newSession(t, st, Deps{Tutor: ft, Source: constSource(0.9)})
		s.NextQuestion(ctx)

		assert.Equal(t, "Hint: Count up from the bigger number.", s.Hint(ctx))
		assert.Equal(t, 1, ft.hints)

		n, err := st.EventRepo().CountHints(ctx, store.QueryOpts{SessionID: s.ID()})
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("fallback hint", func(t *testing.T) {
		ft := &fakeTutor{hint: tutor.FallbackHint}
		s := newSession(t, openStore(t), Deps{Tutor: ft, Source: constSource(0.9)})
		s.NextQuestion(ctx)
		assert.Equal(t, "Hint: "+tutor.FallbackHint, s.Hint(ctx))
	})
}

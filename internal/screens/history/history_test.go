package history

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathquest/internal/router"
	"github.com/abhisek/mathquest/internal/store"
)

type fakeLister struct {
	rows []store.AnswerEvent
	err  error
	opts store.QueryOpts
}

func (f *fakeLister) ListAnswers(_ context.Context, opts store.QueryOpts) ([]store.AnswerEvent, error) {
	f.opts = opts
	return f.rows, f.err
}

func answer(text, given, want string, correct bool) store.AnswerEvent {
	return store.AnswerEvent{
		Timestamp: time.Date(2026, 10, 1, 9, 30, 0, 0, time.UTC),
		AnswerEventData: store.AnswerEventData{
			Difficulty:    "easy",
			QuestionType:  "addition",
			QuestionText:  text,
			CorrectAnswer: want,
			LearnerAnswer: given,
			Correct:       correct,
			TimeMs:        4200,
		},
	}
}

func loaded(t *testing.T, lister *fakeLister) *HistoryScreen {
	t.Helper()
	s := New(context.Background(), lister)
	s.Update(s.Init()())
	require.True(t, s.loaded)
	return s
}

func TestLoad_UsesPageSize(t *testing.T) {
	lister := &fakeLister{}
	loaded(t, lister)
	assert.Equal(t, pageSize, lister.opts.Limit)
}

func TestView_States(t *testing.T) {
	assert.Contains(t, New(context.Background(), &fakeLister{}).View(80, 20), "Loading")
	assert.Contains(t, loaded(t, &fakeLister{}).View(80, 20), "No answers yet")
	assert.Contains(t, loaded(t, &fakeLister{err: errors.New("db gone")}).View(80, 20), "db gone")
}

func TestView_RowsAndDetails(t *testing.T) {
	s := loaded(t, &fakeLister{rows: []store.AnswerEvent{
		answer("3 + 4 = ?", "7", "7", true),
		answer("9 - 2 = ?", "6", "7", false),
	}})

	view := s.View(100, 20)
	assert.Contains(t, view, "Last 2 answers: 1 right")
	assert.Contains(t, view, "3 + 4 = ?  you said 7")
	assert.Contains(t, view, "✗")
	assert.NotContains(t, view, "4.2s")

	s.Update(tea.KeyPressMsg{Code: 'j', Text: "j"})
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.True(t, s.expanded[1])
	assert.Contains(t, s.View(100, 20), "answer 7 · addition · easy · 4.2s")
}

func TestNavigationBounds(t *testing.T) {
	s := loaded(t, &fakeLister{rows: []store.AnswerEvent{
		answer("1 + 1 = ?", "2", "2", true),
		answer("1 + 2 = ?", "3", "3", true),
	}})

	s.Update(tea.KeyPressMsg{Code: 'k', Text: "k"})
	assert.Equal(t, 0, s.selected)
	for range 5 {
		s.Update(tea.KeyPressMsg{Code: 'j', Text: "j"})
	}
	assert.Equal(t, 1, s.selected)
}

func TestVisibleRows_ScrollsToSelection(t *testing.T) {
	var rows []store.AnswerEvent
	for i := range 20 {
		rows = append(rows, answer(fmt.Sprintf("%d + 1 = ?", i), "0", "0", true))
	}
	s := loaded(t, &fakeLister{rows: rows})

	window, start := s.visibleRows(10)
	assert.Len(t, window, 6)
	assert.Zero(t, start)

	s.selected = 15
	window, start = s.visibleRows(10)
	assert.Len(t, window, 6)
	assert.Equal(t, 10, start)
	assert.Equal(t, "15 + 1 = ?", window[len(window)-1].QuestionText)
}

func TestEscPops(t *testing.T) {
	s := loaded(t, &fakeLister{})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.Equal(t, router.PopScreenMsg{}, cmd())
}

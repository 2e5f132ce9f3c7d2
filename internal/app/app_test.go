package app

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathquest/internal/router"
	"github.com/abhisek/mathquest/internal/screens/badges"
	"github.com/abhisek/mathquest/internal/session"
	"github.com/abhisek/mathquest/internal/store"
	"github.com/abhisek/mathquest/internal/ui/layout"
)

func newTestModel(t *testing.T) AppModel {
	t.Helper()
	st, err := store.Open("file:app_test?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	s, err := session.New(context.Background(), session.Deps{KV: st.KV()})
	require.NoError(t, err)
	return newAppModel(context.Background(), Options{Session: s})
}

func keys(hints []layout.KeyHint) []string {
	var out []string
	for _, h := range hints {
		out = append(out, h.Key)
	}
	return out
}

func TestCtrlCQuits(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestWindowSizeStored(t *testing.T) {
	m := newTestModel(t)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	am := next.(AppModel)
	assert.Equal(t, 120, am.width)
	assert.Equal(t, 40, am.height)
}

func TestFooterHints(t *testing.T) {
	m := newTestModel(t)

	assert.Equal(t, []string{"↑↓", "Enter", "Ctrl+C"}, keys(m.footerHints(m.router.Active())))

	m.router.Update(router.PushScreenMsg{Screen: badges.New(context.Background(), m.sess)})
	require.Equal(t, 2, m.router.Depth())
	assert.Equal(t, []string{"↑↓", "P", "Esc", "Ctrl+C"}, keys(m.footerHints(m.router.Active())))
}

func TestRun_RequiresSession(t *testing.T) {
	assert.Error(t, Run(context.Background(), Options{}))
}

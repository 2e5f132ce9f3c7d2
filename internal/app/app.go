package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathquest/internal/router"
	"github.com/abhisek/mathquest/internal/screen"
	"github.com/abhisek/mathquest/internal/screens/history"
	"github.com/abhisek/mathquest/internal/screens/home"
	"github.com/abhisek/mathquest/internal/session"
	"github.com/abhisek/mathquest/internal/ui/layout"
)

// Options holds the dependencies the TUI needs.
type Options struct {
	Session *session.Session

	// Answers backs the answer history screen. Optional.
	Answers history.AnswerLister
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	sess   *session.Session
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(ctx context.Context, opts Options) AppModel {
	return AppModel{
		router: router.New(home.New(ctx, opts.Session, opts.Answers)),
		sess:   opts.Session,
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	st := m.sess.State()
	header := layout.RenderHeader(title, layout.Scoreboard{
		Score:   st.Score,
		Correct: st.Correct,
		Badges:  len(st.Badges),
	}, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	quit := layout.KeyHint{Key: "Ctrl+C", Description: "Quit"}
	if p, ok := active.(screen.KeyHintProvider); ok {
		return append(p.KeyHints(), quit)
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}, quit}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		quit,
	}
}

// Run starts the Bubble Tea program and blocks until the player quits.
func Run(ctx context.Context, opts Options) error {
	if opts.Session == nil {
		return errors.New("app: session is required")
	}
	p := tea.NewProgram(newAppModel(ctx, opts), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}

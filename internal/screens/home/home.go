package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathquest/internal/problemgen"
	"github.com/abhisek/mathquest/internal/router"
	"github.com/abhisek/mathquest/internal/screen"
	"github.com/abhisek/mathquest/internal/screens/badges"
	"github.com/abhisek/mathquest/internal/screens/history"
	sessionscreen "github.com/abhisek/mathquest/internal/screens/session"
	"github.com/abhisek/mathquest/internal/session"
	"github.com/abhisek/mathquest/internal/ui/components"
	"github.com/abhisek/mathquest/internal/ui/layout"
)

// tallMenuHeight is the content height needed for bordered menu buttons.
const tallMenuHeight = 40

// HomeScreen is the main menu: title, mascot, stats and the game menu.
type HomeScreen struct {
	sess  *session.Session
	menu  components.Menu
	state session.State
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates the home screen for s. The answer history entry is shown
// only when answers is non-nil.
func New(ctx context.Context, s *session.Session, answers history.AnswerLister) *HomeScreen {
	h := &HomeScreen{sess: s, state: s.State()}

	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: build()} }
		}
	}
	newGame := func(d problemgen.Difficulty) func() tea.Cmd {
		return push(func() screen.Screen { return sessionscreen.NewGame(ctx, s, d) })
	}

	items := []components.MenuItem{
		{Label: "CONTINUE", Hotkey: "c", Action: push(func() screen.Screen { return sessionscreen.New(ctx, s) })},
		{Label: "NEW GAME: EASY", Hotkey: "1", Action: newGame(problemgen.Easy)},
		{Label: "NEW GAME: MEDIUM", Hotkey: "2", Action: newGame(problemgen.Medium)},
		{Label: "NEW GAME: HARD", Hotkey: "3", Action: newGame(problemgen.Hard)},
		{Label: "BADGES", Hotkey: "b", Action: push(func() screen.Screen { return badges.New(ctx, s) })},
	}
	if answers != nil {
		items = append(items, components.MenuItem{
			Label: "MY ANSWERS", Hotkey: "h",
			Action: push(func() screen.Screen { return history.New(ctx, answers) }),
		})
	}
	items = append(items, components.MenuItem{Label: "QUIT", Hotkey: "q", Action: func() tea.Cmd { return tea.Quit }})
	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

// Resume reloads the stats after a game or the badges screen.
func (h *HomeScreen) Resume() tea.Cmd {
	h.state = h.sess.State()
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back the header and footer.
	compact := layout.IsCompact(width, height+6)
	cw := components.ContentWidth(width)

	sections := []string{renderTitle(cw, compact)}
	if !compact {
		sections = append(sections, renderMascotBox(mascotFor(h.state, h.sess.AIEnabled()), cw))
	}
	sections = append(sections,
		renderStatsBar(h.state, cw, compact),
		components.Centered(h.menu.View(compact || height < tallMenuHeight), cw),
	)
	if !h.sess.AIEnabled() {
		sections = append(sections, renderAIBanner(cw))
	}

	sep := "\n\n"
	if compact {
		sep = "\n"
	}
	return components.CabinetFrame(strings.Join(sections, sep), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

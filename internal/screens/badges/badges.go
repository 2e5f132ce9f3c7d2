package badges

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathquest/internal/badges"
	"github.com/abhisek/mathquest/internal/router"
	"github.com/abhisek/mathquest/internal/screen"
	sessionscreen "github.com/abhisek/mathquest/internal/screens/session"
	"github.com/abhisek/mathquest/internal/session"
	"github.com/abhisek/mathquest/internal/ui/components"
	"github.com/abhisek/mathquest/internal/ui/layout"
	"github.com/abhisek/mathquest/internal/ui/theme"
)

type stateLoadedMsg struct {
	State session.State
}

// BadgesScreen shows the badge catalog, which badges the player owns and
// how far away the next one is.
type BadgesScreen struct {
	ctx      context.Context
	sess     *session.Session
	catalog  []badges.Badge
	state    session.State
	selected int
	loaded   bool
}

var _ screen.Screen = (*BadgesScreen)(nil)
var _ screen.KeyHintProvider = (*BadgesScreen)(nil)

// New creates a new BadgesScreen.
func New(ctx context.Context, s *session.Session) *BadgesScreen {
	return &BadgesScreen{
		ctx:     ctx,
		sess:    s,
		catalog: badges.All(),
	}
}

func (s *BadgesScreen) Init() tea.Cmd {
	sess := s.sess
	return func() tea.Msg {
		return stateLoadedMsg{State: sess.State()}
	}
}

func (s *BadgesScreen) Title() string {
	return "Badges"
}

func (s *BadgesScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Browse"},
		{Key: "P", Description: "Play"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *BadgesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case stateLoadedMsg:
		s.state = msg.State
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "p":
			quiz := sessionscreen.New(s.ctx, s.sess)
			return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: quiz} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.catalog)-1 {
				s.selected++
			}
		}
	}
	return s, nil
}

func (s *BadgesScreen) View(width, height int) string {
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Opening the badge box...")
	}

	cw := components.ContentWidth(width)
	var b strings.Builder

	b.WriteString(components.Centered(theme.Body.Render(
		fmt.Sprintf("You have %d of %d badges", len(s.state.Badges), len(s.catalog))), cw))
	b.WriteString("\n\n")

	for i, badge := range s.catalog {
		b.WriteString(s.renderRow(i, badge, cw))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(s.renderNext(cw))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

func (s *BadgesScreen) renderRow(i int, badge badges.Badge, cw int) string {
	owned := badges.Has(s.state.Badges, badge.Name)

	mark, style := "○", theme.Locked
	if owned {
		mark, style = "●", theme.Earned
	}
	icon := "🔒"
	if owned {
		icon = badge.Icon
	}

	prefix := "  "
	if i == s.selected {
		prefix = "▸ "
		if !owned {
			style = theme.Selected
		}
	}

	right := fmt.Sprintf("%3d right", badge.Milestone)
	left := fmt.Sprintf("%s%s %s  %s", prefix, mark, icon, badge.Name)
	gap := max(cw-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return style.Render(left + strings.Repeat(" ", gap) + right)
}

// renderNext draws progress toward the next badge, measured from the
// previous milestone.
func (s *BadgesScreen) renderNext(cw int) string {
	next, ok := badges.Next(s.state.Correct)
	if !ok {
		return components.Centered(theme.Earned.Render("You earned every badge! 🏆"), cw)
	}

	bar := components.NewProgressBar(next.Icon+" "+next.Name, badges.Progress(s.state.Correct), cw)
	bar.Caption = fmt.Sprintf("%d / %d", s.state.Correct, next.Milestone)
	return bar.View()
}

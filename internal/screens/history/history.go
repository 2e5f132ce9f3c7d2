package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathquest/internal/router"
	"github.com/abhisek/mathquest/internal/screen"
	"github.com/abhisek/mathquest/internal/store"
	"github.com/abhisek/mathquest/internal/ui/components"
	"github.com/abhisek/mathquest/internal/ui/layout"
	"github.com/abhisek/mathquest/internal/ui/theme"
)

// pageSize is how many recent answers the screen loads.
const pageSize = 50

// AnswerLister reads recorded answers, newest first.
type AnswerLister interface {
	ListAnswers(ctx context.Context, opts store.QueryOpts) ([]store.AnswerEvent, error)
}

type historyLoadedMsg struct {
	Answers []store.AnswerEvent
	Err     error
}

// HistoryScreen lists the player's recent answers. Enter shows the
// details of the selected one.
type HistoryScreen struct {
	ctx      context.Context
	answers  AnswerLister
	rows     []store.AnswerEvent
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(ctx context.Context, answers AnswerLister) *HistoryScreen {
	return &HistoryScreen{
		ctx:      ctx,
		answers:  answers,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	ctx, answers := s.ctx, s.answers
	return func() tea.Msg {
		rows, err := answers.ListAnswers(ctx, store.QueryOpts{Limit: pageSize})
		return historyLoadedMsg{Answers: rows, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "My Answers"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.rows = msg.Answers
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.rows)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	switch {
	case s.errMsg != "":
		return center.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	case !s.loaded:
		return center.Foreground(theme.TextDim).Render("\n\n  Loading your answers...")
	case len(s.rows) == 0:
		return center.Foreground(theme.TextDim).Italic(true).Render("\n\n  No answers yet. Let's play!")
	}

	cw := components.ContentWidth(width)
	lines := []string{s.renderSummary(), ""}
	rows, start := s.visibleRows(height)
	for j, row := range rows {
		i := start + j
		lines = append(lines, s.renderRow(i, row, cw))
		if s.expanded[i] {
			lines = append(lines, theme.Hint.Render(detailLine(row)))
		}
	}

	var b strings.Builder
	b.WriteString("\n")
	for _, l := range lines {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, l))
		b.WriteString("\n")
	}
	return b.String()
}

// visibleRows returns the window of rows that fits height, scrolled to
// keep the selected row on screen, and the index of its first row.
func (s *HistoryScreen) visibleRows(height int) ([]store.AnswerEvent, int) {
	limit := height - 4
	if limit < 1 || len(s.rows) <= limit {
		return s.rows, 0
	}
	start := 0
	if s.selected >= limit {
		start = s.selected - limit + 1
	}
	return s.rows[start : start+limit], start
}

func (s *HistoryScreen) renderSummary() string {
	right := 0
	for _, row := range s.rows {
		if row.Correct {
			right++
		}
	}
	return theme.Subtitle.Render(fmt.Sprintf("Last %d answers: %d right", len(s.rows), right))
}

func (s *HistoryScreen) renderRow(i int, row store.AnswerEvent, cw int) string {
	mark := theme.Correct.Render("✓")
	if !row.Correct {
		mark = theme.Incorrect.Render("✗")
	}

	prefix := "  "
	style := theme.Unselected
	if i == s.selected {
		prefix = "▸ "
		style = theme.Selected
	}

	text := row.QuestionText
	if limit := cw - 20; limit > 8 && len([]rune(text)) > limit {
		text = string([]rune(text)[:limit-1]) + "…"
	}
	return prefix + mark + " " + style.Render(fmt.Sprintf("%s  you said %s", text, row.LearnerAnswer))
}

func detailLine(row store.AnswerEvent) string {
	return fmt.Sprintf("    answer %s · %s · %s · %.1fs · %s",
		row.CorrectAnswer,
		row.QuestionType,
		row.Difficulty,
		float64(row.TimeMs)/1000,
		row.Timestamp.Local().Format("Jan 02 15:04"))
}

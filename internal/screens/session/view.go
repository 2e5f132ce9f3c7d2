package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathquest/internal/ui/components"
	"github.com/abhisek/mathquest/internal/ui/theme"
)

// Mood selects the tutor's face.
type Mood int

const (
	MoodHappy Mood = iota
	MoodThinking
	MoodSad
	MoodIdea
)

// Icon returns the emoji for the mood.
func (m Mood) Icon() string {
	switch m {
	case MoodThinking:
		return "🤔"
	case MoodSad:
		return "😟"
	case MoodIdea:
		return "💡"
	default:
		return "😊"
	}
}

const (
	tutorName          = "Math Buddy"
	emptyAnswerMessage = "Type your answer first, then press Enter!"
	saveFailedMessage  = "(I couldn't save your progress.)"
)

func (s *SessionScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}

	cw := components.ContentWidth(width)
	sections := []string{
		s.renderInfoLine(cw),
		s.renderQuestionCard(cw),
		s.renderTutorPanel(cw),
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		strings.Join(sections, "\n\n"))
}

func (s *SessionScreen) renderInfoLine(cw int) string {
	st := s.sess.State()
	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("Level: " + levelName(st.Difficulty))

	right := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s %d  %s %d",
			lipgloss.NewStyle().Foreground(theme.Success).Render("✔"), st.Correct,
			lipgloss.NewStyle().Foreground(theme.Error).Render("✘"), st.Incorrect))

	gap := max(cw-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

func (s *SessionScreen) renderQuestionCard(cw int) string {
	if s.phase == phaseLoading {
		return components.ArcadeCard(
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Getting a question ready..."), cw)
	}

	var b strings.Builder
	b.WriteString(theme.Question.Width(cw - 6).Align(lipgloss.Center).Render(s.question.Text))
	b.WriteString("\n\n")

	if s.question.HasOptions() {
		b.WriteString(s.choice.View())
	} else {
		b.WriteString(s.input.View())
	}

	if s.result != nil {
		b.WriteString("\n\n")
		b.WriteString(s.renderResult())
	}

	return components.ArcadeCard(b.String(), cw)
}

func (s *SessionScreen) renderResult() string {
	var lines []string
	if s.result.Correct {
		lines = append(lines, theme.Correct.Render("Correct! +10"))
	} else {
		lines = append(lines,
			theme.Incorrect.Render("Not quite."),
			theme.Body.Render("The answer is "+s.result.Expected+"."))
	}
	if b := s.result.Badge; b != nil {
		lines = append(lines, theme.Earned.Render("New badge: "+b.Label()))
	}
	return strings.Join(lines, "\n")
}

func (s *SessionScreen) renderTutorPanel(cw int) string {
	icon := s.mood.Icon()
	if s.busy {
		icon += " " + s.spinner.View()
	}

	name := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true).Render(tutorName)
	msg := theme.Body.Width(cw - 12).Render(s.message)

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().PaddingRight(2).Render(icon),
		name+"\n"+msg,
	)
	return theme.TutorPanel.Width(cw).Render(body)
}

func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\nOh no! Something went wrong: %s\n\nPress any key to go back.", errMsg))
}

package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathquest/internal/ui/theme"
)

var choiceLabels = []string{"A", "B", "C", "D", "E", "F"}

// MultiChoice lets the player pick one of a question's options with the
// arrow keys or the option letter. It only tracks the cursor; grading is
// done by the caller with the chosen option text.
type MultiChoice struct {
	Options  []string
	Selected int

	// Locked freezes the cursor and colors the options after grading.
	Locked bool
	Answer string
}

// NewMultiChoice creates a selector over options.
func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{Options: options}
}

// Update moves the cursor. Pressing an option letter selects it and
// reports true so the caller can submit right away.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, bool) {
	if m.Locked {
		return m, false
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Options) == 0 {
		return m, false
	}

	key := kmsg.String()
	switch key {
	case "up", "left", "k":
		if m.Selected > 0 {
			m.Selected--
		}
		return m, false
	case "down", "right", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
		return m, false
	}

	for i := range m.Options {
		if i < len(choiceLabels) && strings.EqualFold(key, choiceLabels[i]) {
			m.Selected = i
			return m, true
		}
	}
	return m, false
}

// Value returns the option under the cursor.
func (m MultiChoice) Value() string {
	if m.Selected < 0 || m.Selected >= len(m.Options) {
		return ""
	}
	return m.Options[m.Selected]
}

// Lock freezes the selector and remembers the correct option for display.
func (m *MultiChoice) Lock(answer string) {
	m.Locked = true
	m.Answer = answer
}

// View renders the options on one line each.
func (m MultiChoice) View() string {
	lines := make([]string, 0, len(m.Options))
	for i, opt := range m.Options {
		label := "?"
		if i < len(choiceLabels) {
			label = choiceLabels[i]
		}
		prefix := "  "
		if i == m.Selected {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, label, opt)
		lines = append(lines, m.optionStyle(i, opt).Render(line))
	}
	return strings.Join(lines, "\n")
}

func (m MultiChoice) optionStyle(i int, opt string) lipgloss.Style {
	switch {
	case m.Locked && opt == m.Answer:
		return theme.Correct
	case m.Locked && i == m.Selected:
		return theme.Incorrect
	case m.Locked:
		return lipgloss.NewStyle().Foreground(theme.TextDim)
	case i == m.Selected:
		return theme.Selected
	default:
		return theme.Unselected
	}
}

package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathquest/internal/ui/theme"
)

// AnswerInput wraps bubbles/textinput for typed answers. Numeric inputs
// drop every printable key that is not a digit or a minus sign.
type AnswerInput struct {
	Model   textinput.Model
	Numeric bool

	graded  bool
	correct bool
}

// NewAnswerInput creates a focused answer input.
func NewAnswerInput(placeholder string, numeric bool, limit int) AnswerInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	ti.CharLimit = limit
	ti.Focus()

	return AnswerInput{Model: ti, Numeric: numeric}
}

// Init starts the cursor blinking.
func (a AnswerInput) Init() tea.Cmd {
	return a.Model.Focus()
}

// Update forwards key presses to the text input unless the answer has
// been graded.
func (a AnswerInput) Update(msg tea.Msg) (AnswerInput, tea.Cmd) {
	if a.graded {
		return a, nil
	}
	if kmsg, ok := msg.(tea.KeyMsg); ok && a.Numeric {
		if key := kmsg.String(); len(key) == 1 && !isNumericKey(key[0]) {
			return a, nil
		}
	}

	var cmd tea.Cmd
	a.Model, cmd = a.Model.Update(msg)
	return a, cmd
}

func isNumericKey(c byte) bool {
	return (c >= '0' && c <= '9') || c == '-'
}

// View renders the input with a check or cross once graded.
func (a AnswerInput) View() string {
	view := a.Model.View()
	if a.graded {
		if a.correct {
			view += " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		} else {
			view += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		}
	}
	return view
}

// Value returns the typed text.
func (a AnswerInput) Value() string {
	return a.Model.Value()
}

// Grade freezes the input and shows the outcome mark.
func (a *AnswerInput) Grade(correct bool) {
	a.graded = true
	a.correct = correct
	a.Model.Blur()
}

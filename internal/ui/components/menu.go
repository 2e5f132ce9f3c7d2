package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathquest/internal/ui/theme"
)

// ButtonWidth is the fixed width of a menu button.
const ButtonWidth = 24

// MenuItem is one entry of a vertical menu. Hotkey, when set, selects and
// activates the item in a single key press.
type MenuItem struct {
	Label  string
	Hotkey string
	Action func() tea.Cmd
}

// Menu is a vertical list of arcade-style buttons.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a menu with the first item selected.
func NewMenu(items []MenuItem) Menu {
	return Menu{Items: items}
}

// Update handles arrow keys, Enter and hotkeys. Navigation wraps around.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		m.Selected = (m.Selected - 1 + len(m.Items)) % len(m.Items)
		return m, nil
	case "down", "j", "tab":
		m.Selected = (m.Selected + 1) % len(m.Items)
		return m, nil
	case "enter":
		return m, m.activate(m.Selected)
	}

	for i, item := range m.Items {
		if item.Hotkey != "" && item.Hotkey == key {
			m.Selected = i
			return m, m.activate(i)
		}
	}
	return m, nil
}

func (m Menu) activate(i int) tea.Cmd {
	if i < 0 || i >= len(m.Items) || m.Items[i].Action == nil {
		return nil
	}
	return m.Items[i].Action()
}

// View renders every item as a bordered button, or as plain lines when
// compact is set.
func (m Menu) View(compact bool) string {
	lines := make([]string, 0, len(m.Items))
	for i, item := range m.Items {
		label := item.Label
		if item.Hotkey != "" {
			label = "[" + item.Hotkey + "] " + label
		}
		if compact {
			lines = append(lines, compactMenuLine(label, i == m.Selected))
		} else {
			lines = append(lines, ArcadeButton(label, i == m.Selected, ButtonWidth))
		}
	}
	return strings.Join(lines, "\n")
}

func compactMenuLine(label string, selected bool) string {
	if selected {
		return lipgloss.NewStyle().
			Foreground(theme.BgDark).
			Background(theme.ArcadeYellow).
			Bold(true).
			Render(" ▸ " + label + " ")
	}
	return lipgloss.NewStyle().
		Foreground(theme.Text).
		Render("   " + label)
}

package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathquest/internal/ui/theme"
)

// ProgressBar is a horizontal bar with an optional label and caption.
type ProgressBar struct {
	Label   string
	Percent float64
	Caption string
	Width   int
}

// NewProgressBar creates a progress bar. A fraction outside [0,1] is
// clamped when rendered.
func NewProgressBar(label string, percent float64, width int) ProgressBar {
	return ProgressBar{
		Label:   label,
		Percent: percent,
		Width:   width,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var b strings.Builder

	if p.Label != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label))
		b.WriteString("  ")
	}

	caption := p.Caption
	if caption == "" {
		caption = fmt.Sprintf("%d%%", int(clamp01(p.Percent)*100))
	}
	caption = "  " + caption

	barWidth := max(p.Width-lipgloss.Width(b.String())-lipgloss.Width(caption), 4)
	filled := int(float64(barWidth) * clamp01(p.Percent))

	b.WriteString(theme.ProgressFilled.Render(strings.Repeat(" ", filled)))
	b.WriteString(theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled)))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(caption))

	return b.String()
}

func clamp01(f float64) float64 {
	return min(max(f, 0), 1)
}

package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathquest/internal/session"
	"github.com/abhisek/mathquest/internal/ui/components"
	"github.com/abhisek/mathquest/internal/ui/theme"
)

const arcadeTitleFull = `█▀▄▀█ ▄▀█ ▀█▀ █ █   █▀█ █ █ █▀▀ █▀ ▀█▀
█ ▀ █ █▀█  █  █▀█   ▀▀█ █▄█ ██▄ ▄█  █ `

const arcadeTitleCompact = "M A T H · Q U E S T"

func renderTitle(cw int, compact bool) string {
	title := arcadeTitleFull
	if compact {
		title = arcadeTitleCompact
	}
	return components.Centered(theme.Title.Render(title), cw)
}

// renderStatsBar renders score, counts and badges in a double-bordered box.
func renderStatsBar(st session.State, cw int, compact bool) string {
	scoreStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	rightStyle := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	wrongStyle := lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
	badgeStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)

	format := "%s  %s  %s  %s"
	labels := [4]string{"★ %d POINTS", "✔ %d RIGHT", "✘ %d TRY AGAIN", "🏅 %d BADGES"}
	if compact {
		format = "%s %s %s %s"
		labels = [4]string{"★%d", "✔%d", "✘%d", "🏅%d"}
	}

	stats := fmt.Sprintf(format,
		scoreStyle.Render(fmt.Sprintf(labels[0], st.Score)),
		rightStyle.Render(fmt.Sprintf(labels[1], st.Correct)),
		wrongStyle.Render(fmt.Sprintf(labels[2], st.Incorrect)),
		badgeStyle.Render(fmt.Sprintf(labels[3], len(st.Badges))),
	)

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// renderAIBanner tells grown-ups how to turn on story problems and hints.
func renderAIBanner(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("Story problems and hints are off. Set GEMINI_API_KEY to turn them on.")
}

func renderMascotBox(variant MascotVariant, cw int) string {
	return components.Centered(RenderMascot(variant), cw)
}

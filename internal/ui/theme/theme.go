package theme

import (
	"charm.land/lipgloss/v2"
)

// Palette: bright primaries on a dark background, readable for young kids.
var (
	Primary      = lipgloss.Color("#7C3AED") // Purple
	Secondary    = lipgloss.Color("#0EA5E9") // Sky
	Accent       = lipgloss.Color("#F97316") // Orange
	Success      = lipgloss.Color("#22C55E") // Green
	Error        = lipgloss.Color("#F43F5E") // Rose
	Text         = lipgloss.Color("#F8FAFC") // White
	TextDim      = lipgloss.Color("#94A3B8") // Slate
	BgDark       = lipgloss.Color("#0F172A") // Navy
	BgCard       = lipgloss.Color("#1E293B")
	Border       = lipgloss.Color("#334155")
	ArcadeYellow = lipgloss.Color("#FACC15")
	ArcadeCyan   = lipgloss.Color("#22D3EE")
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(ArcadeYellow).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Question = lipgloss.NewStyle().
			Foreground(Text).
			Bold(true)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Earned = lipgloss.NewStyle().
		Foreground(ArcadeYellow).
		Bold(true)

	Locked = lipgloss.NewStyle().
		Foreground(TextDim)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)

	TutorPanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ArcadeCyan).
			Padding(0, 2)
)

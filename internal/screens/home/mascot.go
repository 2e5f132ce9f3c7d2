package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathquest/internal/session"
	"github.com/abhisek/mathquest/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota
	MascotCelebrating               // gold, star eyes
	MascotSleepy                    // dim, AI features off
)

const mascotIdle = `┌─────┐
│ ◉ ◉ │
│  ▽  │
│ +−= │
└─────┘`

const mascotCelebrating = `┌─────┐
│ ★ ★ │
│  ▿  │
│ +−= │
└─╥═╥─┘
  ╚═╝`

const mascotSleepy = `┌─────┐
│ − − │ z
│  ▽  │
│ +−= │
└─────┘`

// mascotFor picks the variant for the player's progress. Badges win over
// the sleepy face.
func mascotFor(st session.State, aiEnabled bool) MascotVariant {
	switch {
	case len(st.Badges) > 0:
		return MascotCelebrating
	case !aiEnabled:
		return MascotSleepy
	default:
		return MascotIdle
	}
}

// RenderMascot returns the mascot art for the given variant.
func RenderMascot(v MascotVariant) string {
	art, fg := mascotIdle, theme.Primary

	switch v {
	case MascotCelebrating:
		art, fg = mascotCelebrating, theme.ArcadeYellow
	case MascotSleepy:
		art, fg = mascotSleepy, theme.TextDim
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}

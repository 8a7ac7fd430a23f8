package home

import (
	"charm.land/lipgloss/v2"

	"github.com/quizling/quizling/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle     MascotVariant = iota // Default indigo quizmaster
	MascotCheering                      // Gold with star eyes, shown for a strong record
)

const mascotIdle = `┌─────┐
│ ◉ ◉ │
│  ▽  │
│ ?¿! │
└─────┘`

const mascotCheering = `┌─────┐
│ ★ ★ │
│  ▿  │
│ ?¿! │
└─╥═╥─┘
  ╚═╝`

// RenderMascot returns the mascot ASCII art for the given variant.
func RenderMascot(variant MascotVariant) string {
	art := mascotIdle
	fg := theme.Primary

	if variant == MascotCheering {
		art = mascotCheering
		fg = theme.Gold
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}

package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/quizling/quizling/internal/ui/layout"
)

// Screen is the interface every application screen implements. Screens
// are stacked by the router; only the top screen receives messages.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns the updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface screens implement to put
// their own key hints in the footer instead of the defaults.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

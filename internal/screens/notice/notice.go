package notice

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/quizling/quizling/internal/router"
	"github.com/quizling/quizling/internal/screen"
	"github.com/quizling/quizling/internal/ui/layout"
	"github.com/quizling/quizling/internal/ui/theme"
)

// NoticeScreen shows a short informational message. Any key returns to
// the previous screen.
type NoticeScreen struct {
	title string
	lines []string
}

var _ screen.Screen = (*NoticeScreen)(nil)
var _ screen.KeyHintProvider = (*NoticeScreen)(nil)

// New creates a notice screen with the given title and message lines.
func New(title string, lines ...string) *NoticeScreen {
	return &NoticeScreen{title: title, lines: lines}
}

func (n *NoticeScreen) Init() tea.Cmd {
	return nil
}

func (n *NoticeScreen) Title() string {
	return n.title
}

func (n *NoticeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "any key", Description: "Back"},
	}
}

func (n *NoticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		return n, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return n, nil
}

func (n *NoticeScreen) View(width, height int) string {
	body := strings.Join(n.lines, "\n")

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Render(body)
}

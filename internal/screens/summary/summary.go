package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/quizling/quizling/internal/router"
	"github.com/quizling/quizling/internal/screen"
	"github.com/quizling/quizling/internal/session"
	"github.com/quizling/quizling/internal/ui/layout"
	"github.com/quizling/quizling/internal/ui/theme"
)

// SummaryScreen displays the end-of-quiz summary.
type SummaryScreen struct {
	summary *session.Summary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary *session.Summary) *SummaryScreen {
	return &SummaryScreen{summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Quiz Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			// The quiz screen replaced itself with this one, so a
			// single pop lands back on home.
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}

	var b strings.Builder

	// Title.
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Quiz complete!"))
	b.WriteString("\n\n")

	// Duration.
	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Duration: %d:%02d", mins, secs)))
	b.WriteString("\n\n")

	// Stats line.
	statsLine := fmt.Sprintf("Questions: %d        Correct: %d        Accuracy: %.0f%%",
		sum.TotalQuestions, sum.TotalCorrect, sum.Accuracy)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(statsLine))
	b.WriteString("\n")

	// Score and final level.
	scoreLine := lipgloss.NewStyle().Foreground(theme.Gold).Bold(true).
		Render(fmt.Sprintf("★ %d points", sum.Score)) +
		lipgloss.NewStyle().Foreground(theme.TextDim).
			Render("   finished at ") +
		lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
			Render(fmt.Sprintf("LVL %s", strings.ToUpper(sum.FinalLevel)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, scoreLine))
	b.WriteString("\n")

	// Level changes.
	if sum.Promotions > 0 || sum.Demotions > 0 {
		changesLine := lipgloss.NewStyle().Foreground(theme.TextDim).Render("Level changes: ") +
			lipgloss.NewStyle().Foreground(theme.Gold).Render(fmt.Sprintf("▲ %d", sum.Promotions)) +
			"  " +
			lipgloss.NewStyle().Foreground(theme.Secondary).Render(fmt.Sprintf("▼ %d", sum.Demotions))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, changesLine))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Per-level breakdown.
	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Levels")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	for _, level := range sum.Levels {
		totals := sum.PerLevel[level]
		if totals.Answered == 0 {
			continue
		}
		accuracy := 100 * float64(totals.Correct) / float64(totals.Answered)
		line := fmt.Sprintf("  %-8s  %d/%d correct    %.0f%%",
			strings.ToUpper(level), totals.Correct, totals.Answered, accuracy)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if level == sum.FinalLevel {
			style = style.Foreground(theme.Secondary)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

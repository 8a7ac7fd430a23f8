package stats

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/quizling/quizling/internal/progress"
	"github.com/quizling/quizling/internal/router"
	"github.com/quizling/quizling/internal/screen"
	"github.com/quizling/quizling/internal/store"
	"github.com/quizling/quizling/internal/ui/components"
	"github.com/quizling/quizling/internal/ui/layout"
	"github.com/quizling/quizling/internal/ui/theme"
)

// recentAnswerCount is how many recent answers the screen shows.
const recentAnswerCount = 8

type statsLoadedMsg struct {
	Breakdown map[string]store.LevelTotals
	Recent    []store.AnswerEvent
	Err       error
}

// StatsScreen displays lifetime progress: headline totals, a per-level
// accuracy breakdown from the event log, and the most recent answers.
type StatsScreen struct {
	progress  *progress.Service
	events    store.EventRepo
	breakdown map[string]store.LevelTotals
	recent    []store.AnswerEvent
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)

// New creates a new StatsScreen.
func New(progressSvc *progress.Service, events store.EventRepo) *StatsScreen {
	return &StatsScreen{
		progress: progressSvc,
		events:   events,
	}
}

func (s *StatsScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		breakdown, err := s.events.LevelBreakdown(ctx)
		if err != nil {
			return statsLoadedMsg{Err: err}
		}

		// The recent list is decoration; show the rest without it
		// if the query fails.
		recent, err := s.events.RecentAnswers(ctx, recentAnswerCount)
		if err != nil {
			return statsLoadedMsg{Breakdown: breakdown}
		}

		return statsLoadedMsg{Breakdown: breakdown, Recent: recent}
	}
}

func (s *StatsScreen) Title() string {
	return "Statistics"
}

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.breakdown = msg.Breakdown
			s.recent = msg.Recent
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading statistics...")
	}

	sum := s.progress.Summary()
	if sum.TotalQuestions == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No quizzes yet. Play one from the home screen!")
	}

	var b strings.Builder
	b.WriteString("\n")

	// Headline.
	headline := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("LVL %s", strings.ToUpper(sum.CurrentLevel))) +
		"    " +
		lipgloss.NewStyle().Foreground(theme.Gold).Bold(true).
			Render(fmt.Sprintf("★ %d points", sum.TotalScore))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, headline))
	b.WriteString("\n\n")

	totals := fmt.Sprintf("Questions: %d        Correct: %d        Accuracy: %.0f%%",
		sum.TotalQuestions, sum.TotalCorrect, sum.OverallAccuracy)
	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.Text).
		Render(totals))
	b.WriteString("\n")

	record := fmt.Sprintf("Quizzes played: %d        Best quiz: %.0f%%",
		sum.SessionsPlayed, sum.BestAccuracy)
	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
		Render(record))
	b.WriteString("\n\n")

	// Per-level accuracy, from the answer event log.
	b.WriteString(s.renderBreakdown(width, sum.Levels))

	// Recent answers.
	if len(s.recent) > 0 {
		b.WriteString(s.renderRecent(width))
	}

	return b.String()
}

func (s *StatsScreen) renderBreakdown(width int, levels []string) string {
	var b strings.Builder

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Answers by level")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	barWidth := min(width-20, 44)
	for _, level := range levels {
		totals := s.breakdown[level]

		var percent float64
		if totals.Answered > 0 {
			percent = float64(totals.Correct) / float64(totals.Answered)
		}

		bar := components.NewProgressBar(fmt.Sprintf("%-8s", strings.ToUpper(level)),
			percent, true, barWidth)
		line := bar.View() + lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("  (%d/%d)", totals.Correct, totals.Answered))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	return b.String()
}

func (s *StatsScreen) renderRecent(width int) string {
	var b strings.Builder

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Recent answers")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	for _, ev := range s.recent {
		mark := theme.Correct.Render("✓")
		if !ev.Correct {
			mark = theme.Incorrect.Render("✗")
		}
		line := fmt.Sprintf("%s %s  %s", mark,
			truncate(ev.QuestionText, 46),
			lipgloss.NewStyle().Foreground(theme.TextDim).
				Render(strings.ToUpper(ev.Level)))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}

	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

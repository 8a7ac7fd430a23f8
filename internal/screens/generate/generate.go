package generate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/quizling/quizling/internal/question"
	"github.com/quizling/quizling/internal/quizgen"
	"github.com/quizling/quizling/internal/router"
	"github.com/quizling/quizling/internal/screen"
	"github.com/quizling/quizling/internal/ui/components"
	"github.com/quizling/quizling/internal/ui/layout"
	"github.com/quizling/quizling/internal/ui/theme"
)

const (
	defaultBatch = 5
	maxBatch     = 20

	// maxFailures aborts a run after this many rejected generations.
	maxFailures = 3
)

// Form focus order.
const (
	focusLevel = iota
	focusTopic
	focusCount
	focusButton
	focusFields
)

type genState int

const (
	stateForm genState = iota
	stateRunning
	stateDone
)

// generatedMsg carries one finished generation attempt.
type generatedMsg struct {
	Question *question.Question
	Err      error
}

// GenerateScreen drives LLM question generation: a small form to pick
// level, topic and batch size, then a progress view while questions
// are generated and added to the bank one by one.
type GenerateScreen struct {
	generator quizgen.Generator
	bank      *question.Bank

	levels   []string
	levelIdx int
	topic    components.TextInput
	count    components.TextInput
	focus    int

	state     genState
	target    int
	added     []string
	failures  int
	lastErr   string
	cancelled bool
}

var _ screen.Screen = (*GenerateScreen)(nil)
var _ screen.KeyHintProvider = (*GenerateScreen)(nil)

// New creates a generate screen backed by the given generator and bank.
func New(generator quizgen.Generator, bank *question.Bank) *GenerateScreen {
	topic := components.NewTextInput("general knowledge", false, 40)
	topic.Blur()

	count := components.NewTextInput(fmt.Sprintf("%d", defaultBatch), true, 2)
	count.Blur()

	return &GenerateScreen{
		generator: generator,
		bank:      bank,
		levels:    bank.Levels(),
		topic:     topic,
		count:     count,
	}
}

func (s *GenerateScreen) Init() tea.Cmd {
	return nil
}

func (s *GenerateScreen) Title() string {
	return "Generate Questions"
}

func (s *GenerateScreen) KeyHints() []layout.KeyHint {
	switch s.state {
	case stateRunning:
		return []layout.KeyHint{
			{Key: "Esc", Description: "Cancel"},
		}
	case stateDone:
		return []layout.KeyHint{
			{Key: "Enter", Description: "New batch"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Generate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *GenerateScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case generatedMsg:
		return s.handleGenerated(msg)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	// Cursor blink and other component messages.
	if s.state == stateForm {
		var cmd tea.Cmd
		switch s.focus {
		case focusTopic:
			s.topic, cmd = s.topic.Update(msg)
		case focusCount:
			s.count, cmd = s.count.Update(msg)
		}
		return s, cmd
	}

	return s, nil
}

func (s *GenerateScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch s.state {
	case stateRunning:
		if key == "esc" {
			s.cancelled = true
		}
		return s, nil

	case stateDone:
		switch key {
		case "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "enter":
			s.resetForm()
			return s, nil
		}
		return s, nil
	}

	// Form state.
	switch key {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }

	case "tab", "down":
		return s, s.moveFocus(1)

	case "shift+tab", "up":
		return s, s.moveFocus(-1)

	case "enter":
		if s.focus == focusButton {
			return s.startRun()
		}
		return s, s.moveFocus(1)
	}

	switch s.focus {
	case focusLevel:
		switch key {
		case "left", "h":
			s.levelIdx = (s.levelIdx + len(s.levels) - 1) % len(s.levels)
		case "right", "l":
			s.levelIdx = (s.levelIdx + 1) % len(s.levels)
		}
		return s, nil

	case focusTopic:
		var cmd tea.Cmd
		s.topic, cmd = s.topic.Update(msg)
		return s, cmd

	case focusCount:
		var cmd tea.Cmd
		s.count, cmd = s.count.Update(msg)
		return s, cmd
	}

	return s, nil
}

// moveFocus shifts form focus by delta and keeps input cursors in sync.
func (s *GenerateScreen) moveFocus(delta int) tea.Cmd {
	s.focus = (s.focus + delta + focusFields) % focusFields

	s.topic.Blur()
	s.count.Blur()
	switch s.focus {
	case focusTopic:
		return s.topic.Focus()
	case focusCount:
		return s.count.Focus()
	}
	return nil
}

// startRun validates the form and kicks off the first generation.
func (s *GenerateScreen) startRun() (screen.Screen, tea.Cmd) {
	target := defaultBatch
	if s.count.Value() != "" {
		n, err := s.count.NumericValue()
		if err != nil || n < 1 {
			s.count.Submit(false)
			return s, nil
		}
		target = n
	}
	if target > maxBatch {
		target = maxBatch
	}

	s.state = stateRunning
	s.target = target
	s.added = nil
	s.failures = 0
	s.lastErr = ""
	s.cancelled = false

	return s, s.generateNext()
}

// resetForm returns to the form for another batch.
func (s *GenerateScreen) resetForm() {
	s.state = stateForm
	s.focus = focusButton
}

func (s *GenerateScreen) handleGenerated(msg generatedMsg) (screen.Screen, tea.Cmd) {
	if s.state != stateRunning {
		return s, nil
	}

	if msg.Err != nil {
		s.failures++
		s.lastErr = msg.Err.Error()
	} else {
		if err := s.bank.Add(*msg.Question); err != nil {
			// A bank write failure will not heal mid-run.
			s.lastErr = err.Error()
			s.state = stateDone
			return s, nil
		}
		s.added = append(s.added, msg.Question.Text)
	}

	if s.cancelled || len(s.added) >= s.target || s.failures >= maxFailures {
		s.state = stateDone
		return s, nil
	}

	return s, s.generateNext()
}

// generateNext produces one question asynchronously. The avoid list is
// built here, on the update path, so the command closure only talks to
// the provider.
func (s *GenerateScreen) generateNext() tea.Cmd {
	level := s.levels[s.levelIdx]

	avoid := make([]string, 0, s.bank.Count(level)+len(s.added))
	for _, q := range s.bank.Questions(level) {
		avoid = append(avoid, q.Text)
	}
	avoid = append(avoid, s.added...)

	input := quizgen.GenerateInput{
		Level:      level,
		Topic:      strings.TrimSpace(s.topic.Value()),
		AvoidTexts: avoid,
	}

	return func() tea.Msg {
		var q *question.Question
		var err error
		for attempt := 0; attempt < 3; attempt++ {
			q, err = s.generator.Generate(context.Background(), input)
			if err == nil {
				break
			}
			var valErr *quizgen.ValidationError
			if errors.As(err, &valErr) && !valErr.Retryable {
				break
			}
		}
		if err != nil {
			return generatedMsg{Err: err}
		}
		return generatedMsg{Question: q}
	}
}

func (s *GenerateScreen) View(width, height int) string {
	switch s.state {
	case stateRunning:
		return s.renderRunning(width)
	case stateDone:
		return s.renderDone(width)
	}
	return s.renderForm(width)
}

func (s *GenerateScreen) renderForm(width int) string {
	var b strings.Builder
	b.WriteString("\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.Primary).Bold(true).
		Render("Fresh questions, straight from the model"))
	b.WriteString("\n\n")

	rows := []string{
		s.renderFormRow("Level", s.renderLevelPicker(), focusLevel),
		s.renderFormRow("Topic", s.topic.View(), focusTopic),
		s.renderFormRow("Count", s.count.View(), focusCount),
	}
	form := strings.Join(rows, "\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, form))
	b.WriteString("\n\n")

	button := components.NewButton("Generate", s.focus == focusButton, nil)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, button.View()))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
		Render(fmt.Sprintf("Topic is optional. Batches are capped at %d questions.", maxBatch)))

	return b.String()
}

func (s *GenerateScreen) renderFormRow(label, field string, focus int) string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	prefix := "  "
	if s.focus == focus {
		labelStyle = theme.Selected
		prefix = "▸ "
	}
	return fmt.Sprintf("%s%s  %s", prefix, labelStyle.Render(fmt.Sprintf("%-6s", label+":")), field)
}

func (s *GenerateScreen) renderLevelPicker() string {
	level := strings.ToUpper(s.levels[s.levelIdx])
	style := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	arrows := lipgloss.NewStyle().Foreground(theme.TextDim)
	return arrows.Render("◂ ") + style.Render(level) + arrows.Render(" ▸")
}

func (s *GenerateScreen) renderRunning(width int) string {
	var b strings.Builder
	b.WriteString("\n\n")

	percent := float64(len(s.added)) / float64(s.target)
	bar := components.NewProgressBar("", percent, true, min(width-20, 44))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	status := fmt.Sprintf("Generating question %d of %d...", len(s.added)+1, s.target)
	if s.cancelled {
		status = "Finishing up..."
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.Text).
		Render(status))
	b.WriteString("\n\n")

	b.WriteString(s.renderAdded(width))

	if s.failures > 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("%d attempt(s) rejected", s.failures)))
		b.WriteString("\n")
	}

	return b.String()
}

func (s *GenerateScreen) renderDone(width int) string {
	var b strings.Builder
	b.WriteString("\n\n")

	level := strings.ToUpper(s.levels[s.levelIdx])
	switch {
	case len(s.added) == 0:
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).Bold(true).
			Render("No questions generated"))
		if s.lastErr != "" {
			b.WriteString("\n")
			b.WriteString(lipgloss.NewStyle().
				Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
				Render(truncate(s.lastErr, 70)))
		}
	default:
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Success).Bold(true).
			Render(fmt.Sprintf("Added %d question(s) to LVL %s", len(s.added), level)))
		b.WriteString("\n\n")
		b.WriteString(s.renderAdded(width))
		if s.failures > 0 && s.lastErr != "" {
			b.WriteString("\n")
			b.WriteString(lipgloss.NewStyle().
				Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
				Render(fmt.Sprintf("Some attempts failed: %s", truncate(s.lastErr, 60))))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
		Render("Enter for another batch, Esc to go back"))

	return b.String()
}

func (s *GenerateScreen) renderAdded(width int) string {
	var b strings.Builder
	for _, text := range s.added {
		line := theme.Correct.Render("✓") + " " + lipgloss.NewStyle().
			Foreground(theme.TextDim).Render(truncate(text, 56))
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

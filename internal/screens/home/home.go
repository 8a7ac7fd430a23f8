package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/google/uuid"

	"github.com/quizling/quizling/internal/difficulty"
	"github.com/quizling/quizling/internal/progress"
	"github.com/quizling/quizling/internal/question"
	"github.com/quizling/quizling/internal/quizgen"
	"github.com/quizling/quizling/internal/router"
	"github.com/quizling/quizling/internal/screen"
	"github.com/quizling/quizling/internal/screens/generate"
	"github.com/quizling/quizling/internal/screens/notice"
	"github.com/quizling/quizling/internal/screens/quiz"
	"github.com/quizling/quizling/internal/screens/stats"
	"github.com/quizling/quizling/internal/session"
	"github.com/quizling/quizling/internal/store"
	"github.com/quizling/quizling/internal/ui/components"
	"github.com/quizling/quizling/internal/ui/layout"
)

// Wiper erases all stored progress. Satisfied by *store.Store.
type Wiper interface {
	Wipe(ctx context.Context) error
}

// cheeringThreshold is the lifetime best accuracy (percent) at which the
// mascot celebrates on the home screen.
const cheeringThreshold = 90

// resetDoneMsg reports the outcome of a progress wipe.
type resetDoneMsg struct {
	Err error
}

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	menu       components.Menu
	menuLabels []string

	wiper     Wiper
	bank      *question.Bank
	progress  *progress.Service
	events    store.EventRepo
	generator quizgen.Generator

	level   string
	score   int
	best    float64
	variant MascotVariant

	confirmingReset bool
	status          string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates the home screen. generator may be nil when no LLM API key
// is configured; the generate entry then explains how to set one up.
func New(wiper Wiper, bank *question.Bank, progressSvc *progress.Service, events store.EventRepo, generator quizgen.Generator) *HomeScreen {
	h := &HomeScreen{
		wiper:     wiper,
		bank:      bank,
		progress:  progressSvc,
		events:    events,
		generator: generator,
	}

	h.menuLabels = []string{"START QUIZ", "STATISTICS", "GENERATE QUESTIONS", "RESET PROGRESS", "EXIT"}

	items := []components.MenuItem{
		{Label: h.menuLabels[0], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: h.newQuizScreen()}
			}
		}},
		{Label: h.menuLabels[1], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: stats.New(h.progress, h.events)}
			}
		}},
		{Label: h.menuLabels[2], Action: func() tea.Cmd {
			if h.generator == nil {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: notice.New("Generate Questions",
						"No LLM provider is configured.",
						"",
						"Set ANTHROPIC_API_KEY, OPENAI_API_KEY, GEMINI_API_KEY",
						"or OPENROUTER_API_KEY and restart quizling to create",
						"fresh questions for any level.",
					)}
				}
			}
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: generate.New(h.generator, h.bank)}
			}
		}},
		{Label: h.menuLabels[3], Action: func() tea.Cmd {
			h.confirmingReset = true
			return nil
		}},
		{Label: h.menuLabels[4], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	h.menu = components.NewMenu(items)
	h.refreshStats()
	return h
}

// newQuizScreen builds a fresh session resuming at the stored level.
func (h *HomeScreen) newQuizScreen() screen.Screen {
	ctrl := difficulty.NewDefault()
	state := session.NewState(uuid.New().String(), ctrl, h.bank, h.progress.CurrentLevel())
	return quiz.New(state, h.progress, h.events)
}

// refreshStats re-reads the lifetime numbers shown on the stats bar.
func (h *HomeScreen) refreshStats() {
	sum := h.progress.Summary()
	h.level = sum.CurrentLevel
	h.score = sum.TotalScore
	h.best = sum.BestAccuracy

	h.variant = MascotIdle
	if sum.BestAccuracy >= cheeringThreshold && sum.SessionsPlayed > 0 {
		h.variant = MascotCheering
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	if h.confirmingReset {
		return []layout.KeyHint{
			{Key: "Y", Description: "Wipe progress"},
			{Key: "N", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case resetDoneMsg:
		h.confirmingReset = false
		if msg.Err != nil {
			h.status = "Reset failed: " + msg.Err.Error()
			return h, nil
		}
		h.progress.Reset()
		h.refreshStats()
		h.status = "All progress wiped. Fresh start!"
		return h, nil

	case tea.KeyMsg:
		if h.confirmingReset {
			switch msg.String() {
			case "y", "Y":
				return h, h.wipeCmd()
			case "n", "N", "esc":
				h.confirmingReset = false
			}
			return h, nil
		}
		h.status = ""
		// Returning from a sub-screen may have changed the numbers.
		h.refreshStats()
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) wipeCmd() tea.Cmd {
	return func() tea.Msg {
		if err := h.wiper.Wipe(context.Background()); err != nil {
			return resetDoneMsg{Err: err}
		}
		return resetDoneMsg{}
	}
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height by
	// adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < layout.CompactHeightThreshold || layout.IsCompactWidth(width)

	// All sections share a uniform content width so they line up.
	cw := components.ContentWidth(width)

	if h.confirmingReset {
		return components.StageFrame(renderResetConfirm(cw), width, height)
	}

	var sections []string

	sections = append(sections, renderTitle(cw, compact))

	if !compact {
		sections = append(sections, renderMascotBox(h.variant, cw))
	}

	sections = append(sections, renderStatsBar(h.level, h.score, h.best, cw, compact))

	if compact {
		sections = append(sections, renderStageMenuCompact(h.menuLabels, h.menu.Selected, cw))
	} else {
		sections = append(sections, renderStageMenu(h.menuLabels, h.menu.Selected, cw))
	}

	if h.status != "" {
		sections = append(sections, renderStatus(h.status, cw))
	} else if h.generator == nil {
		sections = append(sections, renderLLMBanner(cw))
	}

	content := strings.Join(sections, "\n\n")

	return components.StageFrame(content, width, height)
}

package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/quizling/quizling/internal/progress"
	"github.com/quizling/quizling/internal/question"
	"github.com/quizling/quizling/internal/quizgen"
	"github.com/quizling/quizling/internal/router"
	"github.com/quizling/quizling/internal/screen"
	"github.com/quizling/quizling/internal/screens/home"
	"github.com/quizling/quizling/internal/screens/welcome"
	"github.com/quizling/quizling/internal/store"
	"github.com/quizling/quizling/internal/ui/layout"
)

// Options carries the wired dependencies for the TUI.
type Options struct {
	Store     *store.Store
	Events    store.EventRepo
	Bank      *question.Bank
	Progress  *progress.Service
	Generator quizgen.Generator // nil when no LLM provider is configured
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router   *router.Router
	progress *progress.Service
	width    int
	height   int
}

// newAppModel creates a new AppModel starting on the welcome screen.
func newAppModel(opts Options) AppModel {
	homeFactory := func() screen.Screen {
		return home.New(opts.Store, opts.Bank, opts.Progress, opts.Events, opts.Generator)
	}
	return AppModel{
		router:   router.New(welcome.New(homeFactory)),
		progress: opts.Progress,
	}
}

func (m AppModel) Init() tea.Cmd {
	active := m.router.Active()
	if active == nil {
		return nil
	}
	return active.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Esc stays with the screens; they decide between quit
		// confirmation, form navigation and plain popping.
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	if active == nil {
		return v
	}

	// The welcome splash owns the whole screen.
	title := active.Title()
	if title == "" {
		v.SetContent(active.View(m.width, m.height))
		return v
	}

	sum := m.progress.Summary()
	header := layout.RenderHeader(title, sum.CurrentLevel, sum.TotalScore, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// footerHints asks the active screen for its key hints, falling back to
// stack-position defaults.
func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if provider, ok := active.(screen.KeyHintProvider); ok {
		if hints := provider.KeyHints(); len(hints) > 0 {
			return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
		}
	}

	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}

package generate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/quizling/quizling/internal/question"
	"github.com/quizling/quizling/internal/quizgen"
)

// mockGenerator implements quizgen.Generator for testing.
type mockGenerator struct {
	calls int
	err   error
}

func (m *mockGenerator) Generate(_ context.Context, input quizgen.GenerateInput) (*question.Question, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return &question.Question{
		ID:      question.NewID(),
		Text:    fmt.Sprintf("Generated question %d?", m.calls),
		Options: []string{"Alpha", "Bravo", "Charlie", "Delta"},
		Answer:  "Alpha",
		Level:   input.Level,
	}, nil
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testGenerateScreen(t *testing.T) (*GenerateScreen, *mockGenerator, *question.Bank) {
	t.Helper()
	bank, err := question.Open(t.TempDir(), []string{"easy", "medium", "hard"})
	if err != nil {
		t.Fatalf("open bank: %v", err)
	}
	gen := &mockGenerator{}
	return New(gen, bank), gen, bank
}

// focusButton moves form focus onto the Generate button.
func focusGenerateButton(s *GenerateScreen) {
	for s.focus != focusButton {
		s.Update(specialKey(tea.KeyTab))
	}
}

// runBatch drives the generation loop until the screen leaves the
// running state.
func runBatch(t *testing.T, s *GenerateScreen) {
	t.Helper()
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	for i := 0; i < 100; i++ {
		if s.state != stateRunning || cmd == nil {
			return
		}
		_, cmd = s.Update(cmd())
	}
	t.Fatal("generation loop did not finish")
}

func TestGenerateScreen_Title(t *testing.T) {
	s, _, _ := testGenerateScreen(t)
	if s.Title() != "Generate Questions" {
		t.Errorf("Title = %q, want %q", s.Title(), "Generate Questions")
	}
}

func TestGenerateScreen_FocusCycle(t *testing.T) {
	s, _, _ := testGenerateScreen(t)

	if s.focus != focusLevel {
		t.Fatalf("initial focus = %d, want level", s.focus)
	}
	s.Update(specialKey(tea.KeyTab))
	if s.focus != focusTopic {
		t.Errorf("focus after tab = %d, want topic", s.focus)
	}
	s.Update(specialKey(tea.KeyTab))
	s.Update(specialKey(tea.KeyTab))
	if s.focus != focusButton {
		t.Errorf("focus = %d, want button", s.focus)
	}
	s.Update(specialKey(tea.KeyTab))
	if s.focus != focusLevel {
		t.Errorf("focus = %d, want wrap to level", s.focus)
	}
}

func TestGenerateScreen_LevelPicker(t *testing.T) {
	s, _, _ := testGenerateScreen(t)

	s.Update(specialKey(tea.KeyRight))
	if got := s.levels[s.levelIdx]; got != "medium" {
		t.Errorf("level after right = %q, want %q", got, "medium")
	}
	s.Update(specialKey(tea.KeyLeft))
	s.Update(specialKey(tea.KeyLeft))
	if got := s.levels[s.levelIdx]; got != "hard" {
		t.Errorf("level after wrap = %q, want %q", got, "hard")
	}
}

func TestGenerateScreen_Run(t *testing.T) {
	s, gen, bank := testGenerateScreen(t)
	before := bank.Count("easy")

	s.count.Model.SetValue("2")
	focusGenerateButton(s)
	runBatch(t, s)

	if s.state != stateDone {
		t.Fatalf("state = %d, want done", s.state)
	}
	if len(s.added) != 2 {
		t.Errorf("added = %d, want 2", len(s.added))
	}
	if got := bank.Count("easy"); got != before+2 {
		t.Errorf("bank count = %d, want %d", got, before+2)
	}
	if gen.calls != 2 {
		t.Errorf("generator calls = %d, want 2", gen.calls)
	}

	view := s.View(80, 24)
	if !strings.Contains(view, "Added 2") {
		t.Error("expected the done view to report added questions")
	}
}

func TestGenerateScreen_RunFailure(t *testing.T) {
	s, gen, bank := testGenerateScreen(t)
	gen.err = errors.New("provider unavailable")
	before := bank.Count("easy")

	s.count.Model.SetValue("2")
	focusGenerateButton(s)
	runBatch(t, s)

	if s.state != stateDone {
		t.Fatalf("state = %d, want done", s.state)
	}
	if s.failures != maxFailures {
		t.Errorf("failures = %d, want %d", s.failures, maxFailures)
	}
	if bank.Count("easy") != before {
		t.Error("expected no bank writes on failure")
	}

	view := s.View(80, 24)
	if !strings.Contains(view, "No questions generated") {
		t.Error("expected the done view to report the failure")
	}
}

func TestGenerateScreen_Cancel(t *testing.T) {
	s, _, _ := testGenerateScreen(t)

	s.count.Model.SetValue("5")
	focusGenerateButton(s)
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if s.state != stateRunning || cmd == nil {
		t.Fatal("expected a running batch")
	}

	// Cancel mid-run; the in-flight question still lands.
	s.Update(specialKey(tea.KeyEscape))
	s.Update(cmd())

	if s.state != stateDone {
		t.Fatalf("state = %d, want done after cancel", s.state)
	}
	if len(s.added) != 1 {
		t.Errorf("added = %d, want 1", len(s.added))
	}
}

func TestGenerateScreen_InvalidCount(t *testing.T) {
	s, _, _ := testGenerateScreen(t)

	s.count.Model.SetValue("0")
	focusGenerateButton(s)
	s.Update(specialKey(tea.KeyEnter))

	if s.state != stateForm {
		t.Errorf("state = %d, want form after invalid count", s.state)
	}
}

func TestGenerateScreen_EscPops(t *testing.T) {
	s, _, _ := testGenerateScreen(t)

	_, cmd := s.Update(specialKey(tea.KeyEscape))
	if cmd == nil {
		t.Error("expected a command on Esc (pop)")
	}
}

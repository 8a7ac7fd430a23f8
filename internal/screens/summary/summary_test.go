package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/quizling/quizling/internal/session"
	"github.com/quizling/quizling/internal/store"
)

func testSummary() *session.Summary {
	return &session.Summary{
		Duration:       4 * time.Minute,
		TotalQuestions: 14,
		TotalCorrect:   11,
		Accuracy:       100 * float64(11) / float64(14),
		Score:          145,
		FinalLevel:     "medium",
		Promotions:     1,
		Levels:         []string{"easy", "medium", "hard"},
		PerLevel: map[string]store.LevelTotals{
			"easy":   {Answered: 6, Correct: 5},
			"medium": {Answered: 8, Correct: 6},
		},
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testSummary())
	if s.Title() != "Quiz Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Quiz Summary")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testSummary())
	view := s.View(80, 24)
	if view == "" {
		t.Fatal("expected non-empty summary view")
	}
	if !strings.Contains(view, "145") {
		t.Error("expected the score in the summary view")
	}
	if !strings.Contains(view, "MEDIUM") {
		t.Error("expected the final level in the summary view")
	}
}

func TestSummaryScreen_Display_SkipsUnplayedLevels(t *testing.T) {
	s := New(testSummary())
	view := s.View(80, 24)
	if strings.Contains(view, "HARD") {
		t.Error("expected levels with no answers to be omitted")
	}
}

func TestSummaryScreen_Navigation_Enter(t *testing.T) {
	s := New(testSummary())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Error("expected a command on Enter (pop)")
	}
}

func TestSummaryScreen_Navigation_Esc(t *testing.T) {
	s := New(testSummary())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Error("expected a command on Esc (pop)")
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := New(testSummary())
	hints := s.KeyHints()
	if len(hints) != 2 {
		t.Errorf("KeyHints length = %d, want 2", len(hints))
	}
}

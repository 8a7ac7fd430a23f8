package quiz

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/quizling/quizling/internal/difficulty"
	"github.com/quizling/quizling/internal/progress"
	"github.com/quizling/quizling/internal/question"
	"github.com/quizling/quizling/internal/router"
	"github.com/quizling/quizling/internal/screen"
	"github.com/quizling/quizling/internal/screens/summary"
	sess "github.com/quizling/quizling/internal/session"
	"github.com/quizling/quizling/internal/store"
)

// stubSource implements sess.QuestionSource for testing.
type stubSource struct {
	q   question.Question
	err error
}

func (s *stubSource) Pick(level string) (question.Question, error) {
	if s.err != nil {
		return question.Question{}, s.err
	}
	q := s.q
	q.Level = level
	return q, nil
}

// mockEventRepo implements store.EventRepo for testing.
type mockEventRepo struct {
	sessionEvents []store.SessionEventData
	answerEvents  []store.AnswerEventData
}

func (m *mockEventRepo) AppendAnswerEvent(_ context.Context, data store.AnswerEventData) error {
	m.answerEvents = append(m.answerEvents, data)
	return nil
}
func (m *mockEventRepo) AppendSessionEvent(_ context.Context, data store.SessionEventData) error {
	m.sessionEvents = append(m.sessionEvents, data)
	return nil
}
func (m *mockEventRepo) AppendLLMRequest(_ context.Context, _ store.LLMRequestEventData) error {
	return nil
}
func (m *mockEventRepo) RecentAnswers(_ context.Context, _ int) ([]store.AnswerEvent, error) {
	return nil, nil
}
func (m *mockEventRepo) LevelBreakdown(_ context.Context) (map[string]store.LevelTotals, error) {
	return nil, nil
}
func (m *mockEventRepo) RecentLLMRequests(_ context.Context, _ int) ([]store.LLMRequestEvent, error) {
	return nil, nil
}
func (m *mockEventRepo) GetLLMRequest(_ context.Context, _ string) (*store.LLMRequestEvent, error) {
	return nil, nil
}
func (m *mockEventRepo) LLMUsageByPurpose(_ context.Context) ([]store.LLMPurposeUsage, error) {
	return nil, nil
}
func (m *mockEventRepo) LLMUsageByModel(_ context.Context) ([]store.LLMModelUsage, error) {
	return nil, nil
}

// mockSnapshotRepo implements store.SnapshotRepo for testing.
type mockSnapshotRepo struct {
	snapshots []*store.Snapshot
}

func (m *mockSnapshotRepo) Save(_ context.Context, snap *store.Snapshot) error {
	m.snapshots = append(m.snapshots, snap)
	return nil
}
func (m *mockSnapshotRepo) Latest(_ context.Context) (*store.Snapshot, error) {
	if len(m.snapshots) == 0 {
		return nil, nil
	}
	return m.snapshots[len(m.snapshots)-1], nil
}
func (m *mockSnapshotRepo) Prune(_ context.Context, _ int) error {
	return nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testQuizScreen() (*QuizScreen, *mockEventRepo, *progress.Service) {
	src := &stubSource{q: question.Question{
		ID:      "q1",
		Text:    "Which planet is known as the Red Planet?",
		Options: []string{"Venus", "Mars", "Jupiter", "Saturn"},
		Answer:  "Mars",
	}}
	eventRepo := &mockEventRepo{}
	progressSvc := progress.NewService(nil, &mockSnapshotRepo{}, nil)

	state := sess.NewState("test-session", difficulty.NewDefault(), src, "")
	s := New(state, progressSvc, eventRepo)
	return s, eventRepo, progressSvc
}

// serveQuestion drives the screen through serving the next question.
func serveQuestion(t *testing.T, s *QuizScreen) {
	t.Helper()
	scr, _ := s.Update(nextQuestionMsg{})
	if scr.(*QuizScreen).state.CurrentQuestion == nil {
		t.Fatal("expected a question to be served")
	}
}

func TestQuizScreen_Title(t *testing.T) {
	s, _, _ := testQuizScreen()
	if s.Title() != "Quiz" {
		t.Errorf("Title = %q, want %q", s.Title(), "Quiz")
	}
}

func TestQuizScreen_View_Error(t *testing.T) {
	s, _, _ := testQuizScreen()
	s.errMsg = "test error"
	view := s.View(80, 24)
	if view == "" {
		t.Error("expected non-empty view for error state")
	}
}

func TestQuizScreen_ServeQuestion(t *testing.T) {
	s, _, _ := testQuizScreen()
	serveQuestion(t, s)

	if s.state.CurrentQuestion.Text != "Which planet is known as the Red Planet?" {
		t.Errorf("unexpected question %q", s.state.CurrentQuestion.Text)
	}
	if view := s.View(80, 24); view == "" {
		t.Error("expected non-empty question view")
	}
}

func TestQuizScreen_ServeQuestion_SourceError(t *testing.T) {
	s, _, _ := testQuizScreen()
	s.state.Source = &stubSource{err: question.ErrNoQuestions}

	s.Update(nextQuestionMsg{})
	if s.errMsg == "" {
		t.Error("expected error message when the source fails")
	}
}

func TestQuizScreen_AnswerSubmit(t *testing.T) {
	s, eventRepo, _ := testQuizScreen()
	serveQuestion(t, s)

	// Press 2 to pick Mars.
	var scr screen.Screen = s
	scr, _ = scr.Update(keyPress('2'))
	qs := scr.(*QuizScreen)

	if !qs.state.ShowingFeedback {
		t.Error("expected feedback to be shown after submit")
	}
	if !qs.state.LastAnswerCorrect {
		t.Error("expected answer to be correct")
	}
	if qs.state.Score == 0 {
		t.Error("expected points for a correct answer")
	}

	if len(eventRepo.answerEvents) != 1 {
		t.Fatalf("answer events = %d, want 1", len(eventRepo.answerEvents))
	}
	ev := eventRepo.answerEvents[0]
	if ev.Level != "easy" {
		t.Errorf("event level = %q, want %q", ev.Level, "easy")
	}
	if !ev.Correct || ev.GivenAnswer != "Mars" {
		t.Errorf("unexpected answer event %+v", ev)
	}
}

func TestQuizScreen_ArrowSubmit(t *testing.T) {
	s, _, _ := testQuizScreen()
	serveQuestion(t, s)

	// Move to the second option, then submit with Enter.
	var scr screen.Screen = s
	scr, _ = scr.Update(keyPress('j'))
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	qs := scr.(*QuizScreen)

	if !qs.state.ShowingFeedback {
		t.Error("expected feedback after Enter submit")
	}
	if !qs.state.LastAnswerCorrect {
		t.Error("expected second option to be correct")
	}
}

func TestQuizScreen_FeedbackDismiss(t *testing.T) {
	s, _, _ := testQuizScreen()
	serveQuestion(t, s)
	s.Update(keyPress('2'))

	// Any key dismisses feedback.
	_, cmd := s.Update(keyPress(' '))
	if cmd == nil {
		t.Fatal("expected a command after feedback dismiss")
	}

	s.Update(cmd())
	if s.state.ShowingFeedback {
		t.Error("expected feedback to be cleared")
	}
	if s.state.CurrentQuestion == nil {
		t.Error("expected the next question to be served")
	}
}

func TestQuizScreen_QuitConfirm(t *testing.T) {
	s, _, _ := testQuizScreen()
	serveQuestion(t, s)

	// Press Esc to show quit dialog.
	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyEscape))
	qs := scr.(*QuizScreen)
	if !qs.state.ShowingQuitConfirm {
		t.Error("expected quit confirmation dialog")
	}

	// Press N to dismiss.
	scr, _ = qs.Update(keyPress('n'))
	qs = scr.(*QuizScreen)
	if qs.state.ShowingQuitConfirm {
		t.Error("expected quit confirmation to be dismissed")
	}
}

func TestQuizScreen_QuitConfirm_Yes(t *testing.T) {
	s, _, _ := testQuizScreen()
	serveQuestion(t, s)

	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyEscape))
	_, cmd := scr.Update(keyPress('y'))
	if cmd == nil {
		t.Fatal("expected a command after quit confirmation")
	}
	if _, ok := cmd().(sessionEndMsg); !ok {
		t.Fatalf("expected sessionEndMsg, got %T", cmd())
	}
}

func TestQuizScreen_SessionEnd(t *testing.T) {
	s, eventRepo, progressSvc := testQuizScreen()
	serveQuestion(t, s)
	s.Update(keyPress('2'))

	_, cmd := s.Update(sessionEndMsg{})
	if cmd == nil {
		t.Fatal("expected a navigation command at session end")
	}

	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if _, ok := msg.Screen.(*summary.SummaryScreen); !ok {
		t.Errorf("expected a summary screen, got %T", msg.Screen)
	}

	// End event carries the final tallies.
	var end *store.SessionEventData
	for i := range eventRepo.sessionEvents {
		if eventRepo.sessionEvents[i].Action == "end" {
			end = &eventRepo.sessionEvents[i]
		}
	}
	if end == nil {
		t.Fatal("expected a session end event")
	}
	if end.QuestionsServed != 1 || end.CorrectAnswers != 1 {
		t.Errorf("end event tallies = %d/%d, want 1/1", end.QuestionsServed, end.CorrectAnswers)
	}
	if end.FinalLevel != "easy" {
		t.Errorf("end event level = %q, want %q", end.FinalLevel, "easy")
	}

	// The run is folded into lifetime progress.
	if got := progressSvc.Summary().SessionsPlayed; got != 1 {
		t.Errorf("sessions played = %d, want 1", got)
	}
}

func TestQuizScreen_KeyHints(t *testing.T) {
	s, _, _ := testQuizScreen()
	serveQuestion(t, s)

	hints := s.KeyHints()
	if len(hints) == 0 {
		t.Fatal("expected non-empty key hints")
	}

	s.state.ShowingQuitConfirm = true
	confirmHints := s.KeyHints()
	if len(confirmHints) == 0 || confirmHints[0].Key != "Y" {
		t.Errorf("unexpected quit confirm hints %+v", confirmHints)
	}
}

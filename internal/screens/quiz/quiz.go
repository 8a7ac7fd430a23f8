package quiz

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/quizling/quizling/internal/progress"
	"github.com/quizling/quizling/internal/router"
	"github.com/quizling/quizling/internal/screen"
	"github.com/quizling/quizling/internal/screens/summary"
	sess "github.com/quizling/quizling/internal/session"
	"github.com/quizling/quizling/internal/store"
	"github.com/quizling/quizling/internal/ui/components"
	"github.com/quizling/quizling/internal/ui/layout"
)

// QuizScreen implements screen.Screen for an active quiz run. Questions
// keep coming until the player quits; each answer feeds the difficulty
// controller, which moves the level up or down between questions.
type QuizScreen struct {
	state    *sess.State
	progress *progress.Service
	events   store.EventRepo
	choice   components.MultiChoice
	errMsg   string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a quiz screen over prepared session state.
func New(state *sess.State, progressSvc *progress.Service, events store.EventRepo) *QuizScreen {
	return &QuizScreen{
		state:    state,
		progress: progressSvc,
		events:   events,
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	return tea.Batch(s.beginSession(), tickCmd())
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.state.ShowingQuitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "End quiz"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.state.ShowingFeedback {
		return []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
		}
	}
	return []layout.KeyHint{
		{Key: "1-4", Description: "Answer"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "End quiz"},
	}
}

func (s *QuizScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, height, s.errMsg)
	}
	if s.state.ShowingQuitConfirm {
		return renderQuitConfirm(width, height)
	}
	if s.state.ShowingFeedback {
		return s.renderFeedback(width, height)
	}
	return s.renderQuestionView(width, height)
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case nextQuestionMsg:
		return s.handleNextQuestion()

	case timerTickMsg:
		return s.handleTimerTick()

	case feedbackDoneMsg:
		return s.handleFeedbackDone()

	case sessionEndMsg:
		return s.handleSessionEnd()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s, nil
}

// beginSession records the session start event and asks for the first
// question.
func (s *QuizScreen) beginSession() tea.Cmd {
	sessionID := s.state.SessionID
	return func() tea.Msg {
		_ = s.events.AppendSessionEvent(context.Background(), store.SessionEventData{
			SessionID: sessionID,
			Action:    "start",
		})
		return nextQuestionMsg{}
	}
}

// handleNextQuestion serves a question for the current level and arms
// the choice selector. Serving happens here rather than in a command so
// session state is only ever touched from Update.
func (s *QuizScreen) handleNextQuestion() (screen.Screen, tea.Cmd) {
	if s.state.Phase == sess.PhaseEnding {
		return s, nil
	}

	if err := sess.NextQuestion(s.state); err != nil {
		s.errMsg = err.Error()
		return s, nil
	}

	q := s.state.CurrentQuestion
	s.choice = components.NewMultiChoice(q.Text, q.Options, q.CorrectIndex())
	s.state.Phase = sess.PhaseActive
	return s, nil
}

func (s *QuizScreen) handleTimerTick() (screen.Screen, tea.Cmd) {
	if s.state.Phase == sess.PhaseEnding || s.state.Phase == sess.PhaseSummary {
		return s, nil
	}

	s.state.Elapsed = time.Since(s.state.StartTime)
	return s, tickCmd()
}

func (s *QuizScreen) handleFeedbackDone() (screen.Screen, tea.Cmd) {
	if !s.state.ShowingFeedback {
		return s, nil
	}
	return s.handleNextQuestion()
}

func (s *QuizScreen) handleSessionEnd() (screen.Screen, tea.Cmd) {
	s.state.Phase = sess.PhaseEnding
	s.state.Elapsed = time.Since(s.state.StartTime)

	ctx := context.Background()
	_ = s.events.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:       s.state.SessionID,
		Action:          "end",
		QuestionsServed: s.state.TotalQuestions,
		CorrectAnswers:  s.state.TotalCorrect,
		Score:           s.state.Score,
		FinalLevel:      s.state.Controller.LevelName(),
		DurationSecs:    int(s.state.Elapsed.Seconds()),
	})

	// Fold the run into lifetime progress.
	_ = s.progress.ApplySession(ctx, sess.Result(s.state))

	// Replace rather than push, so leaving the summary lands on home.
	result := sess.BuildSummary(s.state)
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(result)}
	}
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// Error state. Any key goes back.
	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	// Quit confirmation dialog.
	if s.state.ShowingQuitConfirm {
		switch key {
		case "y", "Y":
			s.state.ShowingQuitConfirm = false
			return s, func() tea.Msg { return sessionEndMsg{} }
		case "n", "N", "esc":
			s.state.ShowingQuitConfirm = false
			return s, nil
		}
		return s, nil
	}

	// Feedback overlay. Any key dismisses.
	if s.state.ShowingFeedback {
		return s, func() tea.Msg { return feedbackDoneMsg{} }
	}

	if s.state.Phase != sess.PhaseActive || s.state.CurrentQuestion == nil {
		return s, nil
	}

	if key == "esc" {
		s.state.ShowingQuitConfirm = true
		return s, nil
	}

	var cmd tea.Cmd
	s.choice, cmd = s.choice.Update(msg)
	if s.choice.Submitted {
		return s.submitAnswer()
	}
	return s, cmd
}

// submitAnswer grades the chosen option, records the outcome, and
// switches to the feedback overlay.
func (s *QuizScreen) submitAnswer() (screen.Screen, tea.Cmd) {
	q := s.state.CurrentQuestion
	if q == nil {
		return s, nil
	}

	givenAnswer := s.choice.Choice()

	// Capture the level before grading; a transition may move it.
	askedAt := s.state.Controller.LevelName()
	sess.HandleAnswer(s.state, givenAnswer)

	_ = s.events.AppendAnswerEvent(context.Background(), store.AnswerEventData{
		SessionID:     s.state.SessionID,
		QuestionID:    q.ID,
		Level:         askedAt,
		QuestionText:  q.Text,
		CorrectAnswer: q.Answer,
		GivenAnswer:   givenAnswer,
		Correct:       s.state.LastAnswerCorrect,
	})

	s.state.ShowingFeedback = true
	s.state.Phase = sess.PhaseFeedback
	return s, nil
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}

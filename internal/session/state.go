package session

import (
	"time"

	"github.com/quizling/quizling/internal/difficulty"
	"github.com/quizling/quizling/internal/question"
	"github.com/quizling/quizling/internal/store"
)

// QuestionSource supplies questions for a difficulty level.
type QuestionSource interface {
	Pick(level string) (question.Question, error)
}

// Phase represents the current phase of a quiz session.
type Phase int

const (
	PhaseActive   Phase = iota // serving questions
	PhaseFeedback              // showing answer feedback
	PhaseEnding                // quit confirmed, session wrapping up
	PhaseSummary               // showing the summary screen
)

// State tracks the runtime state of an active quiz session.
type State struct {
	// SessionID is the UUID for this session.
	SessionID string

	// Controller drives promotion and demotion across levels.
	Controller *difficulty.Controller

	// Source supplies questions for the current level.
	Source QuestionSource

	// CurrentQuestion is the active question (nil between questions).
	CurrentQuestion *question.Question

	// TotalQuestions is the count of graded answers so far.
	TotalQuestions int

	// TotalCorrect is the count of correct answers so far.
	TotalCorrect int

	// Score accumulates points earned this session.
	Score int

	// Promotions and Demotions count level transitions this session.
	Promotions int
	Demotions  int

	// PerLevel tallies answers by the level they were asked at.
	PerLevel map[string]store.LevelTotals

	// StartTime is when the session began.
	StartTime time.Time

	// Elapsed tracks total elapsed play time.
	Elapsed time.Duration

	// QuestionStartTime is when the current question was first shown.
	QuestionStartTime time.Time

	// Phase is the current session phase.
	Phase Phase

	// LastAnswerCorrect records whether the most recent answer was correct.
	LastAnswerCorrect bool

	// LastGivenAnswer is the most recent answer text, for feedback display.
	LastGivenAnswer string

	// LevelChange is set when the last answer moved the level, for
	// feedback display. Cleared when the next question is served.
	LevelChange *difficulty.Transition

	// ShowingFeedback is true while the feedback overlay is displayed.
	ShowingFeedback bool

	// ShowingQuitConfirm is true while the quit confirmation is displayed.
	ShowingQuitConfirm bool
}

// NewState creates a session state resuming at startLevel. An unknown
// or empty startLevel leaves the controller at the lowest level.
func NewState(sessionID string, ctrl *difficulty.Controller, source QuestionSource, startLevel string) *State {
	if startLevel != "" {
		_ = ctrl.ForceLevelName(startLevel)
	}

	return &State{
		SessionID:  sessionID,
		Controller: ctrl,
		Source:     source,
		PerLevel:   make(map[string]store.LevelTotals),
		StartTime:  time.Now(),
		Phase:      PhaseActive,
	}
}

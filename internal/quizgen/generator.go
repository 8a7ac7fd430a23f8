package quizgen

import (
	"context"

	"github.com/quizling/quizling/internal/question"
)

// Generator produces quiz questions using an LLM provider.
type Generator interface {
	// Generate produces a single validated question for the given
	// input context.
	Generate(ctx context.Context, input GenerateInput) (*question.Question, error)
}

// GenerateInput describes what kind of question to generate.
type GenerateInput struct {
	// Level is the difficulty level name, e.g. "easy".
	Level string

	// Topic optionally narrows the subject area. Empty means general
	// knowledge.
	Topic string

	// AvoidTexts lists question texts already in the bank or asked
	// this session, so the LLM does not repeat them.
	AvoidTexts []string
}

// ValidationError describes why a generated question was rejected
// after the LLM call succeeded. Retryable failures are worth another
// generation attempt.
type ValidationError struct {
	Message   string
	Retryable bool
}

func (e *ValidationError) Error() string {
	return "generated question rejected: " + e.Message
}

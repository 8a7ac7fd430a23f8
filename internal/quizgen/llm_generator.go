package quizgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/quizling/quizling/internal/llm"
	"github.com/quizling/quizling/internal/question"
)

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// questionOutput is the raw LLM response before validation.
type questionOutput struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"correct_answer"`
}

// Generate produces a single question for the given input context.
func (g *LLMGenerator) Generate(ctx context.Context, input GenerateInput) (*question.Question, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeQuestionGen)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input, g.config)},
		},
		Schema:      QuestionSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw questionOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	q := &question.Question{
		ID:      question.NewID(),
		Text:    raw.Question,
		Options: raw.Options,
		Answer:  raw.Answer,
		Level:   input.Level,
	}

	if err := q.Validate(); err != nil {
		return nil, &ValidationError{Message: err.Error(), Retryable: true}
	}
	if isDuplicate(q.Text, input.AvoidTexts) {
		return nil, &ValidationError{
			Message:   fmt.Sprintf("%q repeats an avoided question", q.Text),
			Retryable: true,
		}
	}

	return q, nil
}

// isDuplicate reports whether text matches any avoided question,
// ignoring case and surrounding whitespace. The prompt asks the LLM
// not to repeat itself, this is the backstop.
func isDuplicate(text string, avoid []string) bool {
	norm := strings.ToLower(strings.TrimSpace(text))
	for _, a := range avoid {
		if norm == strings.ToLower(strings.TrimSpace(a)) {
			return true
		}
	}
	return false
}

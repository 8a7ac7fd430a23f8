package quizgen

import (
	"github.com/quizling/quizling/internal/llm"
	"github.com/quizling/quizling/internal/question"
)

// QuestionSchema defines the JSON schema for LLM question generation
// responses. The field names match the bank file format so generated
// questions round-trip without renaming.
var QuestionSchema = &llm.Schema{
	Name:        "quiz-question",
	Description: "A single multiple-choice quiz question with exactly one correct answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"description": "The question text shown to the player. Clear, self-contained, one sentence where possible.",
			},
			"options": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
				},
				"minItems":    question.OptionCount,
				"maxItems":    question.OptionCount,
				"description": "Exactly 4 answer options. Distractors must be plausible but wrong.",
			},
			"correct_answer": map[string]any{
				"type":        "string",
				"description": "The correct answer, matching one of the options exactly.",
			},
		},
		"required":             []any{"question", "options", "correct_answer"},
		"additionalProperties": false,
	},
}

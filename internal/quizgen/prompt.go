package quizgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a quiz master writing general knowledge questions for an adaptive trivia game.

Rules:
- Generate a single multiple-choice question for the given difficulty level and topic.
- "easy" questions should be answerable by most people, "medium" questions need some schooling or curiosity, "hard" questions should challenge an enthusiast of the topic.
- The question text must be clear, self-contained, and factually accurate.
- Provide exactly 4 options where exactly one is correct. Distractors must be plausible but definitely wrong; avoid joke options.
- The correct_answer must match one of the options exactly, character for character.
- Avoid trick questions, opinion questions, and anything that changes with current events.
- Use plain ASCII text. No markdown, no numbering inside the options.
- Do not repeat or trivially rephrase any question from the "avoid" list.`

// buildUserMessage constructs the user message from GenerateInput and
// Config limits.
func buildUserMessage(input GenerateInput, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Difficulty: %s\n", input.Level)

	topic := input.Topic
	if topic == "" {
		topic = "general knowledge (any subject)"
	}
	fmt.Fprintf(&b, "Topic: %s\n", topic)

	b.WriteString("\nAvoid these questions:\n")
	b.WriteString(buildAvoidList(input.AvoidTexts, cfg.MaxAvoidTexts))

	return b.String()
}

// buildAvoidList formats prior question texts for the prompt,
// respecting the max limit. Returns "None" when there is nothing to
// avoid.
func buildAvoidList(texts []string, max int) string {
	if len(texts) == 0 {
		return "None"
	}

	// Keep only the most recent N entries.
	if max > 0 && len(texts) > max {
		texts = texts[len(texts)-max:]
	}

	var b strings.Builder
	for i, t := range texts {
		fmt.Fprintf(&b, "%d. %s\n", i+1, t)
	}
	return strings.TrimRight(b.String(), "\n")
}

package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/quizling/quizling/internal/difficulty"
	"github.com/quizling/quizling/internal/llm"
	"github.com/quizling/quizling/internal/question"
	"github.com/quizling/quizling/internal/quizgen"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview LLM-generated questions without saving them (no database)",
	Long: `Generate and interactively answer questions for a level and topic.

This is a stateless developer tool: nothing is written to the bank, no
progress is tracked, no events are recorded. Useful for judging question
quality before generating a batch.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().StringP("level", "l", "easy", "Difficulty level to preview")
	previewCmd.Flags().IntP("count", "n", 5, "Number of questions to generate")
	previewCmd.Flags().StringP("topic", "t", "", "Optional topic to focus the questions on")
}

func runPreview(cmd *cobra.Command, args []string) error {
	level, _ := cmd.Flags().GetString("level")
	count, _ := cmd.Flags().GetInt("count")
	topic, _ := cmd.Flags().GetString("topic")

	if !validLevel(level) {
		return fmt.Errorf("unknown level %q: choose one of %s",
			level, strings.Join(difficulty.DefaultLevels, ", "))
	}

	// No event repo, so nothing is logged.
	ctx := context.Background()
	provider, err := llm.NewProviderFromEnv(ctx, nil)
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}

	gen := quizgen.New(provider, quizgen.DefaultConfig())
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Printf("Level: %s", strings.ToUpper(level))
	if topic != "" {
		fmt.Printf("  Topic: %s", topic)
	}
	fmt.Printf("\nGenerating %d questions...\n\n", count)

	var correct int
	var asked []string

	for i := 1; i <= count; i++ {
		input := quizgen.GenerateInput{
			Level:      level,
			Topic:      topic,
			AvoidTexts: asked,
		}

		q, err := generateOne(ctx, gen, input)
		if err != nil {
			fmt.Printf("Question %d: generation failed: %v\n\n", i, err)
			continue
		}
		asked = append(asked, q.Text)

		fmt.Printf("── Question %d/%d ──\n", i, count)
		fmt.Println(q.Text)
		for j, opt := range q.Options {
			fmt.Printf("  %d) %s\n", j+1, opt)
		}

		fmt.Print("\nYour answer: ")
		if !scanner.Scan() {
			fmt.Println("\n(input closed)")
			break
		}
		answer := strings.TrimSpace(scanner.Text())
		if answer == "" {
			fmt.Print("(skipped)\n\n")
			continue
		}

		if question.CheckAnswer(answer, *q) {
			correct++
			fmt.Println("\033[32m✓ Correct!\033[0m")
		} else {
			fmt.Printf("\033[31m✗ Wrong.\033[0m Answer: %s\n", q.Answer)
		}
		fmt.Println()
	}

	fmt.Printf("── Summary: %d/%d correct ──\n", correct, len(asked))
	return nil
}

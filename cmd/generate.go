package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/quizling/quizling/internal/difficulty"
	"github.com/quizling/quizling/internal/llm"
	"github.com/quizling/quizling/internal/question"
	"github.com/quizling/quizling/internal/quizgen"
	"github.com/spf13/cobra"
)

const generateAttempts = 3

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate questions with an LLM and add them to the bank",
	Long: "Generate calls the configured LLM provider and appends validated\n" +
		"questions to the bank file for the chosen level. Requests are recorded\n" +
		"as events; inspect them with `quizling llm list`.",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetString("level")
		count, _ := cmd.Flags().GetInt("count")
		topic, _ := cmd.Flags().GetString("topic")

		if !validLevel(level) {
			return fmt.Errorf("unknown level %q: choose one of %s",
				level, strings.Join(difficulty.DefaultLevels, ", "))
		}
		if count < 1 {
			return fmt.Errorf("count must be at least 1")
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		bank, err := openBank(cmd)
		if err != nil {
			return err
		}

		ctx := context.Background()
		provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
		if err != nil {
			return fmt.Errorf("LLM provider: %w", err)
		}
		gen := quizgen.New(provider, quizgen.DefaultConfig())

		avoid := make([]string, 0, bank.Count(level)+count)
		for _, q := range bank.Questions(level) {
			avoid = append(avoid, q.Text)
		}

		fmt.Printf("Generating %d %s question(s)", count, strings.ToUpper(level))
		if topic != "" {
			fmt.Printf(" about %q", topic)
		}
		fmt.Println("...")

		var added int
		for i := 1; i <= count; i++ {
			input := quizgen.GenerateInput{
				Level:      level,
				Topic:      topic,
				AvoidTexts: avoid,
			}
			q, err := generateOne(ctx, gen, input)
			if err != nil {
				slog.Debug("generation attempt failed", "level", level, "error", err)
				fmt.Printf("  %d/%d  failed: %v\n", i, count, err)
				continue
			}
			if err := bank.Add(*q); err != nil {
				return fmt.Errorf("add question to bank: %w", err)
			}
			avoid = append(avoid, q.Text)
			added++
			fmt.Printf("  %d/%d  %s\n", i, count, q.Text)
		}

		fmt.Printf("Added %d question(s); the %s bank now holds %d.\n",
			added, strings.ToUpper(level), bank.Count(level))
		if added < count {
			return fmt.Errorf("%d of %d generations failed", count-added, count)
		}
		return nil
	},
}

// generateOne retries transient rejections, matching the in-app
// generation policy.
func generateOne(ctx context.Context, gen quizgen.Generator, input quizgen.GenerateInput) (*question.Question, error) {
	var q *question.Question
	var err error
	for attempt := 0; attempt < generateAttempts; attempt++ {
		q, err = gen.Generate(ctx, input)
		if err == nil {
			return q, nil
		}
		var valErr *quizgen.ValidationError
		if errors.As(err, &valErr) && !valErr.Retryable {
			break
		}
	}
	return nil, err
}

func validLevel(level string) bool {
	for _, l := range difficulty.DefaultLevels {
		if l == level {
			return true
		}
	}
	return false
}

func init() {
	generateCmd.Flags().StringP("level", "l", "easy", "Difficulty level for the new questions")
	generateCmd.Flags().IntP("count", "n", 5, "Number of questions to generate")
	generateCmd.Flags().StringP("topic", "t", "", "Optional topic to focus the questions on")
}

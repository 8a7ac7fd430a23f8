package cmd

import (
	"fmt"
	"strings"

	"github.com/quizling/quizling/internal/difficulty"
	"github.com/spf13/cobra"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Inspect the question bank",
}

var bankListCmd = &cobra.Command{
	Use:   "list",
	Short: "List bank questions (optionally filtered by level)",
	RunE: func(cmd *cobra.Command, args []string) error {
		levelFilter, _ := cmd.Flags().GetString("level")

		if levelFilter != "" && !validLevel(levelFilter) {
			return fmt.Errorf("unknown level %q: choose one of %s",
				levelFilter, strings.Join(difficulty.DefaultLevels, ", "))
		}

		bank, err := openBank(cmd)
		if err != nil {
			return err
		}

		levels := bank.Levels()
		if levelFilter != "" {
			levels = []string{levelFilter}
		}

		fmt.Printf("%-8s  %-52s  %s\n", "Level", "Question", "Answer")
		fmt.Println(strings.Repeat("─", 88))

		var total int
		for _, level := range levels {
			for _, q := range bank.Questions(level) {
				text := q.Text
				if len(text) > 52 {
					text = text[:49] + "..."
				}
				fmt.Printf("%-8s  %-52s  %s\n", level, text, q.Answer)
				total++
			}
		}

		fmt.Printf("\n%d questions", total)
		if levelFilter == "" {
			counts := bank.Counts()
			parts := make([]string, 0, len(levels))
			for _, level := range levels {
				parts = append(parts, fmt.Sprintf("%s %d", level, counts[level]))
			}
			fmt.Printf(" (%s)", strings.Join(parts, ", "))
		}
		fmt.Println()
		return nil
	},
}

func init() {
	bankListCmd.Flags().String("level", "", "Only list questions for this level")

	bankCmd.AddCommand(bankListCmd)
}

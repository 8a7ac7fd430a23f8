package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print lifetime quiz statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		ctx := context.Background()
		progressSvc, err := loadProgress(ctx, st)
		if err != nil {
			return err
		}
		sum := progressSvc.Summary()

		if sum.TotalQuestions == 0 {
			fmt.Println("No quizzes recorded yet. Run `quizling` to play one.")
			return nil
		}

		fmt.Printf("Current level:   %s\n", strings.ToUpper(sum.CurrentLevel))
		fmt.Printf("Total score:     %d\n", sum.TotalScore)
		fmt.Printf("Questions:       %d answered, %d correct (%.0f%%)\n",
			sum.TotalQuestions, sum.TotalCorrect, sum.OverallAccuracy)
		fmt.Printf("Best quiz:       %.0f%%\n", sum.BestAccuracy)
		fmt.Printf("Quizzes played:  %d\n", sum.SessionsPlayed)

		fmt.Println()
		fmt.Printf("%-10s  %10s  %10s  %9s\n", "Level", "Answered", "Correct", "Accuracy")
		fmt.Println(strings.Repeat("─", 45))
		for _, lvl := range sum.Levels {
			t := sum.PerLevel[lvl]
			if t.Answered == 0 {
				continue
			}
			acc := 100 * float64(t.Correct) / float64(t.Answered)
			fmt.Printf("%-10s  %10d  %10d  %8.0f%%\n", lvl, t.Answered, t.Correct, acc)
		}
		return nil
	},
}

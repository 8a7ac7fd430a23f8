package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/quizling/quizling/internal/difficulty"
	"github.com/quizling/quizling/internal/question"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check question bank files against the schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveQuestionsDir(cmd)
		if err != nil {
			return fmt.Errorf("resolve questions dir: %w", err)
		}
		slog.Debug("validating question bank", "dir", dir)

		var invalid int
		for _, level := range difficulty.DefaultLevels {
			name := question.FileName(level)
			data, err := os.ReadFile(filepath.Join(dir, name))
			if os.IsNotExist(err) {
				fmt.Printf("%-24s  missing (seeded with defaults on first run)\n", name)
				continue
			}
			if err != nil {
				return fmt.Errorf("read %s: %w", name, err)
			}

			if err := question.ValidateFile(data); err != nil {
				invalid++
				fmt.Printf("%-24s  INVALID\n    %v\n", name, err)
				continue
			}
			fmt.Printf("%-24s  ok\n", name)
		}

		if invalid > 0 {
			return fmt.Errorf("%d invalid bank file(s)", invalid)
		}
		return nil
	},
}

package cmd

import (
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/quizling/quizling/internal/debuglog"
	"github.com/quizling/quizling/internal/question"
	"github.com/quizling/quizling/internal/store"
	"github.com/spf13/cobra"
)

// closeDebugLog flushes the debug log file, when one is configured.
var closeDebugLog = func() {}

var rootCmd = &cobra.Command{
	Use:   "quizling",
	Short: "Adaptive quiz game for the terminal",
	Long: "Quizling is a terminal quiz that adapts to you: answer well and the\n" +
		"questions get harder, struggle and they ease off. Progress, score and\n" +
		"level survive between runs.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env may carry QUIZLING_DEBUG and API keys, so load it before
		// the debug log is set up.
		if err := godotenv.Load(); err != nil {
			slog.Debug("no .env file loaded", "error", err)
		}
		closer, err := debuglog.Setup()
		if err != nil {
			return fmt.Errorf("set up debug log: %w", err)
		}
		closeDebugLog = closer
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		closeDebugLog()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides QUIZLING_DB env var)")
	rootCmd.PersistentFlags().String("questions", "", "Path to question bank directory (overrides QUIZLING_QUESTIONS env var)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(bankCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then QUIZLING_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// resolveQuestionsDir mirrors resolveDBPath for the question bank
// directory.
func resolveQuestionsDir(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("questions"); p != "" {
		return p, nil
	}
	return question.DefaultDir()
}

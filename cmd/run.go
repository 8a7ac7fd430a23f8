package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/quizling/quizling/internal/app"
	"github.com/quizling/quizling/internal/difficulty"
	"github.com/quizling/quizling/internal/llm"
	"github.com/quizling/quizling/internal/progress"
	"github.com/quizling/quizling/internal/question"
	"github.com/quizling/quizling/internal/quizgen"
	"github.com/quizling/quizling/internal/store"
	"github.com/spf13/cobra"
)

// runApp opens the store and question bank, builds the dependency set,
// and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := context.Background()

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	bank, err := openBank(cmd)
	if err != nil {
		return err
	}

	progressSvc, err := loadProgress(ctx, st)
	if err != nil {
		return err
	}

	opts := app.Options{
		Store:    st,
		Events:   st.EventRepo(),
		Bank:     bank,
		Progress: progressSvc,
	}

	// The LLM provider is optional; without one the app runs with the
	// bundled question bank and the generate entry explains the setup.
	provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
	switch {
	case err == nil:
		opts.Generator = quizgen.New(provider, quizgen.DefaultConfig())
	case isNoCredentials(err):
		fmt.Fprintln(os.Stderr, "No LLM API key found; question generation will be unavailable.")
		fmt.Fprintln(os.Stderr, "Set ANTHROPIC_API_KEY, OPENAI_API_KEY or GEMINI_API_KEY to enable it.")
	default:
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Question generation will be unavailable.")
	}

	return app.Run(opts)
}

func isNoCredentials(err error) bool {
	var noCreds *llm.ErrNoCredentials
	return errors.As(err, &noCreds)
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

func openBank(cmd *cobra.Command) (*question.Bank, error) {
	dir, err := resolveQuestionsDir(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve questions dir: %w", err)
	}
	bank, err := question.Open(dir, difficulty.DefaultLevels)
	if err != nil {
		return nil, fmt.Errorf("open question bank: %w", err)
	}
	return bank, nil
}

// loadProgress resumes lifetime progress from the latest snapshot, or
// starts fresh when none exists.
func loadProgress(ctx context.Context, st *store.Store) (*progress.Service, error) {
	snap, err := st.SnapshotRepo().Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("load progress snapshot: %w", err)
	}
	var data *store.SnapshotData
	if snap != nil {
		data = &snap.Data
	}
	return progress.NewService(data, st.SnapshotRepo(), difficulty.DefaultLevels), nil
}

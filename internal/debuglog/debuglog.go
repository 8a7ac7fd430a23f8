// Package debuglog routes slog output away from the terminal. The TUI
// owns stdout, so debug logs either append to the file named by
// QUIZLING_DEBUG or are discarded entirely.
package debuglog

import (
	"fmt"
	"log/slog"
	"os"
)

// EnvVar names the debug log file. Unset disables logging.
const EnvVar = "QUIZLING_DEBUG"

// Setup installs the process-wide default logger and returns a close
// function for the log file. With EnvVar unset the logger discards
// everything and the close function is a no-op.
func Setup() (func(), error) {
	path := os.Getenv(EnvVar)
	if path == "" {
		slog.SetDefault(slog.New(slog.DiscardHandler))
		return func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open debug log %s: %w", path, err)
	}

	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	slog.SetDefault(logger)

	slog.Debug("debug logging enabled", "path", path)
	return func() { f.Close() }, nil
}

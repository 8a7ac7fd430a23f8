package debuglog

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetup_Disabled(t *testing.T) {
	t.Setenv(EnvVar, "")

	closeFn, err := Setup()
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	defer closeFn()

	// Must not panic or write anywhere.
	slog.Debug("dropped")
}

func TestSetup_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	t.Setenv(EnvVar, path)

	closeFn, err := Setup()
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}

	slog.Debug("hello from test", "key", "value")
	closeFn()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "hello from test") {
		t.Errorf("log file missing entry, got %q", string(data))
	}
}

func TestSetup_BadPath(t *testing.T) {
	t.Setenv(EnvVar, filepath.Join(t.TempDir(), "missing", "debug.log"))

	if _, err := Setup(); err == nil {
		t.Error("expected an error for an unwritable path")
	}
}

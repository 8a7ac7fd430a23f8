package question

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
)

// bankFile is the on-disk shape of questions_<level>.json.
type bankFile struct {
	Questions []Question `json:"questions"`
}

// Bank holds the question pools for every configured level, backed by
// one JSON file per level. Missing files are seeded with the built-in
// starter questions on open.
type Bank struct {
	dir      string
	levels   []string
	byLevel  map[string][]Question
	lastPick map[string]string
}

// Open loads the bank files for the given levels from dir, creating the
// directory and seeding missing files as needed. Files are validated
// against the bank schema before use.
func Open(dir string, levels []string) (*Bank, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create question dir: %w", err)
	}

	b := &Bank{
		dir:      dir,
		levels:   append([]string(nil), levels...),
		byLevel:  make(map[string][]Question, len(levels)),
		lastPick: make(map[string]string, len(levels)),
	}

	for _, level := range levels {
		qs, err := b.loadLevel(level)
		if err != nil {
			return nil, fmt.Errorf("level %s: %w", level, err)
		}
		b.byLevel[level] = qs
	}
	return b, nil
}

func (b *Bank) loadLevel(level string) ([]Question, error) {
	path := b.filePath(level)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		qs := DefaultQuestions(level)
		for i := range qs {
			qs[i].ID = NewID()
		}
		if err := b.writeLevel(level, qs); err != nil {
			return nil, fmt.Errorf("seed defaults: %w", err)
		}
		return qs, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if err := ValidateFile(data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var f bankFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	for i := range f.Questions {
		if f.Questions[i].ID == "" {
			f.Questions[i].ID = NewID()
		}
		if f.Questions[i].Level == "" {
			f.Questions[i].Level = level
		}
	}
	return f.Questions, nil
}

func (b *Bank) writeLevel(level string, qs []Question) error {
	if qs == nil {
		qs = []Question{}
	}
	data, err := json.MarshalIndent(bankFile{Questions: qs}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	data = append(data, '\n')
	return os.WriteFile(b.filePath(level), data, 0o644)
}

// FileName returns the bank file name for a level.
func FileName(level string) string {
	return fmt.Sprintf("questions_%s.json", level)
}

func (b *Bank) filePath(level string) string {
	return filepath.Join(b.dir, FileName(level))
}

// Pick returns a random question for the level, avoiding the question
// served on the previous pick when the pool has more than one entry.
func (b *Bank) Pick(level string) (Question, error) {
	qs, ok := b.byLevel[level]
	if !ok {
		return Question{}, fmt.Errorf("%w: %q", ErrUnknownLevel, level)
	}
	if len(qs) == 0 {
		return Question{}, fmt.Errorf("%w: %q", ErrNoQuestions, level)
	}

	idx := rand.IntN(len(qs))
	if len(qs) > 1 && qs[idx].ID == b.lastPick[level] {
		idx = (idx + 1 + rand.IntN(len(qs)-1)) % len(qs)
	}

	q := qs[idx]
	b.lastPick[level] = q.ID
	return q, nil
}

// Add validates a question, assigns it an ID if it has none, and
// appends it to the level's pool and file.
func (b *Bank) Add(q Question) error {
	if _, ok := b.byLevel[q.Level]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLevel, q.Level)
	}
	if err := q.Validate(); err != nil {
		return fmt.Errorf("invalid question: %w", err)
	}
	if q.ID == "" {
		q.ID = NewID()
	}

	updated := append(b.byLevel[q.Level], q)
	if err := b.writeLevel(q.Level, updated); err != nil {
		return fmt.Errorf("write level %s: %w", q.Level, err)
	}
	b.byLevel[q.Level] = updated
	return nil
}

// Count returns the pool size for a level.
func (b *Bank) Count(level string) int {
	return len(b.byLevel[level])
}

// Counts returns the pool size per level.
func (b *Bank) Counts() map[string]int {
	counts := make(map[string]int, len(b.levels))
	for _, level := range b.levels {
		counts[level] = len(b.byLevel[level])
	}
	return counts
}

// Questions returns a copy of a level's pool.
func (b *Bank) Questions(level string) []Question {
	return append([]Question(nil), b.byLevel[level]...)
}

// Levels returns the configured level names in order.
func (b *Bank) Levels() []string {
	return append([]string(nil), b.levels...)
}

// Dir returns the bank's data directory.
func (b *Bank) Dir() string { return b.dir }

// DefaultDir resolves the question directory in priority order:
// 1. QUIZLING_QUESTIONS environment variable
// 2. $XDG_DATA_HOME/quizling/questions
// 3. ~/.local/share/quizling/questions
func DefaultDir() (string, error) {
	if p := os.Getenv("QUIZLING_QUESTIONS"); p != "" {
		return p, nil
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(dataHome, "quizling", "questions"), nil
}

package question

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

var testLevels = []string{"easy", "medium", "hard"}

func TestBank_OpenSeedsMissingFiles(t *testing.T) {
	dir := t.TempDir()
	b, err := Open(dir, testLevels)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	for _, level := range testLevels {
		if got := b.Count(level); got != 5 {
			t.Errorf("Count(%s) = %d, want 5", level, got)
		}
		path := filepath.Join(dir, "questions_"+level+".json")
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("seeded file missing: %v", err)
		}
		if err := ValidateFile(data); err != nil {
			t.Errorf("seeded file invalid: %v", err)
		}
	}
}

func TestBank_OpenLoadsExistingFile(t *testing.T) {
	dir := t.TempDir()
	file := bankFile{Questions: []Question{
		{
			Text:    "Which ocean is the largest?",
			Options: []string{"Atlantic", "Pacific", "Indian", "Arctic"},
			Answer:  "Pacific",
		},
	}}
	data, err := json.Marshal(file)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "questions_easy.json"), data, 0o644); err != nil {
		t.Fatal(err)
	}

	b, err := Open(dir, []string{"easy"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got := b.Count("easy"); got != 1 {
		t.Fatalf("Count = %d, want 1", got)
	}

	qs := b.Questions("easy")
	if qs[0].ID == "" {
		t.Error("loaded question has no assigned ID")
	}
	if qs[0].Level != "easy" {
		t.Errorf("Level = %q, want easy (filled from file level)", qs[0].Level)
	}
}

func TestBank_OpenRejectsMalformedFile(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "not json at all"},
		{"wrong shape", `{"items": []}`},
		{"bad option count", `{"questions":[{"question":"q","options":["a","b"],"correct_answer":"a"}]}`},
		{"missing answer", `{"questions":[{"question":"q","options":["a","b","c","d"]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "questions_easy.json")
			if err := os.WriteFile(path, []byte(tt.data), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Open(dir, []string{"easy"}); err == nil {
				t.Error("Open accepted a malformed bank file")
			}
		})
	}
}

func TestBank_PickAvoidsImmediateRepeat(t *testing.T) {
	dir := t.TempDir()
	b, err := Open(dir, []string{"easy"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	prev, err := b.Pick("easy")
	if err != nil {
		t.Fatalf("Pick: %v", err)
	}
	for i := 0; i < 50; i++ {
		q, err := b.Pick("easy")
		if err != nil {
			t.Fatalf("Pick: %v", err)
		}
		if q.ID == prev.ID {
			t.Fatalf("pick %d repeated question %q", i+1, q.Text)
		}
		prev = q
	}
}

func TestBank_PickSingleQuestionRepeats(t *testing.T) {
	dir := t.TempDir()
	b, err := Open(dir, []string{"custom"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	q := validQuestion()
	q.Level = "custom"
	if err := b.Add(q); err != nil {
		t.Fatalf("Add: %v", err)
	}

	first, err := b.Pick("custom")
	if err != nil {
		t.Fatalf("Pick: %v", err)
	}
	second, err := b.Pick("custom")
	if err != nil {
		t.Fatalf("Pick: %v", err)
	}
	if first.ID != second.ID {
		t.Error("single-question pool should serve the same question")
	}
}

func TestBank_PickErrors(t *testing.T) {
	dir := t.TempDir()
	b, err := Open(dir, []string{"custom"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if _, err := b.Pick("nope"); !errors.Is(err, ErrUnknownLevel) {
		t.Errorf("Pick(nope) = %v, want ErrUnknownLevel", err)
	}
	// "custom" has no starter set, so its pool is empty.
	if _, err := b.Pick("custom"); !errors.Is(err, ErrNoQuestions) {
		t.Errorf("Pick(custom) = %v, want ErrNoQuestions", err)
	}
}

func TestBank_AddPersists(t *testing.T) {
	dir := t.TempDir()
	b, err := Open(dir, []string{"easy"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	q := Question{
		Text:    "Which ocean is the largest?",
		Options: []string{"Atlantic", "Pacific", "Indian", "Arctic"},
		Answer:  "Pacific",
		Level:   "easy",
	}
	if err := b.Add(q); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if got := b.Count("easy"); got != 6 {
		t.Errorf("Count = %d, want 6", got)
	}

	// A fresh bank sees the addition.
	b2, err := Open(dir, []string{"easy"})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if got := b2.Count("easy"); got != 6 {
		t.Errorf("Count after reopen = %d, want 6", got)
	}

	found := false
	for _, got := range b2.Questions("easy") {
		if got.Text == q.Text {
			found = true
			if got.ID == "" {
				t.Error("persisted question has no ID")
			}
		}
	}
	if !found {
		t.Error("added question not present after reopen")
	}
}

func TestBank_AddRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	b, err := Open(dir, []string{"easy"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	q := validQuestion()
	q.Level = "nope"
	if err := b.Add(q); !errors.Is(err, ErrUnknownLevel) {
		t.Errorf("Add unknown level = %v, want ErrUnknownLevel", err)
	}

	q = validQuestion()
	q.Answer = "Rome"
	if err := b.Add(q); err == nil {
		t.Error("Add accepted a question whose answer is not an option")
	}
	if got := b.Count("easy"); got != 5 {
		t.Errorf("Count = %d after rejected adds, want 5", got)
	}
}

func TestBank_Counts(t *testing.T) {
	dir := t.TempDir()
	b, err := Open(dir, testLevels)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	counts := b.Counts()
	for _, level := range testLevels {
		if counts[level] != 5 {
			t.Errorf("Counts[%s] = %d, want 5", level, counts[level])
		}
	}
}

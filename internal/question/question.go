package question

import (
	"errors"
	"fmt"

	"github.com/oklog/ulid/v2"
)

// OptionCount is the number of answer choices every question carries.
const OptionCount = 4

var (
	ErrUnknownLevel = errors.New("unknown difficulty level")
	ErrNoQuestions  = errors.New("no questions available for level")
)

// Question is one multiple-choice quiz item. JSON tags match the bank
// file format, which predates the ID field; files without IDs load fine
// and get IDs assigned in memory.
type Question struct {
	ID      string   `json:"id,omitempty"`
	Text    string   `json:"question"`
	Options []string `json:"options"`
	Answer  string   `json:"correct_answer"`
	Level   string   `json:"difficulty"`
}

// NewID returns a fresh question ID.
func NewID() string {
	return ulid.Make().String()
}

// CorrectIndex returns the index of the correct answer within Options,
// or -1 if the answer is not among them.
func (q Question) CorrectIndex() int {
	for i, opt := range q.Options {
		if opt == q.Answer {
			return i
		}
	}
	return -1
}

// Validate checks the structural rules every bank entry must satisfy.
func (q Question) Validate() error {
	if q.Text == "" {
		return errors.New("question text is empty")
	}
	if len(q.Options) != OptionCount {
		return fmt.Errorf("question has %d options, want %d", len(q.Options), OptionCount)
	}
	seen := make(map[string]bool, len(q.Options))
	for i, opt := range q.Options {
		if opt == "" {
			return fmt.Errorf("option %d is empty", i+1)
		}
		if seen[opt] {
			return fmt.Errorf("duplicate option %q", opt)
		}
		seen[opt] = true
	}
	if q.CorrectIndex() < 0 {
		return fmt.Errorf("correct answer %q is not among the options", q.Answer)
	}
	return nil
}

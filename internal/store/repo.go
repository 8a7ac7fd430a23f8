package store

import (
	"context"
	"time"
)

// LevelTotals accumulates answered/correct counts for one difficulty
// level.
type LevelTotals struct {
	Answered int `json:"answered"`
	Correct  int `json:"correct"`
}

// SnapshotData is the persisted lifetime progress payload. Counters are
// cumulative across sessions; CurrentLevel is the level to resume at.
type SnapshotData struct {
	Version        int                    `json:"version"`
	CurrentLevel   string                 `json:"current_level"`
	TotalQuestions int                    `json:"total_questions"`
	TotalCorrect   int                    `json:"total_correct"`
	TotalScore     int                    `json:"total_score"`
	BestAccuracy   float64                `json:"best_accuracy"`
	SessionsPlayed int                    `json:"sessions_played"`
	PerLevel       map[string]LevelTotals `json:"per_level,omitempty"`
}

// Snapshot is a point-in-time capture of lifetime progress.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages progress snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune deletes all but the keep most recent snapshots.
	Prune(ctx context.Context, keep int) error
}

// AnswerEventData captures one graded answer.
type AnswerEventData struct {
	SessionID     string
	QuestionID    string
	Level         string
	QuestionText  string
	CorrectAnswer string
	GivenAnswer   string
	Correct       bool
}

// AnswerEvent is a stored answer event.
type AnswerEvent struct {
	ID        string
	Sequence  int64
	Timestamp time.Time
	AnswerEventData
}

// SessionEventData captures a session boundary (start or end).
type SessionEventData struct {
	SessionID       string
	Action          string // "start" or "end"
	QuestionsServed int
	CorrectAnswers  int
	Score           int
	FinalLevel      string
	DurationSecs    int
}

// LLMRequestEventData captures a single LLM API call, including the
// full request and response bodies for later inspection.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM request event.
type LLMRequestEvent struct {
	ID        string
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMPurposeUsage aggregates LLM usage for one purpose label.
type LLMPurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates LLM usage for one model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to domain events. Every
// event gets an ID and a global sequence number so events of different
// types stay ordered relative to each other.
type EventRepo interface {
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error
	AppendSessionEvent(ctx context.Context, data SessionEventData) error
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// RecentAnswers returns the most recent answer events, newest first.
	RecentAnswers(ctx context.Context, limit int) ([]AnswerEvent, error)

	// LevelBreakdown aggregates answered/correct counts per level over
	// all recorded answer events.
	LevelBreakdown(ctx context.Context) (map[string]LevelTotals, error)

	// RecentLLMRequests returns the most recent LLM request events,
	// newest first.
	RecentLLMRequests(ctx context.Context, limit int) ([]LLMRequestEvent, error)

	// GetLLMRequest returns the event with the given ID, or nil if it
	// does not exist.
	GetLLMRequest(ctx context.Context, id string) (*LLMRequestEvent, error)

	// LLMUsageByPurpose aggregates call counts, token usage and latency
	// per purpose label.
	LLMUsageByPurpose(ctx context.Context) ([]LLMPurposeUsage, error)

	// LLMUsageByModel aggregates call counts and token usage per model.
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}

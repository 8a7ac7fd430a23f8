package progress

import (
	"context"
	"fmt"
	"time"

	"github.com/quizling/quizling/internal/difficulty"
	"github.com/quizling/quizling/internal/store"
)

// snapshotVersion is the current SnapshotData payload version.
const snapshotVersion = 1

// keepSnapshots bounds how many historical snapshots stay in the store.
const keepSnapshots = 20

// SessionResult is what a finished quiz session contributes to lifetime
// progress.
type SessionResult struct {
	// FinalLevel is the level the player ended the session on.
	FinalLevel string

	// Answered and Correct count the session's graded questions.
	Answered int
	Correct  int

	// Score is the total score earned this session.
	Score int

	// PerLevel breaks the session's answers down by level.
	PerLevel map[string]store.LevelTotals
}

// Service merges session results into lifetime progress and persists
// the result as snapshots.
type Service struct {
	snapshots store.SnapshotRepo
	levels    []string
	data      store.SnapshotData
}

// NewService creates a progress service from the latest snapshot data.
// A nil snap starts fresh at the first level with zeroed counters.
// levels is the ordered level sequence; empty falls back to the
// default ladder.
func NewService(snap *store.SnapshotData, snapshots store.SnapshotRepo, levels []string) *Service {
	if len(levels) == 0 {
		levels = difficulty.DefaultLevels
	}

	s := &Service{
		snapshots: snapshots,
		levels:    append([]string(nil), levels...),
	}

	if snap == nil {
		s.data = initialData(s.levels)
		return s
	}

	s.data = *snap
	if s.data.Version == 0 {
		s.data.Version = snapshotVersion
	}
	if s.data.CurrentLevel == "" {
		s.data.CurrentLevel = s.levels[0]
	}

	// Copy the per-level map so we never mutate the caller's snapshot,
	// and backfill levels older snapshots didn't track.
	perLevel := make(map[string]store.LevelTotals, len(s.levels))
	for name, totals := range s.data.PerLevel {
		perLevel[name] = totals
	}
	for _, name := range s.levels {
		if _, ok := perLevel[name]; !ok {
			perLevel[name] = store.LevelTotals{}
		}
	}
	s.data.PerLevel = perLevel

	return s
}

func initialData(levels []string) store.SnapshotData {
	perLevel := make(map[string]store.LevelTotals, len(levels))
	for _, name := range levels {
		perLevel[name] = store.LevelTotals{}
	}
	return store.SnapshotData{
		Version:      snapshotVersion,
		CurrentLevel: levels[0],
		PerLevel:     perLevel,
	}
}

// CurrentLevel returns the level the next session should resume at.
func (s *Service) CurrentLevel() string {
	return s.data.CurrentLevel
}

// Data returns a copy of the current lifetime progress payload.
func (s *Service) Data() store.SnapshotData {
	out := s.data
	out.PerLevel = make(map[string]store.LevelTotals, len(s.data.PerLevel))
	for name, totals := range s.data.PerLevel {
		out.PerLevel[name] = totals
	}
	return out
}

// ApplySession merges a finished session into lifetime progress and
// saves a new snapshot. Counters add; BestAccuracy is a high-water
// mark over per-session accuracy. Sessions with no graded answers
// count toward neither SessionsPlayed nor BestAccuracy.
func (s *Service) ApplySession(ctx context.Context, res SessionResult) error {
	if res.FinalLevel != "" {
		s.data.CurrentLevel = res.FinalLevel
	}
	s.data.TotalQuestions += res.Answered
	s.data.TotalCorrect += res.Correct
	s.data.TotalScore += res.Score

	if res.Answered > 0 {
		s.data.SessionsPlayed++
		accuracy := 100 * float64(res.Correct) / float64(res.Answered)
		if accuracy > s.data.BestAccuracy {
			s.data.BestAccuracy = accuracy
		}
	}

	for name, totals := range res.PerLevel {
		cur := s.data.PerLevel[name]
		cur.Answered += totals.Answered
		cur.Correct += totals.Correct
		s.data.PerLevel[name] = cur
	}

	snap := &store.Snapshot{
		Timestamp: time.Now(),
		Data:      s.Data(),
	}
	if err := s.snapshots.Save(ctx, snap); err != nil {
		return fmt.Errorf("save progress snapshot: %w", err)
	}
	if err := s.snapshots.Prune(ctx, keepSnapshots); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}

// Reset discards all in-memory progress and starts over at the first
// level. Callers are expected to wipe the store alongside this.
func (s *Service) Reset() {
	s.data = initialData(s.levels)
}

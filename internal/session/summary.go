package session

import (
	"time"

	"github.com/quizling/quizling/internal/progress"
	"github.com/quizling/quizling/internal/store"
)

// Summary holds the data displayed on the summary screen.
type Summary struct {
	Duration       time.Duration
	TotalQuestions int
	TotalCorrect   int
	Accuracy       float64 // percent
	Score          int
	FinalLevel     string
	Promotions     int
	Demotions      int

	// Levels is the ordered level sequence, for stable display.
	Levels   []string
	PerLevel map[string]store.LevelTotals
}

// BuildSummary creates a Summary from the current session state.
func BuildSummary(state *State) *Summary {
	var accuracy float64
	if state.TotalQuestions > 0 {
		accuracy = 100 * float64(state.TotalCorrect) / float64(state.TotalQuestions)
	}

	perLevel := make(map[string]store.LevelTotals, len(state.PerLevel))
	for name, totals := range state.PerLevel {
		perLevel[name] = totals
	}

	return &Summary{
		Duration:       state.Elapsed,
		TotalQuestions: state.TotalQuestions,
		TotalCorrect:   state.TotalCorrect,
		Accuracy:       accuracy,
		Score:          state.Score,
		FinalLevel:     state.Controller.LevelName(),
		Promotions:     state.Promotions,
		Demotions:      state.Demotions,
		Levels:         state.Controller.Levels(),
		PerLevel:       perLevel,
	}
}

// Result converts the session state into its lifetime progress
// contribution.
func Result(state *State) progress.SessionResult {
	perLevel := make(map[string]store.LevelTotals, len(state.PerLevel))
	for name, totals := range state.PerLevel {
		perLevel[name] = totals
	}

	return progress.SessionResult{
		FinalLevel: state.Controller.LevelName(),
		Answered:   state.TotalQuestions,
		Correct:    state.TotalCorrect,
		Score:      state.Score,
		PerLevel:   perLevel,
	}
}

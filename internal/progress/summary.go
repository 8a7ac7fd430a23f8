package progress

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/quizling/quizling/internal/store"
)

// Summary is the lifetime progress report shown on the stats screen
// and by the stats command.
type Summary struct {
	CurrentLevel    string
	TotalQuestions  int
	TotalCorrect    int
	OverallAccuracy float64 // percent, derived from totals
	BestAccuracy    float64 // percent
	TotalScore      int
	SessionsPlayed  int

	// Levels is the ordered level sequence, for stable display.
	Levels   []string
	PerLevel map[string]store.LevelTotals
}

// Summary builds a display report from the current lifetime progress.
func (s *Service) Summary() Summary {
	sum := Summary{
		CurrentLevel:   s.data.CurrentLevel,
		TotalQuestions: s.data.TotalQuestions,
		TotalCorrect:   s.data.TotalCorrect,
		BestAccuracy:   s.data.BestAccuracy,
		TotalScore:     s.data.TotalScore,
		SessionsPlayed: s.data.SessionsPlayed,
		Levels:         append([]string(nil), s.levels...),
		PerLevel:       s.Data().PerLevel,
	}
	if sum.TotalQuestions > 0 {
		sum.OverallAccuracy = 100 * float64(sum.TotalCorrect) / float64(sum.TotalQuestions)
	}
	return sum
}

// exportReport is the on-disk format written by Export.
type exportReport struct {
	store.SnapshotData
	ExportedAt string `json:"exported_at"`
}

// Export writes the current lifetime progress as indented JSON to the
// given path.
func (s *Service) Export(path string) error {
	report := exportReport{
		SnapshotData: s.Data(),
		ExportedAt:   time.Now().UTC().Format(time.RFC3339),
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal progress report: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write progress report: %w", err)
	}
	return nil
}

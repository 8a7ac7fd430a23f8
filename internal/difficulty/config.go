package difficulty

import "fmt"

// Default tuning. Matches the tuning the level progression was calibrated
// against: a five-answer window promoting at 80% and demoting at 40%.
const (
	DefaultWindowSize         = 5
	DefaultPromotionThreshold = 0.80
	DefaultDemotionThreshold  = 0.40
	DefaultKeepOnTransition   = 2
)

// DefaultLevels is the standard tier ladder, easiest first.
var DefaultLevels = []string{"easy", "medium", "hard"}

// Config holds the controller tuning, fixed for the instance lifetime.
type Config struct {
	// Levels is the ordered tier ladder, easiest first. Names must be
	// unique; they are display labels, identity is the index.
	Levels []string

	// WindowSize is the capacity of the recent-answer window. No
	// promotion or demotion is evaluated until the window has filled.
	WindowSize int

	// PromotionThreshold is the windowed accuracy (fraction in (0,1])
	// at or above which the controller moves up a tier.
	PromotionThreshold float64

	// DemotionThreshold is the windowed accuracy (fraction in
	// [0,PromotionThreshold)) at or below which the controller moves
	// down a tier.
	DemotionThreshold float64

	// KeepOnTransition is how many of the most recent outcomes survive
	// a level change. Keeping a short tail lets a strong run continue
	// counting toward the next promotion without letting stale results
	// from the previous tier force an immediate reversal.
	KeepOnTransition int
}

// DefaultConfig returns the standard easy/medium/hard tuning.
func DefaultConfig() Config {
	return Config{
		Levels:             append([]string(nil), DefaultLevels...),
		WindowSize:         DefaultWindowSize,
		PromotionThreshold: DefaultPromotionThreshold,
		DemotionThreshold:  DefaultDemotionThreshold,
		KeepOnTransition:   DefaultKeepOnTransition,
	}
}

// ConfigError reports a rejected controller configuration.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("difficulty config: %s: %s", e.Field, e.Message)
}

// Validate checks the configuration. A controller is never constructed
// from an invalid config; thresholds that cross or an unfillable window
// would make the state machine oscillate or wedge.
func (c Config) Validate() error {
	if len(c.Levels) == 0 {
		return &ConfigError{Field: "levels", Message: "at least one level is required"}
	}
	seen := make(map[string]bool, len(c.Levels))
	for _, name := range c.Levels {
		if name == "" {
			return &ConfigError{Field: "levels", Message: "level names must be non-empty"}
		}
		if seen[name] {
			return &ConfigError{Field: "levels", Message: fmt.Sprintf("duplicate level name %q", name)}
		}
		seen[name] = true
	}
	if c.WindowSize < 1 {
		return &ConfigError{Field: "windowSize", Message: "must be at least 1"}
	}
	if c.PromotionThreshold <= 0 || c.PromotionThreshold > 1 {
		return &ConfigError{Field: "promotionThreshold", Message: "must be in (0, 1]"}
	}
	if c.DemotionThreshold < 0 {
		return &ConfigError{Field: "demotionThreshold", Message: "must not be negative"}
	}
	if c.DemotionThreshold >= c.PromotionThreshold {
		return &ConfigError{Field: "demotionThreshold", Message: "must be below promotionThreshold"}
	}
	if c.KeepOnTransition < 0 {
		return &ConfigError{Field: "keepOnTransition", Message: "must not be negative"}
	}
	return nil
}

package difficulty

import (
	"errors"
	"fmt"
)

// Level is an index into the controller's ordered level list. Ordering
// and identity live in the index; the name is a display label.
type Level int

// ErrInvalidLevel is returned when a forced level is not a member of the
// configured level sequence. The controller state is left untouched.
var ErrInvalidLevel = errors.New("level is not in the configured sequence")

// Controller adjusts question difficulty from a stream of answer
// outcomes. It keeps a fixed-capacity window of the most recent results
// and moves along the level ladder when windowed accuracy crosses the
// promotion or demotion threshold.
//
// A controller is owned by a single quiz session and is not safe for
// concurrent use.
type Controller struct {
	cfg     Config
	levels  []string
	level   Level
	history []bool
}

// New creates a controller at the lowest level with an empty history.
// The config is validated as given; start from DefaultConfig to
// override individual fields.
func New(cfg Config) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	levels := append([]string(nil), cfg.Levels...)
	return &Controller{cfg: cfg, levels: levels}, nil
}

// NewDefault creates a controller with DefaultConfig.
func NewDefault() *Controller {
	c, err := New(DefaultConfig())
	if err != nil {
		panic(fmt.Sprintf("difficulty: default config invalid: %v", err))
	}
	return c
}

// RecordOutcome feeds one graded answer into the window and evaluates a
// level change. It returns the Transition if the answer caused one, nil
// otherwise. Nothing is evaluated until the window has filled.
//
// Promotion is checked before demotion; the two are mutually exclusive
// per call. The ordering only matters when thresholds are configured to
// overlap, but it is fixed regardless.
func (c *Controller) RecordOutcome(correct bool) *Transition {
	c.history = append(c.history, correct)
	if len(c.history) > c.cfg.WindowSize {
		c.history = c.history[len(c.history)-c.cfg.WindowSize:]
	}
	if len(c.history) < c.cfg.WindowSize {
		return nil
	}

	accuracy := float64(c.correctCount()) / float64(c.cfg.WindowSize)

	if accuracy >= c.cfg.PromotionThreshold && c.CanPromote() {
		from := c.level
		c.level++
		c.trimAfterTransition()
		return &Transition{
			Direction: DirectionPromoted,
			From:      from,
			To:        c.level,
			FromName:  c.levels[from],
			ToName:    c.levels[c.level],
		}
	}

	if accuracy <= c.cfg.DemotionThreshold && c.CanDemote() {
		from := c.level
		c.level--
		c.trimAfterTransition()
		return &Transition{
			Direction: DirectionDemoted,
			From:      from,
			To:        c.level,
			FromName:  c.levels[from],
			ToName:    c.levels[c.level],
		}
	}

	return nil
}

// trimAfterTransition keeps only the most recent KeepOnTransition
// outcomes. Carrying the full window across a level change would let
// results earned on the previous tier immediately trigger the reverse
// move.
func (c *Controller) trimAfterTransition() {
	if len(c.history) > c.cfg.KeepOnTransition {
		c.history = c.history[len(c.history)-c.cfg.KeepOnTransition:]
	}
}

func (c *Controller) correctCount() int {
	n := 0
	for _, ok := range c.history {
		if ok {
			n++
		}
	}
	return n
}

// Accuracy returns the percentage of correct outcomes over the current
// history. It divides by the number of recorded outcomes, not the
// window capacity, so it is meaningful before the window fills.
// Returns 0 with an empty history.
func (c *Controller) Accuracy() float64 {
	if len(c.history) == 0 {
		return 0
	}
	return 100 * float64(c.correctCount()) / float64(len(c.history))
}

// ForceLevel jumps directly to the given level and clears the history.
// Returns ErrInvalidLevel, leaving state untouched, if the level is out
// of range.
func (c *Controller) ForceLevel(level Level) error {
	if level < 0 || int(level) >= len(c.levels) {
		return fmt.Errorf("%w: index %d of %d levels", ErrInvalidLevel, level, len(c.levels))
	}
	c.level = level
	c.history = c.history[:0]
	return nil
}

// ForceLevelName is ForceLevel by display name, used when restoring a
// persisted level across sessions.
func (c *Controller) ForceLevelName(name string) error {
	for i, n := range c.levels {
		if n == name {
			return c.ForceLevel(Level(i))
		}
	}
	return fmt.Errorf("%w: %q", ErrInvalidLevel, name)
}

// Reset returns to the lowest level with an empty history.
func (c *Controller) Reset() {
	c.level = 0
	c.history = c.history[:0]
}

// Level returns the current level.
func (c *Controller) Level() Level { return c.level }

// LevelName returns the current level's display name.
func (c *Controller) LevelName() string { return c.levels[c.level] }

// LevelCount returns the number of configured levels.
func (c *Controller) LevelCount() int { return len(c.levels) }

// Levels returns the ordered level names, easiest first.
func (c *Controller) Levels() []string {
	return append([]string(nil), c.levels...)
}

// NameOf returns the display name for a level, or "" if out of range.
func (c *Controller) NameOf(level Level) string {
	if level < 0 || int(level) >= len(c.levels) {
		return ""
	}
	return c.levels[level]
}

// CanPromote reports whether a harder level exists.
func (c *Controller) CanPromote() bool { return int(c.level) < len(c.levels)-1 }

// CanDemote reports whether an easier level exists.
func (c *Controller) CanDemote() bool { return c.level > 0 }

// PeekNext returns the level above the current one, saturating at the
// top of the ladder.
func (c *Controller) PeekNext() Level {
	if c.CanPromote() {
		return c.level + 1
	}
	return c.level
}

// PeekPrevious returns the level below the current one, saturating at
// the bottom of the ladder.
func (c *Controller) PeekPrevious() Level {
	if c.CanDemote() {
		return c.level - 1
	}
	return c.level
}

// WindowFill returns how many outcomes are currently in the window.
func (c *Controller) WindowFill() int { return len(c.history) }

// WindowSize returns the window capacity.
func (c *Controller) WindowSize() int { return c.cfg.WindowSize }

// Info is a display snapshot of the controller state.
type Info struct {
	Level      Level
	LevelName  string
	LevelCount int
	Accuracy   float64
	WindowFill int
	WindowSize int
}

// Info returns the current state for headers and stats output.
func (c *Controller) Info() Info {
	return Info{
		Level:      c.level,
		LevelName:  c.LevelName(),
		LevelCount: len(c.levels),
		Accuracy:   c.Accuracy(),
		WindowFill: len(c.history),
		WindowSize: c.cfg.WindowSize,
	}
}

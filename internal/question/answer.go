package question

import (
	"strconv"
	"strings"
)

// CheckAnswer reports whether a player's answer matches the question's
// correct answer. The answer may be the 1-based number of an option or
// the option text itself; text comparison is case-insensitive.
func CheckAnswer(given string, q Question) bool {
	given = strings.TrimSpace(given)
	if given == "" {
		return false
	}

	// Try matching by option number first.
	if idx, err := strconv.Atoi(given); err == nil && idx >= 1 && idx <= len(q.Options) {
		return strings.EqualFold(
			strings.TrimSpace(q.Options[idx-1]),
			strings.TrimSpace(q.Answer),
		)
	}

	return strings.EqualFold(given, strings.TrimSpace(q.Answer))
}

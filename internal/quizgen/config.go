package quizgen

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0). Question
	// generation wants variety, so the default is on the high side.
	Temperature float64

	// MaxAvoidTexts caps how many prior question texts go into the
	// prompt for deduplication.
	MaxAvoidTexts int
}

// DefaultConfig returns a Config with recommended defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:     512,
		Temperature:   0.8,
		MaxAvoidTexts: 12,
	}
}

package quizgen

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators run in order; the first failure rejects the quiz.
	Validators []Validator

	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the standard validator chain.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&CountValidator{},
		},
		MaxTokens:   4096,
		Temperature: 0.7,
	}
}

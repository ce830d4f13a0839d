package quizgen

import "fmt"

// Validator checks a generated quiz. Implementations are stateless.
type Validator interface {
	Name() string
	Validate(q *Quiz, in Input) *ValidationError
}

// ValidationError describes why a quiz was rejected.
type ValidationError struct {
	Validator string
	Question  int // question ID, 0 when the failure is quiz-wide
	Message   string
}

func (e *ValidationError) Error() string {
	if e.Question == 0 {
		return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
	}
	return fmt.Sprintf("validator %q: question %d: %s", e.Validator, e.Question, e.Message)
}

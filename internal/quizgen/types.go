// Package quizgen asks a model for multiple-choice quizzes and checks the
// result before anyone grades against it.
package quizgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/quizmind/internal/grading"
)

// Difficulty is the requested quiz level.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties lists the accepted levels in ascending order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// ParseDifficulty accepts a level name in any case.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Difficulties {
		if d == known {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q (want easy, medium or hard)", s)
}

// OptionsPerQuestion is fixed: every question offers four choices.
const OptionsPerQuestion = 4

// DefaultCount is the number of questions per quiz.
const DefaultCount = 5

// Input describes the quiz to generate.
type Input struct {
	Topic      string
	Difficulty Difficulty

	// Count defaults to DefaultCount when zero.
	Count int
}

func (in Input) count() int {
	if in.Count <= 0 {
		return DefaultCount
	}
	return in.Count
}

// Quiz is a generated quiz as written to disk by `quizmind quiz generate`
// and read back by `quiz submit`.
type Quiz struct {
	Topic      string             `json:"topic"`
	Difficulty Difficulty         `json:"difficulty"`
	Questions  []grading.Question `json:"questions"`
}

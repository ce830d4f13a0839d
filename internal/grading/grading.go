// Package grading scores submitted quizzes and aggregates historical
// performance.
package grading

import "math"

// Question is one multiple-choice quiz question.
type Question struct {
	ID          int      `json:"id"`
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation,omitempty"`
}

// Summary messages, from best to worst.
const (
	SummaryPerfect = "Perfect Score! Outstanding performance."
	SummaryGood    = "Good job! Keep practicing."
	SummaryWeak    = "Needs improvement. Don't give up!"
)

// Result is the outcome of grading one submission.
type Result struct {
	Score      int     `json:"score"`
	Efficiency float64 `json:"efficiency"`
	Summary    string  `json:"summary"`
}

// Grade counts the answers that exactly equal the correct answer of the
// question with the same ID. Efficiency is correct answers per second.
func Grade(questions []Question, answers map[int]string, timeTakenSeconds int) Result {
	score := 0
	for _, q := range questions {
		if a, ok := answers[q.ID]; ok && a == q.Answer {
			score++
		}
	}

	efficiency := 0.0
	if timeTakenSeconds > 0 {
		efficiency = float64(score) / float64(timeTakenSeconds)
	}

	return Result{
		Score:      score,
		Efficiency: roundTo(efficiency, 4),
		Summary:    summarize(score, len(questions)),
	}
}

func summarize(score, total int) string {
	switch {
	case score == total:
		return SummaryPerfect
	case float64(score) > float64(total)/2:
		return SummaryGood
	default:
		return SummaryWeak
	}
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

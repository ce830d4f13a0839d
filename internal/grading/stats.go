package grading

import "github.com/abhisek/quizmind/internal/attempt"

// Summary is the part of an attempt the aggregator needs.
type Summary struct {
	Score            int `json:"score"`
	TotalQuestions   int `json:"totalQuestions"`
	TimeTakenSeconds int `json:"timeTakenSeconds"`
}

// Stats aggregates a learner's attempts.
type Stats struct {
	TotalQuizzes   int     `json:"totalQuizzes"`
	TotalTimeSpent int     `json:"totalTimeSpent"`
	AverageScore   float64 `json:"averageScore"`
}

// Aggregate totals the attempts. AverageScore is the percentage of all
// questions answered correctly, rounded to 2 decimals, or 0 without questions.
func Aggregate(attempts []Summary) Stats {
	var score, questions, seconds int
	for _, a := range attempts {
		score += a.Score
		questions += a.TotalQuestions
		seconds += a.TimeTakenSeconds
	}

	avg := 0.0
	if questions > 0 {
		avg = roundTo(float64(score)/float64(questions)*100, 2)
	}

	return Stats{
		TotalQuizzes:   len(attempts),
		TotalTimeSpent: seconds,
		AverageScore:   avg,
	}
}

// SummariesOf projects stored attempts onto Summary.
func SummariesOf(history []attempt.Record) []Summary {
	out := make([]Summary, len(history))
	for i, a := range history {
		out[i] = Summary{
			Score:            a.Score,
			TotalQuestions:   a.TotalQuestions,
			TimeTakenSeconds: a.TimeTakenSeconds,
		}
	}
	return out
}

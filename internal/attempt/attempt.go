// Package attempt defines the completed-quiz record consumed by the
// analytics packages.
package attempt

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Record is one completed quiz. Histories are ordered ascending by
// Timestamp; callers guarantee the order, nothing in this module sorts.
type Record struct {
	// ID and Learner are storage metadata. The analytics packages ignore them.
	ID      string `json:"id,omitempty"`
	Learner string `json:"learner,omitempty"`

	Topic            string    `json:"topic"`
	Difficulty       string    `json:"difficulty,omitempty"`
	Score            int       `json:"score"`
	TotalQuestions   int       `json:"totalQuestions"`
	TimeTakenSeconds int       `json:"timeTakenSeconds"`
	Timestamp        time.Time `json:"timestamp"`
}

// Ratio returns the fraction of questions answered correctly (0.0-1.0).
// Returns 0 when the quiz had no questions.
func (r Record) Ratio() float64 {
	if r.TotalQuestions <= 0 {
		return 0
	}
	return float64(r.Score) / float64(r.TotalQuestions)
}

// Percentage returns Ratio on a 0-100 scale.
func (r Record) Percentage() float64 {
	return r.Ratio() * 100
}

// Quality maps the attempt onto the 0-5 recall quality scale.
func (r Record) Quality() int {
	return int(math.Round(r.Ratio() * 5))
}

// Epoch returns the attempt timestamp in unix seconds.
func (r Record) Epoch() int64 {
	return r.Timestamp.Unix()
}

// ErrEmptyTopic is returned by Validate when the topic is blank.
var ErrEmptyTopic = errors.New("topic is required")

// Validate checks the record before it is stored.
func (r Record) Validate() error {
	if r.Topic == "" {
		return ErrEmptyTopic
	}
	if r.Score < 0 || r.TotalQuestions < 0 || r.TimeTakenSeconds < 0 {
		return fmt.Errorf("score, total questions and time must be non-negative")
	}
	if r.Score > r.TotalQuestions {
		return fmt.Errorf("score %d exceeds total questions %d", r.Score, r.TotalQuestions)
	}
	return nil
}

package spacedrep

import (
	"math"
	"time"
)

// TopicState holds the spaced repetition state for a single topic.
// It is rebuilt from the attempt history on every call and never stored.
type TopicState struct {
	Topic           string  `json:"topic"`
	EasinessFactor  float64 `json:"easiness_factor"`
	Interval        int     `json:"interval"`
	Repetitions     int     `json:"repetitions"`
	LastReviewEpoch int64   `json:"last_review_epoch"`
}

func newTopicState(topic string) *TopicState {
	return &TopicState{
		Topic:          topic,
		EasinessFactor: InitialEasiness,
	}
}

// Review applies one attempt of the given quality (0-5) reviewed at epoch.
func (ts *TopicState) Review(quality int, epoch int64) {
	ts.LastReviewEpoch = epoch

	if quality < PassQuality {
		ts.Repetitions = 0
		ts.Interval = FailInterval
		return
	}

	ts.Repetitions++
	switch ts.Repetitions {
	case 1:
		ts.Interval = FirstInterval
	case 2:
		ts.Interval = SecondInterval
	default:
		ts.Interval = int(math.Round(float64(ts.Interval) * ts.EasinessFactor))
	}

	diff := float64(5 - quality)
	ts.EasinessFactor += 0.1 - diff*(0.08+diff*0.02)
	if ts.EasinessFactor < MinEasiness {
		ts.EasinessFactor = MinEasiness
	}
}

// NextDueEpoch returns the unix second at which the topic is next due.
func (ts *TopicState) NextDueEpoch() int64 {
	return ts.LastReviewEpoch + int64(ts.Interval)*SecondsPerDay
}

// IsDueAt returns true if the topic is due at or before nowEpoch.
func (ts *TopicState) IsDueAt(nowEpoch int64) bool {
	return ts.NextDueEpoch() <= nowEpoch
}

// IsDue returns true if the topic is due for review at now.
func (ts *TopicState) IsDue(now time.Time) bool {
	return ts.IsDueAt(now.Unix())
}

// DueInDaysAt returns whole days until the topic is due, floored.
// Zero means due today, negative means overdue.
func (ts *TopicState) DueInDaysAt(nowEpoch int64) int {
	return int(floorDiv(ts.NextDueEpoch()-nowEpoch, SecondsPerDay))
}

// DueInDays is DueInDaysAt for a time.Time.
func (ts *TopicState) DueInDays(now time.Time) int {
	return ts.DueInDaysAt(now.Unix())
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

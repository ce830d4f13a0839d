package spacedrep

import (
	"time"

	"github.com/abhisek/quizmind/internal/attempt"
)

// TopicStates is an insertion-ordered map of topic to state.
type TopicStates struct {
	order  []string
	states map[string]*TopicState
}

// Fold replays the history once, in the order given, and returns the
// resulting per-topic state in first-seen order.
func Fold(history []attempt.Record) *TopicStates {
	ts := &TopicStates{states: make(map[string]*TopicState)}
	for _, a := range history {
		st, ok := ts.states[a.Topic]
		if !ok {
			st = newTopicState(a.Topic)
			ts.states[a.Topic] = st
			ts.order = append(ts.order, a.Topic)
		}
		st.Review(a.Quality(), a.Epoch())
	}
	return ts
}

// Get returns the state for topic, or nil if the topic was never seen.
func (ts *TopicStates) Get(topic string) *TopicState {
	return ts.states[topic]
}

// Len returns the number of distinct topics.
func (ts *TopicStates) Len() int {
	return len(ts.order)
}

// All returns the states in first-seen order.
func (ts *TopicStates) All() []*TopicState {
	out := make([]*TopicState, 0, len(ts.order))
	for _, topic := range ts.order {
		out = append(out, ts.states[topic])
	}
	return out
}

// DueReview is a topic that should be reviewed now.
type DueReview struct {
	Topic     string `json:"topic"`
	Interval  int    `json:"interval"`
	DueInDays int    `json:"dueInDays"`
}

// DueReviews returns the topics due at now, in first-seen order.
func DueReviews(history []attempt.Record, now time.Time) []DueReview {
	return DueReviewsAt(history, now.Unix())
}

// DueReviewsAt is DueReviews with now given in unix seconds.
func DueReviewsAt(history []attempt.Record, nowEpoch int64) []DueReview {
	due := []DueReview{}
	for _, st := range Fold(history).All() {
		if !st.IsDueAt(nowEpoch) {
			continue
		}
		due = append(due, DueReview{
			Topic:     st.Topic,
			Interval:  st.Interval,
			DueInDays: st.DueInDaysAt(nowEpoch),
		})
	}
	return due
}

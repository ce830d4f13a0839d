// Package recommend picks the topic a learner should study next from their
// attempt history.
package recommend

import "github.com/abhisek/quizmind/internal/attempt"

// DefaultTopic is recommended when there is nothing to rank.
const DefaultTopic = "General Knowledge"

const (
	ReasonFirstQuiz = "Start your first quiz!"
	ReasonFallback  = "Start your journey!"
	ReasonRanked    = "Based on your performance and recency."
)

// Weight multipliers. Lower average scores and older topics weigh more.
const (
	ScoreMultiplier   = 0.7
	RecencyMultiplier = 2.0
)

// Recommendation is the single next-study suggestion.
type Recommendation struct {
	Recommendation string `json:"recommendation"`
	Reason         string `json:"reason"`
}

// TopicWeight is one row of the ranking table.
type TopicWeight struct {
	Topic         string  `json:"topic"`
	Attempts      int     `json:"attempts"`
	AverageScore  float64 `json:"averageScore"`
	LastSeenIndex int     `json:"lastSeenIndex"`
	Weight        float64 `json:"weight"`
}

type topicStats struct {
	sumPercentage float64
	count         int
	lastSeen      int
}

// Rank computes the weight of every topic in the history, in first-seen order.
func Rank(history []attempt.Record) []TopicWeight {
	var order []string
	stats := make(map[string]*topicStats)
	for i, a := range history {
		s, ok := stats[a.Topic]
		if !ok {
			s = &topicStats{}
			stats[a.Topic] = s
			order = append(order, a.Topic)
		}
		s.sumPercentage += a.Percentage()
		s.count++
		s.lastSeen = i
	}

	total := len(history)
	out := make([]TopicWeight, 0, len(order))
	for _, topic := range order {
		s := stats[topic]
		avg := s.sumPercentage / float64(s.count)
		scoreWeight := 100.0 - avg
		recencyWeight := float64(total - s.lastSeen)
		out = append(out, TopicWeight{
			Topic:         topic,
			Attempts:      s.count,
			AverageScore:  avg,
			LastSeenIndex: s.lastSeen,
			// Conversions keep each product rounded on its own (no fused multiply-add).
			Weight: float64(scoreWeight*ScoreMultiplier) + float64(recencyWeight*RecencyMultiplier),
		})
	}
	return out
}

// Recommend returns the topic with the greatest weight. Ties go to the topic
// seen first in the history.
func Recommend(history []attempt.Record) Recommendation {
	if len(history) == 0 {
		return Recommendation{Recommendation: DefaultTopic, Reason: ReasonFirstQuiz}
	}

	best := ""
	found := false
	var maxWeight float64
	for _, tw := range Rank(history) {
		if !found || tw.Weight > maxWeight {
			best = tw.Topic
			maxWeight = tw.Weight
			found = true
		}
	}

	if !found {
		return Recommendation{Recommendation: DefaultTopic, Reason: ReasonFallback}
	}
	return Recommendation{Recommendation: best, Reason: ReasonRanked}
}

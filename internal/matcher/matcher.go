// Package matcher implements approximate search over topic names.
package matcher

import (
	"sort"
	"strings"

	"github.com/agext/levenshtein"

	"github.com/abhisek/quizmind/internal/attempt"
)

// MaxDistance is the largest edit distance still considered a match.
const MaxDistance = 3

// Match is a topic within MaxDistance of the query.
type Match struct {
	Item     string `json:"item"`
	Distance int    `json:"distance"`
}

// Distance returns the case-insensitive Levenshtein distance between a and b.
// Insertions, deletions and substitutions each cost 1.
func Distance(a, b string) int {
	return levenshtein.Distance(strings.ToLower(a), strings.ToLower(b), nil)
}

// Search returns the topics within MaxDistance of query, closest first.
// Equal distances keep their input order and duplicates are not collapsed.
func Search(query string, topics []string) []Match {
	matches := []Match{}
	if query == "" || len(topics) == 0 {
		return matches
	}

	for _, t := range topics {
		d := Distance(query, t)
		if d > MaxDistance {
			continue
		}
		matches = append(matches, Match{Item: t, Distance: d})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})
	return matches
}

// FilterHistory returns the attempts whose topic matches query.
// An empty query returns the history unchanged.
func FilterHistory(query string, history []attempt.Record) []attempt.Record {
	if query == "" {
		return history
	}

	topics := make([]string, len(history))
	for i, a := range history {
		topics[i] = a.Topic
	}
	matched := make(map[string]bool)
	for _, m := range Search(query, topics) {
		matched[m.Item] = true
	}

	out := []attempt.Record{}
	for _, a := range history {
		if matched[a.Topic] {
			out = append(out, a)
		}
	}
	return out
}

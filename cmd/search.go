package cmd

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/quizmind/internal/attempt"
	"github.com/abhisek/quizmind/internal/matcher"
	"github.com/abhisek/quizmind/internal/ui/theme"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Fuzzy-search the topics you have studied",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		history, err := s.AttemptRepo().History(cmd.Context(), resolveLearner(cmd))
		if err != nil {
			return fmt.Errorf("load history: %w", err)
		}

		w := cmd.OutOrStdout()
		matches := matcher.Search(strings.Join(args, " "), distinctTopics(history))
		if len(matches) == 0 {
			lipgloss.Fprintln(w, theme.Muted.Render("No matching topics."))
			return nil
		}

		rows := make([][]string, 0, len(matches))
		for _, m := range matches {
			rows = append(rows, []string{m.Item, fmt.Sprintf("%d", m.Distance)})
		}
		lipgloss.Fprintln(w, theme.Table([]string{"Topic", "Distance"}, rows))
		return nil
	},
}

// distinctTopics returns each topic once, in first-seen order.
func distinctTopics(history []attempt.Record) []string {
	seen := make(map[string]bool, len(history))
	var topics []string
	for _, a := range history {
		if seen[a.Topic] {
			continue
		}
		seen[a.Topic] = true
		topics = append(topics, a.Topic)
	}
	return topics
}

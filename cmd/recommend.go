package cmd

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/quizmind/internal/recommend"
	"github.com/abhisek/quizmind/internal/ui/theme"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Suggest the topic to study next",
	RunE: func(cmd *cobra.Command, args []string) error {
		showRank, _ := cmd.Flags().GetBool("rank")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		history, err := s.AttemptRepo().History(cmd.Context(), resolveLearner(cmd))
		if err != nil {
			return fmt.Errorf("load history: %w", err)
		}

		rec := recommend.Recommend(history)
		w := cmd.OutOrStdout()
		lipgloss.Fprintln(w, theme.Card.Render(
			theme.Label.Render("Next up: ")+theme.Highlight.Render(rec.Recommendation)+"\n"+
				theme.Muted.Render(rec.Reason)))

		if !showRank || len(history) == 0 {
			return nil
		}

		ranked := recommend.Rank(history)
		rows := make([][]string, 0, len(ranked))
		for _, tw := range ranked {
			rows = append(rows, []string{
				tw.Topic,
				fmt.Sprintf("%d", tw.Attempts),
				theme.ForPercentage(tw.AverageScore).Render(fmt.Sprintf("%.1f%%", tw.AverageScore)),
				fmt.Sprintf("%d", tw.LastSeenIndex),
				fmt.Sprintf("%.2f", tw.Weight),
			})
		}
		lipgloss.Fprintln(w, theme.Table([]string{"Topic", "Attempts", "Average", "Last Seen", "Weight"}, rows))
		return nil
	},
}

func init() {
	recommendCmd.Flags().Bool("rank", false, "Show the weight of every topic")
}

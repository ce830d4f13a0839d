package cmd

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/quizmind/internal/attempt"
	"github.com/abhisek/quizmind/internal/grading"
	"github.com/abhisek/quizmind/internal/matcher"
	"github.com/abhisek/quizmind/internal/ui/theme"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded quizzes, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		query, _ := cmd.Flags().GetString("query")
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		recent, err := s.AttemptRepo().Recent(cmd.Context(), resolveLearner(cmd), 0)
		if err != nil {
			return fmt.Errorf("load history: %w", err)
		}
		recent = matcher.FilterHistory(query, recent)
		if limit > 0 && len(recent) > limit {
			recent = recent[:limit]
		}

		w := cmd.OutOrStdout()
		if len(recent) == 0 {
			lipgloss.Fprintln(w, theme.Muted.Render("No quizzes found."))
			return nil
		}

		rows := make([][]string, 0, len(recent))
		for _, a := range recent {
			rows = append(rows, historyRow(a))
		}
		lipgloss.Fprintln(w, theme.Table(
			[]string{"When", "Topic", "Difficulty", "Score", "Time"}, rows))
		return nil
	},
}

func historyRow(a attempt.Record) []string {
	difficulty := a.Difficulty
	if difficulty == "" {
		difficulty = "-"
	}
	pct := a.Percentage()
	return []string{
		a.Timestamp.Local().Format("2006-01-02 15:04"),
		a.Topic,
		difficulty,
		theme.ForPercentage(pct).Render(fmt.Sprintf("%d/%d %3.0f%%", a.Score, a.TotalQuestions, pct)),
		formatSeconds(a.TimeTakenSeconds),
	}
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		learner := resolveLearner(cmd)
		history, err := s.AttemptRepo().History(cmd.Context(), learner)
		if err != nil {
			return fmt.Errorf("load history: %w", err)
		}

		st := grading.Aggregate(grading.SummariesOf(history))

		w := cmd.OutOrStdout()
		lipgloss.Fprintln(w, theme.Title.Render("Statistics for "+learner))
		lipgloss.Fprintf(w, "%s %d\n", theme.Label.Render("Quizzes:      "), st.TotalQuizzes)
		lipgloss.Fprintf(w, "%s %s\n", theme.Label.Render("Time spent:   "), formatSeconds(st.TotalTimeSpent))
		lipgloss.Fprintf(w, "%s %s\n", theme.Label.Render("Average score:"),
			theme.ForPercentage(st.AverageScore).Render(fmt.Sprintf("%.2f%%", st.AverageScore)))
		return nil
	},
}

// formatSeconds renders a duration as 1h02m03s, 4m05s or 6s.
func formatSeconds(sec int) string {
	h, m, s := sec/3600, sec%3600/60, sec%60
	switch {
	case h > 0:
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	case m > 0:
		return fmt.Sprintf("%dm%02ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

func init() {
	historyCmd.Flags().StringP("query", "q", "", "Fuzzy topic filter")
	historyCmd.Flags().IntP("limit", "n", 20, "Number of quizzes to show (0 = all)")
}

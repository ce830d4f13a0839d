package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/quizmind/internal/attempt"
	"github.com/abhisek/quizmind/internal/gamification"
	"github.com/abhisek/quizmind/internal/quizgen"
	"github.com/abhisek/quizmind/internal/store"
	"github.com/abhisek/quizmind/internal/ui/theme"
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record a completed quiz",
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")
		score, _ := cmd.Flags().GetInt("score")
		total, _ := cmd.Flags().GetInt("total")
		seconds, _ := cmd.Flags().GetInt("time")
		difficulty, _ := cmd.Flags().GetString("difficulty")

		if difficulty != "" {
			d, err := quizgen.ParseDifficulty(difficulty)
			if err != nil {
				return err
			}
			difficulty = string(d)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		rec := &attempt.Record{
			Learner:          resolveLearner(cmd),
			Topic:            strings.TrimSpace(topic),
			Difficulty:       difficulty,
			Score:            score,
			TotalQuestions:   total,
			TimeTakenSeconds: seconds,
		}
		return recordAttempt(cmd.Context(), cmd.OutOrStdout(), s, rec)
	},
}

// recordAttempt validates and stores rec, then credits the award to the
// learner's profile.
func recordAttempt(ctx context.Context, w io.Writer, s *store.Store, rec *attempt.Record) error {
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("invalid attempt: %w", err)
	}
	if err := s.AttemptRepo().Append(ctx, rec); err != nil {
		return fmt.Errorf("save attempt: %w", err)
	}

	profile, err := s.ProfileRepo().Get(ctx, rec.Learner)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}
	award := gamification.Compute(rec.Score, rec.TotalQuestions)
	newBadge := gamification.Apply(profile, award)
	if err := s.ProfileRepo().Save(ctx, profile); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}

	pct := rec.Percentage()
	lipgloss.Fprintln(w, fmt.Sprintf("%s %s  %s",
		theme.Label.Render("Recorded"),
		rec.Topic,
		theme.ForPercentage(pct).Render(fmt.Sprintf("%d/%d (%.0f%%)", rec.Score, rec.TotalQuestions, pct)),
	))
	lipgloss.Fprintln(w, theme.Highlight.Render(fmt.Sprintf("+%d XP", award.XP))+
		theme.Muted.Render(fmt.Sprintf("  (total %d)", profile.XP)))
	if newBadge {
		lipgloss.Fprintln(w, theme.Good.Render(fmt.Sprintf("New badge: %s %s", award.Badge.Icon(), award.Badge)))
	}
	return nil
}

func init() {
	recordCmd.Flags().StringP("topic", "t", "", "Quiz topic")
	recordCmd.Flags().IntP("score", "s", 0, "Correct answers")
	recordCmd.Flags().IntP("total", "n", 0, "Number of questions")
	recordCmd.Flags().Int("time", 0, "Time taken in seconds")
	recordCmd.Flags().StringP("difficulty", "d", "", "Quiz difficulty (easy, medium, hard)")
	_ = recordCmd.MarkFlagRequired("topic")
	_ = recordCmd.MarkFlagRequired("total")
}

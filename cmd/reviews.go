package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/quizmind/internal/reminder"
	"github.com/abhisek/quizmind/internal/spacedrep"
	"github.com/abhisek/quizmind/internal/ui/theme"
)

var reviewsCmd = &cobra.Command{
	Use:   "reviews",
	Short: "Show topics due for spaced-repetition review",
	RunE: func(cmd *cobra.Command, args []string) error {
		watch, _ := cmd.Flags().GetBool("watch")
		every, _ := cmd.Flags().GetDuration("every")
		if every <= 0 {
			every = reminder.DefaultInterval
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		learner := resolveLearner(cmd)
		var notifier reminder.Notifier = themedNotifier{w: cmd.OutOrStdout()}
		if plain, _ := cmd.Flags().GetBool("plain"); plain {
			notifier = reminder.WriterNotifier{W: cmd.OutOrStdout()}
		}

		if !watch {
			history, err := s.AttemptRepo().History(cmd.Context(), learner)
			if err != nil {
				return fmt.Errorf("load history: %w", err)
			}
			due := spacedrep.DueReviews(history, time.Now())
			if len(due) == 0 {
				lipgloss.Fprintln(cmd.OutOrStdout(), theme.Good.Render("Nothing due. You're all caught up!"))
				return nil
			}
			return notifier.NotifyDue(learner, due)
		}

		if telegram, _ := cmd.Flags().GetBool("telegram"); telegram {
			cfg, err := reminder.TelegramConfigFromEnv()
			if err != nil {
				return fmt.Errorf("configure telegram: %w", err)
			}
			tg, err := reminder.NewTelegramNotifier(cfg)
			if err != nil {
				return err
			}
			notifier = tg
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		r := reminder.New(s.AttemptRepo(), notifier, learner, every)
		if err := r.Start(ctx); err != nil {
			return fmt.Errorf("start reminder: %w", err)
		}
		defer r.Stop()

		lipgloss.Fprintln(cmd.ErrOrStderr(), theme.Muted.Render(
			fmt.Sprintf("Checking reviews for %s every %s. Press Ctrl+C to stop.", learner, every)))
		<-ctx.Done()
		return nil
	},
}

// themedNotifier prints due reviews as a styled table.
type themedNotifier struct {
	w io.Writer
}

func (n themedNotifier) NotifyDue(learner string, due []spacedrep.DueReview) error {
	rows := make([][]string, 0, len(due))
	for _, d := range due {
		status := theme.Fair.Render(reminder.Overdue(d.DueInDays))
		if d.DueInDays < 0 {
			status = theme.Bad.Render(reminder.Overdue(d.DueInDays))
		}
		rows = append(rows, []string{d.Topic, fmt.Sprintf("%dd", d.Interval), status})
	}

	_, err := lipgloss.Fprintln(n.w,
		theme.Title.Render(fmt.Sprintf("%d review(s) due for %s", len(due), learner)),
		"\n"+theme.Table([]string{"Topic", "Interval", "Status"}, rows))
	return err
}

func init() {
	reviewsCmd.Flags().BoolP("watch", "w", false, "Keep running and report newly due reviews")
	reviewsCmd.Flags().Duration("every", reminder.DefaultInterval, "Check interval in watch mode")
	reviewsCmd.Flags().Bool("plain", false, "Print one line per review instead of a table")
	reviewsCmd.Flags().Bool("telegram", false, "In watch mode, send reminders to Telegram (QUIZMIND_TELEGRAM_TOKEN, QUIZMIND_TELEGRAM_CHAT_ID)")
}

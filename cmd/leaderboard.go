package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/quizmind/internal/gamification"
	"github.com/abhisek/quizmind/internal/store"
	"github.com/abhisek/quizmind/internal/ui/theme"
)

const defaultLeaderboardLimit = 10

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Rank learners by XP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		page, _ := cmd.Flags().GetInt("page")
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		lb, err := loadLeaderboard(cmd.Context(), s, page, limit)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		lipgloss.Fprintln(w, theme.Title.Render("Leaderboard"))
		if len(lb.Entries) == 0 {
			lipgloss.Fprintln(w, theme.Muted.Render("No learners on this page."))
		} else {
			me := resolveLearner(cmd)
			rows := make([][]string, len(lb.Entries))
			for i, p := range lb.Entries {
				name := p.Learner
				if name == me {
					name = theme.Highlight.Render(name)
				}
				rows[i] = []string{
					strconv.Itoa(lb.Offset + i + 1),
					name,
					strconv.Itoa(p.XP),
					badgeIcons(p.Badges),
				}
			}
			lipgloss.Fprintln(w, theme.Table([]string{"#", "Learner", "XP", "Badges"}, rows))
		}

		lipgloss.Fprintln(w, theme.Muted.Render(fmt.Sprintf("Page %d of %d, %d learners",
			lb.Page, lb.TotalPages, lb.TotalLearners)))
		lipgloss.Fprintln(w, theme.Muted.Render(fmt.Sprintf("%d learners have solved %d questions",
			lb.Global.Learners, lb.Global.QuestionsSolved)))
		return nil
	},
}

// leaderboard is one page of learners ranked by XP plus global totals.
type leaderboard struct {
	Entries       []gamification.Profile
	Page          int
	Offset        int
	TotalPages    int
	TotalLearners int
	Global        store.GlobalStats
}

// loadLeaderboard reads page (1-based) of the ranking. A page below 1 is
// page 1 and a limit below 1 is the default page size.
func loadLeaderboard(ctx context.Context, s *store.Store, page, limit int) (*leaderboard, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLeaderboardLimit
	}
	lb := &leaderboard{Page: page, Offset: (page - 1) * limit}

	var err error
	lb.Entries, err = s.ProfileRepo().Top(ctx, limit, lb.Offset)
	if err != nil {
		return nil, fmt.Errorf("load leaderboard: %w", err)
	}
	lb.TotalLearners, err = s.ProfileRepo().Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count learners: %w", err)
	}
	lb.TotalPages = (lb.TotalLearners + limit - 1) / limit
	lb.Global, err = s.AttemptRepo().Global(ctx)
	if err != nil {
		return nil, fmt.Errorf("load global stats: %w", err)
	}
	return lb, nil
}

func badgeIcons(badges []string) string {
	if len(badges) == 0 {
		return "-"
	}
	icons := make([]string, len(badges))
	for i, b := range badges {
		icons[i] = gamification.Badge(b).Icon()
	}
	return strings.Join(icons, " ")
}

func init() {
	leaderboardCmd.Flags().IntP("page", "p", 1, "Page number, starting at 1")
	leaderboardCmd.Flags().IntP("limit", "n", defaultLeaderboardLimit, "Learners per page")
}

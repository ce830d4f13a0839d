package cmd

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/quizmind/internal/gamification"
	"github.com/abhisek/quizmind/internal/ui/theme"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show XP and badges",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		p, err := s.ProfileRepo().Get(cmd.Context(), resolveLearner(cmd))
		if err != nil {
			return fmt.Errorf("load profile: %w", err)
		}

		w := cmd.OutOrStdout()
		lipgloss.Fprintln(w, theme.Title.Render(p.Learner))
		lipgloss.Fprintf(w, "%s %s\n", theme.Label.Render("XP:    "), theme.Highlight.Render(fmt.Sprintf("%d", p.XP)))

		if len(p.Badges) == 0 {
			lipgloss.Fprintf(w, "%s %s\n", theme.Label.Render("Badges:"), theme.Muted.Render("none yet"))
			return nil
		}
		lipgloss.Fprintln(w, theme.Label.Render("Badges:"))
		for _, b := range p.Badges {
			badge := gamification.Badge(b)
			lipgloss.Fprintf(w, "  %s %s\n", badge.Icon(), b)
		}
		return nil
	},
}

package cmd

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/quizmind/internal/spreadsheet"
	"github.com/abhisek/quizmind/internal/ui/theme"
)

var exportCmd = &cobra.Command{
	Use:   "export <file.xlsx|file.csv>",
	Short: "Export quiz history to Excel or CSV",
	Args:  cobra.ExactArgs(1),
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
		if err := spreadsheet.Export(args[0], history); err != nil {
			return fmt.Errorf("export history: %w", err)
		}

		lipgloss.Fprintln(cmd.OutOrStdout(), theme.Good.Render(
			fmt.Sprintf("Exported %d quizzes to %s", len(history), args[0])))
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file.xlsx|file.csv>",
	Short: "Import quiz history from Excel or CSV",
	Long: "Import quiz history from a file in the layout written by export. " +
		"Rows that fail validation are reported and skipped, as are rows already " +
		"recorded for the learner (same topic within the same second). " +
		"The import is all or nothing.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		learner := resolveLearner(cmd)
		res, err := spreadsheet.Import(args[0], learner)
		if err != nil {
			return fmt.Errorf("import history: %w", err)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		added, err := s.AttemptRepo().AppendBatch(cmd.Context(), res.Records)
		if err != nil {
			return fmt.Errorf("import history: %w", err)
		}

		w := cmd.OutOrStdout()
		lipgloss.Fprintln(w, theme.Good.Render(
			fmt.Sprintf("Imported %d of %d rows for %s", added, res.TotalProcessed, learner)))
		if dup := len(res.Records) - added; dup > 0 {
			lipgloss.Fprintln(w, theme.Muted.Render(fmt.Sprintf("  %d already recorded, skipped", dup)))
		}
		for _, e := range res.Errors {
			lipgloss.Fprintln(w, theme.Fair.Render("  skipped "+e))
		}
		return nil
	},
}

package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/quizmind/internal/attempt"
	"github.com/abhisek/quizmind/internal/grading"
	"github.com/abhisek/quizmind/internal/llm"
	"github.com/abhisek/quizmind/internal/quizgen"
	"github.com/abhisek/quizmind/internal/ui/theme"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Generate a quiz with a language model and grade your answers",
}

var quizGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a multiple-choice quiz and save it to a file",
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")
		level, _ := cmd.Flags().GetString("difficulty")
		count, _ := cmd.Flags().GetInt("count")
		out, _ := cmd.Flags().GetString("out")

		difficulty, err := quizgen.ParseDifficulty(level)
		if err != nil {
			return err
		}

		cfg, err := llm.ResolveConfig()
		if err != nil {
			return fmt.Errorf("configure LLM: %w", err)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		provider, err := llm.NewProvider(ctx, cfg, s.EventRepo())
		if err != nil {
			return err
		}

		lipgloss.Fprintln(cmd.ErrOrStderr(), theme.Muted.Render(
			fmt.Sprintf("Generating %s quiz on %q with %s...", difficulty, topic, provider.ModelID())))

		quiz, err := quizgen.New(provider, quizgen.DefaultConfig()).Generate(ctx, quizgen.Input{
			Topic:      topic,
			Difficulty: difficulty,
			Count:      count,
		})
		if err != nil {
			return err
		}

		if err := quizgen.WriteFile(out, quiz); err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		lipgloss.Fprintln(w, theme.Title.Render(fmt.Sprintf("%s (%s)", quiz.Topic, quiz.Difficulty)))
		for _, q := range quiz.Questions {
			lipgloss.Fprintf(w, "\n%s %s\n", theme.Label.Render(fmt.Sprintf("%d.", q.ID)), q.Question)
			for i, opt := range q.Options {
				lipgloss.Fprintf(w, "   %c) %s\n", 'A'+i, opt)
			}
		}
		lipgloss.Fprintln(w, "\n"+theme.Muted.Render(fmt.Sprintf(
			"Saved to %s. Submit with: quizmind quiz submit --file %s --answer 1=A ... --time <seconds>", out, out)))
		return nil
	},
}

var quizSubmitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Grade answers to a saved quiz and record the attempt",
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		raw, _ := cmd.Flags().GetStringArray("answer")
		answersFile, _ := cmd.Flags().GetString("answers-file")
		seconds, _ := cmd.Flags().GetInt("time")
		topic, _ := cmd.Flags().GetString("topic")

		quiz, err := quizgen.ReadFile(file)
		if err != nil {
			return err
		}

		answers, err := parseAnswers(raw)
		if err != nil {
			return err
		}
		if answersFile != "" {
			fromFile, err := readAnswersFile(answersFile)
			if err != nil {
				return err
			}
			for id, a := range fromFile {
				if _, set := answers[id]; !set {
					answers[id] = a
				}
			}
		}
		answers = resolveOptionLetters(quiz.Questions, answers)

		result := grading.Grade(quiz.Questions, answers, seconds)

		if topic == "" {
			topic = quiz.Topic
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		w := cmd.OutOrStdout()
		printReview(cmd, quiz.Questions, answers)
		pct := 0.0
		if n := len(quiz.Questions); n > 0 {
			pct = float64(result.Score) / float64(n) * 100
		}
		lipgloss.Fprintln(w, theme.Card.Render(
			theme.ForPercentage(pct).Render(fmt.Sprintf("Score %d/%d", result.Score, len(quiz.Questions)))+
				theme.Muted.Render(fmt.Sprintf("  %.4f correct/s", result.Efficiency))+"\n"+
				result.Summary))

		return recordAttempt(cmd.Context(), w, s, &attempt.Record{
			Learner:          resolveLearner(cmd),
			Topic:            topic,
			Difficulty:       string(quiz.Difficulty),
			Score:            result.Score,
			TotalQuestions:   len(quiz.Questions),
			TimeTakenSeconds: seconds,
		})
	},
}

// parseAnswers reads repeated id=answer pairs.
func parseAnswers(pairs []string) (map[int]string, error) {
	answers := make(map[int]string, len(pairs))
	for _, p := range pairs {
		idStr, answer, ok := strings.Cut(p, "=")
		if !ok {
			return nil, fmt.Errorf("invalid answer %q: want <id>=<answer>", p)
		}
		id, err := strconv.Atoi(strings.TrimSpace(idStr))
		if err != nil {
			return nil, fmt.Errorf("invalid question id in %q: %w", p, err)
		}
		answers[id] = strings.TrimSpace(answer)
	}
	return answers, nil
}

// readAnswersFile loads a JSON object mapping question id to answer,
// e.g. {"1": "Paris", "2": "B"}.
func readAnswersFile(path string) (map[int]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read answers: %w", err)
	}
	var answers map[int]string
	if err := json.Unmarshal(b, &answers); err != nil {
		return nil, fmt.Errorf("decode answers %s: %w", path, err)
	}
	return answers, nil
}

// resolveOptionLetters replaces a single-letter answer (A-D) with the option
// text it labels. An answer that already equals one of the options is kept.
func resolveOptionLetters(questions []grading.Question, answers map[int]string) map[int]string {
	out := make(map[int]string, len(answers))
	for id, a := range answers {
		out[id] = a
	}
	for _, q := range questions {
		a, ok := out[q.ID]
		if !ok || len(a) != 1 || slices.Contains(q.Options, a) {
			continue
		}
		i := int(strings.ToUpper(a)[0] - 'A')
		if i >= 0 && i < len(q.Options) {
			out[q.ID] = q.Options[i]
		}
	}
	return out
}

func printReview(cmd *cobra.Command, questions []grading.Question, answers map[int]string) {
	w := cmd.OutOrStdout()
	for _, q := range questions {
		given, ok := answers[q.ID]
		switch {
		case ok && given == q.Answer:
			lipgloss.Fprintf(w, "%s %d. %s\n", theme.Good.Render("✓"), q.ID, q.Question)
		case !ok:
			lipgloss.Fprintf(w, "%s %d. %s %s\n", theme.Bad.Render("✗"), q.ID, q.Question,
				theme.Muted.Render("(no answer; correct: "+q.Answer+")"))
		default:
			lipgloss.Fprintf(w, "%s %d. %s %s\n", theme.Bad.Render("✗"), q.ID, q.Question,
				theme.Muted.Render(fmt.Sprintf("(you: %s; correct: %s)", given, q.Answer)))
		}
		if q.Explanation != "" {
			lipgloss.Fprintln(w, "   "+theme.Muted.Render(q.Explanation))
		}
	}
}

func init() {
	quizGenerateCmd.Flags().StringP("topic", "t", "", "Quiz topic")
	quizGenerateCmd.Flags().StringP("difficulty", "d", string(quizgen.DifficultyMedium), "Difficulty (easy, medium, hard)")
	quizGenerateCmd.Flags().IntP("count", "n", quizgen.DefaultCount, "Number of questions")
	quizGenerateCmd.Flags().StringP("out", "o", "quiz.json", "File to write the quiz to")
	_ = quizGenerateCmd.MarkFlagRequired("topic")

	quizSubmitCmd.Flags().StringP("file", "f", "quiz.json", "Quiz file written by quiz generate")
	quizSubmitCmd.Flags().StringArrayP("answer", "a", nil, "Answer as <id>=<option text or letter>, repeatable")
	quizSubmitCmd.Flags().String("answers-file", "", "JSON file mapping question id to answer")
	quizSubmitCmd.Flags().Int("time", 0, "Time taken in seconds")
	quizSubmitCmd.Flags().StringP("topic", "t", "", "Topic to record (defaults to the quiz topic)")

	quizCmd.AddCommand(quizGenerateCmd)
	quizCmd.AddCommand(quizSubmitCmd)
}

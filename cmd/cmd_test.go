package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizmind/internal/attempt"
	"github.com/abhisek/quizmind/internal/gamification"
	"github.com/abhisek/quizmind/internal/grading"
	"github.com/abhisek/quizmind/internal/spacedrep"
	"github.com/abhisek/quizmind/internal/store"
	"github.com/abhisek/quizmind/internal/studyqueue"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestParseAnswers(t *testing.T) {
	got, err := parseAnswers([]string{"1=Paris", " 2 = Blue whale ", "3=a=b"})
	require.NoError(t, err)
	assert.Equal(t, map[int]string{1: "Paris", 2: "Blue whale", 3: "a=b"}, got)

	_, err = parseAnswers([]string{"Paris"})
	assert.ErrorContains(t, err, "want <id>=<answer>")

	_, err = parseAnswers([]string{"x=Paris"})
	assert.ErrorContains(t, err, "invalid question id")
}

func TestReadAnswersFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answers.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"1": "Paris", "2": "B"}`), 0o644))

	got, err := readAnswersFile(path)
	require.NoError(t, err)
	assert.Equal(t, map[int]string{1: "Paris", 2: "B"}, got)

	_, err = readAnswersFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestResolveOptionLetters(t *testing.T) {
	questions := []grading.Question{
		{ID: 1, Options: []string{"Rome", "Paris", "Oslo", "Bern"}, Answer: "Paris"},
		{ID: 2, Options: []string{"A", "B", "C", "D"}, Answer: "C"},
		{ID: 3, Options: []string{"1", "2", "3", "4"}, Answer: "4"},
	}
	answers := map[int]string{1: "b", 2: "D", 3: "z", 9: "A"}

	got := resolveOptionLetters(questions, answers)

	assert.Equal(t, "Paris", got[1])
	assert.Equal(t, "D", got[2], "literal option wins over letter")
	assert.Equal(t, "z", got[3], "out of range letter kept")
	assert.Equal(t, "A", got[9], "unknown question untouched")
	assert.Equal(t, "b", answers[1], "input not modified")
}

func TestDistinctTopics(t *testing.T) {
	history := []attempt.Record{{Topic: "Go"}, {Topic: "Rust"}, {Topic: "Go"}, {Topic: "SQL"}}
	assert.Equal(t, []string{"Go", "Rust", "SQL"}, distinctTopics(history))
	assert.Empty(t, distinctTopics(nil))
}

func TestFormatSeconds(t *testing.T) {
	assert.Equal(t, "0s", formatSeconds(0))
	assert.Equal(t, "59s", formatSeconds(59))
	assert.Equal(t, "4m05s", formatSeconds(245))
	assert.Equal(t, "1h02m03s", formatSeconds(3723))
}

func TestRecordAttempt(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	var out bytes.Buffer

	err := recordAttempt(ctx, &out, s, &attempt.Record{
		Learner: "ana", Topic: "Go", Score: 5, TotalQuestions: 5, TimeTakenSeconds: 60,
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "+60 XP")
	assert.Contains(t, out.String(), "Gold Aim")

	history, err := s.AttemptRepo().History(ctx, "ana")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.NotEmpty(t, history[0].ID)

	p, err := s.ProfileRepo().Get(ctx, "ana")
	require.NoError(t, err)
	assert.Equal(t, 60, p.XP)
	assert.Equal(t, []string{string(gamification.BadgeGold)}, p.Badges)

	// Same badge again is not announced twice.
	out.Reset()
	require.NoError(t, recordAttempt(ctx, &out, s, &attempt.Record{
		Learner: "ana", Topic: "Go", Score: 5, TotalQuestions: 5,
	}))
	assert.NotContains(t, out.String(), "New badge")
}

func TestRecordAttempt_Invalid(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	err := recordAttempt(ctx, &bytes.Buffer{}, s, &attempt.Record{Learner: "ana", Topic: "Go", Score: 6, TotalQuestions: 5})
	assert.ErrorContains(t, err, "invalid attempt")

	history, err := s.AttemptRepo().History(ctx, "ana")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestApplyQueueOp(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.QueueRepo()

	_, after, err := applyQueueOp(ctx, repo, "ana", studyqueue.OpEnqueue, "Go")
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, after)

	_, _, err = applyQueueOp(ctx, repo, "ana", studyqueue.OpEnqueue, "SQL")
	require.NoError(t, err)

	before, after, err := applyQueueOp(ctx, repo, "ana", studyqueue.OpDequeue, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "SQL"}, before)
	assert.Equal(t, []string{"SQL"}, after)

	saved, err := repo.Load(ctx, "ana")
	require.NoError(t, err)
	assert.Equal(t, []string{"SQL"}, saved)

	// Removing a missing topic leaves the queue alone.
	_, after, err = applyQueueOp(ctx, repo, "ana", studyqueue.OpRemove, "Rust")
	require.NoError(t, err)
	assert.Equal(t, []string{"SQL"}, after)
}

func TestRunQueueOp_BlankTopic(t *testing.T) {
	for _, op := range []studyqueue.Operation{studyqueue.OpEnqueue, studyqueue.OpRemove} {
		err := runQueueOp(queueAddCmd, op, "   ")
		assert.ErrorIs(t, err, errTopicRequired)
	}
}

func TestLoadLeaderboard(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	lb, err := loadLeaderboard(ctx, s, 1, 2)
	require.NoError(t, err)
	assert.Empty(t, lb.Entries)
	assert.Equal(t, 0, lb.TotalPages)
	assert.Equal(t, 0, lb.TotalLearners)
	assert.Equal(t, store.GlobalStats{}, lb.Global)

	for _, p := range []gamification.Profile{
		{Learner: "ana", XP: 120},
		{Learner: "ben", XP: 300, Badges: []string{string(gamification.BadgeGold)}},
		{Learner: "cy", XP: 50},
	} {
		p := p
		require.NoError(t, s.ProfileRepo().Save(ctx, &p))
	}
	for _, rec := range []attempt.Record{
		{Learner: "ana", Topic: "Go", Score: 4, TotalQuestions: 5},
		{Learner: "ben", Topic: "SQL", Score: 9, TotalQuestions: 10},
	} {
		rec := rec
		require.NoError(t, s.AttemptRepo().Append(ctx, &rec))
	}

	lb, err = loadLeaderboard(ctx, s, 1, 2)
	require.NoError(t, err)
	require.Len(t, lb.Entries, 2)
	assert.Equal(t, "ben", lb.Entries[0].Learner)
	assert.Equal(t, "ana", lb.Entries[1].Learner)
	assert.Equal(t, 2, lb.TotalPages)
	assert.Equal(t, 3, lb.TotalLearners)
	assert.Equal(t, store.GlobalStats{Learners: 2, QuestionsSolved: 15}, lb.Global)

	lb, err = loadLeaderboard(ctx, s, 2, 2)
	require.NoError(t, err)
	require.Len(t, lb.Entries, 1)
	assert.Equal(t, "cy", lb.Entries[0].Learner)
	assert.Equal(t, 2, lb.Offset)

	// Out of range values fall back to page 1 of the default size.
	lb, err = loadLeaderboard(ctx, s, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, lb.Page)
	assert.Len(t, lb.Entries, 3)
	assert.Equal(t, 1, lb.TotalPages)

	lb, err = loadLeaderboard(ctx, s, 5, 2)
	require.NoError(t, err)
	assert.Empty(t, lb.Entries)
}

func TestThemedNotifier(t *testing.T) {
	var out bytes.Buffer
	n := themedNotifier{w: &out}

	err := n.NotifyDue("ana", []spacedrep.DueReview{
		{Topic: "Go", Interval: 6, DueInDays: -2},
		{Topic: "SQL", Interval: 1, DueInDays: 0},
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "2 review(s) due for ana")
	assert.Contains(t, out.String(), "2 days overdue")
	assert.Contains(t, out.String(), "due today")
}

func TestRootCommand_RecordAndHistory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "quizmind.db")
	t.Setenv("QUIZMIND_LEARNER", "cli-test")

	run := func(args ...string) string {
		t.Helper()
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetErr(&out)
		rootCmd.SetArgs(append(args, "--db", dbPath))
		require.NoError(t, rootCmd.Execute())
		return out.String()
	}

	run("record", "--topic", "Go Basics", "--score", "3", "--total", "5", "--time", "90")
	run("record", "--topic", "SQL Joins", "--score", "5", "--total", "5", "--time", "60")

	out := run("history", "--query", "go basic", "--limit", "0")
	assert.Contains(t, out, "Go Basics")
	assert.NotContains(t, out, "SQL Joins")

	out = run("stats")
	assert.Contains(t, out, "Statistics for cli-test")
	assert.Contains(t, out, "80.00%")

	out = run("recommend")
	assert.Contains(t, out, "Go Basics")

	csvPath := filepath.Join(t.TempDir(), "history.csv")
	out = run("export", csvPath)
	assert.Contains(t, out, "Exported 2 quizzes")

	out = run("leaderboard", "--limit", "1")
	assert.Contains(t, out, "cli-test")
	assert.Contains(t, out, "Page 1 of 1, 1 learners")
	assert.Contains(t, out, "1 learners have solved 10 questions")

	rootCmd.SetArgs([]string{"queue", "add", "   ", "--db", dbPath})
	assert.ErrorIs(t, rootCmd.Execute(), errTopicRequired)

	// --learner sticks to the shared command tree, so this runs last.
	out = run("import", csvPath, "--learner", "copy")
	assert.Contains(t, out, "Imported 2 of 2 rows for copy")

	out = run("import", csvPath, "--learner", "copy")
	assert.Contains(t, out, "Imported 0 of 2 rows for copy")
	assert.Contains(t, out, "2 already recorded, skipped")

	s, err := store.Open(dbPath)
	require.NoError(t, err)
	defer s.Close()
	history, err := s.AttemptRepo().History(context.Background(), "cli-test")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.WithinDuration(t, time.Now(), history[0].Timestamp, time.Minute)

	copied, err := s.AttemptRepo().History(context.Background(), "copy")
	require.NoError(t, err)
	require.Len(t, copied, 2)
	assert.Equal(t, history[0].Topic, copied[0].Topic)
	assert.Equal(t, history[1].Score, copied[1].Score)
}

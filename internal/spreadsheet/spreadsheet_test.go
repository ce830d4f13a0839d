package spreadsheet

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizmind/internal/attempt"
)

var t0 = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func sampleHistory() []attempt.Record {
	return []attempt.Record{
		{Topic: "Go Basics", Difficulty: "easy", Score: 4, TotalQuestions: 5, TimeTakenSeconds: 120, Timestamp: t0},
		{Topic: "SQL, Joins", Score: 2, TotalQuestions: 5, TimeTakenSeconds: 300, Timestamp: t0.Add(26 * time.Hour)},
	}
}

func TestExportImport(t *testing.T) {
	for _, name := range []string{"history.xlsx", "history.csv"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, Export(path, sampleHistory()))

			res, err := Import(path, "ana")
			require.NoError(t, err)
			assert.Empty(t, res.Errors)
			assert.Equal(t, 2, res.TotalProcessed)

			want := sampleHistory()
			for i := range want {
				want[i].Learner = "ana"
			}
			assert.Equal(t, want, res.Records)
		})
	}
}

func TestExportEmptyHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, Export(path, nil))

	res, err := Import(path, "ana")
	require.NoError(t, err)
	assert.Zero(t, res.TotalProcessed)
	assert.Empty(t, res.Records)
}

func TestImportReportsBadRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	content := "Timestamp,Topic,Difficulty,Score,Total Questions,Time Taken (s)\n" +
		"2024-06-01T09:00:00Z,Go,,3,5,60\n" +
		"yesterday,Go,,3,5,60\n" +
		"2024-06-01T09:00:00Z,Go,,x,5,60\n" +
		"2024-06-01T09:00:00Z,Go,,6,5,60\n" +
		",,,,,\n" +
		"2024-06-01T09:00:00Z,,,1,5,60\n" +
		"2024-06-01T09:00:00Z,Go,extreme,1,5,60\n" +
		"2024-06-01T10:00:00Z,SQL,Hard,2,5,60\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	res, err := Import(path, "ana")
	require.NoError(t, err)
	assert.Equal(t, 7, res.TotalProcessed)
	require.Len(t, res.Records, 2)
	assert.Equal(t, "Go", res.Records[0].Topic)
	assert.Equal(t, "", res.Records[0].Difficulty)
	assert.Equal(t, "SQL", res.Records[1].Topic)
	assert.Equal(t, "hard", res.Records[1].Difficulty, "difficulty is normalized")
	require.Len(t, res.Errors, 5)
	assert.Contains(t, res.Errors[0], "row 3: invalid timestamp")
	assert.Contains(t, res.Errors[1], `row 4: invalid score "x"`)
	assert.Contains(t, res.Errors[2], "row 5: score 6 exceeds total questions 5")
	assert.Contains(t, res.Errors[3], "row 7: topic is required")
	assert.Contains(t, res.Errors[4], `row 8: unknown difficulty "extreme"`)
}

func TestImportMissingFile(t *testing.T) {
	_, err := Import(filepath.Join(t.TempDir(), "missing.xlsx"), "ana")
	assert.Error(t, err)
}

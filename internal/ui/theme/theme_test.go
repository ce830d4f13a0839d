package theme

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForPercentage(t *testing.T) {
	tests := []struct {
		pct  float64
		want string
	}{
		{100, "good"},
		{80, "good"},
		{79.99, "fair"},
		{50, "fair"},
		{49.9, "bad"},
		{0, "bad"},
	}
	styles := map[string]interface{}{"good": Good, "fair": Fair, "bad": Bad}

	for _, tt := range tests {
		assert.Equal(t, styles[tt.want], ForPercentage(tt.pct), "pct=%v", tt.pct)
	}
}

func TestTable(t *testing.T) {
	out := Table([]string{"Topic", "Score"}, [][]string{
		{"Go Basics", "80%"},
		{"Concurrency", "40%"},
	})

	for _, want := range []string{"Topic", "Score", "Go Basics", "Concurrency", "40%"} {
		assert.Contains(t, out, want)
	}
	// header + 2 rows + top, header separator and bottom border
	assert.Equal(t, 6, len(strings.Split(strings.TrimRight(out, "\n"), "\n")))
}

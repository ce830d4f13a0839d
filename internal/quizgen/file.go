package quizgen

import (
	"encoding/json"
	"fmt"
	"os"
)

// WriteFile stores q as indented JSON.
func WriteFile(path string, q *Quiz) error {
	b, err := json.MarshalIndent(q, "", "  ")
	if err != nil {
		return fmt.Errorf("encode quiz: %w", err)
	}
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("write quiz: %w", err)
	}
	return nil
}

// ReadFile loads a quiz written by WriteFile and runs the structural check
// so grading never sees a malformed file.
func ReadFile(path string) (*Quiz, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read quiz: %w", err)
	}
	var q Quiz
	if err := json.Unmarshal(b, &q); err != nil {
		return nil, fmt.Errorf("decode quiz %s: %w", path, err)
	}
	if verr := (&StructuralValidator{}).Validate(&q, Input{}); verr != nil {
		return nil, fmt.Errorf("quiz %s: %w", path, verr)
	}
	return &q, nil
}

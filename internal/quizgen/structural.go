package quizgen

import (
	"fmt"
	"strings"
)

// StructuralValidator enforces the shape grading relies on: unique
// positive IDs, non-empty text, four distinct options and an answer that
// is one of them.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Quiz, _ Input) *ValidationError {
	if len(q.Questions) == 0 {
		return v.fail(0, "quiz has no questions")
	}

	seen := make(map[int]bool, len(q.Questions))
	for _, item := range q.Questions {
		if item.ID <= 0 {
			return v.fail(item.ID, "id must be positive")
		}
		if seen[item.ID] {
			return v.fail(item.ID, "duplicate id")
		}
		seen[item.ID] = true

		if strings.TrimSpace(item.Question) == "" {
			return v.fail(item.ID, "question text is empty")
		}
		if len(item.Options) != OptionsPerQuestion {
			return v.fail(item.ID, "expected exactly 4 options")
		}

		distinct := make(map[string]bool, len(item.Options))
		for _, opt := range item.Options {
			if strings.TrimSpace(opt) == "" {
				return v.fail(item.ID, "option is empty")
			}
			if distinct[opt] {
				return v.fail(item.ID, "options are not distinct")
			}
			distinct[opt] = true
		}
		if !distinct[item.Answer] {
			return v.fail(item.ID, "answer is not one of the options")
		}
	}
	return nil
}

func (v *StructuralValidator) fail(id int, msg string) *ValidationError {
	return &ValidationError{Validator: v.Name(), Question: id, Message: msg}
}

// CountValidator rejects quizzes with a different number of questions
// than requested.
type CountValidator struct{}

func (v *CountValidator) Name() string { return "count" }

func (v *CountValidator) Validate(q *Quiz, in Input) *ValidationError {
	if got, want := len(q.Questions), in.count(); got != want {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("got %d questions, want %d", got, want),
		}
	}
	return nil
}
